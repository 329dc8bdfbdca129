package dto

import "github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/service"

// TrainingFilterDTO is the POST body of the training filter endpoint. Field
// names mirror the frontend's filter state.
type TrainingFilterDTO struct {
	Category          string   `json:"category,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
	Search            string   `json:"search,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	Featured          bool     `json:"featured,omitempty"`
	CertificationOnly bool     `json:"certification,omitempty"`
	SortBy            string   `json:"sortBy,omitempty" validate:"omitempty,oneof=title level duration"`
}

// Query converts the DTO into the filter engine's query type.
func (d TrainingFilterDTO) Query() service.CourseQuery {
	return service.CourseQuery{
		Category:          d.Category,
		Level:             d.Difficulty,
		Search:            d.Search,
		Tags:              d.Tags,
		FeaturedOnly:      d.Featured,
		CertificationOnly: d.CertificationOnly,
		SortBy:            d.SortBy,
	}
}
