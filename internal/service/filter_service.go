package service

import (
	"context"
	"sort"
	"strings"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/repository"
)

// CourseQuery selects a subset of the catalog. All supplied predicates must
// match (logical AND); within Tags any matching tag suffices.
type CourseQuery struct {
	Category          string   `json:"category,omitempty"`
	Level             string   `json:"difficulty,omitempty"`
	Search            string   `json:"search,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	FeaturedOnly      bool     `json:"featured,omitempty"`
	CertificationOnly bool     `json:"certification,omitempty"`
	SortBy            string   `json:"sortBy,omitempty"`
}

// Sort keys accepted by CourseQuery.SortBy. Title is the default.
const (
	SortByTitle    = "title"
	SortByLevel    = "level"
	SortByDuration = "duration"
)

// categoryRule matches a legacy compound category identifier against a
// course's base category plus subcategory/tag substring checks. The rule
// table is closed; unknown identifiers fall through to no match.
type categoryRule struct {
	// base must equal the normalized course category when set.
	base string
	// baseContains matches when the course category contains any term.
	baseContains []string
	// subTerms match as substrings of the normalized subcategory.
	subTerms []string
	// tagTerms match as substrings of any normalized tag.
	tagTerms []string
}

var categoryAliases = map[string]categoryRule{
	"azure-data":           {base: "azure", subTerms: []string{"artificial intelligence", "data"}, tagTerms: []string{"ai", "data"}},
	"azure-development":    {base: "azure", subTerms: []string{"development"}, tagTerms: []string{"development"}},
	"azure-administration": {base: "azure", subTerms: []string{"administration"}, tagTerms: []string{"admin"}},
	"azure-security":       {base: "azure", subTerms: []string{"security"}, tagTerms: []string{"security"}},
	"azure-fundamentals":   {base: "azure", subTerms: []string{"fundamentals"}, tagTerms: []string{"fundamentals"}},
	"microsoft-365":        {baseContains: []string{"microsoft 365", "office 365"}},
}

func (r categoryRule) matches(course *model.Course) bool {
	category := strings.ToLower(course.Category)
	if len(r.baseContains) > 0 {
		for _, term := range r.baseContains {
			if strings.Contains(category, term) {
				return true
			}
		}
		return false
	}
	if category != r.base {
		return false
	}
	subcategory := strings.ToLower(course.Subcategory)
	for _, term := range r.subTerms {
		if strings.Contains(subcategory, term) {
			return true
		}
	}
	for _, term := range r.tagTerms {
		for _, tag := range course.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				return true
			}
		}
	}
	return false
}

// FilterService returns the ordered subset of the catalog matching a query.
type FilterService interface {
	Filter(ctx context.Context, query CourseQuery) ([]model.Course, error)
}

type filterService struct {
	catalog repository.CatalogRepository
}

func NewFilterService(catalog repository.CatalogRepository) FilterService {
	return &filterService{catalog: catalog}
}

func (s *filterService) Filter(ctx context.Context, query CourseQuery) ([]model.Course, error) {
	courses, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := filterCourses(courses, query)
	sortCourses(matched, query.SortBy)
	return matched, nil
}

// filterCourses is a pure function of (catalog snapshot, query). An empty
// result is valid, never an error.
func filterCourses(courses []model.Course, query CourseQuery) []model.Course {
	out := []model.Course{}
	for i := range courses {
		if matchesQuery(&courses[i], query) {
			out = append(out, courses[i])
		}
	}
	return out
}

func matchesQuery(course *model.Course, query CourseQuery) bool {
	if query.Category != "" && !matchesCategory(course, query.Category) {
		return false
	}
	if query.Level != "" && course.Level != query.Level {
		return false
	}
	if query.FeaturedOnly && !course.Featured {
		return false
	}
	if query.CertificationOnly && !course.Certification.Available {
		return false
	}
	if len(query.Tags) > 0 && !matchesAnyTag(course, query.Tags) {
		return false
	}
	if query.Search != "" && !matchesSearch(course, query.Search) {
		return false
	}
	return true
}

func matchesCategory(course *model.Course, category string) bool {
	want := strings.ToLower(strings.TrimSpace(category))
	if strings.ToLower(course.Category) == want {
		return true
	}
	rule, ok := categoryAliases[want]
	if !ok {
		return false
	}
	return rule.matches(course)
}

func matchesAnyTag(course *model.Course, tags []string) bool {
	for _, want := range tags {
		lower := strings.ToLower(want)
		for _, tag := range course.Tags {
			if strings.Contains(strings.ToLower(tag), lower) {
				return true
			}
		}
	}
	return false
}

func matchesSearch(course *model.Course, term string) bool {
	parts := []string{
		course.Title,
		course.Description,
		course.Category,
		course.Subcategory,
	}
	parts = append(parts, course.Tags...)
	parts = append(parts, course.Prerequisites...)
	parts = append(parts, course.LearningObjectives...)
	haystack := strings.ToLower(strings.Join(parts, " "))
	return strings.Contains(haystack, strings.ToLower(term))
}

// sortCourses orders in place. Unknown keys fall back to title. Sorting is
// stable with a title tiebreak so repeated queries return the same order.
func sortCourses(courses []model.Course, sortBy string) {
	switch sortBy {
	case SortByLevel:
		sort.SliceStable(courses, func(i, j int) bool {
			ri, rj := model.LevelRank(courses[i].Level), model.LevelRank(courses[j].Level)
			if ri != rj {
				return ri < rj
			}
			return courses[i].Title < courses[j].Title
		})
	case SortByDuration:
		sort.SliceStable(courses, func(i, j int) bool {
			di, dj := courses[i].Duration, courses[j].Duration
			if di.Days != dj.Days {
				return di.Days < dj.Days
			}
			if di.Hours != dj.Hours {
				return di.Hours < dj.Hours
			}
			return courses[i].Title < courses[j].Title
		})
	default:
		sort.SliceStable(courses, func(i, j int) bool {
			return courses[i].Title < courses[j].Title
		})
	}
}
