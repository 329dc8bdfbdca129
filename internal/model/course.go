package model

// Duration describes how long a course runs. Either Days or Hours must be
// set; day-based courses also carry the total contact hours.
type Duration struct {
	Days  int `json:"days" yaml:"days"`
	Hours int `json:"hours" yaml:"hours"`
}

// Money is a whole-unit price in an ISO currency.
type Money struct {
	Amount   float64 `json:"amount" yaml:"amount"`
	Currency string  `json:"currency" yaml:"currency"`
}

// Certification describes the exam a course prepares for.
type Certification struct {
	Available bool   `json:"available" yaml:"available"`
	Name      string `json:"name,omitempty" yaml:"name"`
	ExamCode  string `json:"examCode,omitempty" yaml:"examCode"`
}

// Course is one trainable offering from the catalog.
type Course struct {
	Slug               string        `json:"slug"`
	Code               string        `json:"code,omitempty"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Category           string        `json:"category"`
	Subcategory        string        `json:"subcategory,omitempty"`
	Level              string        `json:"level"`
	Duration           Duration      `json:"duration"`
	BasePrice          Money         `json:"basePrice"`
	Prerequisites      []string      `json:"prerequisites"`
	LearningObjectives []string      `json:"learningObjectives"`
	Tags               []string      `json:"tags"`
	Featured           bool          `json:"featured"`
	Certification      Certification `json:"certification"`
}

// Course levels in rank order.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// LevelRank returns the sort rank for a course level. Unknown levels rank
// before Beginner so they surface first when sorting.
func LevelRank(level string) int {
	switch level {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	default:
		return 0
	}
}

// ServicePackage is a fixed consulting/managed-services offering.
type ServicePackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       Money    `json:"pricing"`
	Unit        string   `json:"unit"`
	MinHours    int      `json:"minHours,omitempty"`
	Savings     string   `json:"savings,omitempty"`
	Includes    []string `json:"includes,omitempty"`
}
