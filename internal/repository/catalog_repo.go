package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/cache"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/model"
)

// CatalogRepository provides read access to the course and service-package
// collections. Reads are pure; content changes on disk become visible once
// the snapshot cache expires or is invalidated.
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]model.Course, error)
	// GetBySlug retrieves a course by slug, case-insensitively.
	GetBySlug(ctx context.Context, slug string) (*model.Course, error)
	GetServices(ctx context.Context) ([]model.ServicePackage, error)
	GetServiceByID(ctx context.Context, id string) (*model.ServicePackage, error)
	// CategoryCounts returns the number of courses per category.
	CategoryCounts(ctx context.Context) (map[string]int, error)
	// Invalidate drops the cached snapshot so the next read reloads from disk.
	Invalidate()
}

// fallbackPrices covers courses whose markdown omits a price.
var fallbackPrices = map[string]float64{
	"azure-fundamentals":           495,
	"azure-administrator":          1995,
	"azure-developer":              2495,
	"azure-solutions-architect":    2295,
	"azure-devops-engineer":        2495,
	"azure-security-engineer":      2295,
	"azure-ai-engineer":            2295,
	"azure-ai-fundamentals":        895,
	"microsoft-365-fundamentals":   495,
	"power-platform-fundamentals":  795,
	"power-platform-automation":    1395,
	"teams-advanced-administration": 1295,
}

// frontmatter mirrors the YAML header of a course markdown file.
type frontmatter struct {
	Title              string              `yaml:"title"`
	Code               string              `yaml:"code"`
	Description        string              `yaml:"description"`
	Category           string              `yaml:"category"`
	Subcategory        string              `yaml:"subcategory"`
	Level              string              `yaml:"level"`
	Duration           model.Duration      `yaml:"duration"`
	Price              *model.Money        `yaml:"price"`
	Prerequisites      []string            `yaml:"prerequisites"`
	LearningObjectives []string            `yaml:"learningObjectives"`
	Tags               []string            `yaml:"tags"`
	Featured           bool                `yaml:"featured"`
	Certification      model.Certification `yaml:"certification"`
}

type catalogRepo struct {
	dir          string
	defaultPrice float64
	logger       zerolog.Logger
	snapshot     *cache.TTL[[]model.Course]
}

// NewCatalogRepo creates a markdown-backed CatalogRepository. The snapshot is
// cached for ttl; clock is injectable for tests.
func NewCatalogRepo(dir string, defaultPrice float64, ttl time.Duration, clock cache.Clock, logger zerolog.Logger) CatalogRepository {
	return &catalogRepo{
		dir:          dir,
		defaultPrice: defaultPrice,
		logger:       logger.With().Str("repo", "catalog").Logger(),
		snapshot:     cache.NewTTL[[]model.Course](ttl, clock),
	}
}

func (r *catalogRepo) GetAll(ctx context.Context) ([]model.Course, error) {
	return r.snapshot.Get(r.load)
}

func (r *catalogRepo) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	courses, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(slug))
	for i := range courses {
		if courses[i].Slug == want {
			c := courses[i]
			return &c, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "Course %s not found", slug)
}

func (r *catalogRepo) GetServices(ctx context.Context) ([]model.ServicePackage, error) {
	out := make([]model.ServicePackage, len(servicePackages))
	copy(out, servicePackages)
	return out, nil
}

func (r *catalogRepo) GetServiceByID(ctx context.Context, id string) (*model.ServicePackage, error) {
	for i := range servicePackages {
		if servicePackages[i].ID == id {
			s := servicePackages[i]
			return &s, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "Service %s not found", id)
}

func (r *catalogRepo) CategoryCounts(ctx context.Context) (map[string]int, error) {
	courses, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, c := range courses {
		counts[c.Category]++
	}
	return counts, nil
}

func (r *catalogRepo) Invalidate() {
	r.snapshot.Invalidate()
}

// load reads every .md file in the catalog directory. ReadDir returns names
// sorted, so the snapshot order is stable across reloads. A file that fails
// to parse is logged and skipped, never fatal.
func (r *catalogRepo) load() ([]model.Course, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", r.dir, err)
	}

	var courses []model.Course
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		course, err := r.parseFile(path)
		if err != nil {
			r.logger.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping unparsable course file")
			continue
		}
		if seen[course.Slug] {
			r.logger.Warn().Str("slug", course.Slug).Msg("Duplicate course slug, keeping first")
			continue
		}
		seen[course.Slug] = true
		courses = append(courses, *course)
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func (r *catalogRepo) parseFile(path string) (*model.Course, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fmRaw, err := splitFrontmatter(string(raw))
	if err != nil {
		return nil, err
	}
	var fm frontmatter
	if err := yaml.Unmarshal([]byte(fmRaw), &fm); err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}

	slug := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ".md"))

	course := &model.Course{
		Slug:               slug,
		Code:               fm.Code,
		Title:              fm.Title,
		Description:        fm.Description,
		Category:           fm.Category,
		Subcategory:        fm.Subcategory,
		Level:              fm.Level,
		Duration:           fm.Duration,
		Prerequisites:      fm.Prerequisites,
		LearningObjectives: fm.LearningObjectives,
		Tags:               fm.Tags,
		Featured:           fm.Featured,
		Certification:      fm.Certification,
	}
	if course.Title == "" {
		course.Title = titleFromSlug(slug)
	}
	if course.Category == "" {
		course.Category = "Azure"
	}
	if course.Level == "" {
		course.Level = model.LevelIntermediate
	}
	if fm.Price != nil {
		course.BasePrice = *fm.Price
	} else if p, ok := fallbackPrices[slug]; ok {
		course.BasePrice = model.Money{Amount: p, Currency: "EUR"}
	} else {
		course.BasePrice = model.Money{Amount: r.defaultPrice, Currency: "EUR"}
	}
	if course.BasePrice.Currency == "" {
		course.BasePrice.Currency = "EUR"
	}

	if course.BasePrice.Amount < 0 {
		return nil, fmt.Errorf("negative price %v", course.BasePrice.Amount)
	}
	if course.Duration.Days <= 0 && course.Duration.Hours <= 0 {
		return nil, fmt.Errorf("duration missing: days and hours both zero")
	}
	return course, nil
}

// splitFrontmatter extracts the YAML block between the leading "---" fences.
func splitFrontmatter(content string) (string, error) {
	trimmed := strings.TrimLeft(content, "\uFEFF\n\r ")
	if !strings.HasPrefix(trimmed, "---") {
		return "", fmt.Errorf("missing frontmatter fence")
	}
	rest := trimmed[3:]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", fmt.Errorf("unterminated frontmatter fence")
	}
	return rest[:idx], nil
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
