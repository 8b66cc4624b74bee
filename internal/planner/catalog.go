package planner

import (
	"sort"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// CatalogData is the flat, serializable form of the reference data. It is
// what gets cached; Catalog indexes it for lookups.
type CatalogData struct {
	Courses           []domain.Course
	Groups            []domain.PrerequisiteGroup
	Categories        []domain.Category
	Requirements      []domain.DegreeRequirement
	Categorizations   []domain.Categorization
	GradeRequirements []domain.GradeRequirement
}

// Catalog is an indexed, read-only view over CatalogData.
type Catalog struct {
	courses         map[string]*domain.Course
	codes           []string
	groups          map[string][]domain.PrerequisiteGroup
	categories      map[string]domain.Category
	requirements    []domain.DegreeRequirement
	categorizations map[string][]domain.Categorization
	gradeReqs       []domain.GradeRequirement
	dependents      map[string][]string
}

func NewCatalog(data CatalogData) *Catalog {
	c := &Catalog{
		courses:         make(map[string]*domain.Course, len(data.Courses)),
		groups:          make(map[string][]domain.PrerequisiteGroup),
		categories:      make(map[string]domain.Category, len(data.Categories)),
		requirements:    data.Requirements,
		categorizations: make(map[string][]domain.Categorization),
		gradeReqs:       data.GradeRequirements,
		dependents:      make(map[string][]string),
	}
	for i := range data.Courses {
		course := data.Courses[i]
		c.courses[course.Code] = &course
		c.codes = append(c.codes, course.Code)
	}
	sort.Strings(c.codes)

	for _, g := range data.Groups {
		c.groups[g.CourseCode] = append(c.groups[g.CourseCode], g)
	}
	for code := range c.groups {
		gs := c.groups[code]
		sort.SliceStable(gs, func(i, j int) bool {
			if gs[i].SortOrder != gs[j].SortOrder {
				return gs[i].SortOrder < gs[j].SortOrder
			}
			return gs[i].Key < gs[j].Key
		})
		seen := make(map[string]bool)
		for _, g := range gs {
			if !g.Blocking() {
				continue
			}
			for _, pre := range g.Courses {
				if !seen[pre] {
					seen[pre] = true
					c.dependents[pre] = append(c.dependents[pre], code)
				}
			}
		}
	}
	for pre := range c.dependents {
		sort.Strings(c.dependents[pre])
	}

	for _, cat := range data.Categories {
		c.categories[cat.Name] = cat
	}
	for _, row := range data.Categorizations {
		c.categorizations[row.CourseCode] = append(c.categorizations[row.CourseCode], row)
	}
	return c
}

func (c *Catalog) Course(code string) (*domain.Course, bool) {
	course, ok := c.courses[code]
	return course, ok
}

// Codes returns every course code in lexical order.
func (c *Catalog) Codes() []string { return c.codes }

func (c *Catalog) PrerequisiteGroups(code string) []domain.PrerequisiteGroup {
	return c.groups[code]
}

// IsPrerequisite reports whether any course lists code in a blocking group.
func (c *Catalog) IsPrerequisite(code string) bool {
	return len(c.dependents[code]) > 0
}

// Dependents returns courses with a blocking group that names code.
func (c *Catalog) Dependents(code string) []string {
	return c.dependents[code]
}

// Category returns the named category, filling parent and color from
// conventions when the catalog row is missing.
func (c *Catalog) Category(name string) domain.Category {
	cat, ok := c.categories[name]
	if !ok {
		cat = domain.Category{Name: name}
	}
	if cat.Parent == "" {
		cat.Parent = domain.DefaultParent(name)
	}
	if cat.SubcategoryOf == "" {
		cat.SubcategoryOf = domain.DefaultSubcategoryOf(name)
	}
	if cat.Color == "" {
		cat.Color = domain.CategoryColor(name)
	}
	return cat
}

// Requirements returns the degree requirements in force for a major and
// cohort, one per category, ordered by category display order.
func (c *Catalog) Requirements(major string, cohort int) []domain.DegreeRequirement {
	seen := make(map[string]bool)
	var out []domain.DegreeRequirement
	for _, r := range c.requirements {
		if !r.AppliesTo(major, cohort) || seen[r.CategoryName] {
			continue
		}
		seen[r.CategoryName] = true
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := c.Category(out[i].CategoryName), c.Category(out[j].CategoryName)
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.Name < b.Name
	})
	return out
}

// Categorizations returns every categorization row for a course.
func (c *Catalog) Categorizations(code string) []domain.Categorization {
	return c.categorizations[code]
}

// GradeRequirement returns the explicit minimum grade for a course, if any.
func (c *Catalog) GradeRequirement(major, code string, cohort int) (string, bool) {
	for _, g := range c.gradeReqs {
		if g.CourseCode == code && g.AppliesTo(major, cohort) {
			return g.MinimumGrade, true
		}
	}
	return "", false
}

// AllCategorizations returns every categorization row, ordered by course code.
func (c *Catalog) AllCategorizations() []domain.Categorization {
	var out []domain.Categorization
	for _, code := range c.sortedCategorizedCodes() {
		out = append(out, c.categorizations[code]...)
	}
	return out
}

func (c *Catalog) sortedCategorizedCodes() []string {
	codes := make([]string, 0, len(c.categorizations))
	for code := range c.categorizations {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
