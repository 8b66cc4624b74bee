package domain

import "strings"

// Well-known category names.
const (
	CategoryRequiredMajor    = "Required Major Classes"
	CategoryMajorElectives   = "Major Electives"
	CategoryCapstone         = "Capstone"
	CategoryNonMajorElective = "Non-Major Electives"
	CategoryAfricana         = "Africana"
	CategoryFreeElective     = "Free Elective"

	ParentLiberalArtsCore = "LIBERAL ARTS & SCIENCES CORE"
	ParentMajor           = "MAJOR"
)

// CapstoneAppliedProject adds one Major Electives slot.
const CapstoneAppliedProject = "Applied Project"

// Category is a requirement bucket. Parent is the display grouping;
// SubcategoryOf marks a quota nested inside another category, which is
// excluded from overall totals.
type Category struct {
	ID            string
	Name          string
	Parent        string
	SubcategoryOf string
	DisplayOrder  int
	Color         string
}

func (c *Category) IsSub() bool { return c.SubcategoryOf != "" }

var defaultCategoryColors = map[string]string{
	CategoryRequiredMajor:          "#4A90E2",
	CategoryMajorElectives:         "#50E3C2",
	"Humanities & Social Sciences": "#F5A623",
	"Mathematics & Quantitative":   "#7ED321",
	"Business":                     "#D0021B",
	"Computing":                    "#9013FE",
	"Science":                      "#BD10E0",
	CategoryCapstone:               "#8B572A",
	CategoryNonMajorElective:       "#9B9B9B",
	"Research / Project Prep.":     "#417505",
	CategoryAfricana:               "#E67E22",
	CategoryFreeElective:           "#95A5A6",
}

var defaultCategoryParents = map[string]string{
	"Humanities & Social Sciences": ParentLiberalArtsCore,
	"Business":                     ParentLiberalArtsCore,
	"Mathematics & Quantitative":   ParentLiberalArtsCore,
	"Computing":                    ParentLiberalArtsCore,
	"Science":                      ParentLiberalArtsCore,
	"Research / Project Prep.":     ParentLiberalArtsCore,
	CategoryNonMajorElective:       ParentLiberalArtsCore,
	CategoryAfricana:               ParentLiberalArtsCore,
	CategoryFreeElective:           ParentLiberalArtsCore,
	CategoryRequiredMajor:          ParentMajor,
	CategoryMajorElectives:         ParentMajor,
	CategoryCapstone:               ParentMajor,
}

// CategoryColor returns the display color for a category name, grey when unknown.
func CategoryColor(name string) string {
	if c, ok := defaultCategoryColors[name]; ok {
		return c
	}
	return "#9B9B9B"
}

// DefaultParent returns the conventional parent grouping for a category name.
func DefaultParent(name string) string {
	return defaultCategoryParents[name]
}

// DefaultSubcategoryOf names the category that conventionally contains a
// sub-category.
func DefaultSubcategoryOf(name string) string {
	switch name {
	case CategoryAfricana, CategoryFreeElective:
		return CategoryNonMajorElective
	}
	return ""
}

// DegreeRequirement is the per-major quota for one category.
type DegreeRequirement struct {
	ID           string
	MajorCode    string
	CategoryName string
	MinCredits   float64
	MaxCredits   *float64
	MinCourses   int
	MaxCourses   *int
	CohortFrom   *int
	CohortUntil  *int
	// EnforceMax clamps completed work to the minimum when computing
	// progress and caps how many courses the categorizer assigns here.
	EnforceMax bool
	Notes      string
}

func (r *DegreeRequirement) AppliesTo(major string, cohort int) bool {
	return r.MajorCode == major && inCohortRange(cohort, r.CohortFrom, r.CohortUntil)
}

// Categorization declares that a course counts toward a category for a
// major group.
type Categorization struct {
	ID                  string
	CourseCode          string
	CategoryName        string
	MajorGroup          string
	MathTrack           string
	CapstoneOption      string
	IsRequired          bool
	IsFlexible          bool
	RecommendedYear     int
	RecommendedSemester Term
	CohortFrom          *int
	CohortUntil         *int
}

// MatchRank scores how specifically the row targets a major. Lower is better;
// -1 means it does not apply.
func (c *Categorization) MatchRank(major string, engineering bool) int {
	group := strings.ToUpper(c.MajorGroup)
	switch {
	case group == strings.ToUpper(major) && major != "":
		return 0
	case group == MajorGroupEngineering && engineering,
		group == MajorGroupNonEngineering && !engineering:
		return 1
	case group == MajorGroupAll || group == "":
		return 2
	}
	return -1
}

func (c *Categorization) AppliesToCohort(cohort int) bool {
	return inCohortRange(cohort, c.CohortFrom, c.CohortUntil)
}

// GradeRequirement overrides the minimum passing grade for a course within a major.
type GradeRequirement struct {
	ID           string
	MajorCode    string
	CourseCode   string
	MinimumGrade string
	CohortFrom   *int
	CohortUntil  *int
}

func (g *GradeRequirement) AppliesTo(major string, cohort int) bool {
	return g.MajorCode == major && inCohortRange(cohort, g.CohortFrom, g.CohortUntil)
}
