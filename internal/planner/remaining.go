package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

type RequirementKind string

const (
	KindRetake   RequirementKind = "retake"
	KindRequired RequirementKind = "required"
	KindElective RequirementKind = "elective"
)

// Priority orders kinds for placement: retakes, then required courses,
// then elective slots.
func (k RequirementKind) Priority() int {
	switch k {
	case KindRetake:
		return 0
	case KindRequired:
		return 1
	default:
		return 2
	}
}

// RemainingItem is one outstanding piece of work toward the degree.
type RemainingItem struct {
	Kind                RequirementKind `json:"kind"`
	CourseCode          string          `json:"courseCode,omitempty"`
	Title               string          `json:"title"`
	Credits             float64         `json:"credits"`
	Category            string          `json:"category"`
	RecommendedYear     int             `json:"recommendedYear,omitempty"`
	RecommendedSemester domain.Term     `json:"recommendedSemester,omitempty"`
}

func (r RemainingItem) IsPlaceholder() bool { return r.CourseCode == "" }

// Label is the course code or the placeholder title.
func (r RemainingItem) Label() string {
	return domain.CoalesceStr(r.CourseCode, r.Title)
}

// RecommendedSlot returns the recommended slot, if one is declared.
func (r RemainingItem) RecommendedSlot() (domain.SemesterSlot, bool) {
	if r.RecommendedYear <= 0 || !r.RecommendedSemester.Valid() {
		return domain.SemesterSlot{}, false
	}
	return domain.NewSlot(r.RecommendedYear, r.RecommendedSemester), true
}

// RequiredCourses returns the student's required categorization rows keyed
// by course code.
func RequiredCourses(cat *Catalog, profile *domain.StudentProfile, policy Policy) map[string]domain.Categorization {
	out := make(map[string]domain.Categorization)
	for _, code := range cat.Codes() {
		row, ok := BestCategorization(cat, profile, policy, code)
		if ok && row.IsRequired {
			out[code] = row
		}
	}
	return out
}

// RemainingRequirements lists outstanding retakes, required courses that
// have never been attempted, and elective slots for unmet category quotas.
func RemainingRequirements(attempts []CategorizedAttempt, progress []domain.CategoryProgress, cat *Catalog, profile *domain.StudentProfile, policy Policy) []RemainingItem {
	required := RequiredCourses(cat, profile, policy)
	latest := make(map[string]*CategorizedAttempt)
	for i := range attempts {
		a := &attempts[i]
		if a.IsLatest && !a.Attempt.IsPlaceholder() {
			latest[a.Attempt.CourseCode] = a
		}
	}

	var items []RemainingItem
	outstanding := make(map[string]int)
	for code, row := range required {
		course, ok := cat.Course(code)
		if !ok {
			continue
		}
		item := RemainingItem{
			CourseCode:          code,
			Title:               course.Title,
			Credits:             course.Credits,
			Category:            row.CategoryName,
			RecommendedYear:     row.RecommendedYear,
			RecommendedSemester: row.RecommendedSemester,
		}
		a, attempted := latest[code]
		switch {
		case !attempted:
			item.Kind = KindRequired
		case a.RetakeNeeded && !a.Passed:
			item.Kind = KindRetake
		default:
			continue
		}
		items = append(items, item)
		outstanding[row.CategoryName]++
	}

	for _, p := range progress {
		slots := p.CoursesRemaining
		if p.CoursesRequired == 0 && p.CreditsRemaining > 0 {
			slots = int(math.Ceil(p.CreditsRemaining / policy.ElectiveSlotCredits))
		}
		slots -= outstanding[p.Category]
		slots -= subcategorySlots(progress, p.Category)
		for i := 0; i < slots; i++ {
			items = append(items, RemainingItem{
				Kind:     KindElective,
				Title:    fmt.Sprintf("%s %d", p.Category, p.CoursesCompleted+i+1),
				Credits:  policy.ElectiveSlotCredits,
				Category: p.Category,
			})
		}
	}

	SortRemaining(items)
	return items
}

// subcategorySlots counts slots already reserved by sub-categories of parent.
func subcategorySlots(progress []domain.CategoryProgress, parent string) int {
	n := 0
	for _, p := range progress {
		if p.SubcategoryOf == parent {
			n += p.CoursesRemaining
		}
	}
	return n
}

// SortRemaining orders items by kind priority, recommended year and
// semester (unset last), then code or title.
func SortRemaining(items []RemainingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if pa, pb := a.Kind.Priority(), b.Kind.Priority(); pa != pb {
			return pa < pb
		}
		if ya, yb := yearOrLast(a.RecommendedYear), yearOrLast(b.RecommendedYear); ya != yb {
			return ya < yb
		}
		if sa, sb := yearOrLast(int(a.RecommendedSemester)), yearOrLast(int(b.RecommendedSemester)); sa != sb {
			return sa < sb
		}
		if a.CourseCode != b.CourseCode {
			return a.CourseCode < b.CourseCode
		}
		return a.Title < b.Title
	})
}

func yearOrLast(v int) int {
	if v <= 0 {
		return math.MaxInt32
	}
	return v
}
