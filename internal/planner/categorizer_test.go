package planner

import (
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func electiveCatalog(freeElectiveQuota int) *Catalog {
	data := CatalogData{
		Courses: []domain.Course{
			{Code: "HIST201", Title: "History of Ghana", Credits: 1, Active: true},
			{Code: "POL210", Title: "African Politics", Credits: 1, Active: true},
			{Code: "ART101", Title: "Drawing", Credits: 1, Active: true},
			{Code: "MUS101", Title: "Music", Credits: 1, Active: true},
			{Code: "PHIL101", Title: "Ethics", Credits: 1, Active: true},
			{Code: "CS101", Title: "Programming", Credits: 1, Active: true},
		},
		Categories: []domain.Category{
			{Name: domain.CategoryRequiredMajor, Parent: domain.ParentMajor},
			{Name: domain.CategoryNonMajorElective, Parent: domain.ParentLiberalArtsCore},
			{Name: domain.CategoryAfricana, Parent: domain.ParentLiberalArtsCore, SubcategoryOf: domain.CategoryNonMajorElective},
			{Name: domain.CategoryFreeElective, Parent: domain.ParentLiberalArtsCore, SubcategoryOf: domain.CategoryNonMajorElective},
		},
		Requirements: []domain.DegreeRequirement{
			requirement("MIS", domain.CategoryRequiredMajor, 1, 1),
			requirement("MIS", domain.CategoryNonMajorElective, 2, 2),
			requirement("MIS", domain.CategoryAfricana, 1, 1),
		},
		Categorizations: []domain.Categorization{
			required("CS101", domain.CategoryRequiredMajor, 1, domain.TermFall),
			elective("HIST201", domain.CategoryNonMajorElective),
			elective("POL210", domain.CategoryNonMajorElective),
			elective("ART101", domain.CategoryNonMajorElective),
			elective("MUS101", domain.CategoryNonMajorElective),
			elective("PHIL101", domain.CategoryNonMajorElective),
		},
	}
	if freeElectiveQuota > 0 {
		fe := requirement("MIS", domain.CategoryFreeElective, float64(freeElectiveQuota), freeElectiveQuota)
		fe.EnforceMax = true
		data.Requirements = append(data.Requirements, fe)
	}
	return NewCatalog(data)
}

func categoryOf(t *testing.T, out []CategorizedAttempt, code string) string {
	t.Helper()
	for _, a := range out {
		if a.Attempt.CourseCode == code {
			return a.Category
		}
	}
	require.Failf(t, "missing attempt", "no attempt for %s", code)
	return ""
}

func TestCategorize_AfricanaTakesEarliestOnly(t *testing.T) {
	cat := electiveCatalog(0)
	p := profileFor("MIS")
	policy := DefaultPolicy()
	states := EvaluateAttempts([]domain.Attempt{
		completed("POL210", "B", slot(2, domain.TermFall)),
		completed("HIST201", "B", slot(1, domain.TermSpring)),
	}, cat, p, policy)

	out := Categorize(states, cat, p, policy)

	assert.Equal(t, domain.CategoryAfricana, categoryOf(t, out, "HIST201"))
	assert.Equal(t, domain.CategoryNonMajorElective, categoryOf(t, out, "POL210"))
}

func TestCategorize_CappedSubcategoryTakesOverflowUpToQuota(t *testing.T) {
	cat := electiveCatalog(1)
	p := profileFor("MIS")
	policy := DefaultPolicy()
	states := EvaluateAttempts([]domain.Attempt{
		completed("CS101", "A", slot(1, domain.TermFall)),
		completed("ART101", "A", slot(1, domain.TermFall)),
		completed("MUS101", "A", slot(1, domain.TermSpring)),
		completed("PHIL101", "A", slot(2, domain.TermFall)),
		completed("HIST201", "A", slot(2, domain.TermSpring)),
	}, cat, p, policy)

	out := Categorize(states, cat, p, policy)

	assert.Equal(t, domain.CategoryRequiredMajor, categoryOf(t, out, "CS101"))
	assert.Equal(t, domain.CategoryNonMajorElective, categoryOf(t, out, "ART101"))
	assert.Equal(t, domain.CategoryNonMajorElective, categoryOf(t, out, "MUS101"))
	assert.Equal(t, domain.CategoryFreeElective, categoryOf(t, out, "PHIL101"), "first overflow fills the free elective")
	assert.Equal(t, domain.CategoryAfricana, categoryOf(t, out, "HIST201"), "africana outranks everything")
}

func TestCategorize_FailedAttemptsDoNotConsumeQuota(t *testing.T) {
	cat := electiveCatalog(0)
	p := profileFor("MIS")
	policy := DefaultPolicy()
	states := EvaluateAttempts([]domain.Attempt{
		completed("HIST201", "E", slot(1, domain.TermFall)),
		completed("POL210", "B", slot(1, domain.TermSpring)),
	}, cat, p, policy)

	out := Categorize(states, cat, p, policy)

	assert.Equal(t, domain.CategoryNonMajorElective, categoryOf(t, out, "HIST201"))
	assert.Equal(t, domain.CategoryAfricana, categoryOf(t, out, "POL210"))
}

func TestCategorize_DeterministicAndIdempotent(t *testing.T) {
	cat := electiveCatalog(1)
	p := profileFor("MIS")
	policy := DefaultPolicy()
	attempts := []domain.Attempt{
		completed("PHIL101", "A", slot(1, domain.TermFall)),
		completed("ART101", "A", slot(1, domain.TermFall)),
		completed("MUS101", "A", slot(1, domain.TermFall)),
		completed("POL210", "A", slot(1, domain.TermFall)),
	}
	first := Categorize(EvaluateAttempts(attempts, cat, p, policy), cat, p, policy)

	reversed := make([]domain.Attempt, len(attempts))
	for i, a := range attempts {
		reversed[len(attempts)-1-i] = a
	}
	for i := 0; i < 5; i++ {
		again := Categorize(EvaluateAttempts(reversed, cat, p, policy), cat, p, policy)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Attempt.ID, again[j].Attempt.ID)
			assert.Equal(t, first[j].Category, again[j].Category)
		}
	}
}

func TestCategorize_UncategorizedCourseDefaultsToNonMajor(t *testing.T) {
	cat := NewCatalog(CatalogData{Courses: []domain.Course{course("XYZ100", 1)}})
	p := profileFor("CS")
	states := EvaluateAttempts([]domain.Attempt{completed("XYZ100", "A", slot(1, domain.TermFall))}, cat, p, DefaultPolicy())

	out := Categorize(states, cat, p, DefaultPolicy())
	require.Len(t, out, 1)
	assert.Equal(t, domain.CategoryNonMajorElective, out[0].Category)
	assert.Equal(t, domain.ParentLiberalArtsCore, out[0].Parent)
}

func TestBestCategorization_PrefersExactMajor(t *testing.T) {
	cat := NewCatalog(CatalogData{
		Courses: []domain.Course{course("M1", 1)},
		Categorizations: []domain.Categorization{
			{CourseCode: "M1", CategoryName: "Science", MajorGroup: "ALL"},
			{CourseCode: "M1", CategoryName: "Mathematics & Quantitative", MajorGroup: "ENG"},
			{CourseCode: "M1", CategoryName: domain.CategoryRequiredMajor, MajorGroup: "EE", IsRequired: true},
		},
	})
	policy := DefaultPolicy()

	row, ok := BestCategorization(cat, profileFor("EE"), policy, "M1")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryRequiredMajor, row.CategoryName)

	row, _ = BestCategorization(cat, profileFor("ME"), policy, "M1")
	assert.Equal(t, "Mathematics & Quantitative", row.CategoryName)

	row, _ = BestCategorization(cat, profileFor("CS"), policy, "M1")
	assert.Equal(t, "Science", row.CategoryName)
}

func TestCategorize_MajorElectiveOverflowStaysInMajor(t *testing.T) {
	data := CatalogData{
		Courses: []domain.Course{
			{Code: "MIS301", Title: "Systems Analysis", Credits: 1, Active: true},
			{Code: "MIS302", Title: "Database Design", Credits: 1, Active: true},
		},
		Categories: []domain.Category{
			{Name: domain.CategoryMajorElectives, Parent: domain.ParentMajor},
			{Name: domain.CategoryNonMajorElective, Parent: domain.ParentLiberalArtsCore},
			{Name: domain.CategoryFreeElective, Parent: domain.ParentLiberalArtsCore, SubcategoryOf: domain.CategoryNonMajorElective},
		},
		Requirements: []domain.DegreeRequirement{
			requirement("MIS", domain.CategoryMajorElectives, 1, 1),
			requirement("MIS", domain.CategoryNonMajorElective, 2, 2),
		},
		Categorizations: []domain.Categorization{
			elective("MIS301", domain.CategoryMajorElectives),
			elective("MIS302", domain.CategoryMajorElectives),
		},
	}
	fe := requirement("MIS", domain.CategoryFreeElective, 1, 1)
	fe.EnforceMax = true
	data.Requirements = append(data.Requirements, fe)
	cat := NewCatalog(data)
	p := profileFor("MIS")
	policy := DefaultPolicy()

	states := EvaluateAttempts([]domain.Attempt{
		completed("MIS301", "A", slot(1, domain.TermFall)),
		completed("MIS302", "A", slot(1, domain.TermSpring)),
	}, cat, p, policy)
	out := Categorize(states, cat, p, policy)

	assert.Equal(t, domain.CategoryMajorElectives, categoryOf(t, out, "MIS301"))
	assert.Equal(t, domain.CategoryMajorElectives, categoryOf(t, out, "MIS302"))

	progress, _ := ComputeProgress(EffectiveRequirements(cat, p), out, cat)
	for _, pr := range progress {
		switch pr.Category {
		case domain.CategoryFreeElective, domain.CategoryNonMajorElective:
			assert.Zero(t, pr.CoursesCompleted, pr.Category)
		}
	}
}
