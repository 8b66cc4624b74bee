package planner

import (
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remainingFor(cat *Catalog, p *domain.StudentProfile, attempts []domain.Attempt) []RemainingItem {
	policy := DefaultPolicy()
	categorized := Categorize(EvaluateAttempts(attempts, cat, p, policy), cat, p, policy)
	progress, _ := ComputeProgress(EffectiveRequirements(cat, p), categorized, cat)
	return RemainingRequirements(categorized, progress, cat, p, policy)
}

func labels(items []RemainingItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label()
	}
	return out
}

func TestRemainingRequirements_FreshStudent(t *testing.T) {
	items := remainingFor(csCatalog(), profileFor("CS"), nil)

	assert.Equal(t, []string{
		"CS101", "MATH101", "CS102", "CS201", "CS210", "CS301",
		"Non-Major Electives 1", "Non-Major Electives 2",
	}, labels(items))
	assert.Equal(t, KindElective, items[len(items)-1].Kind)
	assert.InDelta(t, 1.0, items[len(items)-1].Credits, 0.001)
}

func TestRemainingRequirements_RetakeFirstAndPassedExcluded(t *testing.T) {
	items := remainingFor(csCatalog(), profileFor("CS"), []domain.Attempt{
		completed("CS101", "D", slot(1, domain.TermFall)),
		completed("MATH101", "B", slot(1, domain.TermFall)),
		completed("HIST150", "B", slot(1, domain.TermFall)),
	})

	require.NotEmpty(t, items)
	assert.Equal(t, KindRetake, items[0].Kind)
	assert.Equal(t, "CS101", items[0].CourseCode)
	assert.NotContains(t, labels(items), "MATH101")
	assert.Contains(t, labels(items), "Non-Major Electives 2")
	assert.NotContains(t, labels(items), "Non-Major Electives 1")
}

func TestRemainingRequirements_PlannedCourseNotOutstanding(t *testing.T) {
	items := remainingFor(csCatalog(), profileFor("CS"), []domain.Attempt{
		planned("CS101", slot(1, domain.TermFall)),
	})
	assert.NotContains(t, labels(items), "CS101")
}

func TestRemainingRequirements_AppliedProjectAddsMajorElective(t *testing.T) {
	cat := NewCatalog(CatalogData{
		Requirements: []domain.DegreeRequirement{requirement("CS", domain.CategoryMajorElectives, 2, 2)},
	})
	p := profileFor("CS")
	assert.Len(t, remainingFor(cat, p, nil), 2)

	p.CapstoneOption = domain.CapstoneAppliedProject
	assert.Len(t, remainingFor(cat, p, nil), 3)
}

func TestRemainingRequirements_SubcategorySlotsReservedFromParent(t *testing.T) {
	cat := electiveCatalog(1)
	items := remainingFor(cat, profileFor("MIS"), []domain.Attempt{
		completed("CS101", "A", slot(1, domain.TermFall)),
	})

	// NME needs 2; Africana (1) and Free Elective (1) reserve both.
	assert.ElementsMatch(t, []string{"Africana 1", "Free Elective 1"}, labels(items))
}
