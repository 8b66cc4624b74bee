package planner

import (
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimumGrade(t *testing.T) {
	cat := csCatalog()
	p := profileFor("CS")
	policy := DefaultPolicy()

	assert.Equal(t, "D+", MinimumGrade(cat, p, policy, "CS101"), "prerequisite of CS102")
	assert.Equal(t, "D+", MinimumGrade(cat, p, policy, "CS301"), "required major class")
	assert.Equal(t, "D", MinimumGrade(cat, p, policy, "HIST150"))

	withOverride := NewCatalog(CatalogData{
		Courses:           []domain.Course{course("HIST150", 1)},
		GradeRequirements: []domain.GradeRequirement{{MajorCode: "CS", CourseCode: "HIST150", MinimumGrade: "C"}},
	})
	assert.Equal(t, "C", MinimumGrade(withOverride, p, policy, "HIST150"))
	assert.Equal(t, "D", MinimumGrade(withOverride, profileFor("EE"), policy, "HIST150"))
}

func TestGradeMeets(t *testing.T) {
	tests := []struct {
		grade, min string
		want       bool
	}{
		{"A", "D+", true},
		{"D+", "D+", true},
		{"D", "D+", false},
		{"D", "D", true},
		{"P", "C", true},
		{"E", "D", false},
		{"I", "D", false},
		{"", "D", false},
		{"W", "D", false},
		{"c-", "D", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.GradeMeets(tt.grade, tt.min), "%s vs %s", tt.grade, tt.min)
	}
}

func TestEvaluateAttempts_PassAndRetakeFlags(t *testing.T) {
	cat := csCatalog()
	p := profileFor("CS")
	states := EvaluateAttempts([]domain.Attempt{
		completed("CS101", "D", slot(1, domain.TermFall)),
		completed("HIST150", "D", slot(1, domain.TermFall)),
		completed("ECON101", "P", slot(1, domain.TermFall)),
	}, cat, p, DefaultPolicy())
	byCode := LatestByCode(states)

	cs101 := byCode["CS101"]
	require.NotNil(t, cs101)
	assert.False(t, cs101.Passed, "D is below D+ for a prerequisite course")
	assert.True(t, cs101.RetakeNeeded)

	hist := byCode["HIST150"]
	assert.True(t, hist.Passed)
	assert.True(t, hist.VoluntaryRetakePossible)

	econ := byCode["ECON101"]
	assert.True(t, econ.Passed)
	assert.False(t, econ.VoluntaryRetakePossible)
}

func TestEvaluateAttempts_LatestAttemptAndLimit(t *testing.T) {
	cat := csCatalog()
	p := profileFor("CS")
	states := EvaluateAttempts([]domain.Attempt{
		completed("CS101", "A", slot(2, domain.TermFall)),
		completed("CS101", "E", slot(1, domain.TermFall)),
		completed("CS101", "D", slot(1, domain.TermSpring)),
	}, cat, p, DefaultPolicy())

	latestCount := 0
	for _, s := range states {
		assert.Equal(t, 3, s.TotalAttempts)
		assert.True(t, s.RetakeLimitReached)
		if s.IsLatest {
			latestCount++
			assert.Equal(t, slot(2, domain.TermFall), s.Attempt.Slot)
			assert.True(t, s.Passed)
		}
	}
	assert.Equal(t, 1, latestCount, "exactly one latest attempt per course")
	assert.Equal(t, slot(1, domain.TermFall), states[0].Attempt.Slot, "states are ordered by slot")
}

func TestEvaluateAttempts_DroppedIgnored(t *testing.T) {
	cat := csCatalog()
	dropped := completed("CS101", "A", slot(1, domain.TermFall))
	dropped.Status = domain.AttemptDropped
	states := EvaluateAttempts([]domain.Attempt{dropped}, cat, profileFor("CS"), DefaultPolicy())
	assert.Empty(t, states)
}
