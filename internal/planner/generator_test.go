package planner

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateFor(cat *Catalog, p *domain.StudentProfile, attempts []domain.Attempt, mutate func(*GenerateInput)) GenerateResult {
	policy := DefaultPolicy()
	in := GenerateInput{
		Profile:        p,
		Catalog:        cat,
		Policy:         policy,
		States:         EvaluateAttempts(attempts, cat, p, policy),
		Remaining:      remainingFor(cat, p, attempts),
		Start:          p.CurrentSlot(),
		BalanceCredits: true,
	}
	if mutate != nil {
		mutate(&in)
	}
	return GeneratePlan(in)
}

func placedAt(res GenerateResult) map[string]domain.SemesterSlot {
	out := make(map[string]domain.SemesterSlot)
	for _, p := range res.Placements {
		out[p.Item.Label()] = p.Slot
	}
	return out
}

func TestGeneratePlan_FreshComputerScienceStudent(t *testing.T) {
	res := generateFor(csCatalog(), profileFor("CS"), nil, nil)

	require.Empty(t, res.Unplaced)
	at := placedAt(res)
	assert.Equal(t, slot(1, domain.TermFall), at["CS101"])
	assert.Equal(t, slot(1, domain.TermFall), at["MATH101"])
	assert.Equal(t, slot(1, domain.TermSpring), at["CS102"])
	assert.Equal(t, slot(2, domain.TermFall), at["CS201"])
	assert.Equal(t, slot(2, domain.TermSpring), at["CS210"])
	assert.Equal(t, slot(3, domain.TermSpring), at["CS301"])
	assert.Equal(t, slot(2, domain.TermFall), at["Non-Major Electives 1"])
	assert.Equal(t, slot(2, domain.TermFall), at["Non-Major Electives 2"])

	sum := Summarize(res, profileFor("CS"), DefaultPolicy())
	assert.Equal(t, 8, sum.PlacedCount)
	assert.Equal(t, 6, sum.Required)
	assert.Equal(t, 2, sum.Electives)
	assert.Len(t, sum.Semesters, 5)
	assert.Equal(t,
		"Successfully added 8 courses to your plan across 5 semesters. Added 2 elective placeholders to fill category requirements.",
		sum.Message)
}

func TestGeneratePlan_StartsFromCurrentSemester(t *testing.T) {
	p := profileFor("CS")
	p.CurrentYear, p.CurrentTerm = 2, domain.TermSpring
	attempts := []domain.Attempt{
		completed("CS101", "B", slot(1, domain.TermFall)),
		completed("MATH101", "B", slot(1, domain.TermFall)),
		completed("CS102", "B", slot(1, domain.TermSpring)),
	}
	res := generateFor(csCatalog(), p, attempts, nil)

	for _, pl := range res.Placements {
		assert.False(t, pl.Slot.Before(p.CurrentSlot()), "%s placed at %s", pl.Item.Label(), pl.Slot)
	}
	at := placedAt(res)
	assert.Equal(t, slot(2, domain.TermSpring), at["CS210"])
	assert.Equal(t, slot(3, domain.TermFall), at["CS201"], "CS201 is fall-only")
	assert.Equal(t, slot(3, domain.TermSpring), at["CS301"])
}

// loadCatalog has a failed 4-credit required course and six 2-credit
// required courses without prerequisites.
func loadCatalog() (*Catalog, []domain.Attempt) {
	data := CatalogData{
		Courses:      []domain.Course{course("X400", 4)},
		Requirements: []domain.DegreeRequirement{requirement("CS", domain.CategoryRequiredMajor, 16, 7)},
		Categorizations: []domain.Categorization{
			required("X400", domain.CategoryRequiredMajor, 0, 0),
		},
	}
	for i := 1; i <= 6; i++ {
		code := fmt.Sprintf("R%d", i)
		data.Courses = append(data.Courses, course(code, 2))
		data.Categorizations = append(data.Categorizations, required(code, domain.CategoryRequiredMajor, 0, 0))
	}
	return NewCatalog(data), []domain.Attempt{completed("X400", "E", slot(1, domain.TermFall))}
}

func TestGeneratePlan_RespectsCreditCeilingExceptRetakes(t *testing.T) {
	cat, attempts := loadCatalog()
	p := profileFor("CS")
	p.CurrentTerm = domain.TermSpring
	res := generateFor(cat, p, attempts, nil)

	require.Empty(t, res.Unplaced)
	assert.Equal(t, slot(1, domain.TermSpring), placedAt(res)["X400"])

	retakes := res.RetakeSlots()
	limit := DefaultPolicy().CreditLimit("CS", slot(1, domain.TermFall))
	for key, load := range res.Loads {
		if retakes[key] {
			continue
		}
		assert.LessOrEqual(t, load, limit, "slot %d over limit", key)
	}
	for code, at := range placedAt(res) {
		if code != "X400" {
			assert.True(t, at.After(slot(1, domain.TermSpring)), "%s should follow the retake semester", code)
		}
	}
}

func TestGeneratePlan_WithoutBalancingStacksSemester(t *testing.T) {
	cat, attempts := loadCatalog()
	p := profileFor("CS")
	p.CurrentTerm = domain.TermSpring
	res := generateFor(cat, p, attempts, func(in *GenerateInput) { in.BalanceCredits = false })

	at := placedAt(res)
	for i := 1; i <= 6; i++ {
		assert.Equal(t, slot(2, domain.TermFall), at[fmt.Sprintf("R%d", i)])
	}
	assert.InDelta(t, 12.0, res.Loads[slot(2, domain.TermFall).Key()], 0.001)
}

func TestGeneratePlan_Deterministic(t *testing.T) {
	first := generateFor(csCatalog(), profileFor("CS"), nil, nil)
	second := generateFor(csCatalog(), profileFor("CS"), nil, nil)
	assert.Equal(t, first, second)
}

func TestGeneratePlan_SummerOnlyCourses(t *testing.T) {
	cat := NewCatalog(CatalogData{
		Courses: []domain.Course{
			course("FIELD101", 1, domain.TermSummer),
			course("FIELD300", 3, domain.TermSummer),
		},
		Requirements: []domain.DegreeRequirement{requirement("CS", domain.CategoryRequiredMajor, 4, 2)},
		Categorizations: []domain.Categorization{
			required("FIELD101", domain.CategoryRequiredMajor, 0, 0),
			required("FIELD300", domain.CategoryRequiredMajor, 0, 0),
		},
	})
	res := generateFor(cat, profileFor("CS"), nil, nil)

	assert.Equal(t, slot(1, domain.TermSummer), placedAt(res)["FIELD101"])
	require.Len(t, res.Unplaced, 1)
	assert.Equal(t, "FIELD300", res.Unplaced[0].Item.CourseCode)
	assert.Equal(t, fmt.Sprintf(ReasonNoSemester, 8), res.Unplaced[0].Reason)
}

func TestGeneratePlan_MaxPlacementAttempts(t *testing.T) {
	cat := NewCatalog(CatalogData{
		Courses: []domain.Course{course("LOCKED", 1)},
		Groups:  []domain.PrerequisiteGroup{group("LOCKED", "L-1", domain.LogicAll, domain.LogicAny, "NEVER")},
		Requirements: []domain.DegreeRequirement{
			requirement("CS", domain.CategoryRequiredMajor, 1, 1),
		},
		Categorizations: []domain.Categorization{required("LOCKED", domain.CategoryRequiredMajor, 0, 0)},
	})
	res := generateFor(cat, profileFor("CS"), nil, func(in *GenerateInput) { in.Policy.MaxPlacementAttempts = 3 })

	require.Len(t, res.Unplaced, 1)
	assert.Equal(t, ReasonMaxAttempts, res.Unplaced[0].Reason)
	assert.Contains(t, Summarize(res, profileFor("CS"), DefaultPolicy()).Message, "1 required course could not be placed.")
}

func TestGeneratePlan_ResolverFailureLeavesItemsUnplaced(t *testing.T) {
	errMapping := errors.New("academic semester missing")
	res := generateFor(csCatalog(), profileFor("CS"), nil, func(in *GenerateInput) {
		in.ResolveSlot = func(s domain.SemesterSlot) error {
			if s.Year >= 2 {
				return errMapping
			}
			return nil
		}
	})

	at := placedAt(res)
	assert.Contains(t, at, "CS101")
	assert.Contains(t, at, "CS102")
	assert.NotContains(t, at, "CS201")
	reasons := make(map[string]string)
	for _, u := range res.Unplaced {
		reasons[u.Item.Label()] = u.Reason
	}
	assert.Contains(t, reasons["CS201"], "academic semester missing")
	assert.Contains(t, reasons["Non-Major Electives 1"], "academic semester missing")
}

func TestGeneratePlan_CycleIsReported(t *testing.T) {
	cat := NewCatalog(CatalogData{
		Courses: []domain.Course{course("A", 1), course("B", 1)},
		Groups: []domain.PrerequisiteGroup{
			group("A", "A-1", domain.LogicAll, domain.LogicAny, "B"),
			group("B", "B-1", domain.LogicAll, domain.LogicAny, "A"),
		},
		Requirements: []domain.DegreeRequirement{requirement("CS", domain.CategoryRequiredMajor, 2, 2)},
		Categorizations: []domain.Categorization{
			required("A", domain.CategoryRequiredMajor, 0, 0),
			required("B", domain.CategoryRequiredMajor, 0, 0),
		},
	})
	res := generateFor(cat, profileFor("CS"), nil, nil)

	assert.NotEmpty(t, res.Cycles)
	assert.Len(t, res.Unplaced, 2, "neither course can satisfy the other")
}

// Every placed course must have its prerequisites satisfied by passed
// courses or courses placed strictly earlier.
func TestGeneratePlan_PrerequisiteOrderProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	terms := [][]domain.Term{nil, {domain.TermFall}, {domain.TermSpring}, {domain.TermFall, domain.TermSpring}}

	for round := 0; round < 25; round++ {
		n := 4 + rng.Intn(8)
		data := CatalogData{
			Requirements: []domain.DegreeRequirement{requirement("CS", domain.CategoryRequiredMajor, float64(n), n)},
		}
		for i := 0; i < n; i++ {
			code := fmt.Sprintf("C%02d", i)
			data.Courses = append(data.Courses, course(code, 1, terms[rng.Intn(len(terms))]...))
			data.Categorizations = append(data.Categorizations, required(code, domain.CategoryRequiredMajor, 1+rng.Intn(3), domain.Term(1+rng.Intn(2))))
			if i == 0 {
				continue
			}
			var members []string
			for j := 0; j < i; j++ {
				if rng.Intn(3) == 0 {
					members = append(members, fmt.Sprintf("C%02d", j))
				}
			}
			if len(members) > 0 {
				op := domain.LogicAll
				if rng.Intn(2) == 0 {
					op = domain.LogicAny
				}
				data.Groups = append(data.Groups, group(code, code+"-1", domain.LogicAll, op, members...))
			}
		}
		cat := NewCatalog(data)
		res := generateFor(cat, profileFor("CS"), nil, nil)

		at := placedAt(res)
		for code, s := range at {
			before := make(map[string]bool)
			for other, os := range at {
				if os.Before(s) {
					before[other] = true
				}
			}
			pr := CheckPrerequisites(cat.PrerequisiteGroups(code), before, "CS", 2028)
			assert.True(t, pr.IsMet, "round %d: %s at %s has unmet prerequisites %v", round, code, s, pr.Messages())
		}
		assert.Empty(t, res.Cycles, "round %d", round)
	}
}
