package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// MissingGroup describes a prerequisite group that is not satisfied.
type MissingGroup struct {
	GroupName        string         `json:"groupName"`
	GroupKey         string         `json:"groupKey"`
	Courses          []string       `json:"courses"`
	InternalOp       domain.LogicOp `json:"internalOp"`
	RequiredCount    int            `json:"requiredCount"`
	SatisfiedCount   int            `json:"satisfiedCount"`
	MajorRestriction string         `json:"majorRestriction,omitempty"`
}

// Message renders the group as a user-facing sentence.
func (m MissingGroup) Message() string {
	name := m.GroupName
	if m.MajorRestriction != "" {
		name += fmt.Sprintf(" (for %s majors)", m.MajorRestriction)
	}
	quantifier := "at least one of these courses"
	if m.InternalOp == domain.LogicAll {
		quantifier = "all of these courses"
	}
	return fmt.Sprintf("%s: you need %s: %s", name, quantifier, strings.Join(m.Courses, ", "))
}

type PrerequisiteResult struct {
	IsMet         bool           `json:"isMet"`
	MissingGroups []MissingGroup `json:"missingGroups"`
}

func (r PrerequisiteResult) Messages() []string {
	out := make([]string, len(r.MissingGroups))
	for i, m := range r.MissingGroups {
		out[i] = m.Message()
	}
	return out
}

// CheckPrerequisites evaluates a course's groups against the set of
// available course codes. Concurrent and recommended groups never block.
// ALL-of (external) groups must each pass; among ANY-of groups one passing
// is enough.
func CheckPrerequisites(groups []domain.PrerequisiteGroup, available map[string]bool, major string, cohort int) PrerequisiteResult {
	var (
		missing      []MissingGroup
		anyMissing   []MissingGroup
		hasAnyGroups bool
		anyPassed    bool
		allPassed    = true
	)

	for i := range groups {
		g := &groups[i]
		if !g.AppliesTo(major, cohort) || !g.Blocking() || len(g.Courses) == 0 {
			continue
		}
		ok, satisfied := groupSatisfied(g, available)

		if g.ExternalOp == domain.LogicAny {
			hasAnyGroups = true
			if ok {
				anyPassed = true
			} else {
				anyMissing = append(anyMissing, describeGroup(g, satisfied))
			}
			continue
		}
		if !ok {
			allPassed = false
			missing = append(missing, describeGroup(g, satisfied))
		}
	}

	if hasAnyGroups && !anyPassed {
		missing = append(missing, anyMissing...)
	}
	return PrerequisiteResult{
		IsMet:         allPassed && (!hasAnyGroups || anyPassed),
		MissingGroups: missing,
	}
}

func groupSatisfied(g *domain.PrerequisiteGroup, available map[string]bool) (bool, int) {
	satisfied := 0
	for _, code := range g.Courses {
		if available[code] {
			satisfied++
		}
	}
	if g.InternalOp == domain.LogicAll {
		return satisfied == len(g.Courses), satisfied
	}
	return satisfied > 0, satisfied
}

func describeGroup(g *domain.PrerequisiteGroup, satisfied int) MissingGroup {
	required := 1
	if g.InternalOp == domain.LogicAll {
		required = len(g.Courses)
	}
	courses := make([]string, len(g.Courses))
	copy(courses, g.Courses)
	return MissingGroup{
		GroupName:        g.Name,
		GroupKey:         g.Key,
		Courses:          courses,
		InternalOp:       g.InternalOp,
		RequiredCount:    required,
		SatisfiedCount:   satisfied,
		MajorRestriction: g.MajorRestriction,
	}
}

// AvailableBefore builds the availability set for a target slot: every
// passed course plus courses planned or in progress strictly earlier.
func AvailableBefore(states []AttemptState, target domain.SemesterSlot) map[string]bool {
	available := make(map[string]bool)
	for _, s := range states {
		if s.Attempt.IsPlaceholder() {
			continue
		}
		switch {
		case s.Passed:
			available[s.Attempt.CourseCode] = true
		case s.InProgress() && s.Attempt.Slot.Before(target):
			available[s.Attempt.CourseCode] = true
		}
	}
	return available
}
