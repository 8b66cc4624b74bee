package planner

import "github.com/alexanderramin/degreeplan/internal/domain"

// Analysis holds every derived view of one student's attempt set.
type Analysis struct {
	States      []AttemptState
	Categorized []CategorizedAttempt
	Progress    []domain.CategoryProgress
	Overall     domain.OverallProgress
	Remaining   []RemainingItem
}

func Analyze(attempts []domain.Attempt, cat *Catalog, profile *domain.StudentProfile, policy Policy) Analysis {
	states := EvaluateAttempts(attempts, cat, profile, policy)
	categorized := Categorize(states, cat, profile, policy)
	progress, overall := ComputeProgress(EffectiveRequirements(cat, profile), categorized, cat)
	return Analysis{
		States:      states,
		Categorized: categorized,
		Progress:    progress,
		Overall:     overall,
		Remaining:   RemainingRequirements(categorized, progress, cat, profile, policy),
	}
}

func (a Analysis) Plan(profile *domain.StudentProfile, cat *Catalog, policy Policy) domain.Plan {
	return BuildPlan(profile, cat, policy, a.Categorized, a.Progress, a.Overall)
}

// CategoryOf returns the category an attempt was assigned to.
func (a Analysis) CategoryOf(attemptID string) (string, bool) {
	for _, c := range a.Categorized {
		if c.Attempt.ID == attemptID {
			return c.Category, true
		}
	}
	return "", false
}

// ProgressFor returns progress for one category.
func (a Analysis) ProgressFor(category string) (domain.CategoryProgress, bool) {
	for _, p := range a.Progress {
		if p.Category == category {
			return p, true
		}
	}
	return domain.CategoryProgress{}, false
}

// RemainingFor returns the outstanding item for a course code.
func (a Analysis) RemainingFor(code string) (RemainingItem, bool) {
	for _, r := range a.Remaining {
		if r.CourseCode == code {
			return r, true
		}
	}
	return RemainingItem{}, false
}
