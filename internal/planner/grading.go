package planner

import (
	"sort"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// AttemptState is an attempt with its computed outcome.
type AttemptState struct {
	Attempt                 domain.Attempt
	Course                  *domain.Course
	Credits                 float64
	MinimumGrade            string
	Passed                  bool
	RetakeNeeded            bool
	IsLatest                bool
	TotalAttempts           int
	VoluntaryRetakePossible bool
	RetakeLimitReached      bool
}

// InProgress reports whether the attempt is planned or currently enrolled.
func (s *AttemptState) InProgress() bool {
	return s.Attempt.Status == domain.AttemptPlanned || s.Attempt.Status == domain.AttemptEnrolled
}

// Counts reports whether the attempt contributes to requirement progress.
func (s *AttemptState) Counts() bool {
	return s.IsLatest && (s.Passed || s.InProgress())
}

// MinimumGrade resolves the passing threshold for a course: an explicit
// requirement wins, then D+ for prerequisite-bearing or required-major
// courses, else D.
func MinimumGrade(cat *Catalog, profile *domain.StudentProfile, policy Policy, code string) string {
	if g, ok := cat.GradeRequirement(profile.MajorCode, code, profile.CohortYear); ok {
		return g
	}
	if cat.IsPrerequisite(code) {
		return domain.GradeMinimumStrict
	}
	if row, ok := BestCategorization(cat, profile, policy, code); ok && row.CategoryName == domain.CategoryRequiredMajor {
		return domain.GradeMinimumStrict
	}
	return domain.GradeMinimumDefault
}

// EvaluateAttempts computes pass, retake and latest-attempt flags for a
// student's attempts. Dropped attempts are ignored. The result is ordered
// by slot, then course code, then attempt id.
func EvaluateAttempts(attempts []domain.Attempt, cat *Catalog, profile *domain.StudentProfile, policy Policy) []AttemptState {
	states := make([]AttemptState, 0, len(attempts))
	for _, a := range attempts {
		if a.Status == domain.AttemptDropped {
			continue
		}
		s := AttemptState{Attempt: a}
		if !a.IsPlaceholder() {
			if course, ok := cat.Course(a.CourseCode); ok {
				s.Course = course
			}
			s.MinimumGrade = MinimumGrade(cat, profile, policy, a.CourseCode)
		}
		s.Credits = a.Credits(s.Course)
		if a.Status == domain.AttemptCompleted {
			s.Passed = a.IsPlaceholder() || domain.GradeMeets(a.Grade, s.MinimumGrade)
		}
		s.RetakeNeeded = a.Finished() && !s.Passed
		states = append(states, s)
	}
	SortStates(states)

	latest := make(map[string]int)
	counts := make(map[string]int)
	for i := range states {
		a := &states[i].Attempt
		if a.IsPlaceholder() {
			states[i].IsLatest = true
			states[i].TotalAttempts = 1
			continue
		}
		counts[a.CourseCode]++
		prev, ok := latest[a.CourseCode]
		if !ok || laterAttempt(a, &states[prev].Attempt) {
			latest[a.CourseCode] = i
		}
	}
	for i := range states {
		a := &states[i].Attempt
		if a.IsPlaceholder() {
			continue
		}
		s := &states[i]
		s.TotalAttempts = counts[a.CourseCode]
		s.IsLatest = latest[a.CourseCode] == i
		s.RetakeLimitReached = s.TotalAttempts >= domain.MaxAttemptsPerCourse
		s.VoluntaryRetakePossible = s.IsLatest && s.Passed &&
			domain.InVoluntaryRetakeBand(a.Grade) && !s.RetakeLimitReached
	}
	return states
}

func laterAttempt(a, b *domain.Attempt) bool {
	if a.Slot != b.Slot {
		return a.Slot.After(b.Slot)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// SortStates orders states by slot, course code (placeholders by title)
// and attempt id.
func SortStates(states []AttemptState) {
	sort.SliceStable(states, func(i, j int) bool {
		a, b := &states[i].Attempt, &states[j].Attempt
		if a.Slot != b.Slot {
			return a.Slot.Before(b.Slot)
		}
		ka, kb := a.CourseCode+a.PlaceholderTitle, b.CourseCode+b.PlaceholderTitle
		if ka != kb {
			return ka < kb
		}
		return a.ID < b.ID
	})
}

// LatestByCode indexes the latest attempt for each course code.
func LatestByCode(states []AttemptState) map[string]*AttemptState {
	out := make(map[string]*AttemptState)
	for i := range states {
		s := &states[i]
		if s.IsLatest && !s.Attempt.IsPlaceholder() {
			out[s.Attempt.CourseCode] = s
		}
	}
	return out
}
