package planner

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// BuildPlan nests categorized attempts by year and term and attaches progress.
func BuildPlan(profile *domain.StudentProfile, cat *Catalog, policy Policy, attempts []CategorizedAttempt,
	progress []domain.CategoryProgress, overall domain.OverallProgress) domain.Plan {

	lastYear := policy.RecommendedYears
	for _, a := range attempts {
		lastYear = max(lastYear, a.Attempt.Slot.Year)
	}

	plan := domain.Plan{
		StudentID:  profile.StudentID,
		MajorCode:  profile.MajorCode,
		CohortYear: profile.CohortYear,
		Years:      make([]domain.PlanYear, lastYear),
		Categories: progress,
		Overall:    overall,
	}
	for i := range plan.Years {
		y := &plan.Years[i]
		y.Year = i + 1
		for _, sem := range y.Semesters() {
			sem.Courses = []domain.PlanCourse{}
		}
		y.Fall.Slot = domain.NewSlot(y.Year, domain.TermFall)
		y.Spring.Slot = domain.NewSlot(y.Year, domain.TermSpring)
		y.Summer.Slot = domain.NewSlot(y.Year, domain.TermSummer)
	}

	for _, a := range attempts {
		slot := a.Attempt.Slot
		if slot.Year < 1 || !slot.Term.Valid() {
			continue
		}
		sem := plan.Years[slot.Year-1].Semesters()[slot.Term-1]
		sem.Courses = append(sem.Courses, planCourse(cat, a))
		sem.TotalCredits += a.Credits
	}

	for i := range plan.Years {
		for _, sem := range plan.Years[i].Semesters() {
			sort.SliceStable(sem.Courses, func(a, b int) bool {
				ka := domain.CoalesceStr(sem.Courses[a].CourseCode, sem.Courses[a].Title)
				kb := domain.CoalesceStr(sem.Courses[b].CourseCode, sem.Courses[b].Title)
				return ka < kb
			})
			sem.CreditLimit = policy.CreditLimit(profile.MajorCode, sem.Slot)
			sem.HasCreditWarning = sem.TotalCredits > sem.CreditLimit
		}
	}
	return plan
}

func planCourse(cat *Catalog, a CategorizedAttempt) domain.PlanCourse {
	c := cat.Category(a.Category)
	pc := domain.PlanCourse{
		AttemptID:               a.Attempt.ID,
		CourseCode:              a.Attempt.CourseCode,
		Title:                   a.Attempt.Title(a.Course),
		Credits:                 a.Credits,
		Status:                  displayStatus(a.AttemptState),
		Grade:                   a.Attempt.Grade,
		IsPlaceholder:           a.Attempt.IsPlaceholder(),
		Category:                a.Category,
		ParentCategory:          c.Parent,
		Color:                   c.Color,
		Passed:                  a.Passed,
		RetakeNeeded:            a.RetakeNeeded,
		IsLatestAttempt:         a.IsLatest,
		TotalAttempts:           a.TotalAttempts,
		VoluntaryRetakePossible: a.VoluntaryRetakePossible,
	}
	pc.InfoMessage = infoMessage(a.AttemptState)
	return pc
}

func displayStatus(s AttemptState) domain.AttemptStatus {
	switch {
	case s.InProgress():
		return domain.AttemptPlanned
	case s.Passed:
		return domain.AttemptCompleted
	default:
		return domain.AttemptFailed
	}
}

func infoMessage(s AttemptState) string {
	switch {
	case s.InProgress():
		return ""
	case s.RetakeNeeded && s.RetakeLimitReached:
		return fmt.Sprintf("Retake limit of %d attempts reached", domain.MaxAttemptsPerCourse)
	case s.RetakeNeeded && s.IsLatest:
		return fmt.Sprintf("Grade %s is below the minimum %s. This course must be retaken.",
			domain.CoalesceStr(s.Attempt.Grade, "-"), s.MinimumGrade)
	case !s.IsLatest:
		return "Superseded by a later attempt"
	case s.VoluntaryRetakePossible:
		return "Passed. A voluntary retake may improve this grade."
	}
	return ""
}
