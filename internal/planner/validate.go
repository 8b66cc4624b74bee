package planner

import (
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// PlacementItem is either a real course or a placeholder elective.
type PlacementItem struct {
	CourseCode          string
	PlaceholderCredits  float64
	PlaceholderCategory string
}

func (p PlacementItem) IsPlaceholder() bool { return p.CourseCode == "" }

type PlacementInput struct {
	Profile  *domain.StudentProfile
	Catalog  *Catalog
	Policy   Policy
	Attempts []domain.Attempt
	Item     PlacementItem
	Target   domain.SemesterSlot
	// MovingAttemptID excludes an attempt being relocated from every check.
	MovingAttemptID string
}

type PlacementResult struct {
	IsValid       bool                `json:"isValid"`
	Errors        []string            `json:"errors"`
	Warnings      []string            `json:"warnings"`
	Prerequisites *PrerequisiteResult `json:"prerequisites,omitempty"`
	SlotCredits   float64             `json:"slotCredits"`
	CreditLimit   float64             `json:"creditLimit"`
	// VoluntaryRetake is set when the course was passed but may be retaken.
	VoluntaryRetake bool `json:"voluntaryRetake"`
}

// ValidatePlacement runs the placement checks in order: retake policy,
// prerequisites, offering pattern, credit ceiling, year horizon and summer
// advisory. Placeholders skip the first three. Errors make the result
// invalid; warnings never do.
func ValidatePlacement(in PlacementInput) PlacementResult {
	var res PlacementResult
	if err := in.Target.Validate(in.Policy.AbsoluteMaxYears); err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	attempts := make([]domain.Attempt, 0, len(in.Attempts))
	for _, a := range in.Attempts {
		if a.ID != in.MovingAttemptID {
			attempts = append(attempts, a)
		}
	}
	states := EvaluateAttempts(attempts, in.Catalog, in.Profile, in.Policy)

	credits := in.Item.PlaceholderCredits
	if !in.Item.IsPlaceholder() {
		course, ok := in.Catalog.Course(in.Item.CourseCode)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("Course %s not found", in.Item.CourseCode))
			return res
		}
		credits = course.Credits
		res.checkRetake(course, states)
		res.checkPrerequisites(in, course, states)
		if !course.OfferedIn(in.Target.Term) {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s is typically not offered in the %s semester. Check the course schedule before registering.",
				course.Title, in.Target.Term))
		}
	} else if credits <= 0 {
		res.Errors = append(res.Errors, "Placeholder credits must be positive")
	}

	res.checkCredits(in, states, credits)
	res.checkHorizon(in, states)
	if in.Target.IsSummer() {
		res.Warnings = append(res.Warnings,
			"Course offerings in summer semesters are not guaranteed. Confirm availability before relying on this plan.")
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func (r *PlacementResult) checkRetake(course *domain.Course, states []AttemptState) {
	latest := LatestByCode(states)[course.Code]
	if latest == nil {
		return
	}
	switch {
	case latest.InProgress():
		r.Errors = append(r.Errors, fmt.Sprintf("%s is already in your plan for %s", course.Code, latest.Attempt.Slot))
	case latest.Passed && latest.VoluntaryRetakePossible:
		r.VoluntaryRetake = true
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"You've already passed %s but retaking may improve your grade.", course.Code))
	case latest.Passed:
		r.Errors = append(r.Errors, "You've already passed this course and cannot retake it")
	case latest.RetakeLimitReached:
		r.Errors = append(r.Errors, fmt.Sprintf(
			"You have reached the maximum of %d attempts for %s", domain.MaxAttemptsPerCourse, course.Code))
	}
}

func (r *PlacementResult) checkPrerequisites(in PlacementInput, course *domain.Course, states []AttemptState) {
	groups := in.Catalog.PrerequisiteGroups(course.Code)
	pr := CheckPrerequisites(groups, AvailableBefore(states, in.Target), in.Profile.MajorCode, in.Profile.CohortYear)
	r.Prerequisites = &pr
	if pr.IsMet {
		return
	}
	r.Errors = append(r.Errors, fmt.Sprintf("Prerequisites not met for %s", course.Code))
	r.Errors = append(r.Errors, pr.Messages()...)
}

func (r *PlacementResult) checkCredits(in PlacementInput, states []AttemptState, credits float64) {
	var current float64
	for _, s := range states {
		if s.Attempt.Slot == in.Target {
			current += s.Credits
		}
	}
	r.SlotCredits = current + credits
	r.CreditLimit = in.Policy.CreditLimit(in.Profile.MajorCode, in.Target)
	if r.SlotCredits > r.CreditLimit {
		r.Warnings = append(r.Warnings, fmt.Sprintf(
			"This brings %s to %.1f credits, above the %.1f credit limit. An overload petition may be required.",
			in.Target, r.SlotCredits, r.CreditLimit))
	}
}

// checkHorizon warns when the target extends the plan past the recommended
// horizon for the first time.
func (r *PlacementResult) checkHorizon(in PlacementInput, states []AttemptState) {
	if in.Target.Year <= in.Policy.RecommendedYears {
		return
	}
	for _, s := range states {
		if s.Attempt.Slot.Year > in.Policy.RecommendedYears {
			return
		}
	}
	r.Warnings = append(r.Warnings, fmt.Sprintf(
		"This places coursework in year %d, beyond the recommended %d years, which may delay graduation.",
		in.Target.Year, in.Policy.RecommendedYears))
}

// DependentConflicts lists planned courses whose prerequisites would break
// if the attempt moved to target.
func DependentConflicts(in PlacementInput) []string {
	if in.Item.IsPlaceholder() {
		return nil
	}
	moved := make([]domain.Attempt, len(in.Attempts))
	copy(moved, in.Attempts)
	for i := range moved {
		if moved[i].ID == in.MovingAttemptID {
			moved[i].Slot = in.Target
		}
	}
	before := EvaluateAttempts(in.Attempts, in.Catalog, in.Profile, in.Policy)
	after := EvaluateAttempts(moved, in.Catalog, in.Profile, in.Policy)

	var conflicts []string
	for _, dep := range in.Catalog.Dependents(in.Item.CourseCode) {
		for _, s := range after {
			if s.Attempt.CourseCode != dep || !s.InProgress() {
				continue
			}
			groups := in.Catalog.PrerequisiteGroups(dep)
			major, cohort := in.Profile.MajorCode, in.Profile.CohortYear
			wasMet := CheckPrerequisites(groups, AvailableBefore(before, s.Attempt.Slot), major, cohort).IsMet
			nowMet := CheckPrerequisites(groups, AvailableBefore(after, s.Attempt.Slot), major, cohort).IsMet
			if wasMet && !nowMet {
				conflicts = append(conflicts, fmt.Sprintf(
					"Moving %s to %s would break prerequisites for %s planned in %s",
					in.Item.CourseCode, in.Target, dep, s.Attempt.Slot))
			}
		}
	}
	return conflicts
}
