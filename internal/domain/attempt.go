package domain

import "time"

// Attempt is one recorded or planned instance of a student taking a course.
// Placeholders have no CourseCode and carry their own title, credits and category.
type Attempt struct {
	ID                 string
	StudentID          string
	CourseCode         string
	Slot               SemesterSlot
	Status             AttemptStatus
	Grade              string
	CategoryName       string
	PlaceholderTitle   string
	PlaceholderCredits float64
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (a *Attempt) IsPlaceholder() bool { return a.CourseCode == "" }

func (a *Attempt) IsPlanned() bool { return a.Status == AttemptPlanned }

// Finished reports whether the attempt has a final outcome.
func (a *Attempt) Finished() bool {
	switch a.Status {
	case AttemptCompleted, AttemptFailed, AttemptRetakeRequired:
		return true
	}
	return false
}

// Credits returns the placeholder credits or the course credits.
func (a *Attempt) Credits(course *Course) float64 {
	if a.IsPlaceholder() || course == nil {
		return a.PlaceholderCredits
	}
	return course.Credits
}

// Title returns a display title for the attempt.
func (a *Attempt) Title(course *Course) string {
	if a.IsPlaceholder() {
		return a.PlaceholderTitle
	}
	if course != nil {
		return course.Title
	}
	return a.CourseCode
}
