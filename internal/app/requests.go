package app

import "github.com/alexanderramin/degreeplan/internal/domain"

// SlotInput is a program-relative semester as supplied by callers.
type SlotInput struct {
	Year     int         `json:"year" validate:"required,min=1"`
	Semester domain.Term `json:"semester" validate:"required,min=1,max=3"`
}

func (s SlotInput) Slot() domain.SemesterSlot {
	return domain.NewSlot(s.Year, s.Semester)
}

func SlotInputOf(slot domain.SemesterSlot) SlotInput {
	return SlotInput{Year: slot.Year, Semester: slot.Term}
}

type CheckPrerequisitesRequest struct {
	StudentID  string `json:"studentId" validate:"required"`
	CourseCode string `json:"courseCode" validate:"required"`
	// Slot defaults to the student's current semester.
	Slot *SlotInput `json:"slot,omitempty"`
}

type PlaceholderInput struct {
	Title    string  `json:"title" validate:"required,max=120"`
	Credits  float64 `json:"credits" validate:"gt=0,lte=6"`
	Category string  `json:"category"`
}

type ValidatePlacementRequest struct {
	StudentID   string            `json:"studentId" validate:"required"`
	CourseCode  string            `json:"courseCode" validate:"required_without=Placeholder"`
	Placeholder *PlaceholderInput `json:"placeholder,omitempty"`
	Slot        SlotInput         `json:"slot"`
	// MovingAttemptID validates a relocation of an existing attempt.
	MovingAttemptID string `json:"movingAttemptId,omitempty"`
}

type AddCourseRequest struct {
	StudentID  string    `json:"studentId" validate:"required"`
	CourseCode string    `json:"courseCode" validate:"required"`
	Slot       SlotInput `json:"slot"`
}

type AddPlaceholderRequest struct {
	StudentID   string           `json:"studentId" validate:"required"`
	Placeholder PlaceholderInput `json:"placeholder"`
	Slot        SlotInput        `json:"slot"`
}

type MoveCourseRequest struct {
	StudentID string    `json:"studentId" validate:"required"`
	AttemptID string    `json:"attemptId" validate:"required"`
	Slot      SlotInput `json:"slot"`
}

type RemoveCourseRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	AttemptID string `json:"attemptId" validate:"required"`
}

type GeneratePlanRequest struct {
	StudentID string     `json:"studentId" validate:"required"`
	Start     *SlotInput `json:"start,omitempty"`
	// BalanceCredits defaults to true when nil.
	BalanceCredits *bool `json:"balanceCredits,omitempty"`
}

func (r GeneratePlanRequest) Balance() bool {
	return r.BalanceCredits == nil || *r.BalanceCredits
}

type StudentRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

type AvailableCoursesRequest struct {
	StudentID string    `json:"studentId" validate:"required"`
	Slot      SlotInput `json:"slot"`
}

type SetProfileRequest struct {
	StudentID       string      `json:"studentId" validate:"required,max=64"`
	Name            string      `json:"name" validate:"max=200"`
	MajorCode       string      `json:"majorCode" validate:"required,max=16"`
	CohortYear      int         `json:"cohortYear" validate:"required,min=1990,max=2100"`
	CurrentYear     int         `json:"currentYear" validate:"required,min=1,max=8"`
	CurrentSemester domain.Term `json:"currentSemester" validate:"required,min=1,max=3"`
	MathTrack       string      `json:"mathTrack"`
	CapstoneOption  string      `json:"capstoneOption"`
}
