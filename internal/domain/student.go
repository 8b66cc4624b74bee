package domain

import (
	"fmt"
	"time"
)

type StudentProfile struct {
	StudentID      string `json:"studentId"`
	Name           string `json:"name"`
	MajorCode      string `json:"majorCode"`
	MathTrack      string `json:"mathTrack,omitempty"`
	CapstoneOption string `json:"capstoneOption,omitempty"`
	// CohortYear is the expected graduation year.
	CohortYear  int       `json:"cohortYear"`
	CurrentYear int       `json:"currentYear"`
	CurrentTerm Term      `json:"currentSemester"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Complete reports whether the profile carries everything planning needs.
func (p *StudentProfile) Complete() bool {
	return p.MajorCode != "" && p.CohortYear > 0 && p.CurrentYear > 0 && p.CurrentTerm.Valid()
}

func (p *StudentProfile) CurrentSlot() SemesterSlot {
	return SemesterSlot{Year: p.CurrentYear, Term: p.CurrentTerm}
}

// AcademicYearName maps a program year onto the institution's academic
// year label, e.g. cohort 2027 program year 1 is "2023-2024".
func (p *StudentProfile) AcademicYearName(programYear int) string {
	start := p.CohortYear - 4 + programYear - 1
	return fmt.Sprintf("%d-%d", start, start+1)
}

// AcademicSemester is an institutional calendar semester.
type AcademicSemester struct {
	ID             string
	Name           string
	AcademicYear   string
	SequenceNumber int
	StartDate      time.Time
	EndDate        time.Time
}

// SlotMapping binds a student's program slot to an institutional semester.
type SlotMapping struct {
	ID                 string
	StudentID          string
	AcademicSemesterID string
	Slot               SemesterSlot
	IsVerified         bool
	CreatedAt          time.Time
}
