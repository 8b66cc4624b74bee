package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/google/uuid"
)

var testStudentCounter atomic.Int64

// Student options
type StudentOption func(*domain.StudentProfile)

func WithMajor(code string) StudentOption {
	return func(p *domain.StudentProfile) {
		p.MajorCode = code
	}
}

func WithCohort(year int) StudentOption {
	return func(p *domain.StudentProfile) {
		p.CohortYear = year
	}
}

func WithCurrentSlot(year int, term domain.Term) StudentOption {
	return func(p *domain.StudentProfile) {
		p.CurrentYear = year
		p.CurrentTerm = term
	}
}

func WithCapstone(option string) StudentOption {
	return func(p *domain.StudentProfile) {
		p.CapstoneOption = option
	}
}

func WithMathTrack(track string) StudentOption {
	return func(p *domain.StudentProfile) {
		p.MathTrack = track
	}
}

// NewTestStudent returns a first-year fall CS student in the 2028 cohort.
func NewTestStudent(opts ...StudentOption) *domain.StudentProfile {
	n := testStudentCounter.Add(1)
	p := &domain.StudentProfile{
		StudentID:   fmt.Sprintf("S%04d", n),
		Name:        fmt.Sprintf("Student %d", n),
		MajorCode:   "CS",
		CohortYear:  2028,
		CurrentYear: 1,
		CurrentTerm: domain.TermFall,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attempt options
type AttemptOption func(*domain.Attempt)

func WithSlot(year int, term domain.Term) AttemptOption {
	return func(a *domain.Attempt) {
		a.Slot = domain.NewSlot(year, term)
	}
}

func WithStatus(s domain.AttemptStatus) AttemptOption {
	return func(a *domain.Attempt) {
		a.Status = s
	}
}

// WithGrade marks the attempt completed with the given grade.
func WithGrade(grade string) AttemptOption {
	return func(a *domain.Attempt) {
		a.Status = domain.AttemptCompleted
		a.Grade = grade
	}
}

func WithPlaceholder(title, category string, credits float64) AttemptOption {
	return func(a *domain.Attempt) {
		a.CourseCode = ""
		a.PlaceholderTitle = title
		a.CategoryName = category
		a.PlaceholderCredits = credits
	}
}

func NewTestAttempt(studentID, courseCode string, opts ...AttemptOption) *domain.Attempt {
	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.Attempt{
		ID:         uuid.New().String(),
		StudentID:  studentID,
		CourseCode: courseCode,
		Slot:       domain.NewSlot(1, domain.TermFall),
		Status:     domain.AttemptPlanned,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Course options
type CourseOption func(*domain.Course)

func WithCredits(credits float64) CourseOption {
	return func(c *domain.Course) {
		c.Credits = credits
	}
}

func WithTitle(title string) CourseOption {
	return func(c *domain.Course) {
		c.Title = title
	}
}

func WithOffered(terms ...domain.Term) CourseOption {
	return func(c *domain.Course) {
		c.Offered = terms
	}
}

// NewTestCourse returns an active one-credit course offered every term.
func NewTestCourse(code string, opts ...CourseOption) *domain.Course {
	c := &domain.Course{
		Code:    code,
		Title:   code + " Title",
		Credits: 1,
		Level:   100,
		Active:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
