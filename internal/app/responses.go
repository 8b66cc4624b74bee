package app

import (
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/planner"
)

type PrerequisiteResponse struct {
	CourseCode string              `json:"courseCode"`
	Slot       domain.SemesterSlot `json:"slot"`
	planner.PrerequisiteResult
	Messages []string `json:"messages,omitempty"`
}

// ResolvedSemester is the institutional semester a program slot maps to.
type ResolvedSemester struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AcademicYear string `json:"academicYear"`
}

type ValidationResponse struct {
	planner.PlacementResult
	Slot             domain.SemesterSlot `json:"slot"`
	ResolvedSemester *ResolvedSemester   `json:"resolvedSemester,omitempty"`
}

type PlacementResponse struct {
	AttemptID  string              `json:"attemptId"`
	CourseCode string              `json:"courseCode,omitempty"`
	Title      string              `json:"title"`
	Slot       domain.SemesterSlot `json:"slot"`
	Semester   *ResolvedSemester   `json:"semester,omitempty"`
	Warnings   []string            `json:"warnings"`
}

type RemoveCourseResponse struct {
	AttemptID  string   `json:"attemptId"`
	CourseCode string   `json:"courseCode,omitempty"`
	Title      string   `json:"title"`
	Warnings   []string `json:"warnings"`
}

type GeneratePlanResponse struct {
	Plan    domain.Plan     `json:"plan"`
	Summary planner.Summary `json:"summary"`
}

type RequirementCounts struct {
	Retakes   int `json:"retakes"`
	Required  int `json:"required"`
	Electives int `json:"electives"`
	Total     int `json:"total"`
}

type RequirementsResponse struct {
	StudentID string                  `json:"studentId"`
	Items     []planner.RemainingItem `json:"items"`
	Counts    RequirementCounts       `json:"counts"`
}

func CountRequirements(items []planner.RemainingItem) RequirementCounts {
	c := RequirementCounts{Total: len(items)}
	for _, it := range items {
		switch it.Kind {
		case planner.KindRetake:
			c.Retakes++
		case planner.KindRequired:
			c.Required++
		default:
			c.Electives++
		}
	}
	return c
}

type AvailableCoursesResponse struct {
	Slot    domain.SemesterSlot       `json:"slot"`
	Courses []planner.AvailableCourse `json:"courses"`
}

type ElectiveCategoriesResponse struct {
	Categories []string `json:"categories"`
}
