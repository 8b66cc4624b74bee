package contract

import (
	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

type SlotInput = app.SlotInput

func NewSlot(year int, term domain.Term) SlotInput {
	return SlotInput{Year: year, Semester: term}
}

type CheckPrerequisitesRequest = app.CheckPrerequisitesRequest

type PlaceholderInput = app.PlaceholderInput

type ValidatePlacementRequest = app.ValidatePlacementRequest

type AddCourseRequest = app.AddCourseRequest

type AddPlaceholderRequest = app.AddPlaceholderRequest

// NewAddPlaceholderRequest fills the default elective category.
func NewAddPlaceholderRequest(studentID, title string, credits float64, category string, slot SlotInput) AddPlaceholderRequest {
	if category == "" {
		category = domain.CategoryNonMajorElective
	}
	return AddPlaceholderRequest{
		StudentID:   studentID,
		Placeholder: PlaceholderInput{Title: title, Credits: credits, Category: category},
		Slot:        slot,
	}
}

type MoveCourseRequest = app.MoveCourseRequest

type RemoveCourseRequest = app.RemoveCourseRequest

type GeneratePlanRequest = app.GeneratePlanRequest

// NewGeneratePlanRequest starts from the current semester with balancing on.
func NewGeneratePlanRequest(studentID string) GeneratePlanRequest {
	balance := true
	return GeneratePlanRequest{StudentID: studentID, BalanceCredits: &balance}
}

type StudentRequest = app.StudentRequest

type AvailableCoursesRequest = app.AvailableCoursesRequest

type SetProfileRequest = app.SetProfileRequest

type PrerequisiteResponse = app.PrerequisiteResponse

type ResolvedSemester = app.ResolvedSemester

type ValidationResponse = app.ValidationResponse

type PlacementResponse = app.PlacementResponse

type RemoveCourseResponse = app.RemoveCourseResponse

type GeneratePlanResponse = app.GeneratePlanResponse

type RequirementCounts = app.RequirementCounts

type RequirementsResponse = app.RequirementsResponse

type AvailableCoursesResponse = app.AvailableCoursesResponse

type ElectiveCategoriesResponse = app.ElectiveCategoriesResponse

type ImportResult = app.ImportResult

// Engine is the use-case surface the CLI and HTTP layers drive.
type Engine = app.Engine

type ImportUseCase = app.ImportUseCase
