package app

import (
	"context"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// PlanningUseCase is the engine surface shared by the CLI and HTTP callers.
// Every error it returns is an *EngineError.
type PlanningUseCase interface {
	CheckPrerequisites(ctx context.Context, req CheckPrerequisitesRequest) (*PrerequisiteResponse, error)
	ValidatePlacement(ctx context.Context, req ValidatePlacementRequest) (*ValidationResponse, error)
	AddCourse(ctx context.Context, req AddCourseRequest) (*PlacementResponse, error)
	AddPlaceholder(ctx context.Context, req AddPlaceholderRequest) (*PlacementResponse, error)
	MoveCourse(ctx context.Context, req MoveCourseRequest) (*PlacementResponse, error)
	RemoveCourse(ctx context.Context, req RemoveCourseRequest) (*RemoveCourseResponse, error)
	GenerateAutomaticPlan(ctx context.Context, req GeneratePlanRequest) (*GeneratePlanResponse, error)
	GetPlan(ctx context.Context, req StudentRequest) (*domain.Plan, error)
}

type RequirementsUseCase interface {
	GetRequirements(ctx context.Context, req StudentRequest) (*RequirementsResponse, error)
	GetAvailableCourses(ctx context.Context, req AvailableCoursesRequest) (*AvailableCoursesResponse, error)
	GetElectiveCategories(ctx context.Context, req StudentRequest) (*ElectiveCategoriesResponse, error)
}

type ProfileUseCase interface {
	SetProfile(ctx context.Context, req SetProfileRequest) (*domain.StudentProfile, error)
	GetProfile(ctx context.Context, req StudentRequest) (*domain.StudentProfile, error)
}

type ImportResult struct {
	Courses         int `json:"courses"`
	Groups          int `json:"groups"`
	Categories      int `json:"categories"`
	Requirements    int `json:"requirements"`
	Categorizations int `json:"categorizations"`
	Semesters       int `json:"semesters"`
	Students        int `json:"students"`
	Attempts        int `json:"attempts"`
}

type ImportUseCase interface {
	ImportCatalog(ctx context.Context, path string) (*ImportResult, error)
	ImportStudents(ctx context.Context, path string) (*ImportResult, error)
}

// Engine bundles the use cases wired by the entrypoint.
type Engine interface {
	PlanningUseCase
	RequirementsUseCase
	ProfileUseCase
}
