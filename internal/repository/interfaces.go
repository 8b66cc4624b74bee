package repository

import (
	"context"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// CatalogSnapshot is every catalog table read in one pass.
type CatalogSnapshot struct {
	Courses           []domain.Course
	Groups            []domain.PrerequisiteGroup
	Categories        []domain.Category
	Requirements      []domain.DegreeRequirement
	Categorizations   []domain.Categorization
	GradeRequirements []domain.GradeRequirement
}

type CatalogRepo interface {
	Snapshot(ctx context.Context) (*CatalogSnapshot, error)
	GetCourse(ctx context.Context, code string) (*domain.Course, error)
	UpsertCourse(ctx context.Context, c *domain.Course) error
	// ReplacePrerequisites swaps every group attached to courseCode.
	ReplacePrerequisites(ctx context.Context, courseCode string, groups []domain.PrerequisiteGroup) error
	UpsertCategory(ctx context.Context, c *domain.Category) error
	UpsertRequirement(ctx context.Context, r *domain.DegreeRequirement) error
	UpsertCategorization(ctx context.Context, c *domain.Categorization) error
	UpsertGradeRequirement(ctx context.Context, g *domain.GradeRequirement) error
}

type AcademicSemesterRepo interface {
	Upsert(ctx context.Context, s *domain.AcademicSemester) error
	GetByYearAndSequence(ctx context.Context, academicYear string, seq int) (*domain.AcademicSemester, error)
	List(ctx context.Context) ([]*domain.AcademicSemester, error)
}

type StudentRepo interface {
	Get(ctx context.Context, studentID string) (*domain.StudentProfile, error)
	List(ctx context.Context) ([]*domain.StudentProfile, error)
	Upsert(ctx context.Context, p *domain.StudentProfile) error
}

type AttemptRepo interface {
	Create(ctx context.Context, a *domain.Attempt) error
	GetByID(ctx context.Context, id string) (*domain.Attempt, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Attempt, error)
	Update(ctx context.Context, a *domain.Attempt) error
	Delete(ctx context.Context, id string) error
	// DeletePlanned removes every planned attempt and returns how many went.
	DeletePlanned(ctx context.Context, studentID string) (int64, error)
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
}

type SlotMappingRepo interface {
	Get(ctx context.Context, studentID string, slot domain.SemesterSlot) (*domain.SlotMapping, error)
	Create(ctx context.Context, m *domain.SlotMapping) error
	ListByStudent(ctx context.Context, studentID string) ([]*domain.SlotMapping, error)
}
