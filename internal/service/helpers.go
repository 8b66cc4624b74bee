package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/planner"
	"github.com/alexanderramin/degreeplan/internal/repository"
)

// txRepos are repositories bound to one transaction.
type txRepos struct {
	attempts  repository.AttemptRepo
	semesters repository.AcademicSemesterRepo
	mappings  repository.SlotMappingRepo
}

func newTxRepos(tx db.DBTX) txRepos {
	return txRepos{
		attempts:  repository.NewSQLiteAttemptRepo(tx),
		semesters: repository.NewSQLiteAcademicSemesterRepo(tx),
		mappings:  repository.NewSQLiteSlotMappingRepo(tx),
	}
}

// storeErr translates a repository failure into an engine error. Engine
// errors raised inside a transaction pass through unchanged.
func storeErr(code app.ErrorCode, what string, err error) error {
	var ee *app.EngineError
	if errors.As(err, &ee) {
		return ee
	}
	return app.Wrap(code, what, err)
}

// engineErr converts any error leaving a use case into an *app.EngineError.
func engineErr(err error) error {
	if err == nil {
		return nil
	}
	return app.AsEngineError(err)
}

// rejection reports the first failed rule as the message with every
// failure in details.
func rejection(code app.ErrorCode, errs []string) error {
	if len(errs) == 0 {
		return app.NewError(code, "placement rejected")
	}
	return app.NewError(code, errs[0], errs...)
}

func (s *planningService) checkSlot(slot domain.SemesterSlot) error {
	if err := slot.Validate(s.policy.AbsoluteMaxYears); err != nil {
		return app.NewError(app.ErrInvalidSlot, err.Error())
	}
	return nil
}

// resolveSlot maps a program slot to its institutional semester, creating
// the student's mapping row on first use.
func resolveSlot(ctx context.Context, repos txRepos, profile *domain.StudentProfile, slot domain.SemesterSlot) (*domain.AcademicSemester, error) {
	yearName := profile.AcademicYearName(slot.Year)
	sem, err := repos.semesters.GetByYearAndSequence(ctx, yearName, int(slot.Term))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, app.Errorf(app.ErrSemesterMapping,
				"No academic semester found for %s (%s, %s)", slot, yearName, slot.Term)
		}
		return nil, app.Wrap(app.ErrSemesterMapping, "resolving academic semester", err)
	}

	if _, err := repos.mappings.Get(ctx, profile.StudentID, slot); err == nil {
		return sem, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, app.Wrap(app.ErrSemesterMapping, "reading slot mapping", err)
	}
	m := &domain.SlotMapping{
		ID:                 uuid.New().String(),
		StudentID:          profile.StudentID,
		AcademicSemesterID: sem.ID,
		Slot:               slot,
	}
	if err := repos.mappings.Create(ctx, m); err != nil {
		return nil, app.Wrap(app.ErrSemesterMapping, fmt.Sprintf("creating slot mapping for %s", slot), err)
	}
	return sem, nil
}

func resolvedSemester(sem *domain.AcademicSemester) *app.ResolvedSemester {
	if sem == nil {
		return nil
	}
	return &app.ResolvedSemester{ID: sem.ID, Name: sem.Name, AcademicYear: sem.AcademicYear}
}

func newPlannedAttempt(studentID string, slot domain.SemesterSlot) *domain.Attempt {
	return &domain.Attempt{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Slot:      slot,
		Status:    domain.AttemptPlanned,
	}
}

// attemptFromItem turns a generated placement into a planned attempt.
func attemptFromItem(studentID string, p planner.Placement) *domain.Attempt {
	a := newPlannedAttempt(studentID, p.Slot)
	if p.Item.IsPlaceholder() {
		a.PlaceholderTitle = p.Item.Title
		a.PlaceholderCredits = p.Item.Credits
		a.CategoryName = p.Item.Category
		return a
	}
	a.CourseCode = p.Item.CourseCode
	if p.Item.Kind == planner.KindRetake {
		a.Notes = "retake"
	}
	return a
}
