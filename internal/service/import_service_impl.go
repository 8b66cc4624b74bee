package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/importer"
	"github.com/alexanderramin/degreeplan/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	catalog  CatalogProvider
	profiles *StudentProfiles
	observer UseCaseObserver
}

func NewImportService(
	uow db.UnitOfWork,
	catalog CatalogProvider,
	profiles *StudentProfiles,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		uow:      uow,
		catalog:  catalog,
		profiles: profiles,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportCatalog(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadCatalogSchema(filePath)
	if err != nil {
		return nil, app.Wrap(app.ErrValidation, fmt.Sprintf("loading catalog file: %v", err), err)
	}
	return s.ImportCatalogSchema(ctx, schema)
}

// ImportCatalogSchema upserts every catalog row in one transaction and
// drops the cached catalog afterwards.
func (s *importService) ImportCatalogSchema(ctx context.Context, schema *importer.CatalogSchema) (result *app.ImportResult, err error) {
	done := track(ctx, s.observer, "import-catalog", "", nil)
	defer func() { err = engineErr(err); done(err) }()

	if errs := importer.ValidateCatalogSchema(schema); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	bundle, err := importer.ConvertCatalog(schema)
	if err != nil {
		return nil, app.Wrap(app.ErrValidation, err.Error(), err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		catalog := repository.NewSQLiteCatalogRepo(tx)
		semesters := repository.NewSQLiteAcademicSemesterRepo(tx)

		for i := range bundle.Courses {
			if err := catalog.UpsertCourse(ctx, &bundle.Courses[i]); err != nil {
				return err
			}
		}
		codes := make([]string, 0, len(bundle.Prerequisites))
		for code := range bundle.Prerequisites {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if err := catalog.ReplacePrerequisites(ctx, code, bundle.Prerequisites[code]); err != nil {
				return err
			}
		}
		for i := range bundle.Categories {
			if err := catalog.UpsertCategory(ctx, &bundle.Categories[i]); err != nil {
				return err
			}
		}
		for i := range bundle.Requirements {
			if err := catalog.UpsertRequirement(ctx, &bundle.Requirements[i]); err != nil {
				return err
			}
		}
		for i := range bundle.Categorizations {
			if err := catalog.UpsertCategorization(ctx, &bundle.Categorizations[i]); err != nil {
				return err
			}
		}
		for i := range bundle.GradeRequirements {
			if err := catalog.UpsertGradeRequirement(ctx, &bundle.GradeRequirements[i]); err != nil {
				return err
			}
		}
		for i := range bundle.Semesters {
			if err := semesters.Upsert(ctx, &bundle.Semesters[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(app.ErrInternal, "importing catalog", err)
	}
	s.catalog.Invalidate(ctx)

	return &app.ImportResult{
		Courses:         len(bundle.Courses),
		Groups:          bundle.GroupCount(),
		Categories:      len(bundle.Categories),
		Requirements:    len(bundle.Requirements),
		Categorizations: len(bundle.Categorizations),
		Semesters:       len(bundle.Semesters),
	}, nil
}

func (s *importService) ImportStudents(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadStudentSchema(filePath)
	if err != nil {
		return nil, app.Wrap(app.ErrValidation, fmt.Sprintf("loading student file: %v", err), err)
	}
	return s.ImportStudentSchema(ctx, schema)
}

// ImportStudentSchema upserts profiles and replaces each listed student's
// attempts with the seeded ones.
func (s *importService) ImportStudentSchema(ctx context.Context, schema *importer.StudentSchema) (result *app.ImportResult, err error) {
	done := track(ctx, s.observer, "import-students", "", nil)
	defer func() { err = engineErr(err); done(err) }()

	cat, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	known := func(code string) bool {
		_, ok := cat.Course(code)
		return ok
	}
	if errs := importer.ValidateStudentSchema(schema, known); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	bundle, err := importer.ConvertStudents(schema)
	if err != nil {
		return nil, app.Wrap(app.ErrValidation, err.Error(), err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		students := repository.NewSQLiteStudentRepo(tx)
		attempts := repository.NewSQLiteAttemptRepo(tx)
		for i := range bundle.Profiles {
			p := &bundle.Profiles[i]
			if err := students.Upsert(ctx, p); err != nil {
				return err
			}
			if _, err := attempts.DeleteByStudent(ctx, p.StudentID); err != nil {
				return err
			}
			for j := range bundle.Attempts[p.StudentID] {
				if err := attempts.Create(ctx, &bundle.Attempts[p.StudentID][j]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(app.ErrInternal, "importing students", err)
	}
	for _, p := range bundle.Profiles {
		s.profiles.Invalidate(ctx, p.StudentID)
	}
	return &app.ImportResult{Students: len(bundle.Profiles), Attempts: bundle.AttemptCount()}, nil
}

func validationFailed(errs []error) error {
	details := make([]string, len(errs))
	for i, e := range errs {
		details[i] = e.Error()
	}
	return &app.EngineError{
		Code:    app.ErrValidation,
		Message: fmt.Sprintf("import validation failed (%d errors): %s", len(errs), details[0]),
		Details: details,
	}
}
