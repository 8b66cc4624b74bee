package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/cache"
	"github.com/alexanderramin/degreeplan/internal/db"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/planner"
	"github.com/alexanderramin/degreeplan/internal/repository"
	"github.com/alexanderramin/degreeplan/internal/testutil"
)

type harness struct {
	db       *sql.DB
	cache    *cache.MemoryCache
	loader   *cache.Loader
	catalog  CatalogProvider
	profiles *StudentProfiles
	planning PlanningService
	profile  ProfileService
	imports  ImportService
	observer *recordingObserver
	attempts repository.AttemptRepo
	mappings repository.SlotMappingRepo
	students repository.StudentRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := newEmptyHarness(t)
	seedCatalog(t, h.db, testutil.SampleCatalog())
	return h
}

// newEmptyHarness wires the services over a migrated database with no catalog.
func newEmptyHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	h := &harness{
		db:       database,
		cache:    cache.NewMemoryCache(),
		observer: &recordingObserver{},
		attempts: repository.NewSQLiteAttemptRepo(database),
		mappings: repository.NewSQLiteSlotMappingRepo(database),
		students: repository.NewSQLiteStudentRepo(database),
	}
	h.loader = cache.NewLoader(h.cache, zerolog.Nop())
	h.catalog = NewCatalogProvider(repository.NewSQLiteCatalogRepo(database), h.loader, 0)
	h.profiles = NewStudentProfiles(h.students, h.loader, 0)
	h.planning = h.planningWith(testutil.NewTestUoW(database))
	h.profile = NewProfileService(h.students, h.profiles, h.observer)
	h.imports = NewImportService(testutil.NewTestUoW(database), h.catalog, h.profiles, h.observer)
	return h
}

func (h *harness) planningWith(uow db.UnitOfWork) PlanningService {
	return NewPlanningService(h.catalog, h.profiles, h.attempts,
		repository.NewSQLiteAcademicSemesterRepo(h.db), uow, planner.DefaultPolicy(), zerolog.Nop(), h.observer)
}

func seedCatalog(t *testing.T, database *sql.DB, fx testutil.CatalogFixture) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewSQLiteCatalogRepo(database)
	for i := range fx.Courses {
		require.NoError(t, repo.UpsertCourse(ctx, &fx.Courses[i]))
	}
	byCourse := make(map[string][]domain.PrerequisiteGroup)
	for _, g := range fx.Groups {
		byCourse[g.CourseCode] = append(byCourse[g.CourseCode], g)
	}
	for code, groups := range byCourse {
		require.NoError(t, repo.ReplacePrerequisites(ctx, code, groups))
	}
	for i := range fx.Categories {
		require.NoError(t, repo.UpsertCategory(ctx, &fx.Categories[i]))
	}
	for i := range fx.Requirements {
		require.NoError(t, repo.UpsertRequirement(ctx, &fx.Requirements[i]))
	}
	for i := range fx.Categorizations {
		require.NoError(t, repo.UpsertCategorization(ctx, &fx.Categorizations[i]))
	}
	for i := range fx.GradeRequirements {
		require.NoError(t, repo.UpsertGradeRequirement(ctx, &fx.GradeRequirements[i]))
	}
	semesters := repository.NewSQLiteAcademicSemesterRepo(database)
	for i := range fx.Semesters {
		require.NoError(t, semesters.Upsert(ctx, &fx.Semesters[i]))
	}
}

func (h *harness) student(t *testing.T, opts ...testutil.StudentOption) *domain.StudentProfile {
	t.Helper()
	p := testutil.NewTestStudent(opts...)
	require.NoError(t, h.students.Upsert(context.Background(), p))
	return p
}

func (h *harness) record(t *testing.T, a *domain.Attempt) *domain.Attempt {
	t.Helper()
	require.NoError(t, h.attempts.Create(context.Background(), a))
	return a
}

func (h *harness) add(t *testing.T, studentID, code string, year int, term domain.Term) *app.PlacementResponse {
	t.Helper()
	resp, err := h.planning.AddCourse(context.Background(), app.AddCourseRequest{
		StudentID: studentID, CourseCode: code, Slot: app.SlotInput{Year: year, Semester: term},
	})
	require.NoError(t, err)
	return resp
}

func slotIn(year int, term domain.Term) app.SlotInput {
	return app.SlotInput{Year: year, Semester: term}
}

// requireCode asserts err is an engine error with the given code.
func requireCode(t *testing.T, err error, code app.ErrorCode) *app.EngineError {
	t.Helper()
	require.Error(t, err)
	var ee *app.EngineError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, code, ee.Code, ee.Message)
	return ee
}

// placedCourses flattens a plan into code/title -> slot.
func placedCourses(plan domain.Plan) map[string]domain.SemesterSlot {
	out := make(map[string]domain.SemesterSlot)
	for _, y := range plan.Years {
		for _, sem := range y.Semesters() {
			for _, c := range sem.Courses {
				out[domain.CoalesceStr(c.CourseCode, c.Title)] = sem.Slot
			}
		}
	}
	return out
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}
