package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/planner"
)

// fakeEngine overrides only the calls a test exercises.
type fakeEngine struct {
	app.Engine

	addReq      app.AddCourseRequest
	moveReq     app.MoveCourseRequest
	checkReq    app.CheckPrerequisitesRequest
	availReq    app.AvailableCoursesRequest
	generateReq app.GeneratePlanRequest
	err         error
}

func (f *fakeEngine) AddCourse(_ context.Context, req app.AddCourseRequest) (*app.PlacementResponse, error) {
	f.addReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &app.PlacementResponse{
		AttemptID:  "att-1",
		CourseCode: req.CourseCode,
		Slot:       req.Slot.Slot(),
		Warnings:   []string{"summer is light"},
	}, nil
}

func (f *fakeEngine) MoveCourse(_ context.Context, req app.MoveCourseRequest) (*app.PlacementResponse, error) {
	f.moveReq = req
	return &app.PlacementResponse{AttemptID: req.AttemptID, Slot: req.Slot.Slot(), Warnings: []string{}}, f.err
}

func (f *fakeEngine) CheckPrerequisites(_ context.Context, req app.CheckPrerequisitesRequest) (*app.PrerequisiteResponse, error) {
	f.checkReq = req
	return &app.PrerequisiteResponse{CourseCode: req.CourseCode, PrerequisiteResult: planner.PrerequisiteResult{IsMet: true}}, nil
}

func (f *fakeEngine) GetAvailableCourses(_ context.Context, req app.AvailableCoursesRequest) (*app.AvailableCoursesResponse, error) {
	f.availReq = req
	return &app.AvailableCoursesResponse{Slot: req.Slot.Slot(), Courses: []planner.AvailableCourse{}}, nil
}

func (f *fakeEngine) GenerateAutomaticPlan(_ context.Context, req app.GeneratePlanRequest) (*app.GeneratePlanResponse, error) {
	f.generateReq = req
	return &app.GeneratePlanResponse{Plan: domain.Plan{StudentID: req.StudentID}}, nil
}

func (f *fakeEngine) GetPlan(_ context.Context, req app.StudentRequest) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Plan{StudentID: req.StudentID, MajorCode: "CS"}, nil
}

func (f *fakeEngine) GetProfile(context.Context, app.StudentRequest) (*domain.StudentProfile, error) {
	panic("boom")
}

func newTestRouter(engine app.Engine) *gin.Engine {
	return NewRouter(engine, Options{Mode: gin.TestMode}, zerolog.Nop())
}

func do(t *testing.T, r http.Handler, method, path, body string, headers ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestHealthz(t *testing.T) {
	w, env := do(t, newTestRouter(&fakeEngine{}), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", env["data"].(map[string]any)["status"])
	meta := env["metadata"].(map[string]any)
	assert.NotEmpty(t, meta["request_id"])
	assert.NotEmpty(t, meta["timestamp"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	w, env := do(t, newTestRouter(&fakeEngine{}), http.MethodGet, "/healthz", "", "X-Request-ID", "req-42")

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", env["metadata"].(map[string]any)["request_id"])
}

func TestAddCourse_BindsPathAndBody(t *testing.T) {
	fake := &fakeEngine{}
	w, env := do(t, newTestRouter(fake), http.MethodPost, "/api/v1/students/S1/courses",
		`{"courseCode":"CS101","year":2,"semester":"spring"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "S1", fake.addReq.StudentID)
	assert.Equal(t, "CS101", fake.addReq.CourseCode)
	assert.Equal(t, app.SlotInput{Year: 2, Semester: domain.TermSpring}, fake.addReq.Slot)

	data := env["data"].(map[string]any)
	assert.Equal(t, "att-1", data["attemptId"])
	assert.Equal(t, []any{"summer is light"}, env["warnings"])
	assert.Nil(t, env["error"])
}

func TestAddCourse_MalformedBody(t *testing.T) {
	w, env := do(t, newTestRouter(&fakeEngine{}), http.MethodPost, "/api/v1/students/S1/courses",
		`{"courseCode":"CS101","year":1,"semester":"winter"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody := env["error"].(map[string]any)
	assert.Equal(t, string(app.ErrValidation), errBody["code"])
	assert.Contains(t, errBody["fields"].(map[string]any)["detail"], "invalid term")
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{app.NewError(app.ErrStudentNotFound, "Student not found: S9"), http.StatusNotFound, "STUDENT_NOT_FOUND"},
		{app.NewError(app.ErrInvalidSlot, "year 9 out of range 1..8"), http.StatusBadRequest, "INVALID_SLOT"},
		{app.NewError(app.ErrCourseAdd, "Prerequisites not met for CS201", "missing CS102"), http.StatusUnprocessableEntity, "COURSE_ADD_ERROR"},
		{app.NewError(app.ErrPlanGeneration, "failed"), http.StatusInternalServerError, "PLAN_GENERATION_ERROR"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w, env := do(t, newTestRouter(&fakeEngine{err: tt.err}), http.MethodGet, "/api/v1/students/S1/plan", "")

			assert.Equal(t, tt.status, w.Code)
			assert.Nil(t, env["data"])
			assert.Equal(t, tt.code, env["error"].(map[string]any)["code"])
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	w, _ := do(t, newTestRouter(&fakeEngine{err: assert.AnError}), http.MethodGet, "/api/v1/students/S1/plan", "")

	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestErrorDetailsAreReturned(t *testing.T) {
	fake := &fakeEngine{err: app.NewError(app.ErrCourseAdd, "Prerequisites not met for CS201", "Missing: CS102")}
	_, env := do(t, newTestRouter(fake), http.MethodPost, "/api/v1/students/S1/courses",
		`{"courseCode":"CS201","year":1,"semester":1}`)

	errBody := env["error"].(map[string]any)
	assert.Equal(t, "Prerequisites not met for CS201", errBody["message"])
	assert.Equal(t, []any{"Missing: CS102"}, errBody["details"])
}

func TestMoveCourse_UsesAttemptFromPath(t *testing.T) {
	fake := &fakeEngine{}
	w, _ := do(t, newTestRouter(fake), http.MethodPatch, "/api/v1/students/S1/courses/att-7",
		`{"year":3,"semester":"fall"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "att-7", fake.moveReq.AttemptID)
	assert.Equal(t, domain.NewSlot(3, domain.TermFall), fake.moveReq.Slot.Slot())
}

func TestCheckPrerequisites_OptionalSlot(t *testing.T) {
	fake := &fakeEngine{}
	r := newTestRouter(fake)

	w, env := do(t, r, http.MethodGet, "/api/v1/students/S1/prerequisites/CS201", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, fake.checkReq.Slot)
	assert.Equal(t, true, env["data"].(map[string]any)["isMet"])

	_, _ = do(t, r, http.MethodGet, "/api/v1/students/S1/prerequisites/CS201?year=2&semester=fall", "")
	require.NotNil(t, fake.checkReq.Slot)
	assert.Equal(t, app.SlotInput{Year: 2, Semester: domain.TermFall}, *fake.checkReq.Slot)
}

func TestAvailable_RequiresSlotQuery(t *testing.T) {
	fake := &fakeEngine{}
	r := newTestRouter(fake)

	w, env := do(t, r, http.MethodGet, "/api/v1/students/S1/available?semester=autumn", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := env["error"].(map[string]any)["fields"].(map[string]any)
	assert.Contains(t, fields, "year")
	assert.Contains(t, fields, "semester")

	w, _ = do(t, r, http.MethodGet, "/api/v1/students/S1/available?year=1&semester=summer", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.TermSummer, fake.availReq.Slot.Semester)
}

func TestGenerate_EmptyBodyUsesDefaults(t *testing.T) {
	fake := &fakeEngine{}
	w, _ := do(t, newTestRouter(fake), http.MethodPost, "/api/v1/students/S1/generate", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "S1", fake.generateReq.StudentID)
	assert.True(t, fake.generateReq.Balance())
	assert.Nil(t, fake.generateReq.Start)
}

func TestGenerate_WithOptions(t *testing.T) {
	fake := &fakeEngine{}
	_, _ = do(t, newTestRouter(fake), http.MethodPost, "/api/v1/students/S1/generate",
		`{"startYear":2,"startSemester":"spring","balanceCredits":false}`)

	assert.False(t, fake.generateReq.Balance())
	require.NotNil(t, fake.generateReq.Start)
	assert.Equal(t, app.SlotInput{Year: 2, Semester: domain.TermSpring}, *fake.generateReq.Start)
}

func TestAddCourse_ValidationFields(t *testing.T) {
	fake := &fakeEngine{}
	w, env := do(t, newTestRouter(fake), http.MethodPost, "/api/v1/students/S1/courses", `{"year":0,"semester":4}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := env["error"].(map[string]any)["fields"].(map[string]any)
	assert.Contains(t, fields, "courseCode")
	assert.Contains(t, fields, "year")
	assert.Contains(t, fields, "semester")
	assert.Empty(t, fake.addReq.StudentID, "engine must not be called")
}

func TestValidatePlacement_PlaceholderBody(t *testing.T) {
	fake := &placementEngine{}
	w, env := do(t, newTestRouter(fake), http.MethodPost, "/api/v1/students/S1/validate",
		`{"title":"Study abroad","credits":2,"year":1,"semester":"summer"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fake.req.Placeholder)
	assert.Equal(t, "Study abroad", fake.req.Placeholder.Title)
	assert.Equal(t, 2.0, fake.req.Placeholder.Credits)
	assert.Empty(t, fake.req.CourseCode)
	assert.Equal(t, []any{"light summer"}, env["warnings"])
}

func TestValidatePlacement_NeedsCourseOrTitle(t *testing.T) {
	w, env := do(t, newTestRouter(&placementEngine{}), http.MethodPost, "/api/v1/students/S1/validate",
		`{"year":1,"semester":"fall"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env["error"].(map[string]any)["fields"], "courseCode")
}

type placementEngine struct {
	app.Engine
	req app.ValidatePlacementRequest
}

func (p *placementEngine) ValidatePlacement(_ context.Context, req app.ValidatePlacementRequest) (*app.ValidationResponse, error) {
	p.req = req
	return &app.ValidationResponse{
		PlacementResult: planner.PlacementResult{IsValid: true, Errors: []string{}, Warnings: []string{"light summer"}},
		Slot:            req.Slot.Slot(),
	}, nil
}

func TestPanicBecomesInternalError(t *testing.T) {
	w, env := do(t, newTestRouter(&fakeEngine{}), http.MethodGet, "/api/v1/students/S1", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", env["error"].(map[string]any)["code"])
}

func TestUnknownRoute(t *testing.T) {
	w, env := do(t, newTestRouter(&fakeEngine{}), http.MethodGet, "/api/v2/nothing", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env["error"].(map[string]any)["message"], "unknown route")
}

func TestStatusFor_BusinessRules(t *testing.T) {
	for _, code := range []app.ErrorCode{
		app.ErrProfileIncomplete, app.ErrInvalidCourse, app.ErrPlaceholderAdd,
		app.ErrCourseMove, app.ErrPlaceholderMove, app.ErrPrerequisiteMove, app.ErrSemesterMapping,
	} {
		assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(code), code)
	}
	assert.Equal(t, http.StatusInternalServerError, StatusFor(app.ErrCourseRemove))
	assert.Equal(t, http.StatusNotFound, StatusFor(app.ErrCourseNotFound))
}
