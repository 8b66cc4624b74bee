package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

type handlers struct {
	engine app.Engine
}

// slotQuery reads ?year=&semester= into a slot. Both are required.
func slotQuery(c *gin.Context) (app.SlotInput, error) {
	fields := map[string]string{}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		fields["year"] = "year must be a number"
	}
	term, err := domain.ParseTerm(c.Query("semester"))
	if err != nil {
		fields["semester"] = err.Error()
	}
	if len(fields) > 0 {
		return app.SlotInput{}, &app.EngineError{Code: app.ErrValidation, Message: "invalid slot query", Fields: fields}
	}
	return slotOf(year, term), nil
}

func (h *handlers) getProfile(c *gin.Context) {
	p, err := h.engine.GetProfile(c.Request.Context(), app.StudentRequest{StudentID: c.Param("id")})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, p, nil)
}

func (h *handlers) setProfile(c *gin.Context) {
	var req app.SetProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.StudentID = c.Param("id")
	p, err := h.engine.SetProfile(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, p, nil)
}

func (h *handlers) getPlan(c *gin.Context) {
	plan, err := h.engine.GetPlan(c.Request.Context(), app.StudentRequest{StudentID: c.Param("id")})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, plan, nil)
}

func (h *handlers) getRequirements(c *gin.Context) {
	resp, err := h.engine.GetRequirements(c.Request.Context(), app.StudentRequest{StudentID: c.Param("id")})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, resp, nil)
}

func (h *handlers) getElectiveCategories(c *gin.Context) {
	resp, err := h.engine.GetElectiveCategories(c.Request.Context(), app.StudentRequest{StudentID: c.Param("id")})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, resp, nil)
}

func (h *handlers) getAvailable(c *gin.Context) {
	slot, err := slotQuery(c)
	if err != nil {
		fail(c, err)
		return
	}
	resp, err := h.engine.GetAvailableCourses(c.Request.Context(), app.AvailableCoursesRequest{
		StudentID: c.Param("id"),
		Slot:      slot,
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, resp, nil)
}

// checkPrerequisites evaluates at the query slot when given, otherwise at
// the student's current semester.
func (h *handlers) checkPrerequisites(c *gin.Context) {
	req := app.CheckPrerequisitesRequest{StudentID: c.Param("id"), CourseCode: c.Param("code")}
	if c.Query("year") != "" || c.Query("semester") != "" {
		slot, err := slotQuery(c)
		if err != nil {
			fail(c, err)
			return
		}
		req.Slot = &slot
	}
	resp, err := h.engine.CheckPrerequisites(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, resp, nil)
}

func (h *handlers) validatePlacement(c *gin.Context) {
	var body validateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.engine.ValidatePlacement(c.Request.Context(), body.request(c.Param("id")))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, resp, resp.Warnings)
}

func (h *handlers) addCourse(c *gin.Context) {
	var body courseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.engine.AddCourse(c.Request.Context(), app.AddCourseRequest{
		StudentID:  c.Param("id"),
		CourseCode: body.CourseCode,
		Slot:       slotOf(body.Year, body.Semester),
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, resp, resp.Warnings)
}

func (h *handlers) addPlaceholder(c *gin.Context) {
	var body placeholderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.engine.AddPlaceholder(c.Request.Context(), app.AddPlaceholderRequest{
		StudentID:   c.Param("id"),
		Placeholder: app.PlaceholderInput{Title: body.Title, Credits: body.Credits, Category: body.Category},
		Slot:        slotOf(body.Year, body.Semester),
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, resp, resp.Warnings)
}

func (h *handlers) moveCourse(c *gin.Context) {
	var body moveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.engine.MoveCourse(c.Request.Context(), app.MoveCourseRequest{
		StudentID: c.Param("id"),
		AttemptID: c.Param("attemptId"),
		Slot:      slotOf(body.Year, body.Semester),
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, resp, resp.Warnings)
}

func (h *handlers) removeCourse(c *gin.Context) {
	resp, err := h.engine.RemoveCourse(c.Request.Context(), app.RemoveCourseRequest{
		StudentID: c.Param("id"),
		AttemptID: c.Param("attemptId"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, resp, resp.Warnings)
}

// generate accepts an empty body for the defaults.
func (h *handlers) generate(c *gin.Context) {
	var body generateBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}
	}
	resp, err := h.engine.GenerateAutomaticPlan(c.Request.Context(), body.request(c.Param("id")))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, resp, nil)
}
