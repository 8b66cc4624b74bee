package httpapi

import (
	"errors"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alexanderramin/degreeplan/internal/app"
)

// Envelope is the body of every API response.
type Envelope struct {
	Data     any        `json:"data"`
	Error    *ErrorBody `json:"error,omitempty"`
	Warnings []string   `json:"warnings"`
	Metadata Metadata   `json:"metadata"`
}

type ErrorBody struct {
	Code    app.ErrorCode     `json:"code"`
	Message string            `json:"message"`
	Details []string          `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func success(c *gin.Context, status int, data any, warnings []string) {
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(status, Envelope{Data: data, Warnings: warnings, Metadata: metadata(c)})
}

// fail writes err as an error envelope. Non-engine errors become INTERNAL_ERROR.
func fail(c *gin.Context, err error) {
	ee := app.AsEngineError(err)
	if ee.Code == app.ErrInternal {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(StatusFor(ee.Code), Envelope{
		Error: &ErrorBody{
			Code:    ee.Code,
			Message: ee.Message,
			Details: ee.Details,
			Fields:  ee.Fields,
		},
		Warnings: []string{},
		Metadata: metadata(c),
	})
}

// badRequest reports a body that could not be decoded or failed validation.
func badRequest(c *gin.Context, err error) {
	var ee *app.EngineError
	if errors.As(err, &ee) {
		fail(c, ee)
		return
	}
	fields := app.TranslateErrors(err)
	details := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		details = append(details, fields[k])
	}
	fail(c, &app.EngineError{
		Code:    app.ErrValidation,
		Message: "invalid request body",
		Details: details,
		Fields:  fields,
	})
}

// StatusFor maps an engine error code to its HTTP status.
func StatusFor(code app.ErrorCode) int {
	switch code {
	case app.ErrStudentNotFound, app.ErrCourseNotFound:
		return http.StatusNotFound
	case app.ErrValidation, app.ErrInvalidSlot:
		return http.StatusBadRequest
	case app.ErrProfileIncomplete, app.ErrInvalidCourse, app.ErrCourseAdd, app.ErrPlaceholderAdd,
		app.ErrCourseMove, app.ErrPlaceholderMove, app.ErrPrerequisiteMove, app.ErrSemesterMapping:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func metadata(c *gin.Context) Metadata {
	id := c.GetString(ContextKeyRequestID)
	if id == "" {
		id = uuid.New().String()
	}
	return Metadata{RequestID: id, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}
