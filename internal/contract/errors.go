package contract

import "github.com/alexanderramin/degreeplan/internal/app"

type ErrorCode = app.ErrorCode

const (
	ErrStudentNotFound   ErrorCode = app.ErrStudentNotFound
	ErrProfileIncomplete ErrorCode = app.ErrProfileIncomplete
	ErrCourseNotFound    ErrorCode = app.ErrCourseNotFound
	ErrInvalidCourse     ErrorCode = app.ErrInvalidCourse
	ErrCourseAdd         ErrorCode = app.ErrCourseAdd
	ErrPlaceholderAdd    ErrorCode = app.ErrPlaceholderAdd
	ErrCourseMove        ErrorCode = app.ErrCourseMove
	ErrPlaceholderMove   ErrorCode = app.ErrPlaceholderMove
	ErrPrerequisiteMove  ErrorCode = app.ErrPrerequisiteMove
	ErrCourseRemove      ErrorCode = app.ErrCourseRemove
	ErrSemesterMapping   ErrorCode = app.ErrSemesterMapping
	ErrPlanGeneration    ErrorCode = app.ErrPlanGeneration
	ErrInvalidSlot       ErrorCode = app.ErrInvalidSlot
	ErrValidation        ErrorCode = app.ErrValidation
	ErrInternal          ErrorCode = app.ErrInternal
)

type EngineError = app.EngineError

func AsEngineError(err error) *EngineError {
	return app.AsEngineError(err)
}
