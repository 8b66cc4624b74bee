package app

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrStudentNotFound   ErrorCode = "STUDENT_NOT_FOUND"
	ErrProfileIncomplete ErrorCode = "PROFILE_INCOMPLETE"
	ErrCourseNotFound    ErrorCode = "COURSE_NOT_FOUND"
	ErrInvalidCourse     ErrorCode = "INVALID_COURSE"
	ErrCourseAdd         ErrorCode = "COURSE_ADD_ERROR"
	ErrPlaceholderAdd    ErrorCode = "PLACEHOLDER_ADD_ERROR"
	ErrCourseMove        ErrorCode = "COURSE_MOVE_ERROR"
	ErrPlaceholderMove   ErrorCode = "PLACEHOLDER_MOVE_ERROR"
	ErrPrerequisiteMove  ErrorCode = "PREREQUISITE_MOVE_ERROR"
	ErrCourseRemove      ErrorCode = "COURSE_REMOVE_ERROR"
	ErrSemesterMapping   ErrorCode = "SEMESTER_MAPPING_ERROR"
	ErrPlanGeneration    ErrorCode = "PLAN_GENERATION_ERROR"
	ErrInvalidSlot       ErrorCode = "INVALID_SLOT"
	ErrValidation        ErrorCode = "VALIDATION_ERROR"
	ErrInternal          ErrorCode = "INTERNAL_ERROR"
)

// EngineError is the only error type that crosses the engine boundary.
// Message is the first violated rule; Details carries the full list.
type EngineError struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Details []string          `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	cause   error
}

func (e *EngineError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *EngineError) Unwrap() error { return e.cause }

func NewError(code ErrorCode, message string, details ...string) *EngineError {
	return &EngineError{Code: code, Message: message, Details: details}
}

func Errorf(code ErrorCode, format string, args ...any) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause. The cause is kept for logs and
// errors.Is; its text never reaches callers.
func Wrap(code ErrorCode, message string, cause error) *EngineError {
	return &EngineError{Code: code, Message: message, cause: cause}
}

// AsEngineError recovers an EngineError from err. Any other non-nil error
// becomes INTERNAL_ERROR.
func AsEngineError(err error) *EngineError {
	if err == nil {
		return nil
	}
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee
	}
	return Wrap(ErrInternal, "internal error", err)
}

// CodeOf returns the engine code for err, or "" for nil.
func CodeOf(err error) ErrorCode {
	if ee := AsEngineError(err); ee != nil {
		return ee.Code
	}
	return ""
}
