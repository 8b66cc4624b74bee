package httpapi

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"

	"github.com/alexanderramin/degreeplan/internal/app"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

var bindingOnce sync.Once

// engineValidator runs gin bindings through the engine's request validator
// so body errors carry the same json field names and messages.
type engineValidator struct{}

func (engineValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return app.Validator().Struct(obj)
}

func (engineValidator) Engine() any { return app.Validator() }

func useEngineValidator() {
	bindingOnce.Do(func() { binding.Validator = engineValidator{} })
}

// Request bodies. Slots are flat year/semester pairs; semester accepts a
// number or a term name.

type courseBody struct {
	CourseCode string      `json:"courseCode" validate:"required"`
	Year       int         `json:"year" validate:"required,min=1"`
	Semester   domain.Term `json:"semester" validate:"required,min=1,max=3"`
}

type placeholderBody struct {
	Title    string      `json:"title" validate:"required,max=120"`
	Credits  float64     `json:"credits" validate:"gt=0,lte=6"`
	Category string      `json:"category"`
	Year     int         `json:"year" validate:"required,min=1"`
	Semester domain.Term `json:"semester" validate:"required,min=1,max=3"`
}

type validateBody struct {
	CourseCode      string      `json:"courseCode" validate:"required_without=Title"`
	Title           string      `json:"title"`
	Credits         float64     `json:"credits" validate:"omitempty,gt=0,lte=6"`
	Category        string      `json:"category"`
	Year            int         `json:"year" validate:"required,min=1"`
	Semester        domain.Term `json:"semester" validate:"required,min=1,max=3"`
	MovingAttemptID string      `json:"movingAttemptId"`
}

type moveBody struct {
	Year     int         `json:"year" validate:"required,min=1"`
	Semester domain.Term `json:"semester" validate:"required,min=1,max=3"`
}

type generateBody struct {
	StartYear      *int         `json:"startYear" validate:"omitempty,min=1"`
	StartSemester  *domain.Term `json:"startSemester" validate:"omitempty,min=1,max=3"`
	BalanceCredits *bool        `json:"balanceCredits"`
}

func slotOf(year int, term domain.Term) app.SlotInput {
	return app.SlotInput{Year: year, Semester: term}
}

func (b validateBody) request(studentID string) app.ValidatePlacementRequest {
	req := app.ValidatePlacementRequest{
		StudentID:       studentID,
		CourseCode:      b.CourseCode,
		Slot:            slotOf(b.Year, b.Semester),
		MovingAttemptID: b.MovingAttemptID,
	}
	if b.CourseCode == "" {
		req.Placeholder = &app.PlaceholderInput{Title: b.Title, Credits: b.Credits, Category: b.Category}
	}
	return req
}

func (b generateBody) request(studentID string) app.GeneratePlanRequest {
	req := app.GeneratePlanRequest{StudentID: studentID, BalanceCredits: b.BalanceCredits}
	if b.StartYear != nil {
		term := domain.TermFall
		if b.StartSemester != nil {
			term = *b.StartSemester
		}
		start := slotOf(*b.StartYear, term)
		req.Start = &start
	}
	return req
}
