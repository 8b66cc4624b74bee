package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/alexanderramin/degreeplan/internal/planner"
)

func TestValidate_AddCourse(t *testing.T) {
	ok := AddCourseRequest{StudentID: "S1", CourseCode: "CS101", Slot: SlotInput{Year: 1, Semester: domain.TermFall}}
	assert.NoError(t, Validate(ok))

	bad := AddCourseRequest{StudentID: "S1", Slot: SlotInput{Year: 0, Semester: 4}}
	err := Validate(bad)
	require.Error(t, err)
	ee := AsEngineError(err)
	assert.Equal(t, ErrValidation, ee.Code)
	assert.Contains(t, ee.Fields, "courseCode")
	assert.Contains(t, ee.Fields, "slot.year")
	assert.Contains(t, ee.Fields, "slot.semester")
	assert.Len(t, ee.Details, 3)
}

func TestValidate_PlacementNeedsCourseOrPlaceholder(t *testing.T) {
	slot := SlotInput{Year: 2, Semester: domain.TermSpring}

	err := Validate(ValidatePlacementRequest{StudentID: "S1", Slot: slot})
	require.Error(t, err)
	assert.Contains(t, AsEngineError(err).Fields, "courseCode")

	withPlaceholder := ValidatePlacementRequest{
		StudentID:   "S1",
		Placeholder: &PlaceholderInput{Title: "Non-Major Electives 1", Credits: 1},
		Slot:        slot,
	}
	assert.NoError(t, Validate(withPlaceholder))

	withPlaceholder.Placeholder.Credits = 0
	err = Validate(withPlaceholder)
	require.Error(t, err)
	assert.Contains(t, AsEngineError(err).Fields, "placeholder.credits")
}

func TestValidate_SetProfile(t *testing.T) {
	req := SetProfileRequest{
		StudentID: "S1", MajorCode: "CS", CohortYear: 2028,
		CurrentYear: 1, CurrentSemester: domain.TermFall,
	}
	assert.NoError(t, Validate(req))

	req.CurrentYear = 9
	err := Validate(req)
	require.Error(t, err)
	assert.Contains(t, AsEngineError(err).Fields, "currentYear")
}

func TestGeneratePlanRequest_BalanceDefaultsTrue(t *testing.T) {
	assert.True(t, GeneratePlanRequest{}.Balance())
	off := false
	assert.False(t, GeneratePlanRequest{BalanceCredits: &off}.Balance())
}

func TestCountRequirements(t *testing.T) {
	items := []planner.RemainingItem{
		{Kind: planner.KindRetake, CourseCode: "CS101"},
		{Kind: planner.KindRequired, CourseCode: "CS201"},
		{Kind: planner.KindRequired, CourseCode: "CS210"},
		{Kind: planner.KindElective, Title: "Non-Major Electives 1"},
	}
	assert.Equal(t, RequirementCounts{Retakes: 1, Required: 2, Electives: 1, Total: 4}, CountRequirements(items))
}
