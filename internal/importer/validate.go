package importer

import (
	"fmt"
	"regexp"
	"time"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

var (
	academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)
	majorGroupPattern   = regexp.MustCompile(`^[A-Za-z0-9-]*$`)
)

// ValidateCatalogSchema checks a catalog seed before conversion and
// returns every problem found.
func ValidateCatalogSchema(schema *CatalogSchema) []error {
	var errs []error

	codes := make(map[string]bool)
	for i, c := range schema.Courses {
		at := fmt.Sprintf("courses[%d]", i)
		if c.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", at))
			continue
		}
		if codes[c.Code] {
			errs = append(errs, fmt.Errorf("%s.code %q is duplicated", at, c.Code))
		}
		codes[c.Code] = true
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", at))
		}
		if c.Credits <= 0 {
			errs = append(errs, fmt.Errorf("%s.credits must be positive", at))
		}
		for _, o := range c.Offered {
			if _, err := domain.ParseTerm(o); err != nil {
				errs = append(errs, fmt.Errorf("%s.offered: %w", at, err))
			}
		}
	}
	for i, c := range schema.Courses {
		for j, g := range c.Prerequisites {
			errs = append(errs, validateGroup(fmt.Sprintf("courses[%d].prerequisites[%d]", i, j), c.Code, g, codes)...)
		}
	}

	categories := make(map[string]bool)
	for i, c := range schema.Categories {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("categories[%d].name is required", i))
			continue
		}
		if categories[c.Name] {
			errs = append(errs, fmt.Errorf("categories[%d].name %q is duplicated", i, c.Name))
		}
		categories[c.Name] = true
	}
	for i, c := range schema.Categories {
		if c.SubcategoryOf != "" && !categories[c.SubcategoryOf] {
			errs = append(errs, fmt.Errorf("categories[%d].subcategory_of references unknown category %q", i, c.SubcategoryOf))
		}
	}

	for i, r := range schema.Requirements {
		at := fmt.Sprintf("requirements[%d]", i)
		if r.Major == "" {
			errs = append(errs, fmt.Errorf("%s.major is required", at))
		}
		if !categories[r.Category] {
			errs = append(errs, fmt.Errorf("%s.category references unknown category %q", at, r.Category))
		}
		if r.MinCredits < 0 || r.MinCourses < 0 {
			errs = append(errs, fmt.Errorf("%s: minimums must not be negative", at))
		}
		if r.MaxCredits != nil && *r.MaxCredits < r.MinCredits {
			errs = append(errs, fmt.Errorf("%s.max_credits is below min_credits", at))
		}
		if r.MaxCourses != nil && *r.MaxCourses < r.MinCourses {
			errs = append(errs, fmt.Errorf("%s.max_courses is below min_courses", at))
		}
		errs = append(errs, validateCohortRange(at, r.CohortFrom, r.CohortUntil)...)
	}

	for i, c := range schema.Categorizations {
		at := fmt.Sprintf("categorizations[%d]", i)
		if !codes[c.Course] {
			errs = append(errs, fmt.Errorf("%s.course references unknown course %q", at, c.Course))
		}
		if !categories[c.Category] {
			errs = append(errs, fmt.Errorf("%s.category references unknown category %q", at, c.Category))
		}
		if !majorGroupPattern.MatchString(c.MajorGroup) {
			errs = append(errs, fmt.Errorf("%s.major_group %q must be a major code or ALL, ENG, NON-ENG", at, c.MajorGroup))
		}
		if c.RecommendedSemester != "" {
			if _, err := domain.ParseTerm(c.RecommendedSemester); err != nil {
				errs = append(errs, fmt.Errorf("%s.recommended_semester: %w", at, err))
			}
		}
		if c.RecommendedYear < 0 || c.RecommendedYear > 8 {
			errs = append(errs, fmt.Errorf("%s.recommended_year %d out of range 0..8", at, c.RecommendedYear))
		}
		errs = append(errs, validateCohortRange(at, c.CohortFrom, c.CohortUntil)...)
	}

	for i, g := range schema.GradeRequirements {
		at := fmt.Sprintf("grade_requirements[%d]", i)
		if g.Major == "" {
			errs = append(errs, fmt.Errorf("%s.major is required", at))
		}
		if !codes[g.Course] {
			errs = append(errs, fmt.Errorf("%s.course references unknown course %q", at, g.Course))
		}
		if domain.GradeRank(g.MinimumGrade) < 0 {
			errs = append(errs, fmt.Errorf("%s.minimum_grade %q is not a letter grade", at, g.MinimumGrade))
		}
	}

	seen := make(map[string]bool)
	for i, s := range schema.Semesters {
		at := fmt.Sprintf("semesters[%d]", i)
		if !academicYearPattern.MatchString(s.AcademicYear) {
			errs = append(errs, fmt.Errorf("%s.academic_year %q must look like 2024-2025", at, s.AcademicYear))
		}
		if s.Sequence < 1 || s.Sequence > 3 {
			errs = append(errs, fmt.Errorf("%s.sequence %d out of range 1..3", at, s.Sequence))
		}
		key := fmt.Sprintf("%s/%d", s.AcademicYear, s.Sequence)
		if seen[key] {
			errs = append(errs, fmt.Errorf("%s: semester %s is duplicated", at, key))
		}
		seen[key] = true
		for _, d := range []string{s.StartDate, s.EndDate} {
			if d == "" {
				continue
			}
			if _, err := time.Parse("2006-01-02", d); err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", at, d))
			}
		}
	}

	return errs
}

func validateGroup(at, owner string, g PrerequisiteGroup, codes map[string]bool) []error {
	var errs []error
	if len(g.Courses) == 0 {
		errs = append(errs, fmt.Errorf("%s.courses must not be empty", at))
	}
	for _, c := range g.Courses {
		if c == owner {
			errs = append(errs, fmt.Errorf("%s: %s cannot require itself", at, owner))
		}
	}
	if _, err := domain.ParseLogicOp(g.ExternalOp, domain.LogicAll); err != nil {
		errs = append(errs, fmt.Errorf("%s.external_op: %w", at, err))
	}
	if _, err := domain.ParseLogicOp(g.InternalOp, domain.LogicAny); err != nil {
		errs = append(errs, fmt.Errorf("%s.internal_op: %w", at, err))
	}
	return append(errs, validateCohortRange(at, g.CohortStart, g.CohortEnd)...)
}

func validateCohortRange(at string, from, until *int) []error {
	if from != nil && until != nil && *until < *from {
		return []error{fmt.Errorf("%s: cohort range ends before it starts", at)}
	}
	return nil
}

// ValidateStudentSchema checks a student seed. knownCourse reports whether
// a course code exists in the stored catalog.
func ValidateStudentSchema(schema *StudentSchema, knownCourse func(string) bool) []error {
	var errs []error
	ids := make(map[string]bool)
	for i, s := range schema.Students {
		at := fmt.Sprintf("students[%d]", i)
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", at))
		} else if ids[s.ID] {
			errs = append(errs, fmt.Errorf("%s.id %q is duplicated", at, s.ID))
		}
		ids[s.ID] = true
		if s.Major == "" {
			errs = append(errs, fmt.Errorf("%s.major is required", at))
		}
		if s.Cohort < 1990 || s.Cohort > 2100 {
			errs = append(errs, fmt.Errorf("%s.cohort %d out of range", at, s.Cohort))
		}
		if s.CurrentYear < 1 || s.CurrentYear > 8 {
			errs = append(errs, fmt.Errorf("%s.current_year %d out of range 1..8", at, s.CurrentYear))
		}
		if _, err := domain.ParseTerm(s.CurrentSemester); err != nil {
			errs = append(errs, fmt.Errorf("%s.current_semester: %w", at, err))
		}
		for j, a := range s.Attempts {
			errs = append(errs, validateAttempt(fmt.Sprintf("%s.attempts[%d]", at, j), a, knownCourse)...)
		}
	}
	return errs
}

func validateAttempt(at string, a AttemptImport, knownCourse func(string) bool) []error {
	var errs []error
	switch {
	case a.Course == "" && a.Title == "":
		errs = append(errs, fmt.Errorf("%s: either course or title is required", at))
	case a.Course == "" && a.Credits <= 0:
		errs = append(errs, fmt.Errorf("%s: placeholder credits must be positive", at))
	case a.Course != "" && knownCourse != nil && !knownCourse(a.Course):
		errs = append(errs, fmt.Errorf("%s.course references unknown course %q", at, a.Course))
	}
	if a.Year < 1 || a.Year > 8 {
		errs = append(errs, fmt.Errorf("%s.year %d out of range 1..8", at, a.Year))
	}
	if _, err := domain.ParseTerm(a.Semester); err != nil {
		errs = append(errs, fmt.Errorf("%s.semester: %w", at, err))
	}
	status := domain.CoalesceStr(a.Status, defaultStatus(a))
	if !domain.ValidAttemptStatuses[status] {
		errs = append(errs, fmt.Errorf("%s.status %q is invalid", at, a.Status))
	}
	if a.Grade != "" && a.Grade != domain.GradePass && a.Grade != "I" && domain.GradeRank(a.Grade) < 0 {
		errs = append(errs, fmt.Errorf("%s.grade %q is not a letter grade", at, a.Grade))
	}
	return errs
}

// defaultStatus is completed for graded entries and planned otherwise.
func defaultStatus(a AttemptImport) string {
	if a.Grade != "" {
		return string(domain.AttemptCompleted)
	}
	return string(domain.AttemptPlanned)
}
