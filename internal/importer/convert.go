package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// seedNamespace derives stable row ids from natural keys so re-importing
// a seed replaces rows instead of duplicating them.
var seedNamespace = uuid.MustParse("5b0a4c3e-8f61-4d0e-9a57-2f1c6de0b8a4")

func stableID(parts ...string) string {
	return uuid.NewSHA1(seedNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}

func cohortKey(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

// CatalogBundle is a converted catalog seed ready for persistence.
type CatalogBundle struct {
	Courses []domain.Course
	// Prerequisites holds the complete group list per course code.
	Prerequisites     map[string][]domain.PrerequisiteGroup
	Categories        []domain.Category
	Requirements      []domain.DegreeRequirement
	Categorizations   []domain.Categorization
	GradeRequirements []domain.GradeRequirement
	Semesters         []domain.AcademicSemester
}

func (b *CatalogBundle) GroupCount() int {
	n := 0
	for _, gs := range b.Prerequisites {
		n += len(gs)
	}
	return n
}

// ConvertCatalog transforms a validated CatalogSchema into domain rows.
// Call ValidateCatalogSchema first.
func ConvertCatalog(schema *CatalogSchema) (*CatalogBundle, error) {
	b := &CatalogBundle{Prerequisites: make(map[string][]domain.PrerequisiteGroup)}

	for _, c := range schema.Courses {
		offered, err := domain.ParseOfferingPattern(strings.Join(c.Offered, ","))
		if err != nil {
			return nil, fmt.Errorf("course %s: %w", c.Code, err)
		}
		active := true
		if c.Active != nil {
			active = *c.Active
		}
		b.Courses = append(b.Courses, domain.Course{
			Code:       c.Code,
			Title:      c.Title,
			Department: c.Department,
			Credits:    c.Credits,
			Level:      c.Level,
			Offered:    offered,
			Active:     active,
		})

		groups := make([]domain.PrerequisiteGroup, 0, len(c.Prerequisites))
		for i, g := range c.Prerequisites {
			ext, err := domain.ParseLogicOp(g.ExternalOp, domain.LogicAll)
			if err != nil {
				return nil, fmt.Errorf("course %s prerequisite %d: %w", c.Code, i, err)
			}
			internal, err := domain.ParseLogicOp(g.InternalOp, domain.LogicAny)
			if err != nil {
				return nil, fmt.Errorf("course %s prerequisite %d: %w", c.Code, i, err)
			}
			key := domain.CoalesceStr(g.Key, fmt.Sprintf("%s-%d", c.Code, i+1))
			groups = append(groups, domain.PrerequisiteGroup{
				ID:               stableID("prereq", c.Code, key),
				Key:              key,
				CourseCode:       c.Code,
				Name:             domain.CoalesceStr(g.Name, c.Code+" prerequisites"),
				ExternalOp:       ext,
				InternalOp:       internal,
				IsConcurrent:     g.Concurrent,
				IsRecommended:    g.Recommended,
				MajorRestriction: g.MajorRestriction,
				CohortStart:      g.CohortStart,
				CohortEnd:        g.CohortEnd,
				SortOrder:        i,
				Courses:          g.Courses,
			})
		}
		b.Prerequisites[c.Code] = groups
	}

	for i, c := range schema.Categories {
		parent := domain.CoalesceStr(c.Parent, domain.DefaultParent(c.Name))
		order := c.DisplayOrder
		if order == 0 {
			order = i + 1
		}
		b.Categories = append(b.Categories, domain.Category{
			ID:            stableID("category", c.Name),
			Name:          c.Name,
			Parent:        parent,
			SubcategoryOf: domain.CoalesceStr(c.SubcategoryOf, domain.DefaultSubcategoryOf(c.Name)),
			DisplayOrder:  order,
			Color:         domain.CoalesceStr(c.Color, domain.CategoryColor(c.Name)),
		})
	}

	for _, r := range schema.Requirements {
		major := strings.ToUpper(r.Major)
		b.Requirements = append(b.Requirements, domain.DegreeRequirement{
			ID:           stableID("requirement", major, r.Category, cohortKey(r.CohortFrom), cohortKey(r.CohortUntil)),
			MajorCode:    major,
			CategoryName: r.Category,
			MinCredits:   r.MinCredits,
			MaxCredits:   r.MaxCredits,
			MinCourses:   r.MinCourses,
			MaxCourses:   r.MaxCourses,
			CohortFrom:   r.CohortFrom,
			CohortUntil:  r.CohortUntil,
			EnforceMax:   r.EnforceMax,
			Notes:        r.Notes,
		})
	}

	for _, c := range schema.Categorizations {
		var term domain.Term
		if c.RecommendedSemester != "" {
			t, err := domain.ParseTerm(c.RecommendedSemester)
			if err != nil {
				return nil, fmt.Errorf("categorization %s: %w", c.Course, err)
			}
			term = t
		}
		group := strings.ToUpper(domain.CoalesceStr(c.MajorGroup, domain.MajorGroupAll))
		b.Categorizations = append(b.Categorizations, domain.Categorization{
			ID:                  stableID("categorization", c.Course, c.Category, group, c.MathTrack, c.CapstoneOption, cohortKey(c.CohortFrom)),
			CourseCode:          c.Course,
			CategoryName:        c.Category,
			MajorGroup:          group,
			MathTrack:           c.MathTrack,
			CapstoneOption:      c.CapstoneOption,
			IsRequired:          c.Required,
			IsFlexible:          c.Flexible,
			RecommendedYear:     c.RecommendedYear,
			RecommendedSemester: term,
			CohortFrom:          c.CohortFrom,
			CohortUntil:         c.CohortUntil,
		})
	}

	for _, g := range schema.GradeRequirements {
		major := strings.ToUpper(g.Major)
		b.GradeRequirements = append(b.GradeRequirements, domain.GradeRequirement{
			ID:           stableID("grade", major, g.Course, cohortKey(g.CohortFrom)),
			MajorCode:    major,
			CourseCode:   g.Course,
			MinimumGrade: strings.ToUpper(g.MinimumGrade),
			CohortFrom:   g.CohortFrom,
			CohortUntil:  g.CohortUntil,
		})
	}

	for _, s := range schema.Semesters {
		sem := domain.AcademicSemester{
			ID:             domain.CoalesceStr(s.ID, stableID("semester", s.AcademicYear, fmt.Sprint(s.Sequence))),
			Name:           domain.CoalesceStr(s.Name, fmt.Sprintf("%s %s", domain.Term(s.Sequence).Label(), s.AcademicYear)),
			AcademicYear:   s.AcademicYear,
			SequenceNumber: s.Sequence,
		}
		var err error
		if sem.StartDate, err = parseDate(s.StartDate); err != nil {
			return nil, fmt.Errorf("semester %s: %w", sem.Name, err)
		}
		if sem.EndDate, err = parseDate(s.EndDate); err != nil {
			return nil, fmt.Errorf("semester %s: %w", sem.Name, err)
		}
		b.Semesters = append(b.Semesters, sem)
	}
	return b, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

// StudentBundle is a converted student seed.
type StudentBundle struct {
	Profiles []domain.StudentProfile
	// Attempts holds each student's complete attempt list by student id.
	Attempts map[string][]domain.Attempt
}

func (b *StudentBundle) AttemptCount() int {
	n := 0
	for _, as := range b.Attempts {
		n += len(as)
	}
	return n
}

// ConvertStudents transforms a validated StudentSchema into domain rows.
func ConvertStudents(schema *StudentSchema) (*StudentBundle, error) {
	b := &StudentBundle{Attempts: make(map[string][]domain.Attempt)}
	for _, s := range schema.Students {
		term, err := domain.ParseTerm(s.CurrentSemester)
		if err != nil {
			return nil, fmt.Errorf("student %s: %w", s.ID, err)
		}
		b.Profiles = append(b.Profiles, domain.StudentProfile{
			StudentID:      s.ID,
			Name:           s.Name,
			MajorCode:      strings.ToUpper(s.Major),
			MathTrack:      s.MathTrack,
			CapstoneOption: s.CapstoneOption,
			CohortYear:     s.Cohort,
			CurrentYear:    s.CurrentYear,
			CurrentTerm:    term,
		})

		attempts := make([]domain.Attempt, 0, len(s.Attempts))
		for i, a := range s.Attempts {
			at, err := domain.ParseTerm(a.Semester)
			if err != nil {
				return nil, fmt.Errorf("student %s attempt %d: %w", s.ID, i, err)
			}
			attempt := domain.Attempt{
				ID:         stableID("attempt", s.ID, fmt.Sprint(i), a.Course, a.Title),
				StudentID:  s.ID,
				CourseCode: a.Course,
				Slot:       domain.NewSlot(a.Year, at),
				Status:     domain.AttemptStatus(domain.CoalesceStr(a.Status, defaultStatus(a))),
				Grade:      strings.ToUpper(a.Grade),
				Notes:      a.Notes,
			}
			if a.Course == "" {
				attempt.PlaceholderTitle = a.Title
				attempt.PlaceholderCredits = a.Credits
				attempt.CategoryName = domain.CoalesceStr(a.Category, domain.CategoryNonMajorElective)
			}
			attempts = append(attempts, attempt)
		}
		b.Attempts[s.ID] = attempts
	}
	return b, nil
}
