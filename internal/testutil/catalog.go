package testutil

import (
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// CatalogFixture is a small catalog held as plain domain rows so any layer
// can persist it.
type CatalogFixture struct {
	Courses           []domain.Course
	Groups            []domain.PrerequisiteGroup
	Categories        []domain.Category
	Requirements      []domain.DegreeRequirement
	Categorizations   []domain.Categorization
	GradeRequirements []domain.GradeRequirement
	Semesters         []domain.AcademicSemester
}

// SampleCatalog is a computer science curriculum for the 2028 cohort:
//
//	CS101 -> CS102 -> CS201 -> CS301 (spring only)
//	MATH101 (fall only); CS210 needs CS102 and MATH101
//	HIST150, ECON101 and AFR110 ("Politics of Ghana") are non-major electives
//
// Academic semesters cover 2024-2025 through 2031-2032.
func SampleCatalog() CatalogFixture {
	fx := CatalogFixture{
		Courses: []domain.Course{
			{Code: "CS101", Title: "Intro to Programming", Department: "CS", Credits: 1, Level: 100, Offered: []domain.Term{domain.TermFall, domain.TermSpring}, Active: true},
			{Code: "CS102", Title: "Data Structures", Department: "CS", Credits: 1, Level: 100, Offered: []domain.Term{domain.TermFall, domain.TermSpring}, Active: true},
			{Code: "CS201", Title: "Algorithms", Department: "CS", Credits: 1, Level: 200, Offered: []domain.Term{domain.TermFall}, Active: true},
			{Code: "CS210", Title: "Discrete Structures", Department: "CS", Credits: 1, Level: 200, Active: true},
			{Code: "CS301", Title: "Operating Systems", Department: "CS", Credits: 1, Level: 300, Offered: []domain.Term{domain.TermSpring}, Active: true},
			{Code: "MATH101", Title: "Calculus I", Department: "MATH", Credits: 1, Level: 100, Offered: []domain.Term{domain.TermFall}, Active: true},
			{Code: "HIST150", Title: "World History", Department: "HIST", Credits: 1, Level: 100, Active: true},
			{Code: "ECON101", Title: "Principles of Economics", Department: "ECON", Credits: 1, Level: 100, Active: true},
			{Code: "AFR110", Title: "Politics of Ghana", Department: "SS", Credits: 1, Level: 100, Active: true},
		},
		Groups: []domain.PrerequisiteGroup{
			prereq("CS102", domain.LogicAny, "CS101"),
			prereq("CS201", domain.LogicAny, "CS102"),
			prereq("CS210", domain.LogicAll, "CS102", "MATH101"),
			prereq("CS301", domain.LogicAny, "CS201"),
		},
		Categories: []domain.Category{
			{ID: "cat-rm", Name: domain.CategoryRequiredMajor, Parent: domain.ParentMajor, DisplayOrder: 1},
			{ID: "cat-math", Name: "Mathematics & Quantitative", Parent: domain.ParentLiberalArtsCore, DisplayOrder: 2},
			{ID: "cat-nme", Name: domain.CategoryNonMajorElective, Parent: domain.ParentLiberalArtsCore, DisplayOrder: 3},
		},
		Requirements: []domain.DegreeRequirement{
			{ID: "req-cs-rm", MajorCode: "CS", CategoryName: domain.CategoryRequiredMajor, MinCredits: 5, MinCourses: 5},
			{ID: "req-cs-math", MajorCode: "CS", CategoryName: "Mathematics & Quantitative", MinCredits: 1, MinCourses: 1},
			{ID: "req-cs-nme", MajorCode: "CS", CategoryName: domain.CategoryNonMajorElective, MinCredits: 2, MinCourses: 2},
		},
		Categorizations: []domain.Categorization{
			requiredRow("CS101", domain.CategoryRequiredMajor, 1, domain.TermFall),
			requiredRow("CS102", domain.CategoryRequiredMajor, 1, domain.TermSpring),
			requiredRow("CS201", domain.CategoryRequiredMajor, 2, domain.TermFall),
			requiredRow("CS210", domain.CategoryRequiredMajor, 2, domain.TermSpring),
			requiredRow("CS301", domain.CategoryRequiredMajor, 3, domain.TermSpring),
			requiredRow("MATH101", "Mathematics & Quantitative", 1, domain.TermFall),
			electiveRow("HIST150", domain.CategoryNonMajorElective),
			electiveRow("ECON101", domain.CategoryNonMajorElective),
			electiveRow("AFR110", domain.CategoryNonMajorElective),
		},
		GradeRequirements: []domain.GradeRequirement{
			{ID: "gr-cs-cs101", MajorCode: "CS", CourseCode: "CS101", MinimumGrade: "C"},
		},
	}
	for start := 2024; start <= 2031; start++ {
		year := fmt.Sprintf("%d-%d", start, start+1)
		for seq, name := range []string{"Fall", "Spring", "Summer"} {
			fx.Semesters = append(fx.Semesters, domain.AcademicSemester{
				ID:             fmt.Sprintf("sem-%d-%d", start, seq+1),
				Name:           fmt.Sprintf("%s %s", name, year),
				AcademicYear:   year,
				SequenceNumber: seq + 1,
			})
		}
	}
	return fx
}

func prereq(course string, internal domain.LogicOp, members ...string) domain.PrerequisiteGroup {
	return domain.PrerequisiteGroup{
		ID: "pg-" + course, Key: course + "-1", CourseCode: course, Name: course + " prerequisites",
		ExternalOp: domain.LogicAll, InternalOp: internal, Courses: members,
	}
}

func requiredRow(code, category string, year int, term domain.Term) domain.Categorization {
	return domain.Categorization{
		ID: "cz-" + code, CourseCode: code, CategoryName: category, MajorGroup: domain.MajorGroupAll,
		IsRequired: true, RecommendedYear: year, RecommendedSemester: term,
	}
}

func electiveRow(code, category string) domain.Categorization {
	return domain.Categorization{ID: "cz-" + code, CourseCode: code, CategoryName: category, MajorGroup: domain.MajorGroupAll}
}
