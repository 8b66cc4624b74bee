package planner

import (
	"fmt"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

func course(code string, credits float64, offered ...domain.Term) domain.Course {
	return domain.Course{Code: code, Title: code + " Title", Credits: credits, Offered: offered, Active: true, Level: 100}
}

func group(courseCode, key string, external, internal domain.LogicOp, members ...string) domain.PrerequisiteGroup {
	return domain.PrerequisiteGroup{
		ID: key, Key: key, CourseCode: courseCode, Name: key,
		ExternalOp: external, InternalOp: internal, Courses: members,
	}
}

func required(code, category string, year int, term domain.Term) domain.Categorization {
	return domain.Categorization{
		ID: "cz-" + code, CourseCode: code, CategoryName: category, MajorGroup: "ALL",
		IsRequired: true, RecommendedYear: year, RecommendedSemester: term,
	}
}

func elective(code, category string) domain.Categorization {
	return domain.Categorization{ID: "cz-" + code, CourseCode: code, CategoryName: category, MajorGroup: "ALL"}
}

func requirement(major, category string, minCredits float64, minCourses int) domain.DegreeRequirement {
	return domain.DegreeRequirement{
		ID: major + "-" + category, MajorCode: major, CategoryName: category,
		MinCredits: minCredits, MinCourses: minCourses,
	}
}

func profileFor(major string) *domain.StudentProfile {
	return &domain.StudentProfile{
		StudentID: "S1", MajorCode: major, CohortYear: 2028,
		CurrentYear: 1, CurrentTerm: domain.TermFall,
	}
}

func slot(year int, term domain.Term) domain.SemesterSlot { return domain.NewSlot(year, term) }

var attemptSeq int

func completed(code, grade string, at domain.SemesterSlot) domain.Attempt {
	attemptSeq++
	return domain.Attempt{
		ID: fmt.Sprintf("a-%03d", attemptSeq), StudentID: "S1", CourseCode: code,
		Slot: at, Status: domain.AttemptCompleted, Grade: grade,
	}
}

func planned(code string, at domain.SemesterSlot) domain.Attempt {
	attemptSeq++
	return domain.Attempt{
		ID: fmt.Sprintf("a-%03d", attemptSeq), StudentID: "S1", CourseCode: code,
		Slot: at, Status: domain.AttemptPlanned,
	}
}

// csCatalog is a small computer science curriculum:
//
//	CS101 (fall/spring) -> CS102 -> CS201 -> CS301
//	MATH101 (fall), CS210 needs CS102 AND MATH101
func csCatalog() *Catalog {
	return NewCatalog(CatalogData{
		Courses: []domain.Course{
			course("CS101", 1, domain.TermFall, domain.TermSpring),
			course("CS102", 1, domain.TermFall, domain.TermSpring),
			course("CS201", 1, domain.TermFall),
			course("CS210", 1),
			course("CS301", 1, domain.TermSpring),
			course("MATH101", 1, domain.TermFall),
			course("HIST150", 1),
			course("ECON101", 1),
		},
		Groups: []domain.PrerequisiteGroup{
			group("CS102", "CS102-1", domain.LogicAll, domain.LogicAny, "CS101"),
			group("CS201", "CS201-1", domain.LogicAll, domain.LogicAny, "CS102"),
			group("CS210", "CS210-1", domain.LogicAll, domain.LogicAll, "CS102", "MATH101"),
			group("CS301", "CS301-1", domain.LogicAll, domain.LogicAny, "CS201"),
		},
		Categories: []domain.Category{
			{Name: domain.CategoryRequiredMajor, Parent: domain.ParentMajor, DisplayOrder: 1},
			{Name: "Mathematics & Quantitative", Parent: domain.ParentLiberalArtsCore, DisplayOrder: 2},
			{Name: domain.CategoryNonMajorElective, Parent: domain.ParentLiberalArtsCore, DisplayOrder: 3},
		},
		Requirements: []domain.DegreeRequirement{
			requirement("CS", domain.CategoryRequiredMajor, 5, 5),
			requirement("CS", "Mathematics & Quantitative", 1, 1),
			requirement("CS", domain.CategoryNonMajorElective, 2, 2),
		},
		Categorizations: []domain.Categorization{
			required("CS101", domain.CategoryRequiredMajor, 1, domain.TermFall),
			required("CS102", domain.CategoryRequiredMajor, 1, domain.TermSpring),
			required("CS201", domain.CategoryRequiredMajor, 2, domain.TermFall),
			required("CS210", domain.CategoryRequiredMajor, 2, domain.TermSpring),
			required("CS301", domain.CategoryRequiredMajor, 3, domain.TermSpring),
			required("MATH101", "Mathematics & Quantitative", 1, domain.TermFall),
			elective("HIST150", domain.CategoryNonMajorElective),
			elective("ECON101", domain.CategoryNonMajorElective),
		},
	})
}
