package importer

func intPtr(v int) *int { return &v }

func validCatalogSchema() *CatalogSchema {
	return &CatalogSchema{
		Courses: []CourseImport{
			{Code: "CS101", Title: "Intro to Programming", Credits: 1, Offered: []string{"fall", "spring"}},
			{Code: "CS102", Title: "Data Structures", Credits: 1, Prerequisites: []PrerequisiteGroup{
				{Courses: []string{"CS101"}},
			}},
			{Code: "AFR110", Title: "Politics of Ghana", Credits: 1},
		},
		Categories: []CategoryImport{
			{Name: "Required Major Classes"},
			{Name: "Non-Major Electives"},
			{Name: "Africana"},
		},
		Requirements: []RequirementImport{
			{Major: "cs", Category: "Required Major Classes", MinCredits: 2, MinCourses: 2},
			{Major: "cs", Category: "Non-Major Electives", MinCredits: 1, MinCourses: 1},
		},
		Categorizations: []CategorizationImport{
			{Course: "CS101", Category: "Required Major Classes", Required: true, RecommendedYear: 1, RecommendedSemester: "fall"},
			{Course: "CS102", Category: "Required Major Classes", Required: true, RecommendedYear: 1, RecommendedSemester: "spring"},
			{Course: "AFR110", Category: "Africana", MajorGroup: "non-eng"},
		},
		GradeRequirements: []GradeRequirementImport{{Major: "cs", Course: "CS101", MinimumGrade: "c"}},
		Semesters: []SemesterImport{
			{AcademicYear: "2024-2025", Sequence: 1, StartDate: "2024-08-19", EndDate: "2024-12-13"},
			{AcademicYear: "2024-2025", Sequence: 2},
		},
	}
}

func validStudentSchema() *StudentSchema {
	return &StudentSchema{Students: []StudentImport{{
		ID: "S1", Name: "Ama", Major: "cs", Cohort: 2028, CurrentYear: 1, CurrentSemester: "spring",
		Attempts: []AttemptImport{
			{Course: "CS101", Year: 1, Semester: "fall", Grade: "b+"},
			{Title: "Study abroad", Credits: 2, Year: 1, Semester: "summer"},
		},
	}}}
}
