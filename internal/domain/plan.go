package domain

// Plan is the nested year/semester view of a student's attempts with
// requirement progress attached.
type Plan struct {
	StudentID  string             `json:"studentId"`
	MajorCode  string             `json:"majorCode"`
	CohortYear int                `json:"cohortYear"`
	Years      []PlanYear         `json:"years"`
	Categories []CategoryProgress `json:"categories"`
	Overall    OverallProgress    `json:"overall"`
}

type PlanYear struct {
	Year   int          `json:"year"`
	Fall   PlanSemester `json:"fall"`
	Spring PlanSemester `json:"spring"`
	Summer PlanSemester `json:"summer"`
}

// Semesters returns the year's semesters in term order.
func (y *PlanYear) Semesters() []*PlanSemester {
	return []*PlanSemester{&y.Fall, &y.Spring, &y.Summer}
}

type PlanSemester struct {
	Slot             SemesterSlot `json:"slot"`
	Courses          []PlanCourse `json:"courses"`
	TotalCredits     float64      `json:"totalCredits"`
	CreditLimit      float64      `json:"creditLimit"`
	HasCreditWarning bool         `json:"hasCreditWarning"`
}

type PlanCourse struct {
	AttemptID               string        `json:"attemptId"`
	CourseCode              string        `json:"courseCode,omitempty"`
	Title                   string        `json:"title"`
	Credits                 float64       `json:"credits"`
	Status                  AttemptStatus `json:"status"`
	Grade                   string        `json:"grade,omitempty"`
	IsPlaceholder           bool          `json:"isPlaceholder"`
	Category                string        `json:"category"`
	ParentCategory          string        `json:"parentCategory,omitempty"`
	Color                   string        `json:"color"`
	Passed                  bool          `json:"passed"`
	RetakeNeeded            bool          `json:"retakeNeeded"`
	IsLatestAttempt         bool          `json:"isLatestAttempt"`
	TotalAttempts           int           `json:"totalAttempts"`
	VoluntaryRetakePossible bool          `json:"voluntaryRetakePossible"`
	InfoMessage             string        `json:"infoMessage,omitempty"`
}

// CategoryProgress is completion of one requirement category.
type CategoryProgress struct {
	Category         string  `json:"category"`
	Parent           string  `json:"parent,omitempty"`
	SubcategoryOf    string  `json:"subcategoryOf,omitempty"`
	IsSub            bool    `json:"isSub"`
	EnforceMax       bool    `json:"enforceMax"`
	CoursesRequired  int     `json:"coursesRequired"`
	CoursesCompleted int     `json:"coursesCompleted"`
	CoursesRemaining int     `json:"coursesRemaining"`
	CreditsRequired  float64 `json:"creditsRequired"`
	CreditsCompleted float64 `json:"creditsCompleted"`
	CreditsRemaining float64 `json:"creditsRemaining"`
	Percentage       int     `json:"percentage"`
	Met              bool    `json:"met"`
}

// OverallProgress sums top-level categories only.
type OverallProgress struct {
	CreditsRequired  float64 `json:"totalCreditsRequired"`
	CreditsCompleted float64 `json:"totalCreditsCompleted"`
	CreditsRemaining float64 `json:"totalCreditsRemaining"`
	Percentage       int     `json:"percentage"`
}
