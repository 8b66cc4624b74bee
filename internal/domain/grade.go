package domain

import "strings"

const (
	GradePass           = "P"
	GradeMinimumDefault = "D"
	GradeMinimumStrict  = "D+"
	// MaxAttemptsPerCourse is the retake ceiling.
	MaxAttemptsPerCourse = 3
)

var gradeLadder = []string{"E", "D", "D+", "C-", "C", "C+", "B-", "B", "B+", "A-", "A", "A+"}

// GradeRank orders letter grades; higher is better. Unknown grades rank -1.
func GradeRank(grade string) int {
	g := strings.ToUpper(strings.TrimSpace(grade))
	for i, l := range gradeLadder {
		if l == g {
			return i
		}
	}
	return -1
}

// GradeMeets reports whether grade satisfies minimum. P always passes;
// E, I, blank and unknown grades never do.
func GradeMeets(grade, minimum string) bool {
	g := strings.ToUpper(strings.TrimSpace(grade))
	switch g {
	case GradePass:
		return true
	case "", "E", "I":
		return false
	}
	if minimum == "" {
		minimum = GradeMinimumDefault
	}
	rank := GradeRank(g)
	return rank >= 0 && rank >= GradeRank(minimum)
}

// InVoluntaryRetakeBand reports whether a passing grade is low enough to
// allow a voluntary retake.
func InVoluntaryRetakeBand(grade string) bool {
	g := strings.ToUpper(strings.TrimSpace(grade))
	return g == "D+" || g == "D"
}
