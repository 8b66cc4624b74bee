package planner

import (
	"sort"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// AvailableCourse is a candidate course for a target semester.
type AvailableCourse struct {
	Code                   string   `json:"code"`
	Title                  string   `json:"title"`
	Credits                float64  `json:"credits"`
	Category               string   `json:"category"`
	PrerequisitesMet       bool     `json:"prerequisitesMet"`
	MissingPrerequisites   []string `json:"missingPrerequisites,omitempty"`
	OfferedInTerm          bool     `json:"offeredInTerm"`
	IsRemainingRequirement bool     `json:"isRemainingRequirement"`
	VoluntaryRetake        bool     `json:"voluntaryRetake"`
}

// AvailableCourses lists active courses the student could add to target:
// remaining requirements first, then voluntary retakes, then everything else.
// Passed courses without a voluntary retake and courses already in the plan
// are excluded.
func AvailableCourses(cat *Catalog, profile *domain.StudentProfile, policy Policy, states []AttemptState,
	remaining []RemainingItem, target domain.SemesterSlot) []AvailableCourse {

	latest := LatestByCode(states)
	avail := AvailableBefore(states, target)
	outstanding := make(map[string]bool)
	for _, r := range remaining {
		if r.CourseCode != "" {
			outstanding[r.CourseCode] = true
		}
	}

	var out []AvailableCourse
	for _, code := range cat.Codes() {
		course, _ := cat.Course(code)
		if !course.Active {
			continue
		}
		ac := AvailableCourse{
			Code:                   code,
			Title:                  course.Title,
			Credits:                course.Credits,
			OfferedInTerm:          course.OfferedIn(target.Term),
			IsRemainingRequirement: outstanding[code],
			Category:               domain.CategoryNonMajorElective,
		}
		if row, ok := BestCategorization(cat, profile, policy, code); ok {
			ac.Category = row.CategoryName
		}
		if l := latest[code]; l != nil {
			if l.InProgress() || (l.Passed && !l.VoluntaryRetakePossible) {
				continue
			}
			ac.VoluntaryRetake = l.Passed && l.VoluntaryRetakePossible
		}
		pr := CheckPrerequisites(cat.PrerequisiteGroups(code), avail, profile.MajorCode, profile.CohortYear)
		ac.PrerequisitesMet = pr.IsMet
		ac.MissingPrerequisites = pr.Messages()
		out = append(out, ac)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := availableRank(out[i]), availableRank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func availableRank(c AvailableCourse) int {
	switch {
	case c.IsRemainingRequirement:
		return 0
	case c.VoluntaryRetake:
		return 1
	}
	return 2
}

// ElectiveCategories returns categories with an unmet quota that can take a
// placeholder. Non-Major Electives is always included.
func ElectiveCategories(progress []domain.CategoryProgress) []string {
	out := []string{domain.CategoryNonMajorElective}
	for _, p := range progress {
		if p.Met || p.Category == domain.CategoryNonMajorElective || p.Category == domain.CategoryRequiredMajor {
			continue
		}
		out = append(out, p.Category)
	}
	return out
}
