package planner

import (
	"math"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// ComputeProgress aggregates categorized attempts into per-category and
// overall completion. A category counts its own attempts and those of its
// sub-categories. Overall totals include top-level categories only.
func ComputeProgress(reqs []domain.DegreeRequirement, attempts []CategorizedAttempt, cat *Catalog) ([]domain.CategoryProgress, domain.OverallProgress) {
	courses := make(map[string]int)
	credits := make(map[string]float64)
	for _, a := range attempts {
		if !a.Counts() {
			continue
		}
		courses[a.Category]++
		credits[a.Category] += a.Credits
		if parent := cat.Category(a.Category).SubcategoryOf; parent != "" {
			courses[parent]++
			credits[parent] += a.Credits
		}
	}

	progress := make([]domain.CategoryProgress, 0, len(reqs))
	var overall domain.OverallProgress
	for _, r := range reqs {
		c := cat.Category(r.CategoryName)
		p := domain.CategoryProgress{
			Category:         r.CategoryName,
			Parent:           c.Parent,
			SubcategoryOf:    c.SubcategoryOf,
			IsSub:            c.IsSub(),
			EnforceMax:       r.EnforceMax,
			CoursesRequired:  r.MinCourses,
			CoursesCompleted: courses[r.CategoryName],
			CreditsRequired:  r.MinCredits,
			CreditsCompleted: credits[r.CategoryName],
		}
		if r.EnforceMax {
			p.CoursesCompleted = min(p.CoursesCompleted, p.CoursesRequired)
			p.CreditsCompleted = math.Min(p.CreditsCompleted, p.CreditsRequired)
		}
		p.CoursesRemaining = max(0, p.CoursesRequired-p.CoursesCompleted)
		p.CreditsRemaining = math.Max(0, p.CreditsRequired-p.CreditsCompleted)
		if p.CreditsRequired > 0 {
			p.Percentage = Percentage(p.CreditsCompleted, p.CreditsRequired)
		} else {
			p.Percentage = Percentage(float64(p.CoursesCompleted), float64(p.CoursesRequired))
		}
		p.Met = p.CoursesCompleted >= p.CoursesRequired && p.CreditsCompleted >= p.CreditsRequired
		progress = append(progress, p)

		if !p.IsSub {
			overall.CreditsRequired += p.CreditsRequired
			overall.CreditsCompleted += math.Min(p.CreditsCompleted, p.CreditsRequired)
			overall.CreditsRemaining += p.CreditsRemaining
		}
	}
	overall.Percentage = Percentage(overall.CreditsCompleted, overall.CreditsRequired)
	return progress, overall
}

// Percentage is min(100, round(completed/required*100)); zero required is 0%.
func Percentage(completed, required float64) int {
	if required <= 0 {
		return 0
	}
	return int(math.Min(100, math.Round(completed/required*100)))
}
