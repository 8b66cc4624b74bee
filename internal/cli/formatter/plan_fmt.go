package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// FormatPlan renders the year-by-year plan followed by requirement progress.
// Empty summers are omitted.
func FormatPlan(plan *domain.Plan) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Plan · %s · %s · cohort %d", plan.StudentID, plan.MajorCode, plan.CohortYear)))
	b.WriteString("\n")

	for i := range plan.Years {
		year := &plan.Years[i]
		b.WriteString("\n")
		b.WriteString(Bold(fmt.Sprintf("Year %d", year.Year)))
		b.WriteString("\n")
		for _, sem := range year.Semesters() {
			if sem.Slot.IsSummer() && len(sem.Courses) == 0 {
				continue
			}
			b.WriteString(FormatSemester(sem))
		}
	}

	b.WriteString("\n")
	b.WriteString(FormatProgress(plan.Categories, plan.Overall))
	return b.String()
}

// FormatSemester renders one semester heading and its courses.
func FormatSemester(sem *domain.PlanSemester) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %s\n", StyleBlue.Render(sem.Slot.Term.Label()), CreditLoad(sem.TotalCredits, sem.CreditLimit))
	if len(sem.Courses) == 0 {
		b.WriteString(Dim("    (empty)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, c := range sem.Courses {
		b.WriteString("    ")
		b.WriteString(courseLine(c))
		b.WriteString("\n")
	}
	return b.String()
}

func courseLine(c domain.PlanCourse) string {
	label := c.Title
	if c.CourseCode != "" {
		label = Bold(c.CourseCode) + " " + c.Title
	} else {
		label = StylePurple.Render("◇ ") + label
	}

	parts := []string{label, Dim(Credits(c.Credits) + " cr"), StatusPill(c.Status)}
	if c.Grade != "" {
		parts = append(parts, StatusStyle(c.Status).Render(c.Grade))
	}
	parts = append(parts, CategoryStyle(c.Color).Render(c.Category))
	if c.RetakeNeeded {
		parts = append(parts, StyleRed.Render("retake needed"))
	}
	if c.TotalAttempts > 1 {
		parts = append(parts, Dim(fmt.Sprintf("attempt %d", c.TotalAttempts)))
	}
	line := strings.Join(parts, "  ")
	if c.InfoMessage != "" {
		line += "\n      " + Dim(c.InfoMessage)
	}
	return line
}

// FormatProgress renders category completion and the overall total.
// Subcategories are indented under their parent.
func FormatProgress(categories []domain.CategoryProgress, overall domain.OverallProgress) string {
	rows := make([][]string, 0, len(categories))
	for _, cp := range categories {
		name := cp.Category
		if cp.IsSub {
			name = "  └ " + name
		}
		status := Dim("…")
		if cp.Met {
			status = StyleGreen.Render("✔")
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d/%d", cp.CoursesCompleted, cp.CoursesRequired),
			fmt.Sprintf("%s/%s", Credits(cp.CreditsCompleted), Credits(cp.CreditsRequired)),
			RenderProgress(cp.Percentage, 12),
			status,
		})
	}

	var b strings.Builder
	b.WriteString(Header("Requirements"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"CATEGORY", "COURSES", "CREDITS", "PROGRESS", ""}, rows))
	fmt.Fprintf(&b, "\n%s %s/%s credits  %s\n",
		Bold("Overall"),
		Credits(overall.CreditsCompleted), Credits(overall.CreditsRequired),
		RenderProgress(overall.Percentage, 20))
	return b.String()
}
