package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/contract"
	"github.com/alexanderramin/degreeplan/internal/planner"
)

func kindLabel(k planner.RequirementKind) string {
	switch k {
	case planner.KindRetake:
		return StyleRed.Render("retake")
	case planner.KindRequired:
		return StyleYellow.Render("required")
	default:
		return StylePurple.Render("elective")
	}
}

// FormatRequirements lists what the student still has to take.
func FormatRequirements(resp *contract.RequirementsResponse) string {
	if len(resp.Items) == 0 {
		return StyleGreen.Render("All requirements are complete or planned.") + "\n"
	}
	rows := make([][]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		rec := ""
		if it.RecommendedYear > 0 {
			rec = fmt.Sprintf("Y%d", it.RecommendedYear)
			if it.RecommendedSemester.Valid() {
				rec += " " + it.RecommendedSemester.Label()
			}
		}
		rows = append(rows, []string{kindLabel(it.Kind), it.Label(), it.Title, Credits(it.Credits), it.Category, Dim(rec)})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"KIND", "COURSE", "TITLE", "CR", "CATEGORY", "RECOMMENDED"}, rows))
	c := resp.Counts
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d remaining: %d retakes, %d required, %d electives", c.Total, c.Retakes, c.Required, c.Electives)))
	return b.String()
}

// FormatAvailable lists courses that could be added to a semester.
func FormatAvailable(resp *contract.AvailableCoursesResponse) string {
	var b strings.Builder
	b.WriteString(Header("Available for " + resp.Slot.String()))
	b.WriteString("\n")
	if len(resp.Courses) == 0 {
		b.WriteString(Dim("No courses available."))
		b.WriteString("\n")
		return b.String()
	}
	rows := make([][]string, 0, len(resp.Courses))
	for _, c := range resp.Courses {
		notes := []string{}
		if c.IsRemainingRequirement {
			notes = append(notes, StyleYellow.Render("needed"))
		}
		if c.VoluntaryRetake {
			notes = append(notes, StyleBlue.Render("voluntary retake"))
		}
		if !c.OfferedInTerm {
			notes = append(notes, Dim("not offered this term"))
		}
		prereq := StyleGreen.Render("✔")
		if !c.PrerequisitesMet {
			prereq = StyleRed.Render("✖ " + strings.Join(c.MissingPrerequisites, ", "))
		}
		rows = append(rows, []string{Bold(c.Code), c.Title, Credits(c.Credits), c.Category, prereq, strings.Join(notes, " ")})
	}
	b.WriteString(RenderTable([]string{"CODE", "TITLE", "CR", "CATEGORY", "PREREQS", ""}, rows))
	return b.String()
}

func FormatElectiveCategories(resp *contract.ElectiveCategoriesResponse) string {
	if len(resp.Categories) == 0 {
		return Dim("No elective categories.") + "\n"
	}
	return Header("Elective categories") + "\n" + Bullets(resp.Categories)
}
