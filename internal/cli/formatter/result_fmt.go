package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/degreeplan/internal/contract"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

func semesterNote(sem *contract.ResolvedSemester) string {
	if sem == nil {
		return ""
	}
	return Dim(fmt.Sprintf(" (%s %s)", sem.Name, sem.AcademicYear))
}

// FormatPlacement confirms an add or move.
func FormatPlacement(verb string, resp *contract.PlacementResponse) string {
	label := domain.CoalesceStr(resp.CourseCode, resp.Title)
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s%s  %s\n",
		StyleGreen.Render("✔"), verb, Bold(label), resp.Slot.String(), semesterNote(resp.Semester), TruncID(resp.AttemptID))
	b.WriteString(Warnings(resp.Warnings))
	return b.String()
}

func FormatRemoval(resp *contract.RemoveCourseResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Removed %s\n", StyleGreen.Render("✔"), Bold(domain.CoalesceStr(resp.CourseCode, resp.Title)))
	b.WriteString(Warnings(resp.Warnings))
	return b.String()
}

func FormatPrerequisites(resp *contract.PrerequisiteResponse) string {
	if resp.IsMet {
		return fmt.Sprintf("%s Prerequisites met for %s in %s\n", StyleGreen.Render("✔"), Bold(resp.CourseCode), resp.Slot.String())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s Prerequisites not met for %s in %s\n", StyleRed.Render("✖"), Bold(resp.CourseCode), resp.Slot.String())
	b.WriteString(Bullets(resp.Messages))
	return b.String()
}

func FormatValidation(resp *contract.ValidationResponse) string {
	var b strings.Builder
	if resp.IsValid {
		fmt.Fprintf(&b, "%s Placement in %s is valid%s\n", StyleGreen.Render("✔"), resp.Slot.String(), semesterNote(resp.ResolvedSemester))
	} else {
		fmt.Fprintf(&b, "%s Placement in %s is not valid\n", StyleRed.Render("✖"), resp.Slot.String())
		for _, e := range resp.Errors {
			b.WriteString(StyleRed.Render("  ✖ " + e))
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "  %s %s\n", Dim("semester load"), CreditLoad(resp.SlotCredits, resp.CreditLimit))
	b.WriteString(Warnings(resp.Warnings))
	return b.String()
}

// FormatGenerate summarizes a generation run: counts, per-semester loads
// and anything left unplaced.
func FormatGenerate(resp *contract.GeneratePlanResponse) string {
	s := resp.Summary
	var b strings.Builder
	b.WriteString(Header("Generated plan"))
	b.WriteString("\n")
	if s.Message != "" {
		b.WriteString(s.Message)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s placed: %d retakes, %d required, %d electives\n",
		Bold(fmt.Sprint(s.PlacedCount)), s.Retakes, s.Required, s.Electives)

	if len(s.Semesters) > 0 {
		rows := make([][]string, 0, len(s.Semesters))
		for _, sem := range s.Semesters {
			rows = append(rows, []string{sem.Slot.String(), CreditLoad(sem.Credits, sem.Limit), strings.Join(sem.Courses, ", ")})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"SEMESTER", "LOAD", "COURSES"}, rows))
	}

	if len(s.Unplaced) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d could not be placed:", len(s.Unplaced))))
		b.WriteString("\n")
		lines := make([]string, len(s.Unplaced))
		for i, u := range s.Unplaced {
			lines[i] = Bold(u.Item.Label()) + " " + Dim(u.Reason)
		}
		b.WriteString(Bullets(lines))
	}
	for _, c := range s.Cycles {
		b.WriteString(StyleRed.Render(fmt.Sprintf("  cycle ignored: %s → %s", c.From, c.To)))
		b.WriteString("\n")
	}
	return b.String()
}

func FormatProfile(p *domain.StudentProfile) string {
	lines := []string{
		fmt.Sprintf("%s %s", Dim("student "), Bold(p.StudentID)),
		fmt.Sprintf("%s %s", Dim("name    "), domain.CoalesceStr(p.Name, "-")),
		fmt.Sprintf("%s %s", Dim("major   "), p.MajorCode),
		fmt.Sprintf("%s %d", Dim("cohort  "), p.CohortYear),
		fmt.Sprintf("%s %s", Dim("current "), domain.NewSlot(p.CurrentYear, p.CurrentTerm).String()),
	}
	if p.MathTrack != "" {
		lines = append(lines, fmt.Sprintf("%s %s", Dim("math    "), p.MathTrack))
	}
	if p.CapstoneOption != "" {
		lines = append(lines, fmt.Sprintf("%s %s", Dim("capstone"), p.CapstoneOption))
	}
	return RenderBox("Student profile", strings.Join(lines, "\n")) + "\n"
}

func FormatImport(kind string, res *contract.ImportResult) string {
	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(res.Courses, "courses")
	add(res.Groups, "prerequisite groups")
	add(res.Categories, "categories")
	add(res.Requirements, "requirements")
	add(res.Categorizations, "categorizations")
	add(res.Semesters, "semesters")
	add(res.Students, "students")
	add(res.Attempts, "attempts")
	if len(parts) == 0 {
		parts = append(parts, "nothing")
	}
	return fmt.Sprintf("%s Imported %s: %s\n", StyleGreen.Render("✔"), kind, strings.Join(parts, ", "))
}

// FormatError renders an engine error with its code and details.
func FormatError(err error) string {
	ee := contract.AsEngineError(err)
	if ee == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", StyleRed.Render("✖"), Dim(string(ee.Code)), ee.Message)
	details := ee.Details
	if len(details) > 0 && details[0] == ee.Message {
		details = details[1:]
	}
	b.WriteString(Bullets(details))
	return b.String()
}
