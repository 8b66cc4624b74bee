package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}

// profileInput holds the profile form's fields as text so huh inputs can
// edit them.
type profileInput struct {
	Name      string
	Major     string
	Cohort    string
	Year      string
	Term      domain.Term
	MathTrack string
	Capstone  string
}

func profileInputFrom(p *domain.StudentProfile) profileInput {
	in := profileInput{Term: domain.TermFall}
	if p == nil {
		return in
	}
	in.Name = p.Name
	in.Major = p.MajorCode
	in.MathTrack = p.MathTrack
	in.Capstone = p.CapstoneOption
	if p.CohortYear > 0 {
		in.Cohort = strconv.Itoa(p.CohortYear)
	}
	if p.CurrentYear > 0 {
		in.Year = strconv.Itoa(p.CurrentYear)
	}
	if p.CurrentTerm.Valid() {
		in.Term = p.CurrentTerm
	}
	return in
}

func profileForm(studentID string, in *profileInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Student "+studentID),
			huh.NewInput().Title("Name").Value(&in.Name),
			huh.NewInput().Title("Major code").Placeholder("CS").Value(&in.Major).Validate(validateRequired("major")),
			huh.NewInput().Title("Cohort (expected graduation year)").Placeholder("2028").Value(&in.Cohort).Validate(validateIntRange(1990, 2100)),
		),
		huh.NewGroup(
			huh.NewInput().Title("Current program year").Placeholder("1").Value(&in.Year).Validate(validateIntRange(1, 8)),
			huh.NewSelect[domain.Term]().
				Title("Current semester").
				Options(
					huh.NewOption("Fall", domain.TermFall),
					huh.NewOption("Spring", domain.TermSpring),
					huh.NewOption("Summer", domain.TermSummer),
				).
				Value(&in.Term),
			huh.NewInput().Title("Math track (optional)").Value(&in.MathTrack),
			huh.NewInput().Title("Capstone option (optional)").Value(&in.Capstone),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func confirmForm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < lo || v > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}
