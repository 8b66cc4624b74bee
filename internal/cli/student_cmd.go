package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/contract"
)

func newStudentCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage student profiles and records",
	}
	cmd.AddCommand(
		newStudentSetCmd(app, opts),
		newStudentShowCmd(app, opts),
		newStudentImportCmd(app, opts),
	)
	return cmd
}

func newStudentSetCmd(app *App, opts *rootOptions) *cobra.Command {
	var name, major, mathTrack, capstone string
	var cohort int
	var current *slotFlags
	var form bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update the selected student's profile",
		Long: "Create or update a profile. Flags override the stored values; " +
			"on a terminal, missing required fields are asked for interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			existing, err := app.Engine.GetProfile(ctx, contract.StudentRequest{StudentID: studentID})
			if err != nil && contract.AsEngineError(err).Code != contract.ErrStudentNotFound {
				return err
			}

			in := profileInputFrom(existing)
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = name
			}
			if flags.Changed("major") {
				in.Major = major
			}
			if flags.Changed("cohort") {
				in.Cohort = strconv.Itoa(cohort)
			}
			if flags.Changed("year") {
				in.Year = strconv.Itoa(current.year)
			}
			if flags.Changed("semester") {
				in.Term = current.term
			}
			if flags.Changed("math-track") {
				in.MathTrack = mathTrack
			}
			if flags.Changed("capstone") {
				in.Capstone = capstone
			}

			if app.interactive() && (form || in.Major == "" || in.Cohort == "" || in.Year == "") {
				if err := profileForm(studentID, &in).RunWithContext(ctx); err != nil {
					return err
				}
			}

			p, err := app.Engine.SetProfile(ctx, profileRequest(studentID, in))
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), p, func() string { return formatter.FormatProfile(p) })
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Student name")
	cmd.Flags().StringVar(&major, "major", "", "Major code, e.g. CS")
	cmd.Flags().IntVar(&cohort, "cohort", 0, "Cohort (expected graduation year)")
	current = addSlotFlags(cmd, "", "of the current semester", false)
	cmd.Flags().StringVar(&mathTrack, "math-track", "", "Math track")
	cmd.Flags().StringVar(&capstone, "capstone", "", "Capstone option")
	cmd.Flags().BoolVarP(&form, "interactive", "i", false, "Edit every field in a form")
	return cmd
}

// profileRequest converts form text into a request. Unparseable numbers
// become zero and are rejected by request validation.
func profileRequest(studentID string, in profileInput) contract.SetProfileRequest {
	cohort, _ := strconv.Atoi(strings.TrimSpace(in.Cohort))
	year, _ := strconv.Atoi(strings.TrimSpace(in.Year))
	return contract.SetProfileRequest{
		StudentID:       studentID,
		Name:            strings.TrimSpace(in.Name),
		MajorCode:       strings.ToUpper(strings.TrimSpace(in.Major)),
		CohortYear:      cohort,
		CurrentYear:     year,
		CurrentSemester: in.Term,
		MathTrack:       strings.TrimSpace(in.MathTrack),
		CapstoneOption:  strings.TrimSpace(in.Capstone),
	}
}

func newStudentShowCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected student's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			p, err := app.Engine.GetProfile(cmd.Context(), contract.StudentRequest{StudentID: studentID})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), p, func() string { return formatter.FormatProfile(p) })
		},
	}
}

func newStudentImportCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import student profiles and recorded attempts from a JSON or YAML file",
		Long:  "Each imported student's attempts replace the stored ones.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Imports == nil {
				return errors.New("import is not configured")
			}
			res, err := app.Imports.ImportStudents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), res, func() string { return formatter.FormatImport("students", res) })
		},
	}
}
