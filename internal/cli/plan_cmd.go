package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/contract"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

func newPlanCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "View and edit the selected student's plan",
	}
	cmd.AddCommand(
		newPlanShowCmd(app, opts),
		newPlanAddCmd(app, opts),
		newPlanAddPlaceholderCmd(app, opts),
		newPlanMoveCmd(app, opts),
		newPlanRemoveCmd(app, opts),
		newPlanGenerateCmd(app, opts),
		newPlanCheckCmd(app, opts),
		newPlanValidateCmd(app, opts),
		newPlanRequirementsCmd(app, opts),
		newPlanAvailableCmd(app, opts),
		newPlanElectivesCmd(app, opts),
	)
	return cmd
}

func newPlanShowCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the plan by year and semester with requirement progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			plan, err := app.Engine.GetPlan(cmd.Context(), contract.StudentRequest{StudentID: studentID})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), plan, func() string { return formatter.FormatPlan(plan) })
		},
	}
}

func newPlanAddCmd(app *App, opts *rootOptions) *cobra.Command {
	var slot *slotFlags
	cmd := &cobra.Command{
		Use:   "add <course-code>",
		Short: "Add a catalog course to a semester",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			resp, err := app.Engine.AddCourse(cmd.Context(), contract.AddCourseRequest{
				StudentID:  studentID,
				CourseCode: args[0],
				Slot:       slot.input(),
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatPlacement("Added", resp) })
		},
	}
	slot = addSlotFlags(cmd, "", "to place the course in", true)
	return cmd
}

func newPlanAddPlaceholderCmd(app *App, opts *rootOptions) *cobra.Command {
	var slot *slotFlags
	var credits float64
	var category string
	cmd := &cobra.Command{
		Use:   "add-placeholder <title>",
		Short: "Reserve a semester slot with a placeholder, e.g. an elective not yet chosen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			resp, err := app.Engine.AddPlaceholder(cmd.Context(),
				contract.NewAddPlaceholderRequest(studentID, args[0], credits, category, slot.input()))
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatPlacement("Added", resp) })
		},
	}
	slot = addSlotFlags(cmd, "", "to place the placeholder in", true)
	cmd.Flags().Float64Var(&credits, "credits", 1, "Placeholder credits")
	cmd.Flags().StringVar(&category, "category", "", "Requirement category (default "+domain.CategoryNonMajorElective+")")
	return cmd
}

func newPlanMoveCmd(app *App, opts *rootOptions) *cobra.Command {
	var slot *slotFlags
	cmd := &cobra.Command{
		Use:   "move <attempt-id>",
		Short: "Move a planned course or placeholder to another semester",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			resp, err := app.Engine.MoveCourse(cmd.Context(), contract.MoveCourseRequest{
				StudentID: studentID,
				AttemptID: args[0],
				Slot:      slot.input(),
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatPlacement("Moved", resp) })
		},
	}
	slot = addSlotFlags(cmd, "", "to move to", true)
	return cmd
}

func newPlanRemoveCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <attempt-id>",
		Short: "Remove a planned course or placeholder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			resp, err := app.Engine.RemoveCourse(cmd.Context(), contract.RemoveCourseRequest{
				StudentID: studentID,
				AttemptID: args[0],
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatRemoval(resp) })
		},
	}
}

func newPlanGenerateCmd(app *App, opts *rootOptions) *cobra.Command {
	var from *slotFlags
	var noBalance, yes bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Replace planned courses with an automatically generated plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if app.interactive() && !yes {
				confirmed := false
				desc := "Planned courses and placeholders are replaced. Recorded grades are kept."
				if err := confirmForm(fmt.Sprintf("Regenerate the plan for %s?", studentID), desc, &confirmed).RunWithContext(ctx); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			req := contract.NewGeneratePlanRequest(studentID)
			req.Start = from.ptr()
			if noBalance {
				balance := false
				req.BalanceCredits = &balance
			}
			resp, err := app.Engine.GenerateAutomaticPlan(ctx, req)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string {
				return formatter.FormatGenerate(resp) + "\n" + formatter.FormatPlan(&resp.Plan)
			})
		},
	}
	from = addSlotFlags(cmd, "from-", "to start planning from (default: current semester)", false)
	cmd.Flags().BoolVar(&noBalance, "no-balance", false, "Fill each semester in order instead of spreading credits")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newPlanCheckCmd(app *App, opts *rootOptions) *cobra.Command {
	var slot *slotFlags
	cmd := &cobra.Command{
		Use:   "check <course-code>",
		Short: "Check prerequisites for a course (default: at the current semester)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			resp, err := app.Engine.CheckPrerequisites(cmd.Context(), contract.CheckPrerequisitesRequest{
				StudentID:  studentID,
				CourseCode: args[0],
				Slot:       slot.ptr(),
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatPrerequisites(resp) })
		},
	}
	slot = addSlotFlags(cmd, "", "to check at", false)
	return cmd
}

func newPlanValidateCmd(app *App, opts *rootOptions) *cobra.Command {
	var slot *slotFlags
	var moving, title, category string
	var credits float64
	cmd := &cobra.Command{
		Use:   "validate [course-code]",
		Short: "Dry-run a placement without changing the plan",
		Long:  "Validate placing a course, or a placeholder given by --title, in a semester. --moving validates relocating an existing attempt.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			req := contract.ValidatePlacementRequest{
				StudentID:       studentID,
				Slot:            slot.input(),
				MovingAttemptID: moving,
			}
			switch {
			case len(args) == 1:
				req.CourseCode = args[0]
			case title != "":
				req.Placeholder = &contract.PlaceholderInput{Title: title, Credits: credits, Category: category}
			case moving == "":
				return errors.New("give a course code, --title for a placeholder, or --moving")
			}
			resp, err := app.Engine.ValidatePlacement(cmd.Context(), req)
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatValidation(resp) })
		},
	}
	slot = addSlotFlags(cmd, "", "to validate against", true)
	cmd.Flags().StringVar(&moving, "moving", "", "Attempt ID being moved")
	cmd.Flags().StringVar(&title, "title", "", "Placeholder title")
	cmd.Flags().Float64Var(&credits, "credits", 1, "Placeholder credits")
	cmd.Flags().StringVar(&category, "category", "", "Placeholder category")
	return cmd
}

func newPlanRequirementsCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "requirements",
		Short: "List remaining requirements: retakes, required courses and elective slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			resp, err := app.Engine.GetRequirements(cmd.Context(), contract.StudentRequest{StudentID: studentID})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatRequirements(resp) })
		},
	}
}

func newPlanAvailableCmd(app *App, opts *rootOptions) *cobra.Command {
	var slot *slotFlags
	cmd := &cobra.Command{
		Use:   "available",
		Short: "List courses that could be added to a semester",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			resp, err := app.Engine.GetAvailableCourses(cmd.Context(), contract.AvailableCoursesRequest{
				StudentID: studentID,
				Slot:      slot.input(),
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatAvailable(resp) })
		},
	}
	slot = addSlotFlags(cmd, "", "to list courses for", true)
	return cmd
}

func newPlanElectivesCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "electives",
		Short: "List the elective categories open to the student",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			resp, err := app.Engine.GetElectiveCategories(cmd.Context(), contract.StudentRequest{StudentID: studentID})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatElectiveCategories(resp) })
		},
	}
}
