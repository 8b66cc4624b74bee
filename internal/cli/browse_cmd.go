package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/contract"
)

func newBrowseCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the plan in a scrollable full-screen view",
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := opts.studentID()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			load := func() (string, error) {
				plan, err := app.Engine.GetPlan(ctx, contract.StudentRequest{StudentID: studentID})
				if err != nil {
					return "", err
				}
				return formatter.FormatPlan(plan), nil
			}

			// Without a terminal there is nothing to scroll: print once.
			if !app.interactive() {
				out, err := load()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}

			model := newBrowseModel("degreeplan · "+studentID, load)
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}
