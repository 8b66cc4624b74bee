package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
)

func newCatalogCmd(app *App, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the course catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import courses, categories, requirements and semesters from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Imports == nil {
				return errors.New("import is not configured")
			}
			res, err := app.Imports.ImportCatalog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), res, func() string { return formatter.FormatImport("catalog", res) })
		},
	})
	return cmd
}
