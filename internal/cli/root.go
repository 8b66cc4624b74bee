package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/degreeplan/internal/cli/formatter"
	"github.com/alexanderramin/degreeplan/internal/contract"
)

// App holds the use cases driven by CLI commands.
type App struct {
	Engine  contract.Engine
	Imports contract.ImportUseCase

	// Serve runs the HTTP API until ctx is cancelled. Nil disables `serve`.
	Serve func(ctx context.Context) error

	// IsInteractive reports whether prompts and the browser may take over
	// the terminal.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

type rootOptions struct {
	student string
	json    bool
}

// NewRootCmd creates the top-level "degreeplan" command.
func NewRootCmd(app *App) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "degreeplan",
		Short:         "Degree planning engine for student course plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.student, "student", "s", os.Getenv("DEGREEPLAN_STUDENT"), "Student ID (defaults to $DEGREEPLAN_STUDENT)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print results as JSON")

	root.AddCommand(
		newCatalogCmd(app, opts),
		newStudentCmd(app, opts),
		newPlanCmd(app, opts),
		newBrowseCmd(app, opts),
		newServeCmd(app),
	)
	return root
}

func (o *rootOptions) studentID() (string, error) {
	if o.student == "" {
		return "", errors.New("no student selected: pass --student or set DEGREEPLAN_STUDENT")
	}
	return o.student, nil
}

// render prints v as JSON under --json, otherwise the formatted text.
func (o *rootOptions) render(w io.Writer, v any, text func() string) error {
	if o.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprint(w, text())
	return err
}

// RenderError formats a command failure for stderr. Engine errors keep
// their code and details.
func RenderError(err error) string {
	var ee *contract.EngineError
	if errors.As(err, &ee) {
		return formatter.FormatError(ee)
	}
	return formatter.StyleRed.Render("Error: "+err.Error()) + "\n"
}
