package cli

import (
	"fmt"

	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Create a project, its rules and definitions from a YAML seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s [%s]: %s, %s, %s\n",
				res.Project.Title, res.Project.DisplayID(),
				formatter.Plural(res.RuleCount, "rule"),
				formatter.Plural(res.Definitions, "definition"),
				formatter.Plural(res.CalendarDays, "calendar day"))
			return nil
		},
	}
}
