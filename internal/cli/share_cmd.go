package cli

import (
	"fmt"

	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newShareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Manage read-only access codes and share links",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <project-id>",
			Short: "Issue a new access code and share link",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := resolveProject(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				g, err := app.Access.Share(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.KeyValue(
					[2]string{"code", formatter.Bold(g.Code)},
					[2]string{"link", "/calendar/" + g.Token},
				))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list <project-id>",
			Short: "List access codes with view counts",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := resolveProject(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				grants, err := app.Access.List(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatShareList(grants))
				return nil
			},
		},
		&cobra.Command{
			Use:   "revoke <project-id>",
			Short: "Revoke every access code of a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := resolveProject(cmd.Context(), app, args[0])
				if err != nil {
					return err
				}
				n, err := app.Access.Revoke(cmd.Context(), p.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Revoked %s\n", formatter.Plural(n, "access code"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "open <code-or-token>",
			Short: "Show the published calendar behind an access code or link token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				g, err := app.Access.Resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				view, err := app.Versions.ResolveViewer(cmd.Context(), g.ProjectID, "", "")
				if err != nil {
					return err
				}
				if view.Calendar == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "This calendar has not been published yet.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendar(view.Project, view.Calendar))
				return nil
			},
		},
	)

	return cmd
}
