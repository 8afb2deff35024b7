package cli

import (
	"fmt"

	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newVersionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"versions"},
		Short:   "Snapshot, publish and view calendar versions",
	}

	cmd.AddCommand(
		newVersionListCmd(app),
		newVersionCreateCmd(app),
		newVersionPublishCmd(app),
		newVersionMigrateCmd(app),
		newVersionWorkspaceCmd(app),
		newVersionViewCmd(app),
	)

	return cmd
}

func newVersionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			versions, err := app.Versions.List(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVersionList(versions))
			return nil
		},
	}
}

func newVersionCreateCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "create <project-id> <number>",
		Short: "Snapshot the workspace as a new unpublished version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			v, err := app.Versions.Create(cmd.Context(), p.ID, args[1], notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created version %s (%s)\n", v.VersionNumber, v.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Release notes")
	return cmd
}

func newVersionPublishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <project-id> <version-id>",
		Short: "Publish a version and make it the one viewers see",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			v, err := app.Versions.Publish(cmd.Context(), p.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published version %s\n", v.VersionNumber)
			return nil
		},
	}
}

func newVersionMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <project-id>",
		Short: "Turn on versioning, publishing the current calendar as 1.0",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			v, err := app.Versions.MigrateToVersioned(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now versioned; published %s\n", p.Title, v.VersionNumber)
			return nil
		},
	}
}

func newVersionWorkspaceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "workspace <project-id>",
		Short: "Show whether the workspace has unpublished changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			ws, err := app.Versions.GetWorkspace(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkspace(ws))
			return nil
		},
	}
}

func newVersionViewCmd(app *App) *cobra.Command {
	var versionID, as string

	cmd := &cobra.Command{
		Use:   "view <project-id>",
		Short: "Show the calendar a viewer would see",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Versions.ResolveViewer(cmd.Context(), p.ID, versionID, as)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if view.Calendar == nil {
				fmt.Fprintln(out, "This calendar has not been published yet.")
				return nil
			}
			if view.Version != nil {
				fmt.Fprintf(out, "Version %s %s\n", view.Version.VersionNumber,
					formatter.PublishedPill(view.Version.IsPublished, view.Version.IsLatestPublished))
			}
			fmt.Fprintln(out, formatter.FormatCalendar(view.Project, view.Calendar))
			return nil
		},
	}

	cmd.Flags().StringVar(&versionID, "version", "", "Version id (default latest published)")
	cmd.Flags().StringVar(&as, "as", "", "View as this user id (default anonymous)")
	return cmd
}
