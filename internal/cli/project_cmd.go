package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var title, prep, shoot, wrap string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project and generate its calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{OwnerID: app.Owner, Title: title}
			if err := setProjectDates(p, prep, shoot, wrap); err != nil {
				return err
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Title, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&prep, "prep", "", "Prep start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&shoot, "shoot", "", "Shoot start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&wrap, "wrap", "", "Wrap date (YYYY-MM-DD, default four weeks after shoot start)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("prep")
	_ = cmd.MarkFlagRequired("shoot")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), app.Owner)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project and its shooting progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			cal, err := app.Calendars.Get(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProject(p, cal, app.now()))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var title, prep, shoot, wrap string
	var clearWrap, regenerate bool

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update a project's title or dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = title
			}
			if flags.Changed("prep") {
				if p.PrepStartDate, err = parseFlagDate("prep", prep); err != nil {
					return err
				}
			}
			if flags.Changed("shoot") {
				if p.ShootStartDate, err = parseFlagDate("shoot", shoot); err != nil {
					return err
				}
			}
			switch {
			case clearWrap:
				p.WrapDate = nil
			case flags.Changed("wrap"):
				w, err := parseFlagDate("wrap", wrap)
				if err != nil {
					return err
				}
				p.WrapDate = &w
			}

			if err := app.Projects.Update(cmd.Context(), p, regenerate); err != nil {
				return err
			}
			msg := "Updated project %s"
			if regenerate {
				msg += " and regenerated its calendar"
			}
			fmt.Fprintf(cmd.OutOrStdout(), msg+"\n", p.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&prep, "prep", "", "New prep start date")
	cmd.Flags().StringVar(&shoot, "shoot", "", "New shoot start date")
	cmd.Flags().StringVar(&wrap, "wrap", "", "New wrap date")
	cmd.Flags().BoolVar(&clearWrap, "clear-wrap", false, "Fall back to the default wrap date")
	cmd.Flags().BoolVar(&regenerate, "regenerate", false, "Regenerate the calendar for the new dates")
	cmd.MarkFlagsMutuallyExclusive("wrap", "clear-wrap")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <project-id>",
		Short: "Delete a project with its calendar, versions, rules and share links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(app, fmt.Sprintf("Delete %q and everything in it?", p.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Projects.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", p.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func setProjectDates(p *domain.Project, prep, shoot, wrap string) error {
	var err error
	if p.PrepStartDate, err = parseFlagDate("prep", prep); err != nil {
		return err
	}
	if p.ShootStartDate, err = parseFlagDate("shoot", shoot); err != nil {
		return err
	}
	if wrap != "" {
		w, err := parseFlagDate("wrap", wrap)
		if err != nil {
			return err
		}
		p.WrapDate = &w
	}
	return nil
}

func parseFlagDate(flag, value string) (time.Time, error) {
	t, err := domain.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return t, nil
}
