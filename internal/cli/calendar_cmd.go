package cli

import (
	"fmt"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/alexanderramin/shootcal/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Generate, view and edit shooting calendars",
	}

	cmd.AddCommand(
		newCalendarGenerateCmd(app),
		newCalendarShowCmd(app),
		newCalendarDayCmd(app),
		newCalendarEditCmd(app),
		newCalendarMoveCmd(app),
		newCalendarBrowseCmd(app),
		newCalendarRecountCmd(app),
	)

	return cmd
}

func newCalendarGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <project-id>",
		Short: "Regenerate the calendar from the project dates and rules",
		Long: "Regenerate the calendar from the project dates and rules.\n" +
			"Production content entered on days that still exist is kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			cal, err := app.Calendars.Generate(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s with %s\n",
				formatter.Plural(len(cal.Days), "day"), formatter.Plural(cal.ShootDayCount(), "shoot day"))
			return nil
		},
	}
}

func newCalendarShowCmd(app *App) *cobra.Command {
	var counts bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Print the calendar",
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
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatCalendar(p, cal))
			if counts {
				defs, err := app.Definitions.All(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.FormatCounts(cal, defs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&counts, "counts", false, "Also print department, location and area counts")
	return cmd
}

func newCalendarDayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day <project-id> <date>",
		Short: "Show one day in detail",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			day, err := app.Calendars.GetDay(cmd.Context(), p.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		},
	}
}

// dayFlags maps edit flags to day patch keys.
var dayFlags = []struct {
	flag, key, usage string
	isBool           bool
}{
	{flag: "main-unit", key: "mainUnit", usage: "Main unit description"},
	{flag: "sequence", key: "sequence", usage: "Sequence"},
	{flag: "location", key: "location", usage: "Location name"},
	{flag: "second-unit", key: "secondUnit", usage: "Second unit description"},
	{flag: "second-unit-location", key: "secondUnitLocation", usage: "Second unit location"},
	{flag: "departments", key: "departments", usage: "Comma-separated department codes"},
	{flag: "extras", key: "extras", usage: "Number of extras"},
	{flag: "featured-extras", key: "featuredExtras", usage: "Number of featured extras"},
	{flag: "notes", key: "notes", usage: "Notes"},
	{flag: "split-day", key: "isSplitDay", usage: "Mark as a split day", isBool: true},
}

// patchFromFlags collects only the flags the user set.
func patchFromFlags(flags *pflag.FlagSet) calendar.DayPatch {
	keys := make(map[string]string, len(dayFlags))
	for _, f := range dayFlags {
		keys[f.flag] = f.key
	}
	patch := calendar.DayPatch{}
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := keys[f.Name]; ok {
			patch[key] = f.Value.String()
		}
	})
	return patch
}

func newCalendarEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <project-id> <date>",
		Short: "Edit a day's production content",
		Long: "Edit a day's production content. Only the flags given are changed.\n" +
			"Without flags an interactive form is shown.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			date := args[1]

			patch := patchFromFlags(cmd.Flags())
			if len(patch) == 0 {
				if !app.interactive() {
					return fmt.Errorf("nothing to change: pass at least one field flag")
				}
				day, err := app.Calendars.GetDay(ctx, p.ID, date)
				if err != nil {
					return err
				}
				defs, err := app.Definitions.All(ctx)
				if err != nil {
					return err
				}
				values := dayFormFrom(day)
				if err := dayForm(day, values, defs).Run(); err != nil {
					return err
				}
				patch = values.patch()
			}

			day, err := app.Calendars.UpdateDay(ctx, p.ID, date, patch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDay(day))
			return nil
		},
	}

	for _, f := range dayFlags {
		if f.isBool {
			cmd.Flags().Bool(f.flag, false, f.usage)
		} else {
			cmd.Flags().String(f.flag, "", f.usage)
		}
	}
	return cmd
}

func newCalendarMoveCmd(app *App) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "move <project-id> <from-date> <to-date>",
		Short: "Swap the production content of two shoot days",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Calendars.MoveDay(cmd.Context(), p.ID, args[1], args[2], domain.MoveMode(mode))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s (shoot day %s)\n",
				res.OriginalDay.Date, res.TargetDay.Date, formatter.ShootDayLabel(&res.TargetDay))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(domain.MoveSwap), "Move mode (only swap is supported)")
	return cmd
}

func newCalendarBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <project-id>",
		Short: "Browse the calendar interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse needs a terminal: %w", errNotInteractive)
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			cal, err := app.Calendars.Get(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			m := newBrowseModel(cmd.Context(), app, p, cal)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

func newCalendarRecountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recount",
		Short: "Recompute the counts of every calendar against the current definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Calendars.RecountAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recounted %s\n", formatter.Plural(n, "calendar"))
			return nil
		},
	}
}
