package cli

import (
	"fmt"

	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/spf13/cobra"
)

const rulesTakeEffect = "Run \"shootcal calendar generate\" to apply it."

func newRulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Aliases: []string{"rule"},
		Short:   "Manage holidays, hiatus periods, working weekends and special dates",
	}

	cmd.AddCommand(
		newRulesListCmd(app),
		newRulesAddHolidayCmd(app),
		newRulesAddHiatusCmd(app),
		newRulesAddWeekendCmd(app),
		newRulesAddSpecialCmd(app),
		newRulesRemoveCmd(app),
	)

	return cmd
}

func newRulesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's exception rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			rules, err := app.Rules.List(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRules(rules))
			return nil
		},
	}
}

func newRulesAddHolidayCmd(app *App) *cobra.Command {
	var h domain.Holiday

	cmd := &cobra.Command{
		Use:   "add-holiday <project-id>",
		Short: "Add a bank holiday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			h.ProjectID = p.ID
			if err := app.Rules.AddHoliday(cmd.Context(), &h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added holiday %s on %s. %s\n", h.Name, h.Date, rulesTakeEffect)
			return nil
		},
	}

	cmd.Flags().StringVar(&h.Date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&h.Name, "name", "", "Holiday name")
	cmd.Flags().BoolVar(&h.IsWorking, "working", false, "The crew works on this holiday")
	cmd.Flags().BoolVar(&h.IsShootDay, "shoot", false, "A working holiday that is also a shoot day")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRulesAddHiatusCmd(app *App) *cobra.Command {
	var h domain.HiatusPeriod

	cmd := &cobra.Command{
		Use:   "add-hiatus <project-id>",
		Short: "Add a hiatus period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			h.ProjectID = p.ID
			if err := app.Rules.AddHiatus(cmd.Context(), &h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added hiatus %s to %s. %s\n", h.StartDate, h.EndDate, rulesTakeEffect)
			return nil
		},
	}

	cmd.Flags().StringVar(&h.StartDate, "start", "", "First day of the hiatus")
	cmd.Flags().StringVar(&h.EndDate, "end", "", "Last day of the hiatus")
	cmd.Flags().StringVar(&h.Name, "name", "", "Name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newRulesAddWeekendCmd(app *App) *cobra.Command {
	var w domain.WorkingWeekend

	cmd := &cobra.Command{
		Use:   "add-weekend <project-id>",
		Short: "Mark a Saturday or Sunday as a shoot day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			w.ProjectID = p.ID
			if err := app.Rules.AddWorkingWeekend(cmd.Context(), &w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added working weekend %s. %s\n", w.Date, rulesTakeEffect)
			return nil
		},
	}

	cmd.Flags().StringVar(&w.Date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&w.Description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newRulesAddSpecialCmd(app *App) *cobra.Command {
	var s domain.SpecialDate
	var typ string

	cmd := &cobra.Command{
		Use:   "add-special <project-id>",
		Short: "Add a travel, meeting, rehearsal or other special date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			s.ProjectID = p.ID
			s.Type = domain.SpecialDateType(typ)
			if err := app.Rules.AddSpecialDate(cmd.Context(), &s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s on %s. %s\n", s.Type.Label(), s.Name, s.Date, rulesTakeEffect)
			return nil
		},
	}

	cmd.Flags().StringVar(&s.Date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&s.Name, "name", "", "Name")
	cmd.Flags().StringVar(&typ, "type", "", "travel, meeting, rehearsal or other (default other)")
	cmd.Flags().StringVar(&s.Description, "description", "", "Description")
	cmd.Flags().BoolVar(&s.IsWorking, "working", false, "The day stays a working day")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newRulesRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project-id> <kind> <rule-id>",
		Short: "Remove an exception rule",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			kind, err := parseRuleKind(args[1])
			if err != nil {
				return err
			}
			if err := app.Rules.Delete(cmd.Context(), kind, p.ID, args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed rule %s. %s\n", args[2], rulesTakeEffect)
			return nil
		},
	}
}
