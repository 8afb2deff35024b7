package cli

import (
	"fmt"

	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/spf13/cobra"
)

func newDefCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "def",
		Aliases: []string{"defs", "definitions"},
		Short:   "Manage the shared locations, areas and departments",
	}

	cmd.AddCommand(
		newDefListCmd(app),
		newDefAddAreaCmd(app),
		newDefAddLocationCmd(app),
		newDefAddDeptCmd(app),
		newDefRemoveCmd(app),
		newDefGeocodeCmd(app),
	)

	return cmd
}

func newDefListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := app.Definitions.All(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDefinitions(defs))
			return nil
		},
	}
}

func newDefAddAreaCmd(app *App) *cobra.Command {
	var a domain.Area

	cmd := &cobra.Command{
		Use:   "add-area",
		Short: "Add or replace an area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Definitions.SaveArea(cmd.Context(), &a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved area %s (%s)\n", a.Name, a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&a.ID, "id", "", "Existing area id to replace")
	cmd.Flags().StringVar(&a.Name, "name", "", "Area name")
	cmd.Flags().StringVar(&a.Color, "color", "", "Hex colour, e.g. #ff8800")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newDefAddLocationCmd(app *App) *cobra.Command {
	var l domain.Location
	var area string
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "add-location",
		Short: "Add or replace a location",
		Long: "Add or replace a location. A location with an address and no\n" +
			"coordinates is geocoded when geocoding is enabled.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if area != "" {
				defs, err := app.Definitions.All(ctx)
				if err != nil {
					return err
				}
				a, ok := defs.AreaByName(area)
				if !ok {
					a, ok = defs.AreaByID(area)
				}
				if !ok {
					return fmt.Errorf("unknown area %q", area)
				}
				l.AreaID = a.ID
			}
			if cmd.Flags().Changed("lat") {
				l.Latitude = &lat
			}
			if cmd.Flags().Changed("lng") {
				l.Longitude = &lng
			}
			if err := app.Definitions.SaveLocation(ctx, &l); err != nil {
				return err
			}
			coords := "no coordinates"
			if l.HasCoordinates() {
				coords = fmt.Sprintf("%.4f, %.4f", *l.Latitude, *l.Longitude)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved location %s (%s)\n", l.Name, coords)
			return nil
		},
	}

	cmd.Flags().StringVar(&l.ID, "id", "", "Existing location id to replace")
	cmd.Flags().StringVar(&l.Name, "name", "", "Location name as used on calendar days")
	cmd.Flags().StringVar(&area, "area", "", "Area name or id")
	cmd.Flags().StringVar(&l.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&l.Notes, "notes", "", "Notes")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.MarkFlagsRequiredTogether("lat", "lng")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newDefAddDeptCmd(app *App) *cobra.Command {
	var d domain.Department

	cmd := &cobra.Command{
		Use:   "add-dept",
		Short: "Add or replace a department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Definitions.SaveDepartment(cmd.Context(), &d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved department %s\n", d.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&d.ID, "id", "", "Existing department id to replace")
	cmd.Flags().StringVar(&d.Code, "code", "", "Short code used on calendar days, e.g. SFX")
	cmd.Flags().StringVar(&d.Name, "name", "", "Department name")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newDefRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <kind> <id>",
		Short: "Remove a location, area or department",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseDefinitionKind(args[0])
			if err != nil {
				return err
			}
			if err := app.Definitions.Delete(cmd.Context(), kind, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", kind, args[1])
			return nil
		},
	}
}

func newDefGeocodeCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "geocode <query>",
		Short: "Look up coordinates for a place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			places, err := app.Definitions.Geocode(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(places) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			rows := make([][]string, 0, len(places))
			for _, p := range places {
				rows = append(rows, []string{
					formatter.Bold(p.DisplayName),
					formatter.OrDash(p.City),
					fmt.Sprintf("%.4f, %.4f", p.Latitude, p.Longitude),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"PLACE", "CITY", "COORDS"}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of matches")
	return cmd
}
