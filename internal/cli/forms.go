package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errNotInteractive = errors.New("not an interactive terminal")

// shootcalHuhTheme returns a huh theme using the formatter palette.
func shootcalHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirm asks a yes/no question. Outside a terminal it refuses so that
// destructive commands need an explicit --yes.
func confirm(app *App, question string) (bool, error) {
	if !app.interactive() {
		return false, fmt.Errorf("%w: pass --yes to confirm", errNotInteractive)
	}
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(question).Affirmative("Yes").Negative("No").Value(&ok),
	)).WithTheme(shootcalHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// dayFormValues is the editable state of one day in the edit form.
type dayFormValues struct {
	mainUnit, sequence, location   string
	secondUnit, secondUnitLocation string
	departments, extras, featured  string
	notes                          string
	splitDay                       bool
}

func dayFormFrom(d *domain.CalendarDay) *dayFormValues {
	return &dayFormValues{
		mainUnit:           d.MainUnit,
		sequence:           d.Sequence,
		location:           d.Location,
		secondUnit:         d.SecondUnit,
		secondUnitLocation: d.SecondUnitLocation,
		departments:        strings.Join(d.Departments, ", "),
		extras:             strconv.Itoa(d.Extras),
		featured:           strconv.Itoa(d.FeaturedExtras),
		notes:              d.Notes,
		splitDay:           d.IsSplitDay,
	}
}

// patch returns every form field as a full replacement patch.
func (v *dayFormValues) patch() calendar.DayPatch {
	return calendar.DayPatch{
		"mainUnit":           v.mainUnit,
		"sequence":           v.sequence,
		"location":           v.location,
		"secondUnit":         v.secondUnit,
		"secondUnitLocation": v.secondUnitLocation,
		"departments":        v.departments,
		"extras":             v.extras,
		"featuredExtras":     v.featured,
		"notes":              v.notes,
		"isSplitDay":         v.splitDay,
	}
}

// dayForm builds the interactive day editor. Location suggestions come
// from the defined locations.
func dayForm(d *domain.CalendarDay, v *dayFormValues, defs domain.Definitions) *huh.Form {
	locations := make([]string, 0, len(defs.Locations))
	for _, l := range defs.Locations {
		locations = append(locations, l.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(fmt.Sprintf("%s %s", d.DayOfWeek, d.Date)),
			huh.NewInput().Title("Main unit").Value(&v.mainUnit),
			huh.NewInput().Title("Sequence").Value(&v.sequence),
			huh.NewInput().Title("Location").Suggestions(locations).Value(&v.location),
			huh.NewInput().Title("Departments").Description("Comma separated codes").Value(&v.departments),
		),
		huh.NewGroup(
			huh.NewInput().Title("Second unit").Value(&v.secondUnit),
			huh.NewInput().Title("Second unit location").Suggestions(locations).Value(&v.secondUnitLocation),
			huh.NewInput().Title("Extras").Value(&v.extras).Validate(validateCount),
			huh.NewInput().Title("Featured extras").Value(&v.featured).Validate(validateCount),
			huh.NewConfirm().Title("Split day?").Value(&v.splitDay),
			huh.NewText().Title("Notes").Value(&v.notes),
		),
	).WithTheme(shootcalHuhTheme()).WithShowHelp(false)
}

func validateCount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}
