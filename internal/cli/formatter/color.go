package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DayTypeStyle returns the style used for a day of the given type.
func DayTypeStyle(t domain.DayType) lipgloss.Style {
	switch t {
	case domain.DayShoot:
		return StyleGreen
	case domain.DayWorkingWeekend:
		return StyleAqua
	case domain.DayPrep:
		return StyleBlue
	case domain.DayHoliday:
		return StylePurple
	case domain.DayHiatus:
		return StyleRed
	case domain.DayWeekend:
		return StyleDim
	default:
		return StyleFg
	}
}

// DayTypeBadge renders the day type as a short colored label.
func DayTypeBadge(t domain.DayType) string {
	label := map[domain.DayType]string{
		domain.DayShoot:          "SHOOT",
		domain.DayWorkingWeekend: "WKND SHOOT",
		domain.DayPrep:           "PREP",
		domain.DayHoliday:        "HOLIDAY",
		domain.DayHiatus:         "HIATUS",
		domain.DayWeekend:        "WEEKEND",
	}[t]
	if label == "" {
		label = strings.ToUpper(string(t))
	}
	return DayTypeStyle(t).Render(label)
}

// AreaSwatch renders a colored block followed by the area name. Days with no
// area render a dim placeholder.
func AreaSwatch(name, color string) string {
	if name == "" {
		return Dim("--")
	}
	if color == "" {
		color = domain.DefaultAreaColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■") + " " + name
}

// PublishedPill marks a version as published, latest or draft.
func PublishedPill(published, latest bool) string {
	switch {
	case latest:
		return StyleGreen.Render("● Latest")
	case published:
		return StyleBlue.Render("○ Published")
	default:
		return StyleYellow.Render("◌ Unpublished")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
