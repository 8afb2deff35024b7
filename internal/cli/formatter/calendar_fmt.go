package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/domain"
)

// ShootDayLabel returns the day's shoot number or a dim dash.
func ShootDayLabel(d *domain.CalendarDay) string {
	if d.ShootDay == nil {
		return Dim("-")
	}
	return strconv.Itoa(*d.ShootDay)
}

// DayRow is the table row used by both the calendar listing and the browser.
func DayRow(d *domain.CalendarDay) []string {
	return []string{
		d.Date,
		d.DayOfWeek[:min(3, len(d.DayOfWeek))],
		DayTypeBadge(d.DayType),
		ShootDayLabel(d),
		OrDash(Truncate(d.MainUnit, 28)),
		OrDash(Truncate(d.Location, 22)),
		AreaSwatch(d.LocationArea, d.LocationAreaColor),
		OrDash(strings.Join(d.Departments, ",")),
		Truncate(d.DisplayNotes(), 32),
	}
}

// DayHeaders matches DayRow.
var DayHeaders = []string{"DATE", "DAY", "TYPE", "#", "MAIN UNIT", "LOCATION", "AREA", "DEPTS", "NOTES"}

// FormatCalendar renders every day of the calendar, with a month header
// whenever the month changes.
func FormatCalendar(p *domain.Project, cal *domain.Calendar) string {
	if cal == nil || len(cal.Days) == 0 {
		return Dim("No calendar generated yet.")
	}
	var b strings.Builder
	var month string
	var rows [][]string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		b.WriteString(Header(month) + "\n")
		b.WriteString(RenderTable(DayHeaders, rows) + "\n")
		rows = nil
	}
	for i := range cal.Days {
		d := &cal.Days[i]
		m := fmt.Sprintf("%s %d", d.MonthName, d.Year)
		if m != month {
			flush()
			month = m
		}
		rows = append(rows, DayRow(d))
	}
	flush()
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Title), Dim(fmt.Sprintf("%s, %s",
		Plural(len(cal.Days), "day"), Plural(cal.ShootDayCount(), "shoot day"))))
	return strings.TrimRight(b.String(), "\n")
}

// FormatDay renders the full detail of one day.
func FormatDay(d *domain.CalendarDay) string {
	sun := Dim("--")
	if d.SunTimes != nil {
		sun = d.SunTimes.Display()
	}
	split := Dim("no")
	if d.IsSplitDay {
		split = StyleYellow.Render("yes")
	}
	pairs := [][2]string{
		{"date", fmt.Sprintf("%s %s", d.DayOfWeek, d.Date)},
		{"type", DayTypeBadge(d.DayType)},
		{"shoot day", ShootDayLabel(d)},
		{"main unit", OrDash(d.MainUnit)},
		{"sequence", OrDash(d.Sequence)},
		{"location", OrDash(d.Location)},
		{"area", AreaSwatch(d.LocationArea, d.LocationAreaColor)},
		{"2nd unit", OrDash(d.SecondUnit)},
		{"2nd unit loc", OrDash(d.SecondUnitLocation)},
		{"departments", OrDash(strings.Join(d.Departments, ", "))},
		{"extras", fmt.Sprintf("%d (%d featured)", d.Extras, d.FeaturedExtras)},
		{"split day", split},
		{"sun", sun},
		{"notes", OrDash(d.DisplayNotes())},
	}
	return RenderBox("Day", KeyValue(pairs...))
}

// FormatCounts renders the calendar aggregates. Department ids are shown by
// code through defs.
func FormatCounts(cal *domain.Calendar, defs domain.Definitions) string {
	builtins := []struct{ key, label string }{
		{calendar.CountMain, "main unit"},
		{calendar.CountSecondUnit, "second unit"},
		{calendar.CountSixthDay, "sixth day"},
		{calendar.CountSplitDay, "split day"},
	}
	var rows [][]string
	for _, c := range builtins {
		rows = append(rows, []string{c.label, strconv.Itoa(cal.DepartmentCounts[c.key])})
	}
	for _, d := range defs.Departments {
		rows = append(rows, []string{d.Code, strconv.Itoa(cal.DepartmentCounts[d.ID])})
	}
	out := Header("Departments") + "\n" + RenderTable([]string{"COUNT", "DAYS"}, rows)

	if len(cal.LocationCounts) > 0 {
		out += "\n" + Header("Locations") + "\n" + RenderTable([]string{"LOCATION", "DAYS"}, sortedCounts(cal.LocationCounts, nil))
	}
	if len(cal.AreaCounts) > 0 {
		swatch := func(id string) string {
			if a, ok := defs.AreaByID(id); ok {
				return AreaSwatch(a.Name, a.DisplayColor())
			}
			return AreaSwatch(id, cal.AreaColorMap[id])
		}
		out += "\n" + Header("Areas") + "\n" + RenderTable([]string{"AREA", "DAYS"}, sortedCounts(cal.AreaCounts, swatch))
	}
	return strings.TrimRight(out, "\n")
}

// sortedCounts orders by count descending, then key.
func sortedCounts(m map[string]int, label func(string) string) [][]string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]] != m[names[j]] {
			return m[names[i]] > m[names[j]]
		}
		return names[i] < names[j]
	})
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		l := n
		if label != nil {
			l = label(n)
		}
		rows = append(rows, []string{l, strconv.Itoa(m[n])})
	}
	return rows
}
