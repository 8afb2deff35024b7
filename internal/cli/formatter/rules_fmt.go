package formatter

import (
	"strings"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// FormatRules renders every exception rule of a project, grouped by kind.
func FormatRules(rules domain.RuleSet) string {
	var sections []string
	if len(rules.Holidays) > 0 {
		rows := make([][]string, 0, len(rules.Holidays))
		for _, h := range rules.Holidays {
			rows = append(rows, []string{h.Date, h.Name, yesNo(h.IsWorking), yesNo(h.IsShootDay), Dim(h.ID)})
		}
		sections = append(sections, Header("Holidays")+"\n"+RenderTable([]string{"DATE", "NAME", "WORKING", "SHOOT", "ID"}, rows))
	}
	if len(rules.Hiatus) > 0 {
		rows := make([][]string, 0, len(rules.Hiatus))
		for _, h := range rules.Hiatus {
			rows = append(rows, []string{h.StartDate, h.EndDate, OrDash(h.Name), Dim(h.ID)})
		}
		sections = append(sections, Header("Hiatus")+"\n"+RenderTable([]string{"START", "END", "NAME", "ID"}, rows))
	}
	if len(rules.WorkingWeekends) > 0 {
		rows := make([][]string, 0, len(rules.WorkingWeekends))
		for _, w := range rules.WorkingWeekends {
			rows = append(rows, []string{w.Date, OrDash(w.Description), Dim(w.ID)})
		}
		sections = append(sections, Header("Working weekends")+"\n"+RenderTable([]string{"DATE", "DESCRIPTION", "ID"}, rows))
	}
	if len(rules.SpecialDates) > 0 {
		rows := make([][]string, 0, len(rules.SpecialDates))
		for _, s := range rules.SpecialDates {
			rows = append(rows, []string{s.Date, s.Type.Label(), s.Name, yesNo(s.IsWorking), Dim(s.ID)})
		}
		sections = append(sections, Header("Special dates")+"\n"+RenderTable([]string{"DATE", "TYPE", "NAME", "WORKING", "ID"}, rows))
	}
	if len(sections) == 0 {
		return Dim("No exception rules.")
	}
	return strings.TrimRight(strings.Join(sections, "\n"), "\n")
}

// FormatDefinitions renders the global areas, locations and departments.
func FormatDefinitions(defs domain.Definitions) string {
	var sections []string

	areaRows := make([][]string, 0, len(defs.Areas))
	for i := range defs.Areas {
		a := &defs.Areas[i]
		areaRows = append(areaRows, []string{AreaSwatch(a.Name, a.DisplayColor()), a.DisplayColor(), Dim(a.ID)})
	}
	sections = append(sections, Header("Areas")+"\n"+RenderTable([]string{"AREA", "COLOR", "ID"}, areaRows))

	locRows := make([][]string, 0, len(defs.Locations))
	for i := range defs.Locations {
		l := &defs.Locations[i]
		area := Dim("--")
		if a, ok := defs.AreaByID(l.AreaID); ok {
			area = AreaSwatch(a.Name, a.DisplayColor())
		}
		coords := Dim("--")
		if l.HasCoordinates() {
			coords = formatCoords(*l.Latitude, *l.Longitude)
		}
		locRows = append(locRows, []string{Bold(l.Name), area, OrDash(Truncate(l.Address, 30)), coords, Dim(l.ID)})
	}
	sections = append(sections, Header("Locations")+"\n"+RenderTable([]string{"NAME", "AREA", "ADDRESS", "COORDS", "ID"}, locRows))

	deptRows := make([][]string, 0, len(defs.Departments))
	for _, d := range defs.Departments {
		deptRows = append(deptRows, []string{Bold(d.Code), d.Name, Dim(d.ID)})
	}
	sections = append(sections, Header("Departments")+"\n"+RenderTable([]string{"CODE", "NAME", "ID"}, deptRows))

	return strings.TrimRight(strings.Join(sections, "\n"), "\n")
}
