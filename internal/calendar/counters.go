package calendar

import (
	"strings"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// Built-in department count keys that sit alongside department IDs.
const (
	CountMain       = "main"
	CountSecondUnit = "secondUnit"
	CountSixthDay   = "sixthDay"
	CountSplitDay   = "splitDay"
)

// Recount replaces every aggregate on cal: department counts, location and
// area counts, the area colour map, and area backfill on days.
func (e *Engine) Recount(cal *domain.Calendar, defs domain.Definitions) {
	deptCounts := make(map[string]int, len(defs.Departments)+4)
	for _, d := range defs.Departments {
		deptCounts[d.ID] = 0
	}
	deptCounts[CountMain] = 0
	deptCounts[CountSecondUnit] = 0
	deptCounts[CountSixthDay] = 0
	deptCounts[CountSplitDay] = 0

	locCounts := make(map[string]int)
	areaCounts := make(map[string]int)

	for i := range cal.Days {
		day := &cal.Days[i]

		for _, code := range day.Departments {
			if dept, ok := defs.DepartmentByCode(code); ok {
				deptCounts[dept.ID]++
			} else if strings.TrimSpace(code) != "" {
				e.log.Warn("unknown department code", "code", code, "date", day.Date)
			}
		}

		if day.IsShootDay {
			deptCounts[CountMain]++
			if isSaturday(day) {
				deptCounts[CountSixthDay]++
			}
			if day.IsSplitDay {
				deptCounts[CountSplitDay]++
			}
		}
		if strings.TrimSpace(day.SecondUnit) != "" {
			deptCounts[CountSecondUnit]++
		}

		if loc := day.Location; loc != "" && loc != "N/A" {
			locCounts[loc]++
			if areaID := backfillArea(day, &defs); areaID != "" {
				areaCounts[areaID]++
			}
		}
	}

	colors := make(map[string]string, len(defs.Areas)*2)
	for _, a := range defs.Areas {
		c := a.DisplayColor()
		colors[a.ID] = c
		colors[a.Name] = c
	}

	cal.DepartmentCounts = deptCounts
	cal.LocationCounts = locCounts
	cal.AreaCounts = areaCounts
	cal.AreaColorMap = colors
}

// backfillArea resolves the day's location to a known area, filling the
// area id, missing name and colour. It returns the area id, or "" when the
// location does not map to a defined area.
func backfillArea(day *domain.CalendarDay, defs *domain.Definitions) string {
	loc, ok := defs.LocationByName(day.Location)
	if !ok {
		return ""
	}
	a, ok := defs.AreaByID(loc.AreaID)
	if !ok {
		return ""
	}
	day.LocationAreaID = a.ID
	if day.LocationArea == "" {
		day.LocationArea = a.Name
	}
	day.LocationAreaColor = a.DisplayColor()
	return a.ID
}

func isSaturday(day *domain.CalendarDay) bool {
	if t, err := day.ParsedDate(); err == nil {
		return t.Weekday() == time.Saturday
	}
	return day.DayOfWeek == "Saturday"
}
