package calendar

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// DayPatch is a flat partial update for one day, as submitted by a form or
// a JSON body. Only keys present are applied.
type DayPatch map[string]any

var patchStringFields = map[string]func(*domain.CalendarDay) *string{
	"mainUnit":           func(d *domain.CalendarDay) *string { return &d.MainUnit },
	"sequence":           func(d *domain.CalendarDay) *string { return &d.Sequence },
	"location":           func(d *domain.CalendarDay) *string { return &d.Location },
	"locationArea":       func(d *domain.CalendarDay) *string { return &d.LocationArea },
	"notes":              func(d *domain.CalendarDay) *string { return &d.Notes },
	"secondUnit":         func(d *domain.CalendarDay) *string { return &d.SecondUnit },
	"secondUnitLocation": func(d *domain.CalendarDay) *string { return &d.SecondUnitLocation },
}

var patchIntFields = map[string]func(*domain.CalendarDay) *int{
	"extras":         func(d *domain.CalendarDay) *int { return &d.Extras },
	"featuredExtras": func(d *domain.CalendarDay) *int { return &d.FeaturedExtras },
}

// ApplyDayPatch applies patch to day. Integer fields that do not parse
// become 0. A location change re-resolves the day's area through the
// location definition; an unresolvable or cleared location clears the area.
func ApplyDayPatch(day *domain.CalendarDay, patch DayPatch, defs *domain.Definitions) {
	for key, field := range patchStringFields {
		if v, ok := patch[key]; ok {
			*field(day) = patchString(v)
		}
	}
	for key, field := range patchIntFields {
		if v, ok := patch[key]; ok {
			*field(day) = patchInt(v)
		}
	}
	if v, ok := patch["departments"]; ok {
		day.Departments = patchList(v)
	} else if day.Departments == nil {
		day.Departments = []string{}
	}
	if v, ok := patch["isSplitDay"]; ok {
		day.IsSplitDay = patchBool(v)
	}
	if _, ok := patch["location"]; ok {
		resolveLocationArea(day, defs)
	}
}

func resolveLocationArea(day *domain.CalendarDay, defs *domain.Definitions) {
	day.LocationArea = ""
	day.LocationAreaID = ""
	day.LocationAreaColor = ""
	if day.Location == "" || defs == nil {
		return
	}
	loc, ok := defs.LocationByName(day.Location)
	if !ok {
		return
	}
	area, ok := defs.AreaByID(loc.AreaID)
	if !ok {
		return
	}
	day.LocationArea = area.Name
	day.LocationAreaID = area.ID
	day.LocationAreaColor = area.DisplayColor()
}

// PromoteIfShooting turns a prep day on or after shoot start into a shoot
// day once it has a main unit or sequence. It reports whether it did.
func PromoteIfShooting(day *domain.CalendarDay, shootStart time.Time) bool {
	if !day.IsPrep || (day.MainUnit == "" && day.Sequence == "") {
		return false
	}
	date, err := day.ParsedDate()
	if err != nil || date.Before(truncateDay(shootStart)) {
		return false
	}
	day.IsPrep = false
	day.IsShootDay = true
	day.DayType = domain.DayShoot
	return true
}

// UpdateDay applies patch to the day at date, promotes it if needed,
// renumbers and recounts. It returns the updated day.
func (e *Engine) UpdateDay(cal *domain.Calendar, date string, patch DayPatch, defs domain.Definitions, shootStart time.Time) (*domain.CalendarDay, error) {
	idx := cal.DayIndex(date)
	if idx < 0 {
		return nil, domain.ErrDayNotFound
	}
	ApplyDayPatch(&cal.Days[idx], patch, &defs)
	if PromoteIfShooting(&cal.Days[idx], shootStart) {
		e.log.Info("prep day promoted to shoot day", "project_id", cal.ProjectID, "date", date)
		cal.Days = e.Renumber(cal.Days)
		if idx = cal.DayIndex(date); idx < 0 {
			return nil, domain.ErrDayNotFound
		}
	}
	e.Recount(cal, defs)
	day := cal.Days[idx]
	return &day, nil
}

func patchString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []string:
		if len(t) > 0 {
			return strings.TrimSpace(t[0])
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func patchInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func patchBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "on", "yes":
			return true
		}
	}
	return false
}

// patchList accepts a comma-separated string or a list and returns the
// trimmed, non-empty entries.
func patchList(v any) []string {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = strings.Split(t, ",")
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			raw = append(raw, patchString(item))
		}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
