package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// AutoNote is the annotation derived from exception rules. It is rewritten
// on every generation and kept apart from the user-authored Notes field.
type AutoNote struct {
	Kind AutoNoteKind `json:"kind"`
	Text string       `json:"text"`
}

// SunTimes holds local sunrise and sunset as "HH:MM".
type SunTimes struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// Display renders the pair as "06:30 - 18:45".
func (s SunTimes) Display() string {
	return fmt.Sprintf("%s - %s", s.Sunrise, s.Sunset)
}

type CalendarDay struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"dayOfWeek"`
	MonthName string `json:"monthName"`
	Day       int    `json:"day"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`

	IsPrep           bool    `json:"isPrep"`
	IsShootDay       bool    `json:"isShootDay"`
	IsWeekend        bool    `json:"isWeekend"`
	IsHoliday        bool    `json:"isHoliday"`
	IsWorkingHoliday bool    `json:"isWorkingHoliday"`
	IsHiatus         bool    `json:"isHiatus"`
	IsWorkingWeekend bool    `json:"isWorkingWeekend"`
	DayType          DayType `json:"dayType"`
	ShootDay         *int    `json:"shootDay"`

	MainUnit           string   `json:"mainUnit"`
	SecondUnit         string   `json:"secondUnit"`
	SecondUnitLocation string   `json:"secondUnitLocation"`
	Sequence           string   `json:"sequence"`
	Location           string   `json:"location"`
	LocationArea       string   `json:"locationArea"`
	LocationAreaID     string   `json:"locationAreaId"`
	LocationAreaColor  string   `json:"locationAreaColor,omitempty"`
	Departments        []string `json:"departments"`
	Extras             int      `json:"extras"`
	FeaturedExtras     int      `json:"featuredExtras"`
	IsSplitDay         bool     `json:"isSplitDay"`
	Notes              string   `json:"notes"`

	AutoNote *AutoNote `json:"autoNote,omitempty"`
	SunTimes *SunTimes `json:"sunTimes,omitempty"`
}

// ParsedDate returns the day's date, or an error when it is malformed.
func (d *CalendarDay) ParsedDate() (time.Time, error) {
	return ParseDate(d.Date)
}

// DisplayNotes joins the generated annotation and the user notes.
func (d *CalendarDay) DisplayNotes() string {
	switch {
	case d.AutoNote == nil:
		return d.Notes
	case d.Notes == "":
		return d.AutoNote.Text
	default:
		return d.AutoNote.Text + " / " + d.Notes
	}
}

// Clone returns a deep copy of the day.
func (d CalendarDay) Clone() CalendarDay {
	c := d
	c.ShootDay = clonePtr(d.ShootDay)
	c.AutoNote = clonePtr(d.AutoNote)
	c.SunTimes = clonePtr(d.SunTimes)
	if d.Departments != nil {
		c.Departments = append([]string(nil), d.Departments...)
	}
	return c
}

// Calendar is the generated document for one project. Unknown top-level
// keys read from storage are kept in Extra and written back unchanged.
type Calendar struct {
	ProjectID        string            `json:"projectId"`
	OwnerID          string            `json:"ownerId,omitempty"`
	Days             []CalendarDay     `json:"days"`
	DepartmentCounts map[string]int    `json:"departmentCounts"`
	LocationCounts   map[string]int    `json:"locationCounts"`
	AreaCounts       map[string]int    `json:"areaCounts"`
	AreaColorMap     map[string]string `json:"areaColorMap"`
	LastUpdated      time.Time         `json:"lastUpdated"`

	Extra map[string]json.RawMessage `json:"-"`
}

var calendarKeys = map[string]bool{
	"projectId": true, "ownerId": true, "days": true,
	"departmentCounts": true, "locationCounts": true, "areaCounts": true,
	"areaColorMap": true, "lastUpdated": true,
}

type calendarAlias Calendar

func (c *Calendar) UnmarshalJSON(data []byte) error {
	var a calendarAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k, v := range raw {
		if calendarKeys[k] {
			continue
		}
		if a.Extra == nil {
			a.Extra = make(map[string]json.RawMessage)
		}
		a.Extra[k] = v
	}
	*c = Calendar(a)
	return nil
}

func (c Calendar) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(calendarAlias(c))
	if err != nil || len(c.Extra) == 0 {
		return data, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if !calendarKeys[k] {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// DayIndex returns the index of the day with the given date, or -1.
func (c *Calendar) DayIndex(date string) int {
	for i := range c.Days {
		if c.Days[i].Date == date {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the calendar.
func (c *Calendar) Clone() *Calendar {
	if c == nil {
		return nil
	}
	out := *c
	out.Days = make([]CalendarDay, len(c.Days))
	for i, d := range c.Days {
		out.Days[i] = d.Clone()
	}
	out.DepartmentCounts = cloneMap(c.DepartmentCounts)
	out.LocationCounts = cloneMap(c.LocationCounts)
	out.AreaCounts = cloneMap(c.AreaCounts)
	out.AreaColorMap = cloneMap(c.AreaColorMap)
	out.Extra = cloneMap(c.Extra)
	return &out
}

// ShootDayCount returns the number of days flagged as shoot days.
func (c *Calendar) ShootDayCount() int {
	n := 0
	for i := range c.Days {
		if c.Days[i].IsShootDay {
			n++
		}
	}
	return n
}
