package calendar

import (
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// Rules is a date-indexed view of a project's exception rules.
type Rules struct {
	holidays map[string]domain.Holiday
	hiatus   []domain.HiatusPeriod
	weekends map[string]domain.WorkingWeekend
	special  map[string]domain.SpecialDate
}

// NewRules indexes a RuleSet. When two rules of the same kind share a date
// the first one wins.
func NewRules(set domain.RuleSet) *Rules {
	r := &Rules{
		holidays: make(map[string]domain.Holiday, len(set.Holidays)),
		hiatus:   append([]domain.HiatusPeriod(nil), set.Hiatus...),
		weekends: make(map[string]domain.WorkingWeekend, len(set.WorkingWeekends)),
		special:  make(map[string]domain.SpecialDate, len(set.SpecialDates)),
	}
	for _, h := range set.Holidays {
		if _, ok := r.holidays[h.Date]; !ok {
			r.holidays[h.Date] = h
		}
	}
	for _, w := range set.WorkingWeekends {
		if _, ok := r.weekends[w.Date]; !ok {
			r.weekends[w.Date] = w
		}
	}
	for _, s := range set.SpecialDates {
		if _, ok := r.special[s.Date]; !ok {
			r.special[s.Date] = s
		}
	}
	return r
}

func (r *Rules) holiday(date string) *domain.Holiday {
	if h, ok := r.holidays[date]; ok {
		return &h
	}
	return nil
}

func (r *Rules) hiatusFor(date string) *domain.HiatusPeriod {
	for i := range r.hiatus {
		if r.hiatus[i].Contains(date) {
			h := r.hiatus[i]
			return &h
		}
	}
	return nil
}

func (r *Rules) workingWeekend(date string) *domain.WorkingWeekend {
	if w, ok := r.weekends[date]; ok {
		return &w
	}
	return nil
}

func (r *Rules) specialDate(date string) *domain.SpecialDate {
	if s, ok := r.special[date]; ok {
		return &s
	}
	return nil
}

// Classification is the rule-derived state of one date. The matched rules
// are carried along for note generation.
type Classification struct {
	IsPrep           bool
	IsShootDay       bool
	IsWeekend        bool
	IsHoliday        bool
	IsWorkingHoliday bool
	IsHiatus         bool
	IsWorkingWeekend bool
	DayType          domain.DayType

	Holiday        *domain.Holiday
	Hiatus         *domain.HiatusPeriod
	WorkingWeekend *domain.WorkingWeekend
	SpecialDate    *domain.SpecialDate
}

// Classify derives the classification of date for a project whose shoot
// period starts at shootStart.
//
// A day is a shoot day only when every gate passes: it is in the shoot
// period, it is a weekday or a working weekend, any holiday on it is both
// working and a shoot day, it is not in a hiatus, and no special date marks
// it non-working. The non-working special date gate applies even when a
// holiday on the same date would allow shooting.
func Classify(date, shootStart time.Time, rules *Rules) Classification {
	iso := date.Format(domain.DateLayout)
	c := Classification{
		Holiday:        rules.holiday(iso),
		Hiatus:         rules.hiatusFor(iso),
		WorkingWeekend: rules.workingWeekend(iso),
		SpecialDate:    rules.specialDate(iso),
	}

	wd := date.Weekday()
	c.IsWeekend = wd == time.Saturday || wd == time.Sunday
	c.IsHoliday = c.Holiday != nil
	c.IsWorkingHoliday = c.IsHoliday && c.Holiday.IsWorking
	c.IsHiatus = c.Hiatus != nil
	c.IsWorkingWeekend = c.IsWeekend && c.WorkingWeekend != nil

	inShootPeriod := !date.Before(shootStart)
	c.IsPrep = !inShootPeriod

	c.IsShootDay = inShootPeriod &&
		(!c.IsWeekend || c.IsWorkingWeekend) &&
		(!c.IsHoliday || (c.Holiday.IsWorking && c.Holiday.IsShootDay)) &&
		!c.IsHiatus &&
		!(c.SpecialDate != nil && !c.SpecialDate.IsWorking)

	switch {
	case c.IsHiatus:
		c.DayType = domain.DayHiatus
	case c.IsHoliday:
		c.DayType = domain.DayHoliday
	case c.IsPrep:
		c.DayType = domain.DayPrep
	case c.IsShootDay:
		c.DayType = domain.DayShoot
	case c.IsWeekend && c.IsWorkingWeekend:
		c.DayType = domain.DayWorkingWeekend
	case c.IsWeekend:
		c.DayType = domain.DayWeekend
	default:
		c.DayType = domain.DayNormal
	}
	return c
}

// apply copies the classification onto a day.
func (c Classification) apply(d *domain.CalendarDay) {
	d.IsPrep = c.IsPrep
	d.IsShootDay = c.IsShootDay
	d.IsWeekend = c.IsWeekend
	d.IsHoliday = c.IsHoliday
	d.IsWorkingHoliday = c.IsWorkingHoliday
	d.IsHiatus = c.IsHiatus
	d.IsWorkingWeekend = c.IsWorkingWeekend
	d.DayType = c.DayType
}
