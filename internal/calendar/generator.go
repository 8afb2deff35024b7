package calendar

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// GenerateInput is everything needed to build a project calendar.
type GenerateInput struct {
	Project     *domain.Project
	Rules       domain.RuleSet
	Definitions domain.Definitions
	// Existing is the previously stored calendar, if any. Its production
	// fields survive regeneration.
	Existing *domain.Calendar
	Now      time.Time
}

// Generate builds one day per date in [prep start, wrap]. Days already present
// in Existing keep their production fields; classification, shoot day number
// and the generated note are recomputed. Days outside the range are dropped.
func (e *Engine) Generate(in GenerateInput) (*domain.Calendar, error) {
	p := in.Project
	if p.PrepStartDate.IsZero() || p.ShootStartDate.IsZero() {
		e.log.Error("calendar generation requires prep and shoot start dates", "project_id", p.ID)
		return nil, domain.Validationf("prep and shoot start dates are required to generate a calendar")
	}

	prep := truncateDay(p.PrepStartDate)
	shootStart := truncateDay(p.ShootStartDate)
	wrap := truncateDay(p.EffectiveWrapDate())
	if wrap.Before(prep) {
		return nil, domain.Validationf("wrap date %s is before prep start %s",
			wrap.Format(domain.DateLayout), prep.Format(domain.DateLayout))
	}

	existing := make(map[string]domain.CalendarDay)
	if in.Existing != nil {
		for _, d := range in.Existing.Days {
			existing[d.Date] = d
		}
	}

	rules := NewRules(in.Rules)
	days := make([]domain.CalendarDay, 0, int(wrap.Sub(prep).Hours()/24)+1)
	shootDay := 0

	for d := prep; !d.After(wrap); d = d.AddDate(0, 0, 1) {
		iso := d.Format(domain.DateLayout)
		day, ok := existing[iso]
		if !ok {
			day = domain.CalendarDay{Departments: []string{}}
		} else {
			day = day.Clone()
		}
		setDateFields(&day, d)

		c := Classify(d, shootStart, rules)
		c.apply(&day)
		note := autoNote(c)
		if isStaleGeneratedNote(day.Notes, note, day.AutoNote) {
			day.Notes = ""
		}
		day.AutoNote = note
		if c.IsShootDay {
			shootDay++
			n := shootDay
			day.ShootDay = &n
		} else {
			day.ShootDay = nil
		}
		days = append(days, day)
	}

	cal := &domain.Calendar{
		ProjectID:   p.ID,
		OwnerID:     p.OwnerID,
		Days:        days,
		LastUpdated: in.Now.UTC(),
	}
	if in.Existing != nil && len(in.Existing.Extra) > 0 {
		cal.Extra = make(map[string]json.RawMessage, len(in.Existing.Extra))
		for k, v := range in.Existing.Extra {
			cal.Extra[k] = v
		}
	}
	e.Recount(cal, in.Definitions)

	e.log.Debug("calendar generated", "project_id", p.ID, "days", len(days), "shoot_days", shootDay)
	return cal, nil
}

func setDateFields(day *domain.CalendarDay, d time.Time) {
	day.Date = d.Format(domain.DateLayout)
	day.DayOfWeek = d.Weekday().String()
	day.MonthName = d.Month().String()
	day.Day = d.Day()
	day.Month = int(d.Month())
	day.Year = d.Year()
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
