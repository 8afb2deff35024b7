package calendar

import (
	"sort"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// Renumber drops days with a missing or malformed date, sorts the rest
// chronologically and assigns shoot day numbers 1..n to shoot days.
func (e *Engine) Renumber(days []domain.CalendarDay) []domain.CalendarDay {
	valid := make([]domain.CalendarDay, 0, len(days))
	for _, d := range days {
		if d.Date == "" {
			e.log.Warn("dropping calendar day without a date")
			continue
		}
		if _, err := d.ParsedDate(); err != nil {
			e.log.Warn("dropping calendar day with malformed date", "date", d.Date)
			continue
		}
		valid = append(valid, d)
	}

	// ISO dates sort lexicographically.
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Date < valid[j].Date })

	n := 0
	for i := range valid {
		if valid[i].IsShootDay {
			n++
			num := n
			valid[i].ShootDay = &num
		} else {
			valid[i].ShootDay = nil
		}
	}
	return valid
}
