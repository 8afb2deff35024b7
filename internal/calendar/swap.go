package calendar

import (
	"github.com/alexanderramin/shootcal/internal/domain"
)

// SwapResult reports a completed move.
type SwapResult struct {
	Days        []domain.CalendarDay
	OriginalDay domain.CalendarDay
	TargetDay   domain.CalendarDay
	Mode        domain.MoveMode
}

// SwapDays exchanges the production content of two days. Date-derived
// fields stay with their slot. The moved content always lands as a shoot
// day; when the target was not a shoot day the origin becomes one no
// longer. The input slice is left untouched on error.
func (e *Engine) SwapDays(days []domain.CalendarDay, fromDate, toDate string, mode domain.MoveMode) (*SwapResult, error) {
	if mode != domain.MoveSwap {
		return nil, domain.ErrUnsupportedMode
	}
	if fromDate == toDate {
		return nil, domain.ErrSameDay
	}
	fromIdx, toIdx := -1, -1
	for i := range days {
		switch days[i].Date {
		case fromDate:
			fromIdx = i
		case toDate:
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		return nil, domain.ErrDayNotFound
	}
	from, to := days[fromIdx], days[toIdx]
	if !from.IsShootDay {
		return nil, domain.ErrNotShootDay
	}
	if !isWorkingSlot(to) {
		return nil, domain.ErrNonWorkingTarget
	}

	out := make([]domain.CalendarDay, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}

	newFrom := withSlotIdentity(to.Clone(), from)
	newTo := withSlotIdentity(from.Clone(), to)
	newTo.IsShootDay = true
	if !to.IsShootDay {
		newFrom.IsShootDay = false
		newFrom.ShootDay = nil
	}
	out[fromIdx] = newFrom
	out[toIdx] = newTo

	out = e.Renumber(out)
	res := &SwapResult{Days: out, Mode: mode}
	for _, d := range out {
		switch d.Date {
		case fromDate:
			res.OriginalDay = d
		case toDate:
			res.TargetDay = d
		}
	}
	e.log.Info("calendar days swapped", "from", fromDate, "to", toDate)
	return res, nil
}

// withSlotIdentity returns content re-homed into slot, keeping the slot's
// date-derived fields and generated note.
func withSlotIdentity(content, slot domain.CalendarDay) domain.CalendarDay {
	content.Date = slot.Date
	content.DayOfWeek = slot.DayOfWeek
	content.MonthName = slot.MonthName
	content.Day = slot.Day
	content.Month = slot.Month
	content.Year = slot.Year
	content.IsPrep = slot.IsPrep
	content.IsWeekend = slot.IsWeekend
	content.IsHoliday = slot.IsHoliday
	content.IsWorkingHoliday = slot.IsWorkingHoliday
	content.IsHiatus = slot.IsHiatus
	content.IsWorkingWeekend = slot.IsWorkingWeekend
	content.DayType = slot.DayType
	content.AutoNote = slot.AutoNote
	return content
}

// isWorkingSlot rejects hiatus days, non-working holidays and weekends that
// are not working weekends.
func isWorkingSlot(d domain.CalendarDay) bool {
	switch {
	case d.IsHiatus:
		return false
	case d.IsHoliday && !d.IsWorkingHoliday:
		return false
	case d.IsWeekend && !d.IsWorkingWeekend:
		return false
	}
	return true
}
