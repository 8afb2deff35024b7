package calendar

import "github.com/alexanderramin/shootcal/internal/domain"

// autoNote derives the generated annotation for a classified date. When
// several rules match, the later kind in holiday, hiatus, working weekend,
// special date order replaces the earlier.
func autoNote(c Classification) *domain.AutoNote {
	var note *domain.AutoNote
	if c.IsHoliday {
		note = &domain.AutoNote{Kind: domain.NoteHoliday, Text: "BANK HOLIDAY: " + c.Holiday.Name}
	}
	if c.IsHiatus {
		note = &domain.AutoNote{Kind: domain.NoteHiatus, Text: "HIATUS: " + c.Hiatus.Name}
	}
	if c.IsWorkingWeekend {
		text := "WORKING WEEKEND"
		if c.WorkingWeekend.Description != "" {
			text += ": " + c.WorkingWeekend.Description
		}
		note = &domain.AutoNote{Kind: domain.NoteWorkingWeekend, Text: text}
	}
	if sd := c.SpecialDate; sd != nil {
		text := sd.Type.Label() + ": " + sd.Name
		if sd.Description != "" {
			text += " - " + sd.Description
		}
		note = &domain.AutoNote{Kind: domain.NoteSpecial, Text: text}
	}
	return note
}

// isStaleGeneratedNote reports whether notes is a verbatim copy of the
// generated text for this date, either the note about to be written or the
// one stored by the previous run. Older calendars wrote generated text into
// the user field; anything else typed there is the user's.
func isStaleGeneratedNote(notes string, next, prev *domain.AutoNote) bool {
	if notes == "" {
		return false
	}
	return (next != nil && notes == next.Text) || (prev != nil && notes == prev.Text)
}
