package domain

type DayType string

const (
	DayHiatus         DayType = "hiatus"
	DayHoliday        DayType = "holiday"
	DayPrep           DayType = "prep"
	DayShoot          DayType = "shoot"
	DayWorkingWeekend DayType = "working-weekend"
	DayWeekend        DayType = "weekend"
	DayNormal         DayType = "normal"
)

type AutoNoteKind string

const (
	NoteHoliday        AutoNoteKind = "holiday"
	NoteHiatus         AutoNoteKind = "hiatus"
	NoteWorkingWeekend AutoNoteKind = "working-weekend"
	NoteSpecial        AutoNoteKind = "special"
)

type SpecialDateType string

const (
	SpecialTravel    SpecialDateType = "travel"
	SpecialMeeting   SpecialDateType = "meeting"
	SpecialRehearsal SpecialDateType = "rehearsal"
	SpecialOther     SpecialDateType = "other"
)

// ValidSpecialDateTypes is the canonical set of accepted special date types.
var ValidSpecialDateTypes = map[string]bool{
	"travel": true, "meeting": true, "rehearsal": true, "other": true,
}

// Label returns the display label used in generated notes.
func (t SpecialDateType) Label() string {
	switch t {
	case SpecialTravel:
		return "Travel Day"
	case SpecialMeeting:
		return "Meeting"
	case SpecialRehearsal:
		return "Rehearsal"
	default:
		return "Special Date"
	}
}

type MoveMode string

const (
	MoveSwap MoveMode = "swap"
)

type RuleKind string

const (
	RuleHoliday        RuleKind = "holidays"
	RuleHiatus         RuleKind = "hiatus"
	RuleWorkingWeekend RuleKind = "weekends"
	RuleSpecialDate    RuleKind = "special-dates"
)

// RuleKinds lists every exception rule kind in display order.
var RuleKinds = []RuleKind{RuleHoliday, RuleHiatus, RuleWorkingWeekend, RuleSpecialDate}

type DefinitionKind string

const (
	DefLocation   DefinitionKind = "locations"
	DefArea       DefinitionKind = "areas"
	DefDepartment DefinitionKind = "departments"
)

// DefinitionKinds lists every global definition kind.
var DefinitionKinds = []DefinitionKind{DefLocation, DefArea, DefDepartment}
