package domain

// Holiday is a per-project bank holiday. A holiday only becomes a shoot day
// when it is both working and marked as a shoot day.
type Holiday struct {
	ID         string `json:"id" db:"id"`
	ProjectID  string `json:"projectId" db:"project_id"`
	Date       string `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	Name       string `json:"name" db:"name" validate:"required"`
	IsWorking  bool   `json:"isWorking" db:"is_working"`
	IsShootDay bool   `json:"isShootDay" db:"is_shoot_day"`
}

// HiatusPeriod is an inclusive date range during which nothing is shot.
type HiatusPeriod struct {
	ID        string `json:"id" db:"id"`
	ProjectID string `json:"projectId" db:"project_id"`
	StartDate string `json:"startDate" db:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" db:"end_date" validate:"required,datetime=2006-01-02"`
	Name      string `json:"name" db:"name"`
}

// Contains reports whether the ISO date lies within the period.
func (h HiatusPeriod) Contains(date string) bool {
	return h.StartDate <= date && date <= h.EndDate
}

// WorkingWeekend marks a Saturday or Sunday as a shooting day.
type WorkingWeekend struct {
	ID          string `json:"id" db:"id"`
	ProjectID   string `json:"projectId" db:"project_id"`
	Date        string `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" db:"description"`
}

type SpecialDate struct {
	ID          string          `json:"id" db:"id"`
	ProjectID   string          `json:"projectId" db:"project_id"`
	Date        string          `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	Type        SpecialDateType `json:"type" db:"type" validate:"omitempty,oneof=travel meeting rehearsal other"`
	Name        string          `json:"name" db:"name" validate:"required"`
	Description string          `json:"description" db:"description"`
	IsWorking   bool            `json:"isWorking" db:"is_working"`
}

// RuleSet bundles the exception rules of one project.
type RuleSet struct {
	Holidays        []Holiday        `json:"holidays"`
	Hiatus          []HiatusPeriod   `json:"hiatus"`
	WorkingWeekends []WorkingWeekend `json:"weekends"`
	SpecialDates    []SpecialDate    `json:"specialDates"`
}
