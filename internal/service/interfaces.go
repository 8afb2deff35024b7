package service

import (
	"context"
	"time"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/geocode"
	"github.com/alexanderramin/shootcal/internal/importer"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]*domain.Project, error)
	// Update persists p. With regenerate set the workspace calendar is
	// rebuilt against the new dates.
	Update(ctx context.Context, p *domain.Project, regenerate bool) error
	Delete(ctx context.Context, id string) error
}

type CalendarService interface {
	Get(ctx context.Context, projectID string) (*domain.Calendar, error)
	Generate(ctx context.Context, projectID string) (*domain.Calendar, error)
	GetDay(ctx context.Context, projectID, date string) (*domain.CalendarDay, error)
	UpdateDay(ctx context.Context, projectID, date string, patch calendar.DayPatch) (*domain.CalendarDay, error)
	MoveDay(ctx context.Context, projectID, fromDate, toDate string, mode domain.MoveMode) (*calendar.SwapResult, error)
	// RecountAll recomputes the aggregate counts of every workspace and
	// returns how many were updated.
	RecountAll(ctx context.Context) (int, error)
}

// ViewerCalendar is what a read-only viewer of a project is shown.
type ViewerCalendar struct {
	Project *domain.Project
	// Version is nil when the calendar comes from a non-versioned workspace
	// or nothing has been published.
	Version  *domain.Version
	Calendar *domain.Calendar
	// Published is false for the "not yet published" empty state.
	Published bool
}

type VersionService interface {
	List(ctx context.Context, projectID string) ([]*domain.Version, error)
	Create(ctx context.Context, projectID, number, notes string) (*domain.Version, error)
	Publish(ctx context.Context, projectID, versionID string) (*domain.Version, error)
	MigrateToVersioned(ctx context.Context, projectID string) (*domain.Version, error)
	GetWorkspace(ctx context.Context, projectID string) (*domain.Workspace, error)
	ResolveViewer(ctx context.Context, projectID, versionID, viewerID string) (*ViewerCalendar, error)
}

type RuleService interface {
	List(ctx context.Context, projectID string) (domain.RuleSet, error)
	// Get returns the rule of the given kind as its domain struct.
	Get(ctx context.Context, kind domain.RuleKind, projectID, id string) (any, error)

	AddHoliday(ctx context.Context, h *domain.Holiday) error
	AddHiatus(ctx context.Context, h *domain.HiatusPeriod) error
	// AddWorkingWeekend replaces any existing entry for the same date.
	AddWorkingWeekend(ctx context.Context, w *domain.WorkingWeekend) error
	AddSpecialDate(ctx context.Context, s *domain.SpecialDate) error

	UpdateHoliday(ctx context.Context, h *domain.Holiday) error
	UpdateHiatus(ctx context.Context, h *domain.HiatusPeriod) error
	UpdateWorkingWeekend(ctx context.Context, w *domain.WorkingWeekend) error
	UpdateSpecialDate(ctx context.Context, s *domain.SpecialDate) error

	Delete(ctx context.Context, kind domain.RuleKind, projectID, id string) error
}

type DefinitionService interface {
	All(ctx context.Context) (domain.Definitions, error)
	Get(ctx context.Context, kind domain.DefinitionKind, id string) (any, error)

	// SaveLocation creates or replaces l. A location with an address but
	// no coordinates is geocoded on a best-effort basis.
	SaveLocation(ctx context.Context, l *domain.Location) error
	SaveArea(ctx context.Context, a *domain.Area) error
	// SaveDepartment creates or replaces d and recounts every calendar.
	SaveDepartment(ctx context.Context, d *domain.Department) error
	Delete(ctx context.Context, kind domain.DefinitionKind, id string) error

	Geocode(ctx context.Context, query string, limit int) ([]geocode.Place, error)
}

type AccessService interface {
	Share(ctx context.Context, projectID string) (*domain.AccessGrant, error)
	// Resolve looks up an access code or token and records the view.
	Resolve(ctx context.Context, identifier string) (*domain.AccessGrant, error)
	List(ctx context.Context, projectID string) ([]*domain.AccessGrant, error)
	Revoke(ctx context.Context, projectID string) (int, error)
}

// ImportResult holds the outcome of a seed import.
type ImportResult struct {
	Project      *domain.Project
	RuleCount    int
	Definitions  int
	CalendarDays int
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSeed(ctx context.Context, seed *importer.Seed) (*ImportResult, error)
}

// SunTimesProvider annotates days with sunrise and sunset.
type SunTimesProvider interface {
	ForLocation(loc *domain.Location, date time.Time) (*domain.SunTimes, bool)
}
