package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns every project when ownerID is empty.
	List(ctx context.Context, ownerID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// WorkspaceRepo stores the single mutable calendar document of each project.
type WorkspaceRepo interface {
	Load(ctx context.Context, projectID string) (*domain.Workspace, error)
	Save(ctx context.Context, ws *domain.Workspace) error
	ListProjectIDs(ctx context.Context) ([]string, error)
}

type VersionRepo interface {
	Create(ctx context.Context, v *domain.Version) error
	GetByID(ctx context.Context, projectID, id string) (*domain.Version, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Version, error)
	LatestPublished(ctx context.Context, projectID string) (*domain.Version, error)
	NumberExists(ctx context.Context, projectID, number string) (bool, error)
	ClearLatestPublished(ctx context.Context, projectID string) error
	MarkPublished(ctx context.Context, projectID, id string, at time.Time) error
	Count(ctx context.Context, projectID string) (int, error)
}

type RuleRepo interface {
	LoadRuleSet(ctx context.Context, projectID string) (domain.RuleSet, error)

	ListHolidays(ctx context.Context, projectID string) ([]domain.Holiday, error)
	CreateHoliday(ctx context.Context, h *domain.Holiday) error
	UpdateHoliday(ctx context.Context, h *domain.Holiday) error

	ListHiatus(ctx context.Context, projectID string) ([]domain.HiatusPeriod, error)
	CreateHiatus(ctx context.Context, h *domain.HiatusPeriod) error
	UpdateHiatus(ctx context.Context, h *domain.HiatusPeriod) error

	ListWorkingWeekends(ctx context.Context, projectID string) ([]domain.WorkingWeekend, error)
	UpsertWorkingWeekend(ctx context.Context, w *domain.WorkingWeekend) error
	UpdateWorkingWeekend(ctx context.Context, w *domain.WorkingWeekend) error

	ListSpecialDates(ctx context.Context, projectID string) ([]domain.SpecialDate, error)
	CreateSpecialDate(ctx context.Context, s *domain.SpecialDate) error
	UpdateSpecialDate(ctx context.Context, s *domain.SpecialDate) error

	Delete(ctx context.Context, kind domain.RuleKind, projectID, id string) error
}

type DefinitionRepo interface {
	LoadDefinitions(ctx context.Context) (domain.Definitions, error)

	ListLocations(ctx context.Context) ([]domain.Location, error)
	GetLocation(ctx context.Context, id string) (*domain.Location, error)
	SaveLocation(ctx context.Context, l *domain.Location) error

	ListAreas(ctx context.Context) ([]domain.Area, error)
	SaveArea(ctx context.Context, a *domain.Area) error

	ListDepartments(ctx context.Context) ([]domain.Department, error)
	SaveDepartment(ctx context.Context, d *domain.Department) error

	Delete(ctx context.Context, kind domain.DefinitionKind, id string) error
}

type AccessRepo interface {
	Create(ctx context.Context, g *domain.AccessGrant) error
	GetByCode(ctx context.Context, code string) (*domain.AccessGrant, error)
	GetByToken(ctx context.Context, token string) (*domain.AccessGrant, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.AccessGrant, error)
	RecordView(ctx context.Context, code string, at time.Time) error
	DeleteByProject(ctx context.Context, projectID string) (int, error)
}
