package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/geocode"
	"github.com/alexanderramin/shootcal/internal/repository"
	"github.com/alexanderramin/shootcal/internal/testutil"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	db          *sqlx.DB
	uow         db.UnitOfWork
	observer    *recordingObserver
	projects    ProjectService
	calendars   CalendarService
	versions    VersionService
	rules       RuleService
	definitions DefinitionService
	access      AccessService
	imports     ImportService
	geocoder    *stubGeocoder
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	return servicesWithUoW(database, testutil.NewTestUoW(database))
}

func servicesWithUoW(database *sqlx.DB, uow db.UnitOfWork) *testServices {
	engine := calendar.NewEngine(nil)
	sun := fixedSun{}
	obs := &recordingObserver{}
	geo := &stubGeocoder{}
	return &testServices{
		db:          database,
		uow:         uow,
		observer:    obs,
		projects:    NewProjectService(uow, engine, sun, nil, obs),
		calendars:   NewCalendarService(uow, engine, sun, nil, obs),
		versions:    NewVersionService(uow, engine, sun, nil, obs),
		rules:       NewRuleService(uow, obs),
		definitions: NewDefinitionService(uow, engine, geo, nil, obs),
		access:      NewAccessService(uow, obs),
		imports:     NewImportService(uow, engine, sun, nil, "owner-1", obs),
		geocoder:    geo,
	}
}

// createProject stores the default fixture project with a generated
// calendar.
func (s *testServices) createProject(t *testing.T, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("The Long Weekend", opts...)
	require.NoError(t, s.projects.Create(context.Background(), p))
	return p
}

// seedDefinitions writes the fixture definitions straight to the database.
func (s *testServices) seedDefinitions(t *testing.T) domain.Definitions {
	t.Helper()
	ctx := context.Background()
	defs := testutil.NewTestDefinitions()
	repo := repository.NewSQLiteDefinitionRepo(s.db)
	for i := range defs.Areas {
		require.NoError(t, repo.SaveArea(ctx, &defs.Areas[i]))
	}
	for i := range defs.Locations {
		require.NoError(t, repo.SaveLocation(ctx, &defs.Locations[i]))
	}
	for i := range defs.Departments {
		require.NoError(t, repo.SaveDepartment(ctx, &defs.Departments[i]))
	}
	return defs
}

func (s *testServices) workspace(t *testing.T, projectID string) *domain.Workspace {
	t.Helper()
	ws, err := repository.NewSQLiteWorkspaceRepo(s.db).Load(context.Background(), projectID)
	require.NoError(t, err)
	return ws
}

func shootNumbers(cal *domain.Calendar) map[string]int {
	out := make(map[string]int)
	for _, d := range cal.Days {
		if d.ShootDay != nil {
			out[d.Date] = *d.ShootDay
		}
	}
	return out
}

func dayOf(t *testing.T, cal *domain.Calendar, date string) domain.CalendarDay {
	t.Helper()
	idx := cal.DayIndex(date)
	require.GreaterOrEqual(t, idx, 0, "day %s not in calendar", date)
	return cal.Days[idx]
}

// fixedSun reports the same times for every coordinate.
type fixedSun struct{}

func (fixedSun) ForLocation(loc *domain.Location, _ time.Time) (*domain.SunTimes, bool) {
	if loc == nil || !loc.HasCoordinates() {
		return nil, false
	}
	return &domain.SunTimes{Sunrise: "06:45", Sunset: "18:30"}, true
}

type stubGeocoder struct {
	places []geocode.Place
	err    error
	calls  []string
}

func (g *stubGeocoder) Search(_ context.Context, query string, _ int) ([]geocode.Place, error) {
	g.calls = append(g.calls, query)
	return g.places, g.err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}
