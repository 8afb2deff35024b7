package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/repository"
	"github.com/alexanderramin/shootcal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarService_Get_GeneratesOnFirstAccess(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Stored without calendar")
	require.NoError(t, repository.NewSQLiteProjectRepo(s.db).Create(ctx, p))

	cal, err := s.calendars.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, cal.Days, 17)
	assert.Equal(t, p.ID, s.workspace(t, p.ID).ProjectID)
}

func TestCalendarService_Get_UnknownProject(t *testing.T) {
	s := setupServices(t)
	_, err := s.calendars.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestCalendarService_Generate_HiatusRenumbers(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)

	require.NoError(t, s.rules.AddHiatus(ctx, testutil.NewTestHiatus(p.ID, "2024-03-05", "2024-03-06", "Break")))

	before, err := s.calendars.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, shootNumbers(before)["2024-03-05"], "rules apply on the next generation only")

	cal, err := s.calendars.Generate(ctx, p.ID)
	require.NoError(t, err)

	for _, date := range []string{"2024-03-05", "2024-03-06"} {
		d := dayOf(t, cal, date)
		assert.Equal(t, domain.DayHiatus, d.DayType)
		assert.False(t, d.IsShootDay)
		require.NotNil(t, d.AutoNote)
		assert.Equal(t, "HIATUS: Break", d.AutoNote.Text)
	}
	nums := shootNumbers(cal)
	assert.Equal(t, 1, nums["2024-03-04"])
	assert.Equal(t, 2, nums["2024-03-07"])
	assert.Equal(t, 3, nums["2024-03-08"])
	assert.Equal(t, 8, cal.DepartmentCounts[calendar.CountMain])

	ev, ok := s.observer.last("calendar.generate")
	require.True(t, ok)
	assert.Equal(t, 8, ev.Fields["shoot_days"])
}

func TestCalendarService_Generate_Idempotent(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)
	s.seedDefinitions(t)

	_, err := s.calendars.UpdateDay(ctx, p.ID, "2024-03-05", calendar.DayPatch{"location": "Dublin Castle", "departments": "SFX"})
	require.NoError(t, err)

	first, err := s.calendars.Generate(ctx, p.ID)
	require.NoError(t, err)
	second, err := s.calendars.Generate(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Days, second.Days)
	assert.Equal(t, first.DepartmentCounts, second.DepartmentCounts)
}

func TestCalendarService_UpdateDay_ResolvesLocation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)
	s.seedDefinitions(t)

	day, err := s.calendars.UpdateDay(ctx, p.ID, "2024-03-05", calendar.DayPatch{
		"location":    "Dublin Castle",
		"departments": "SFX, stu, ",
		"extras":      "12",
	})
	require.NoError(t, err)
	assert.Equal(t, "North", day.LocationArea)
	assert.Equal(t, "area-north", day.LocationAreaID)
	assert.Equal(t, []string{"SFX", "stu"}, day.Departments)
	assert.Equal(t, 12, day.Extras)
	require.NotNil(t, day.SunTimes)
	assert.Equal(t, "06:45", day.SunTimes.Sunrise)

	cal := s.workspace(t, p.ID).Calendar
	assert.Equal(t, 1, cal.DepartmentCounts["dept-sfx"])
	assert.Equal(t, 1, cal.DepartmentCounts["dept-stu"])
	assert.Equal(t, 1, cal.LocationCounts["Dublin Castle"])
	assert.Equal(t, 1, cal.AreaCounts["area-north"])

	day, err = s.calendars.UpdateDay(ctx, p.ID, "2024-03-05", calendar.DayPatch{"location": ""})
	require.NoError(t, err)
	assert.Empty(t, day.LocationArea)
	assert.Nil(t, day.SunTimes)
}

func TestCalendarService_UpdateDay_PromotesPrepDay(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	// Shoot starts on Wednesday, so Monday and Tuesday are prep.
	p := s.createProject(t, testutil.WithShootStart("2024-03-06"), testutil.WithPrepStart("2024-03-04"))

	day, err := s.calendars.UpdateDay(ctx, p.ID, "2024-03-05", calendar.DayPatch{"mainUnit": "Pickup"})
	require.NoError(t, err)
	assert.True(t, day.IsPrep, "prep before shoot start stays prep")

	got, err := s.calendars.GetDay(ctx, p.ID, "2024-03-06")
	require.NoError(t, err)
	require.NotNil(t, got.ShootDay)
	assert.Equal(t, 1, *got.ShootDay)
}

func TestCalendarService_UpdateDay_MarksVersionedWorkspaceDraft(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)
	_, err := s.versions.MigrateToVersioned(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, s.workspace(t, p.ID).IsDraft)

	_, err = s.calendars.UpdateDay(ctx, p.ID, "2024-03-05", calendar.DayPatch{"notes": "Bring umbrellas"})
	require.NoError(t, err)

	ws := s.workspace(t, p.ID)
	assert.True(t, ws.IsDraft)
	assert.Equal(t, "Bring umbrellas", dayOf(t, ws.Calendar, "2024-03-05").Notes)
}

func TestCalendarService_UpdateDay_UnknownDay(t *testing.T) {
	s := setupServices(t)
	p := s.createProject(t)
	_, err := s.calendars.UpdateDay(context.Background(), p.ID, "2025-01-01", calendar.DayPatch{"notes": "x"})
	assert.ErrorIs(t, err, domain.ErrDayNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalendarService_MoveDay_Swap(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)

	_, err := s.calendars.UpdateDay(ctx, p.ID, "2024-03-04", calendar.DayPatch{"mainUnit": "Scene 1"})
	require.NoError(t, err)
	_, err = s.calendars.UpdateDay(ctx, p.ID, "2024-03-05", calendar.DayPatch{"mainUnit": "Scene 2"})
	require.NoError(t, err)

	res, err := s.calendars.MoveDay(ctx, p.ID, "2024-03-04", "2024-03-05", domain.MoveSwap)
	require.NoError(t, err)
	assert.Equal(t, "Scene 2", res.OriginalDay.MainUnit)
	assert.Equal(t, "Scene 1", res.TargetDay.MainUnit)

	cal := s.workspace(t, p.ID).Calendar
	assert.Equal(t, "Scene 2", dayOf(t, cal, "2024-03-04").MainUnit)
	assert.Equal(t, "Monday", dayOf(t, cal, "2024-03-04").DayOfWeek)
	assert.Equal(t, 1, shootNumbers(cal)["2024-03-04"])
}

func TestCalendarService_MoveDay_OntoWorkingWeekend(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)
	require.NoError(t, s.rules.AddWorkingWeekend(ctx, testutil.NewTestWorkingWeekend(p.ID, "2024-03-09", "Night shoot")))
	_, err := s.calendars.Generate(ctx, p.ID)
	require.NoError(t, err)
	_, err = s.calendars.UpdateDay(ctx, p.ID, "2024-03-08", calendar.DayPatch{"mainUnit": "Finale"})
	require.NoError(t, err)

	res, err := s.calendars.MoveDay(ctx, p.ID, "2024-03-08", "2024-03-09", "")
	require.NoError(t, err)
	assert.Equal(t, domain.MoveSwap, res.Mode)

	cal := s.workspace(t, p.ID).Calendar
	sat := dayOf(t, cal, "2024-03-09")
	assert.Equal(t, "Finale", sat.MainUnit)
	assert.True(t, sat.IsWorkingWeekend)
	assert.Equal(t, 1, cal.DepartmentCounts[calendar.CountSixthDay])
	nums := shootNumbers(cal)
	assert.Equal(t, 5, nums["2024-03-08"])
	assert.Equal(t, 6, nums["2024-03-09"])
}

func TestCalendarService_MoveDay_Rejections(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)
	before := s.workspace(t, p.ID)

	tests := []struct {
		name     string
		from, to string
		mode     domain.MoveMode
		want     error
	}{
		{"non-working weekend target", "2024-03-04", "2024-03-09", domain.MoveSwap, domain.ErrNonWorkingTarget},
		{"prep origin", "2024-03-01", "2024-03-05", domain.MoveSwap, domain.ErrNotShootDay},
		{"missing day", "2024-03-04", "2024-05-01", domain.MoveSwap, domain.ErrDayNotFound},
		{"unsupported mode", "2024-03-04", "2024-03-05", domain.MoveMode("insert"), domain.ErrUnsupportedMode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.calendars.MoveDay(ctx, p.ID, tc.from, tc.to, tc.mode)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, before.Calendar.Days, s.workspace(t, p.ID).Calendar.Days)
}

func TestCalendarService_MoveDay_RollsBackOnSaveFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ok := servicesWithUoW(database, testutil.NewTestUoW(database))
	p := ok.createProject(t)
	_, err := ok.calendars.UpdateDay(context.Background(), p.ID, "2024-03-04", calendar.DayPatch{"mainUnit": "Scene 1"})
	require.NoError(t, err)

	injected := errors.New("write failed")
	failing := servicesWithUoW(database, &testutil.FailingUoW{DB: database, FailOn: 1, Err: injected})
	_, err = failing.calendars.MoveDay(context.Background(), p.ID, "2024-03-04", "2024-03-05", domain.MoveSwap)
	require.ErrorIs(t, err, injected)

	assert.Equal(t, "Scene 1", dayOf(t, ok.workspace(t, p.ID).Calendar, "2024-03-04").MainUnit)
}

func TestCalendarService_RecountAll(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p1 := s.createProject(t)
	p2 := s.createProject(t, testutil.WithOwner("owner-2"))

	for _, p := range []string{p1.ID, p2.ID} {
		_, err := s.calendars.UpdateDay(ctx, p, "2024-03-05", calendar.DayPatch{"departments": "SFX"})
		require.NoError(t, err)
		assert.NotContains(t, s.workspace(t, p).Calendar.DepartmentCounts, "dept-sfx")
	}

	// Definitions written behind the services' back are picked up on recount.
	s.seedDefinitions(t)
	n, err := s.calendars.RecountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, p := range []string{p1.ID, p2.ID} {
		counts := s.workspace(t, p).Calendar.DepartmentCounts
		assert.Equal(t, 1, counts["dept-sfx"])
		assert.Equal(t, 0, counts["dept-stu"])
	}
}
