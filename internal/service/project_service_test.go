package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/repository"
	"github.com/alexanderramin/shootcal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_GeneratesCalendar(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	p := testutil.NewTestProject("The Long Weekend")
	p.ID = ""
	require.NoError(t, s.projects.Create(ctx, p))
	assert.NotEmpty(t, p.ID, "UUID should be generated")

	ws := s.workspace(t, p.ID)
	assert.Len(t, ws.Calendar.Days, 17)
	assert.Equal(t, 10, ws.Calendar.ShootDayCount())
	assert.False(t, ws.IsDraft, "non-versioned workspace is never a draft")
	assert.Equal(t, "owner-1", ws.OwnerID)

	ev, ok := s.observer.last("project.create")
	require.True(t, ok)
	assert.True(t, ev.Success)
	assert.Equal(t, 17, ev.Fields["days"])
}

func TestProjectService_Create_Validation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(p *domain.Project)
	}{
		{"blank title", func(p *domain.Project) { p.Title = "   " }},
		{"no owner", func(p *domain.Project) { p.OwnerID = "" }},
		{"no prep start", func(p *domain.Project) { p.PrepStartDate = time.Time{} }},
		{"wrap before shoot", func(p *domain.Project) {
			w := testutil.Date("2024-03-02")
			p.WrapDate = &w
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testutil.NewTestProject("Invalid")
			tc.mutate(p)
			err := s.projects.Create(ctx, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	list, err := s.projects.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list, "no project should have been stored")
}

func TestProjectService_Create_DefaultWrap(t *testing.T) {
	s := setupServices(t)
	p := testutil.NewTestProject("Open ended")
	p.WrapDate = nil
	require.NoError(t, s.projects.Create(context.Background(), p))

	ws := s.workspace(t, p.ID)
	last := ws.Calendar.Days[len(ws.Calendar.Days)-1]
	assert.Equal(t, "2024-04-01", last.Date, "wrap defaults to four weeks after shoot start")
}

func TestProjectService_Create_RollsBackOnWorkspaceFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	injected := errors.New("disk full")
	// Write 1 inserts the project, write 2 saves the workspace.
	s := servicesWithUoW(database, &testutil.FailingUoW{DB: database, FailOn: 2, Err: injected})

	p := testutil.NewTestProject("Doomed")
	err := s.projects.Create(context.Background(), p)
	require.ErrorIs(t, err, injected)

	_, err = repository.NewSQLiteProjectRepo(database).GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	ev, ok := s.observer.last("project.create")
	require.True(t, ok)
	assert.False(t, ev.Success)
}

func TestProjectService_ListByOwner(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	s.createProject(t)
	s.createProject(t, testutil.WithOwner("owner-2"))

	mine, err := s.projects.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := s.projects.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProjectService_Update_RegenerateKeepsEdits(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)

	_, err := s.calendars.UpdateDay(ctx, p.ID, "2024-03-05", map[string]any{"mainUnit": "Scene 12"})
	require.NoError(t, err)

	wrap := testutil.Date("2024-03-10")
	p.WrapDate = &wrap
	p.Title = "Shorter Weekend"
	require.NoError(t, s.projects.Update(ctx, p, true))

	ws := s.workspace(t, p.ID)
	assert.Len(t, ws.Calendar.Days, 10)
	assert.Equal(t, "Scene 12", dayOf(t, ws.Calendar, "2024-03-05").MainUnit)

	got, err := s.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shorter Weekend", got.Title)
}

func TestProjectService_Update_WithoutRegenerate(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)

	wrap := testutil.Date("2024-03-10")
	p.WrapDate = &wrap
	p.OwnerID = "someone-else"
	require.NoError(t, s.projects.Update(ctx, p, false))

	assert.Len(t, s.workspace(t, p.ID).Calendar.Days, 17)
	got, err := s.projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", got.OwnerID, "owner is not editable through update")
}

func TestProjectService_Update_NotFound(t *testing.T) {
	s := setupServices(t)
	p := testutil.NewTestProject("Ghost")
	err := s.projects.Update(context.Background(), p, true)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectService_Delete_Cascades(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)
	require.NoError(t, s.rules.AddHoliday(ctx, testutil.NewTestHoliday(p.ID, "2024-03-05", "Closed", false, false)))
	_, err := s.access.Share(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, s.projects.Delete(ctx, p.ID))

	_, err = s.projects.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	_, err = repository.NewSQLiteWorkspaceRepo(s.db).Load(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrCalendarNotFound)
	grants, err := s.access.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, grants)

	assert.ErrorIs(t, s.projects.Delete(ctx, p.ID), domain.ErrProjectNotFound)
}
