package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCalendar(projectID string) *domain.Calendar {
	n := 1
	return &domain.Calendar{
		ProjectID: projectID,
		OwnerID:   "owner-1",
		Days: []domain.CalendarDay{
			{Date: "2024-03-04", DayOfWeek: "Monday", IsShootDay: true, ShootDay: &n, Location: "Dublin Castle", Departments: []string{"SFX"}},
			{Date: "2024-03-05", DayOfWeek: "Tuesday", Departments: []string{}},
		},
		DepartmentCounts: map[string]int{"main": 1, "SFX": 1},
		LocationCounts:   map[string]int{"Dublin Castle": 1},
		AreaCounts:       map[string]int{},
		AreaColorMap:     map[string]string{},
		Extra:            map[string]json.RawMessage{"legacyField": json.RawMessage(`"kept"`)},
	}
}

func TestWorkspaceRepo_SaveAndLoad(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(db)
	repo := NewSQLiteWorkspaceRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Workspace")
	require.NoError(t, projects.Create(ctx, proj))

	ws := &domain.Workspace{
		ProjectID:    proj.ID,
		OwnerID:      proj.OwnerID,
		LastModified: time.Now().UTC(),
		IsDraft:      true,
		Calendar:     sampleCalendar(proj.ID),
	}
	require.NoError(t, repo.Save(ctx, ws))

	loaded, err := repo.Load(ctx, proj.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsDraft)
	assert.Empty(t, loaded.BaseVersionID)
	require.Len(t, loaded.Calendar.Days, 2)
	require.NotNil(t, loaded.Calendar.Days[0].ShootDay)
	assert.Equal(t, 1, *loaded.Calendar.Days[0].ShootDay)
	assert.Equal(t, 1, loaded.Calendar.DepartmentCounts["SFX"])
	assert.JSONEq(t, `"kept"`, string(loaded.Calendar.Extra["legacyField"]))
}

func TestWorkspaceRepo_SaveOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(db)
	repo := NewSQLiteWorkspaceRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Overwrite")
	require.NoError(t, projects.Create(ctx, proj))

	ws := &domain.Workspace{ProjectID: proj.ID, IsDraft: true, LastModified: time.Now().UTC(), Calendar: sampleCalendar(proj.ID)}
	require.NoError(t, repo.Save(ctx, ws))

	ws.IsDraft = false
	ws.BaseVersionID = "v-1"
	ws.Calendar.Days = ws.Calendar.Days[:1]
	require.NoError(t, repo.Save(ctx, ws))

	loaded, err := repo.Load(ctx, proj.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsDraft)
	assert.Equal(t, "v-1", loaded.BaseVersionID)
	assert.Len(t, loaded.Calendar.Days, 1)

	ids, err := repo.ListProjectIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{proj.ID}, ids)
}

func TestWorkspaceRepo_Load_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkspaceRepo(db)

	_, err := repo.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCalendarNotFound)
}
