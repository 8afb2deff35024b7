package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBrowser(t *testing.T) (*App, *teatest.Driver, string) {
	t.Helper()
	app := testApp(t)
	p := seedProject(t, app)
	ctx := context.Background()
	_, err := app.Calendars.UpdateDay(ctx, p.ID, "2024-03-04", calendar.DayPatch{"mainUnit": "Scene 1"})
	require.NoError(t, err)
	cal, err := app.Calendars.Get(ctx, p.ID)
	require.NoError(t, err)

	d := teatest.New(t, newBrowseModel(ctx, app, p, cal), teatest.WithSize(160, 40))
	d.DrainInit()
	return app, d, p.ID
}

func TestBrowse_ShowsDays(t *testing.T) {
	_, d, _ := newTestBrowser(t)

	view := d.View()
	assert.Contains(t, view, "The Long Weekend")
	assert.Contains(t, view, "2024-03-01")
	assert.Contains(t, view, "Scene 1")
}

func TestBrowse_DetailToggle(t *testing.T) {
	_, d, _ := newTestBrowser(t)

	d.Press("down", "down", "down", "enter")
	m := d.Model.(*browseModel)
	require.True(t, m.detail)
	assert.Equal(t, "2024-03-04", m.selectedDay().Date)

	d.Press("enter")
	assert.False(t, d.Model.(*browseModel).detail)
}

func TestBrowse_MoveSwapsDays(t *testing.T) {
	app, d, projectID := newTestBrowser(t)

	d.Press("down", "down", "down", "m")
	m := d.Model.(*browseModel)
	assert.Equal(t, "2024-03-04", m.moveFrom)
	assert.Contains(t, d.View(), "Moving 2024-03-04")

	d.Press("down", "m")
	m = d.Model.(*browseModel)
	require.NoError(t, m.err)
	assert.Empty(t, m.moveFrom)
	assert.Contains(t, d.View(), "Moved 2024-03-04 to 2024-03-05")

	day, err := app.Calendars.GetDay(context.Background(), projectID, "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "Scene 1", day.MainUnit)
}

func TestBrowse_MoveRejectsNonShootDay(t *testing.T) {
	_, d, _ := newTestBrowser(t)

	d.Press("m", "down", "m")

	m := d.Model.(*browseModel)
	assert.Error(t, m.err)
	assert.Contains(t, d.View(), "can only move shoot days")
}

func TestBrowse_CancelMove(t *testing.T) {
	_, d, _ := newTestBrowser(t)

	d.Press("m", "esc")

	m := d.Model.(*browseModel)
	assert.Empty(t, m.moveFrom)
	assert.Empty(t, m.status)
}

func TestBrowse_Quit(t *testing.T) {
	_, d, _ := newTestBrowser(t)

	d.Press("q")

	assert.True(t, d.Quitting)
}
