package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionService_SaveAndGet(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	area := &domain.Area{Name: " Docklands ", Color: "#00ff00"}
	require.NoError(t, s.definitions.SaveArea(ctx, area))
	assert.NotEmpty(t, area.ID)
	assert.Equal(t, "Docklands", area.Name)

	dept := &domain.Department{Code: " cam ", Name: "Camera"}
	require.NoError(t, s.definitions.SaveDepartment(ctx, dept))
	assert.Equal(t, "CAM", dept.Code)

	lat, lng := 53.3478, -6.2297
	loc := &domain.Location{Name: "Custom House", AreaID: area.ID, Latitude: &lat, Longitude: &lng}
	require.NoError(t, s.definitions.SaveLocation(ctx, loc))
	assert.Empty(t, s.geocoder.calls, "coordinates present, no lookup")

	got, err := s.definitions.Get(ctx, domain.DefLocation, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, area.ID, got.(domain.Location).AreaID)

	defs, err := s.definitions.All(ctx)
	require.NoError(t, err)
	assert.Len(t, defs.Areas, 1)
	assert.Len(t, defs.Departments, 1)
	assert.Len(t, defs.Locations, 1)

	_, err = s.definitions.Get(ctx, domain.DefArea, "missing")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
}

func TestDefinitionService_Validation(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	lat := 53.0

	assert.ErrorIs(t, s.definitions.SaveArea(ctx, &domain.Area{Name: "Bad", Color: "red"}), domain.ErrValidation)
	assert.ErrorIs(t, s.definitions.SaveDepartment(ctx, &domain.Department{Code: "X"}), domain.ErrValidation)
	assert.ErrorIs(t, s.definitions.SaveLocation(ctx, &domain.Location{Name: "Half", Latitude: &lat}), domain.ErrValidation)
	assert.ErrorIs(t, s.definitions.SaveLocation(ctx, &domain.Location{Name: "Lost", AreaID: "nowhere"}), domain.ErrValidation)
}

func TestDefinitionService_SaveLocation_Geocodes(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.geocoder.places = []geocode.Place{{DisplayName: "Kilmainham Gaol", Latitude: 53.3419, Longitude: -6.3097}}

	loc := &domain.Location{Name: "Gaol", Address: "Inchicore Rd, Dublin"}
	require.NoError(t, s.definitions.SaveLocation(ctx, loc))
	assert.Equal(t, []string{"Inchicore Rd, Dublin"}, s.geocoder.calls)
	require.True(t, loc.HasCoordinates())
	assert.InDelta(t, 53.3419, *loc.Latitude, 1e-9)
}

func TestDefinitionService_SaveLocation_GeocodeFailureIsNotFatal(t *testing.T) {
	s := setupServices(t)
	s.geocoder.err = geocode.ErrUnavailable

	loc := &domain.Location{Name: "Somewhere", Address: "Unknown road"}
	require.NoError(t, s.definitions.SaveLocation(context.Background(), loc))
	assert.False(t, loc.HasCoordinates())
}

func TestDefinitionService_Geocode(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.definitions.Geocode(ctx, "  ", 5)
	assert.ErrorIs(t, err, domain.ErrValidation)

	s.geocoder.err = errors.New("boom")
	places, err := s.definitions.Geocode(ctx, "Dublin", 5)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestDefinitionService_DeleteAreaInUse(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.seedDefinitions(t)

	err := s.definitions.Delete(ctx, domain.DefArea, "area-north")
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, s.definitions.Delete(ctx, domain.DefLocation, "loc-castle"))
	require.NoError(t, s.definitions.Delete(ctx, domain.DefArea, "area-north"))
	assert.ErrorIs(t, s.definitions.Delete(ctx, domain.DefArea, "area-north"), domain.ErrDefinitionNotFound)
}

func TestDefinitionService_DepartmentChangeRecounts(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p := s.createProject(t)
	_, err := s.calendars.UpdateDay(ctx, p.ID, "2024-03-05", calendar.DayPatch{"departments": "VFX"})
	require.NoError(t, err)

	dept := &domain.Department{Code: "vfx", Name: "Visual Effects"}
	require.NoError(t, s.definitions.SaveDepartment(ctx, dept))

	counts := s.workspace(t, p.ID).Calendar.DepartmentCounts
	assert.Equal(t, 1, counts[dept.ID])

	ev, ok := s.observer.last("definition.save_department")
	require.True(t, ok)
	assert.Equal(t, 1, ev.Fields["recounted"])

	require.NoError(t, s.definitions.Delete(ctx, domain.DefDepartment, dept.ID))
	assert.NotContains(t, s.workspace(t, p.ID).Calendar.DepartmentCounts, dept.ID)
}
