package suntimes

import (
	"testing"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Options{Timezone: "Europe/Dublin", CacheTTL: time.Hour})
	require.NoError(t, err)
	return p
}

func clock(t *testing.T, s string) time.Duration {
	t.Helper()
	c, err := time.Parse(clockLayout, s)
	require.NoError(t, err)
	return time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute
}

func between(t *testing.T, got, lo, hi string) {
	t.Helper()
	v := clock(t, got)
	assert.GreaterOrEqual(t, v, clock(t, lo), "got %s", got)
	assert.LessOrEqual(t, v, clock(t, hi), "got %s", got)
}

func TestSunTimes_DublinMidsummer(t *testing.T) {
	p := newProvider(t)

	st, ok := p.SunTimes(53.3498, -6.2603, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	between(t, st.Sunrise, "04:45", "05:10")
	between(t, st.Sunset, "21:45", "22:10")
}

func TestSunTimes_DublinMidwinterUsesWinterOffset(t *testing.T) {
	p := newProvider(t)

	st, ok := p.SunTimes(53.3498, -6.2603, time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	between(t, st.Sunrise, "08:30", "08:50")
	between(t, st.Sunset, "16:00", "16:20")
}

func TestSunTimes_InvalidCoordinates(t *testing.T) {
	p := newProvider(t)
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	_, ok := p.SunTimes(91, 0, date)
	assert.False(t, ok)
	_, ok = p.SunTimes(0, -181, date)
	assert.False(t, ok)
	assert.Equal(t, 0, p.CacheLen())
}

func TestSunTimes_PolarDayHasNoData(t *testing.T) {
	p := newProvider(t)

	_, ok := p.SunTimes(78.22, 15.65, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestSunTimes_CachedByRoundedKey(t *testing.T) {
	p := newProvider(t)
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	first, ok := p.SunTimes(53.34981, -6.26031, date)
	require.True(t, ok)
	second, ok := p.SunTimes(53.34984, -6.26034, date)
	require.True(t, ok)

	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, p.CacheLen())

	p.Purge()
	assert.Equal(t, 0, p.CacheLen())
}

func TestForLocation(t *testing.T) {
	p := newProvider(t)
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	_, ok := p.ForLocation(&domain.Location{Name: "No coords"}, date)
	assert.False(t, ok)
	_, ok = p.ForLocation(nil, date)
	assert.False(t, ok)

	lat, lng := 52.6541, -7.2448
	st, ok := p.ForLocation(&domain.Location{Name: "Kilkenny", Latitude: &lat, Longitude: &lng}, date)
	require.True(t, ok)
	assert.NotEmpty(t, st.Display())
}

func TestNew_UnknownTimezone(t *testing.T) {
	_, err := New(Options{Timezone: "Nowhere/Special"})
	assert.Error(t, err)
}
