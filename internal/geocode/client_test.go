package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnSearchComplete(e CallEvent) { r.events = append(r.events, e) }

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.TimeoutMs = 2000
	cfg.MaxRetries = 0
	return cfg
}

const castleJSON = `[{
	"display_name": "Dublin Castle, Dame Street, Temple Bar, Dublin, Leinster, D02, Ireland, with a very long tail",
	"lat": "53.3429", "lon": "-6.2674",
	"address": {"city": "Dublin", "country": "Ireland"}
}, {
	"display_name": "Broken", "lat": "north", "lon": "-6.0"
}]`

func TestSearch_BiasedRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Dublin Castle", r.URL.Query().Get("q"))
		assert.Equal(t, "ie,gb", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "shootcal/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(castleJSON))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewNominatimClient(testConfig(srv.URL), obs)
	places, err := client.Search(context.Background(), "Dublin Castle", 5)

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Dublin", places[0].City)
	assert.InDelta(t, 53.3429, places[0].Latitude, 1e-9)
	assert.Equal(t, "Dublin Castle, Dame Street, Temple Bar, Ireland", places[0].DisplayName)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "nominatim", obs.events[0].Source)
}

func TestSearch_RetriesWithoutBiasOnErrorStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("countrycodes") != "" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(castleJSON))
	}))
	defer srv.Close()

	client := NewNominatimClient(testConfig(srv.URL), nil)
	places, err := client.Search(context.Background(), "Dublin Castle", 5)

	require.NoError(t, err)
	assert.Len(t, places, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearch_CachesResults(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(castleJSON))
	}))
	defer srv.Close()

	client := NewNominatimClient(testConfig(srv.URL), nil)
	_, err := client.Search(context.Background(), "Dublin Castle", 5)
	require.NoError(t, err)
	_, err = client.Search(context.Background(), "dublin castle", 5)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
}

func TestSearch_FallsBackToKnownPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewNominatimClient(testConfig(srv.URL), obs)
	places, err := client.Search(context.Background(), "Kilkenny", 5)

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Kilkenny, Ireland", places[0].DisplayName)
	assert.Equal(t, "fallback", obs.events[0].Source)
}

func TestSearch_ErrorWhenNothingMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewNominatimClient(testConfig(srv.URL), obs)
	_, err := client.Search(context.Background(), "Atlantis", 5)

	assert.ErrorIs(t, err, ErrBadStatus)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "BAD_STATUS", obs.events[0].ErrorCode)
}

func TestSearch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	client := NewNominatimClient(cfg, nil)
	_, err := client.Search(context.Background(), "Atlantis", 5)

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestSearch_Unavailable(t *testing.T) {
	client := NewNominatimClient(testConfig("http://127.0.0.1:1"), nil)
	_, err := client.Search(context.Background(), "Atlantis", 5)

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := NewNominatimClient(testConfig("http://127.0.0.1:1"), nil)
	places, err := client.Search(context.Background(), "  ", 5)

	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestFallbackSearch_ExactBeforePartial(t *testing.T) {
	places := fallbackSearch("Dublin", 5)
	require.NotEmpty(t, places)
	assert.Equal(t, "Dublin", places[0].City)

	assert.Empty(t, fallbackSearch("zzz", 5))
	assert.Len(t, fallbackSearch("a", 2), 2)
}
