// Package geocode resolves place names to coordinates through Nominatim,
// with a small built-in table of production towns as a fallback.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Place is one geocoding match.
type Place struct {
	DisplayName      string  `json:"displayName"`
	FormattedAddress string  `json:"formattedAddress"`
	City             string  `json:"city"`
	Country          string  `json:"country"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// Geocoder looks up places by free-text query.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// Config holds the client settings.
type Config struct {
	Endpoint     string
	UserAgent    string
	CountryCodes string
	TimeoutMs    int
	MaxRetries   int
	CacheSize    int
	CacheTTL     time.Duration
}

// DefaultConfig returns the public Nominatim endpoint biased to Ireland
// and the UK.
func DefaultConfig() Config {
	return Config{
		Endpoint:     "https://nominatim.openstreetmap.org",
		UserAgent:    "shootcal/1.0",
		CountryCodes: "ie,gb",
		TimeoutMs:    5000,
		MaxRetries:   1,
		CacheSize:    1024,
		CacheTTL:     24 * time.Hour,
	}
}

type nominatimClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
	cache    *expirable.LRU[string, []Place]
}

// NewNominatimClient creates a Geocoder backed by a Nominatim server.
func NewNominatimClient(cfg Config, observer Observer) Geocoder {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1024
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return &nominatimClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		cache:    expirable.NewLRU[string, []Place](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// nominatimPlace is one element of the /search JSON array.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

// Search queries the country-biased endpoint first and retries without
// the bias when that request fails. When the service yields nothing the
// built-in table is consulted. Only non-empty results are cached.
func (c *nominatimClient) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}
	key := fmt.Sprintf("%s:%d", strings.ToLower(query), limit)
	if places, ok := c.cache.Get(key); ok {
		c.observer.OnSearchComplete(CallEvent{Query: query, Source: "cache", Results: len(places), Success: true})
		return places, nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	places, err := c.searchWithRetry(ctx, query, limit, c.cfg.CountryCodes)
	if err != nil && c.cfg.CountryCodes != "" && ctx.Err() == nil {
		places, err = c.searchWithRetry(ctx, query, limit, "")
	}
	source := "nominatim"
	if len(places) == 0 {
		if fb := fallbackSearch(query, limit); len(fb) > 0 {
			places, err, source = fb, nil, "fallback"
		}
	}

	event := CallEvent{
		Query:     query,
		Source:    source,
		LatencyMs: time.Since(start).Milliseconds(),
		Results:   len(places),
		Success:   err == nil,
	}
	if err != nil {
		if ctx.Err() != nil {
			err = ErrTimeout
		} else if isConnectionError(err) {
			err = ErrUnavailable
		}
		event.ErrorCode = errorCode(err)
		c.observer.OnSearchComplete(event)
		return nil, err
	}
	c.observer.OnSearchComplete(event)

	if len(places) > 0 {
		c.cache.Add(key, places)
	}
	return places, nil
}

func (c *nominatimClient) searchWithRetry(ctx context.Context, query string, limit int, countryCodes string) ([]Place, error) {
	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		places, err := c.doRequest(ctx, query, limit, countryCodes)
		if err == nil {
			return places, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}
	if isConnectionError(lastErr) || ctx.Err() != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
}

func (c *nominatimClient) doRequest(ctx context.Context, query string, limit int, countryCodes string) ([]Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")
	if countryCodes != "" {
		params.Set("countrycodes", countryCodes)
	}

	endpoint := strings.TrimRight(c.cfg.Endpoint, "/") + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	var raw []nominatimPlace
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return convertPlaces(raw, query), nil
}

// convertPlaces skips entries with unparseable coordinates and shortens
// long display names to their first three parts plus the country.
func convertPlaces(raw []nominatimPlace, query string) []Place {
	places := make([]Place, 0, len(raw))
	for _, r := range raw {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}
		city := r.Address.City
		if city == "" {
			city = r.Address.Town
		}
		if city == "" {
			city = r.Address.Village
		}
		display := r.DisplayName
		if display == "" {
			display = query
		} else if len(display) > 80 {
			if parts := strings.Split(display, ", "); len(parts) > 3 {
				display = strings.Join(parts[:3], ", ") + ", " + r.Address.Country
			}
		}
		places = append(places, Place{
			DisplayName:      display,
			FormattedAddress: r.DisplayName,
			City:             city,
			Country:          r.Address.Country,
			Latitude:         lat,
			Longitude:        lng,
		})
	}
	return places
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrBadStatus):
		return "BAD_STATUS"
	default:
		return "UNKNOWN"
	}
}
