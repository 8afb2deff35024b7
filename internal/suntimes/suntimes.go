// Package suntimes computes local sunrise and sunset for filming locations.
package suntimes

import (
	"fmt"
	"io"
	"log/slog"
	"time"
	_ "time/tzdata"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/nathan-osman/go-sunrise"
)

const clockLayout = "15:04"

// Options configures a Provider.
type Options struct {
	// Timezone names the zone results are expressed in.
	Timezone  string
	CacheSize int
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

// Provider answers sun-time queries through a TTL cache keyed by
// coordinates rounded to four decimals and the calendar date.
type Provider struct {
	loc   *time.Location
	cache *expirable.LRU[string, domain.SunTimes]
	log   *slog.Logger
}

func New(opts Options) (*Provider, error) {
	if opts.Timezone == "" {
		opts.Timezone = "Europe/Dublin"
	}
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", opts.Timezone, err)
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 4096
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Provider{
		loc:   loc,
		cache: expirable.NewLRU[string, domain.SunTimes](opts.CacheSize, nil, opts.CacheTTL),
		log:   opts.Logger,
	}, nil
}

// SunTimes returns sunrise and sunset on date at the given coordinates.
// It reports false for out-of-range coordinates and for days on which the
// sun does not rise or set.
func (p *Provider) SunTimes(lat, lng float64, date time.Time) (*domain.SunTimes, bool) {
	if lat < -90 || lat > 90 {
		p.log.Warn("invalid latitude for sun times", "latitude", lat)
		return nil, false
	}
	if lng < -180 || lng > 180 {
		p.log.Warn("invalid longitude for sun times", "longitude", lng)
		return nil, false
	}

	day := date.Format(domain.DateLayout)
	key := fmt.Sprintf("%.4f,%.4f,%s", lat, lng, day)
	if st, ok := p.cache.Get(key); ok {
		return &st, true
	}

	rise, set := sunrise.SunriseSunset(lat, lng, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		p.log.Debug("no sunrise or sunset", "key", key)
		return nil, false
	}
	st := domain.SunTimes{
		Sunrise: rise.In(p.loc).Format(clockLayout),
		Sunset:  set.In(p.loc).Format(clockLayout),
	}
	p.cache.Add(key, st)
	return &st, true
}

// ForLocation is SunTimes for a location definition. Locations without
// coordinates yield no data.
func (p *Provider) ForLocation(loc *domain.Location, date time.Time) (*domain.SunTimes, bool) {
	if loc == nil || !loc.HasCoordinates() {
		return nil, false
	}
	return p.SunTimes(*loc.Latitude, *loc.Longitude, date)
}

// CacheLen reports the number of cached entries.
func (p *Provider) CacheLen() int {
	return p.cache.Len()
}

func (p *Provider) Purge() {
	p.cache.Purge()
}
