package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date layout used for every stored date.
const DateLayout = "2006-01-02"

// DefaultWrapOffset is applied when a project has no explicit wrap date.
const DefaultWrapOffset = 28 * 24 * time.Hour

type Project struct {
	ID             string
	OwnerID        string
	Title          string
	PrepStartDate  time.Time
	ShootStartDate time.Time
	WrapDate       *time.Time
	IsVersioned    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateDates checks that the prep and shoot anchors are present and that
// an explicit wrap date is not before shoot start.
func (p *Project) ValidateDates() error {
	if p.PrepStartDate.IsZero() {
		return Validationf("prep start date is required")
	}
	if p.ShootStartDate.IsZero() {
		return Validationf("shoot start date is required")
	}
	if p.WrapDate != nil && p.WrapDate.Before(p.ShootStartDate) {
		return Validationf("wrap date %s is before shoot start %s",
			p.WrapDate.Format(DateLayout), p.ShootStartDate.Format(DateLayout))
	}
	return nil
}

// EffectiveWrapDate returns the wrap date, defaulting to four weeks after
// shoot start.
func (p *Project) EffectiveWrapDate() time.Time {
	if p.WrapDate != nil {
		return *p.WrapDate
	}
	return p.ShootStartDate.Add(DefaultWrapOffset)
}

// DisplayID returns the first eight characters of the project ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// ParseDate parses an ISO date, truncated to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatOptionalDate formats t, or returns "" when t is nil.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
