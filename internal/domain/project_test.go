package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_ValidateDates(t *testing.T) {
	prep := time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)
	shoot := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	early := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		project Project
		wantErr bool
	}{
		{"valid", Project{PrepStartDate: prep, ShootStartDate: shoot}, false},
		{"missing prep", Project{ShootStartDate: shoot}, true},
		{"missing shoot", Project{PrepStartDate: prep}, true},
		{"wrap before shoot", Project{PrepStartDate: prep, ShootStartDate: shoot, WrapDate: &early}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.project.ValidateDates()
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProject_EffectiveWrapDate(t *testing.T) {
	p := Project{ShootStartDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-04-01", p.EffectiveWrapDate().Format(DateLayout))

	wrap := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p.WrapDate = &wrap
	assert.Equal(t, wrap, p.EffectiveWrapDate())
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2024-02-30")
	assert.Error(t, err)

	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", FormatOptionalDate(d))
}

func TestErrorCategories(t *testing.T) {
	assert.ErrorIs(t, ErrDayNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrNotShootDay, ErrValidation)
	assert.ErrorIs(t, ErrVersionUnpublished, ErrForbidden)
	assert.Equal(t, "can only move shoot days", ErrNotShootDay.Error())
}
