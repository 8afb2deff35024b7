package calendar

import (
	"testing"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenumber_SortsAndNumbers(t *testing.T) {
	days := []domain.CalendarDay{
		{Date: "2024-03-08", IsShootDay: true, ShootDay: intPtr(9)},
		{Date: "2024-03-04", IsShootDay: true},
		{Date: "2024-03-06", IsShootDay: false, ShootDay: intPtr(2)},
		{Date: "2024-03-05", IsShootDay: true, ShootDay: intPtr(1)},
	}

	out := NewEngine(nil).Renumber(days)

	require.Len(t, out, 4)
	assert.Equal(t, []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-08"},
		[]string{out[0].Date, out[1].Date, out[2].Date, out[3].Date})
	assert.Equal(t, []int{1, 2, 3}, shootNumbers(out))
	assert.Nil(t, out[2].ShootDay, "non-shoot days lose their number")
}

func TestRenumber_DropsMalformedDates(t *testing.T) {
	days := []domain.CalendarDay{
		{Date: "2024-03-04", IsShootDay: true},
		{Date: "", IsShootDay: true},
		{Date: "04/03/2024", IsShootDay: true},
		{Date: "2024-02-30", IsShootDay: true},
		{Date: "2024-03-05", IsShootDay: true},
	}

	out := NewEngine(nil).Renumber(days)

	require.Len(t, out, 2)
	assert.Equal(t, []int{1, 2}, shootNumbers(out))
}

func TestRenumber_Empty(t *testing.T) {
	assert.Empty(t, NewEngine(nil).Renumber(nil))
}
