package calendar

import (
	"testing"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func testProject(t *testing.T, prep, shoot, wrap string) *domain.Project {
	t.Helper()
	p := &domain.Project{
		ID:             "proj-1",
		OwnerID:        "owner-1",
		Title:          "Test Feature",
		PrepStartDate:  mustDate(t, prep),
		ShootStartDate: mustDate(t, shoot),
	}
	if wrap != "" {
		w := mustDate(t, wrap)
		p.WrapDate = &w
	}
	return p
}

func generate(t *testing.T, p *domain.Project, rules domain.RuleSet, existing *domain.Calendar) *domain.Calendar {
	t.Helper()
	cal, err := NewEngine(nil).Generate(GenerateInput{
		Project:  p,
		Rules:    rules,
		Existing: existing,
		Now:      time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return cal
}

func dayByDate(t *testing.T, cal *domain.Calendar, date string) domain.CalendarDay {
	t.Helper()
	idx := cal.DayIndex(date)
	require.GreaterOrEqual(t, idx, 0, "day %s not in calendar", date)
	return cal.Days[idx]
}

func shootNumbers(days []domain.CalendarDay) []int {
	var out []int
	for _, d := range days {
		if d.ShootDay != nil {
			out = append(out, *d.ShootDay)
		}
	}
	return out
}

func intPtr(n int) *int { return &n }
