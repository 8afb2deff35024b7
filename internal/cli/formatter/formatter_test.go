package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func intPtr(n int) *int { return &n }

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{StyleGreen.Render("long cell"), "x"}, {"s", "y"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Equal(t, "A          B", lines[0])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name        string
		done, total int
		want        string
	}{
		{"empty schedule", 0, 0, "[░░░░] 0/0"},
		{"half", 2, 4, "[██░░] 2/4"},
		{"complete", 4, 4, "[████] 4/4"},
		{"clamps over", 9, 4, "[████] 4/4"},
		{"clamps negative", -1, 4, "[░░░░] 0/4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.done, tt.total, 4)))
		})
	}
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Just now", HumanTimestampFrom(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestampFrom(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestampFrom(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Mar 1, 2024", HumanTimestampFrom(now.AddDate(0, 0, -3), now))
	assert.Equal(t, "--", HumanTimestampFrom(time.Time{}, now))
}

func TestPluralAndTruncate(t *testing.T) {
	assert.Equal(t, "1 day", Plural(1, "day"))
	assert.Equal(t, "0 days", Plural(0, "day"))
	assert.Equal(t, "Dubl…", Truncate("Dublin Castle", 5))
	assert.Equal(t, "Kells", Truncate("Kells", 5))
}

func TestFormatProjectList(t *testing.T) {
	p := testutil.NewTestProject("The Long Weekend", testutil.WithVersioned())
	p.ID = "abcdef12-3456-7890-abcd-ef1234567890"

	out := stripANSI(FormatProjectList([]*domain.Project{p}))

	assert.Contains(t, out, "PROJECTS")
	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef12-3456")
	assert.Contains(t, out, "The Long Weekend")
	assert.Contains(t, out, "2024-03-17")
	assert.Contains(t, out, "versioned")
}

func TestFormatProject_ShowsProgress(t *testing.T) {
	p := testutil.NewTestProject("The Long Weekend")
	cal := &domain.Calendar{Days: []domain.CalendarDay{
		{Date: "2024-03-04", IsShootDay: true, ShootDay: intPtr(1)},
		{Date: "2024-03-05", IsShootDay: true, ShootDay: intPtr(2)},
		{Date: "2024-03-06", IsShootDay: true, ShootDay: intPtr(3)},
	}}

	out := stripANSI(FormatProject(p, cal, testutil.Date("2024-03-06")))

	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "2/3")
}

func TestFormatProject_DefaultWrapIsMarked(t *testing.T) {
	p := testutil.NewTestProject("No Wrap")
	p.WrapDate = nil

	out := stripANSI(FormatProject(p, nil, time.Now()))

	assert.Contains(t, out, "(default)")
	assert.NotContains(t, out, "PROGRESS")
}

func TestFormatCalendar_GroupsByMonth(t *testing.T) {
	p := testutil.NewTestProject("Month End")
	cal := &domain.Calendar{Days: []domain.CalendarDay{
		{Date: "2024-03-29", DayOfWeek: "Friday", MonthName: "March", Year: 2024, DayType: domain.DayShoot, IsShootDay: true, ShootDay: intPtr(1), MainUnit: "Sc 12"},
		{Date: "2024-03-30", DayOfWeek: "Saturday", MonthName: "March", Year: 2024, DayType: domain.DayWeekend},
		{Date: "2024-04-01", DayOfWeek: "Monday", MonthName: "April", Year: 2024, DayType: domain.DayHoliday,
			AutoNote: &domain.AutoNote{Kind: domain.NoteHoliday, Text: "Easter Monday"}},
	}}

	out := stripANSI(FormatCalendar(p, cal))

	assert.Contains(t, out, "MARCH 2024")
	assert.Contains(t, out, "APRIL 2024")
	assert.Contains(t, out, "Sc 12")
	assert.Contains(t, out, "Easter Monday")
	assert.Contains(t, out, "HOLIDAY")
	assert.Contains(t, out, "3 days, 1 shoot day")
	assert.Less(t, strings.Index(out, "MARCH"), strings.Index(out, "APRIL"))
}

func TestFormatCalendar_Empty(t *testing.T) {
	p := testutil.NewTestProject("Empty")
	assert.Contains(t, FormatCalendar(p, nil), "No calendar")
}

func TestFormatDay(t *testing.T) {
	d := &domain.CalendarDay{
		Date: "2024-03-04", DayOfWeek: "Monday", DayType: domain.DayShoot,
		IsShootDay: true, ShootDay: intPtr(1),
		Location: "Dublin Castle", LocationArea: "North", LocationAreaColor: "#ff0000",
		Departments: []string{"SFX", "STU"}, Extras: 20, FeaturedExtras: 4,
		SunTimes: &domain.SunTimes{Sunrise: "06:45", Sunset: "18:30"},
	}

	out := stripANSI(FormatDay(d))

	assert.Contains(t, out, "Monday 2024-03-04")
	assert.Contains(t, out, "■ North")
	assert.Contains(t, out, "SFX, STU")
	assert.Contains(t, out, "20 (4 featured)")
	assert.Contains(t, out, "06:45 - 18:30")
}

func TestFormatCounts_ResolvesDepartmentsAndAreas(t *testing.T) {
	defs := testutil.NewTestDefinitions()
	cal := &domain.Calendar{
		DepartmentCounts: map[string]int{"main": 10, "sixthDay": 1, "dept-sfx": 3},
		LocationCounts:   map[string]int{"Dublin Castle": 2, "Kilkenny Castle": 5},
		AreaCounts:       map[string]int{"area-north": 2},
	}

	out := stripANSI(FormatCounts(cal, defs))

	assert.Contains(t, out, "SFX")
	assert.Contains(t, out, "North")
	assert.NotContains(t, out, "area-north")
	assert.Less(t, strings.Index(out, "Kilkenny Castle"), strings.Index(out, "Dublin Castle"))
}

func TestFormatRules(t *testing.T) {
	assert.Contains(t, FormatRules(domain.RuleSet{}), "No exception rules")

	rules := domain.RuleSet{
		Holidays:     []domain.Holiday{*testutil.NewTestHoliday("p", "2024-03-18", "St Patrick's Day", false, false)},
		SpecialDates: []domain.SpecialDate{*testutil.NewTestSpecialDate("p", "2024-03-08", domain.SpecialTravel, "Unit move", false)},
	}
	out := stripANSI(FormatRules(rules))
	assert.Contains(t, out, "HOLIDAYS")
	assert.Contains(t, out, "St Patrick's Day")
	assert.Contains(t, out, "Travel Day")
	assert.NotContains(t, out, "HIATUS")
}

func TestFormatDefinitions(t *testing.T) {
	out := stripANSI(FormatDefinitions(testutil.NewTestDefinitions()))
	assert.Contains(t, out, "Dublin Castle")
	assert.Contains(t, out, "53.3429, -6.2674")
	assert.Contains(t, out, "SFX")
}

func TestFormatShareList(t *testing.T) {
	assert.Contains(t, FormatShareList(nil), "Not shared")

	out := stripANSI(FormatShareList([]*domain.AccessGrant{{Code: "ABCD2345", Token: "tok", ViewCount: 3}}))
	assert.Contains(t, out, "ABCD2345")
	assert.Contains(t, out, "/calendar/tok")
	assert.Contains(t, out, "never")
}
