package formatter

import (
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
)

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "TITLE", "PREP", "SHOOT", "WRAP", "MODE"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		mode := Dim("workspace")
		if p.IsVersioned {
			mode = StylePurple.Render("versioned")
		}
		rows = append(rows, []string{
			OrDash(p.DisplayID()),
			Bold(p.Title),
			p.PrepStartDate.Format(domain.DateLayout),
			p.ShootStartDate.Format(domain.DateLayout),
			p.EffectiveWrapDate().Format(domain.DateLayout),
			mode,
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProject renders a project card with its schedule summary. cal may
// be nil when no calendar has been generated yet.
func FormatProject(p *domain.Project, cal *domain.Calendar, today time.Time) string {
	wrap := p.EffectiveWrapDate().Format(domain.DateLayout)
	if p.WrapDate == nil {
		wrap += Dim(" (default)")
	}
	pairs := [][2]string{
		{"title", Bold(p.Title)},
		{"id", p.ID},
		{"owner", p.OwnerID},
		{"prep", p.PrepStartDate.Format(domain.DateLayout)},
		{"shoot", p.ShootStartDate.Format(domain.DateLayout)},
		{"wrap", wrap},
		{"versioned", yesNo(p.IsVersioned)},
	}
	if cal != nil {
		pairs = append(pairs,
			[2]string{"days", Plural(len(cal.Days), "day")},
			[2]string{"progress", RenderProgress(shotBy(cal, today), cal.ShootDayCount(), 20)},
		)
	}
	return RenderBox("Project", KeyValue(pairs...))
}

// shotBy counts shoot days strictly before today.
func shotBy(cal *domain.Calendar, today time.Time) int {
	cutoff := today.Format(domain.DateLayout)
	n := 0
	for _, d := range cal.Days {
		if d.IsShootDay && d.Date < cutoff {
			n++
		}
	}
	return n
}

func yesNo(b bool) string {
	if b {
		return StyleGreen.Render("yes")
	}
	return Dim("no")
}
