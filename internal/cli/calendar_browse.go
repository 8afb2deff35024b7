package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/shootcal/internal/cli/formatter"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type browseKeys struct {
	Detail     key.Binding
	Move       key.Binding
	Cancel     key.Binding
	Regenerate key.Binding
	Quit       key.Binding
}

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Detail, k.Move, k.Regenerate, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Cancel}}
}

func defaultBrowseKeys() browseKeys {
	return browseKeys{
		Detail:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Move:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move day")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel move")),
		Regenerate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "regenerate")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// calendarLoadedMsg carries a refreshed calendar, or the error that
// prevented it.
type calendarLoadedMsg struct {
	cal    *domain.Calendar
	status string
	err    error
}

// browseModel is a scrollable table of calendar days. A day can be moved
// by pressing m on it and again on the target day.
type browseModel struct {
	ctx     context.Context
	app     *App
	project *domain.Project
	cal     *domain.Calendar

	table    table.Model
	help     help.Model
	keys     browseKeys
	detail   bool
	moveFrom string
	status   string
	err      error
}

var browseColumns = []table.Column{
	{Title: "DATE", Width: 10},
	{Title: "DAY", Width: 3},
	{Title: "TYPE", Width: 10},
	{Title: "#", Width: 3},
	{Title: "MAIN UNIT", Width: 24},
	{Title: "LOCATION", Width: 18},
	{Title: "AREA", Width: 10},
	{Title: "DEPTS", Width: 10},
	{Title: "NOTES", Width: 24},
}

func newBrowseModel(ctx context.Context, app *App, p *domain.Project, cal *domain.Calendar) *browseModel {
	t := table.New(table.WithColumns(browseColumns), table.WithFocused(true), table.WithHeight(20))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(formatter.ColorHeader).Bold(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorBlue)
	t.SetStyles(styles)

	m := &browseModel{
		ctx:     ctx,
		app:     app,
		project: p,
		table:   t,
		help:    help.New(),
		keys:    defaultBrowseKeys(),
	}
	m.setCalendar(cal)
	return m
}

func (m *browseModel) setCalendar(cal *domain.Calendar) {
	m.cal = cal
	rows := make([]table.Row, 0, len(cal.Days))
	for i := range cal.Days {
		rows = append(rows, browseRow(&cal.Days[i]))
	}
	m.table.SetRows(rows)
}

// browseRow is plain text; the table measures cell widths itself.
func browseRow(d *domain.CalendarDay) table.Row {
	num := "-"
	if d.ShootDay != nil {
		num = fmt.Sprint(*d.ShootDay)
	}
	dow := d.DayOfWeek[:min(3, len(d.DayOfWeek))]
	return table.Row{
		d.Date, dow, strings.ToUpper(string(d.DayType)), num,
		d.MainUnit, d.Location, d.LocationArea,
		strings.Join(d.Departments, ","), d.DisplayNotes(),
	}
}

func (m *browseModel) selectedDay() *domain.CalendarDay {
	i := m.table.Cursor()
	if m.cal == nil || i < 0 || i >= len(m.cal.Days) {
		return nil
	}
	return &m.cal.Days[i]
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-6, 5))
		m.help.Width = msg.Width
		return m, nil

	case calendarLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		m.setCalendar(msg.cal)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Detail):
			m.detail = !m.detail
			return m, nil
		case key.Matches(msg, m.keys.Cancel):
			m.moveFrom = ""
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.Regenerate):
			return m, m.regenerate()
		case key.Matches(msg, m.keys.Move):
			return m, m.markMove()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// markMove records the move source on the first press and swaps with the
// selected day on the second.
func (m *browseModel) markMove() tea.Cmd {
	day := m.selectedDay()
	if day == nil {
		return nil
	}
	if m.moveFrom == "" {
		m.moveFrom = day.Date
		m.status = fmt.Sprintf("Moving %s: select the target day and press m", day.Date)
		return nil
	}
	from, to := m.moveFrom, day.Date
	m.moveFrom = ""
	app, ctx, projectID := m.app, m.ctx, m.project.ID
	return func() tea.Msg {
		if _, err := app.Calendars.MoveDay(ctx, projectID, from, to, domain.MoveSwap); err != nil {
			return calendarLoadedMsg{err: err}
		}
		cal, err := app.Calendars.Get(ctx, projectID)
		return calendarLoadedMsg{cal: cal, err: err, status: fmt.Sprintf("Moved %s to %s", from, to)}
	}
}

func (m *browseModel) regenerate() tea.Cmd {
	app, ctx, projectID := m.app, m.ctx, m.project.ID
	return func() tea.Msg {
		cal, err := app.Calendars.Generate(ctx, projectID)
		return calendarLoadedMsg{cal: cal, err: err, status: "Regenerated"}
	}
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Bold(m.project.Title) + "  " +
		formatter.Dim(formatter.Plural(m.cal.ShootDayCount(), "shoot day")) + "\n")

	body := m.table.View()
	if m.detail {
		if day := m.selectedDay(); day != nil {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", formatter.FormatDay(day))
		}
	}
	b.WriteString(body + "\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(formatter.StyleYellow.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
