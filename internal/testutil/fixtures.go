package testutil

import (
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/google/uuid"
)

// Date parses an ISO date and panics on malformed input.
func Date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Project options
type ProjectOption func(*domain.Project)

func WithOwner(id string) ProjectOption {
	return func(p *domain.Project) {
		p.OwnerID = id
	}
}

func WithPrepStart(d string) ProjectOption {
	return func(p *domain.Project) {
		p.PrepStartDate = Date(d)
	}
}

func WithShootStart(d string) ProjectOption {
	return func(p *domain.Project) {
		p.ShootStartDate = Date(d)
	}
}

func WithWrap(d string) ProjectOption {
	return func(p *domain.Project) {
		w := Date(d)
		p.WrapDate = &w
	}
}

func WithVersioned() ProjectOption {
	return func(p *domain.Project) {
		p.IsVersioned = true
	}
}

// NewTestProject returns a project running from 2024-03-01 (prep) through
// 2024-03-17 with shooting from 2024-03-04.
func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	wrap := Date("2024-03-17")
	p := &domain.Project{
		ID:             uuid.New().String(),
		OwnerID:        "owner-1",
		Title:          title,
		PrepStartDate:  Date("2024-03-01"),
		ShootStartDate: Date("2024-03-04"),
		WrapDate:       &wrap,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestHoliday(projectID, date, name string, working, shoot bool) *domain.Holiday {
	return &domain.Holiday{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Date:       date,
		Name:       name,
		IsWorking:  working,
		IsShootDay: shoot,
	}
}

func NewTestHiatus(projectID, start, end, name string) *domain.HiatusPeriod {
	return &domain.HiatusPeriod{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		StartDate: start,
		EndDate:   end,
		Name:      name,
	}
}

func NewTestWorkingWeekend(projectID, date, description string) *domain.WorkingWeekend {
	return &domain.WorkingWeekend{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Date:        date,
		Description: description,
	}
}

func NewTestSpecialDate(projectID, date string, typ domain.SpecialDateType, name string, working bool) *domain.SpecialDate {
	return &domain.SpecialDate{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Date:      date,
		Type:      typ,
		Name:      name,
		IsWorking: working,
	}
}

// NewTestDefinitions returns two areas, three locations (one without an
// area) and two departments.
func NewTestDefinitions() domain.Definitions {
	lat, lon := 53.3429, -6.2674
	return domain.Definitions{
		Areas: []domain.Area{
			{ID: "area-north", Name: "North", Color: "#ff0000"},
			{ID: "area-south", Name: "South"},
		},
		Locations: []domain.Location{
			{ID: "loc-castle", Name: "Dublin Castle", AreaID: "area-north", Latitude: &lat, Longitude: &lon},
			{ID: "loc-kilkenny", Name: "Kilkenny", AreaID: "area-south"},
			{ID: "loc-orphan", Name: "Orphan"},
		},
		Departments: []domain.Department{
			{ID: "dept-sfx", Code: "SFX", Name: "Special Effects"},
			{ID: "dept-stu", Code: "STU", Name: "Stunts"},
		},
	}
}
