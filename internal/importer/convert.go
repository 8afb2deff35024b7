package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/google/uuid"
)

// Converted holds the domain records produced from a seed.
type Converted struct {
	Project     *domain.Project
	Rules       domain.RuleSet
	Areas       []domain.Area
	Locations   []domain.Location
	Departments []domain.Department
}

// RuleCount returns the number of exception rules in the seed.
func (c *Converted) RuleCount() int {
	return len(c.Rules.Holidays) + len(c.Rules.Hiatus) + len(c.Rules.WorkingWeekends) + len(c.Rules.SpecialDates)
}

// DefinitionCount returns the number of areas, locations and departments.
func (c *Converted) DefinitionCount() int {
	return len(c.Areas) + len(c.Locations) + len(c.Departments)
}

// Convert transforms a validated seed into domain records. Call ValidateSeed
// first; Convert assumes the seed is valid. defaultOwner is used when the
// seed names no owner.
func Convert(seed *Seed, defaultOwner string, now time.Time) (*Converted, error) {
	prep, err := domain.ParseDate(seed.Project.PrepStart)
	if err != nil {
		return nil, fmt.Errorf("parsing prep_start: %w", err)
	}
	shoot, err := domain.ParseDate(seed.Project.ShootStart)
	if err != nil {
		return nil, fmt.Errorf("parsing shoot_start: %w", err)
	}
	wrap, err := domain.ParseOptionalDate(seed.Project.Wrap)
	if err != nil {
		return nil, fmt.Errorf("parsing wrap: %w", err)
	}

	project := &domain.Project{
		ID:             uuid.New().String(),
		OwnerID:        domain.CoalesceStr(seed.Project.Owner, defaultOwner),
		Title:          strings.TrimSpace(seed.Project.Title),
		PrepStartDate:  prep,
		ShootStartDate: shoot,
		WrapDate:       wrap,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	out := &Converted{Project: project}

	areaIDs := make(map[string]string) // ref or name -> ID
	for _, a := range seed.Areas {
		id := uuid.New().String()
		areaIDs[areaKey(a)] = id
		out.Areas = append(out.Areas, domain.Area{ID: id, Name: strings.TrimSpace(a.Name), Color: a.Color})
	}
	for _, l := range seed.Locations {
		out.Locations = append(out.Locations, domain.Location{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(l.Name),
			AreaID:    areaIDs[l.Area],
			Address:   l.Address,
			Notes:     l.Notes,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
		})
	}
	for _, d := range seed.Departments {
		out.Departments = append(out.Departments, domain.Department{
			ID:   uuid.New().String(),
			Code: strings.ToUpper(strings.TrimSpace(d.Code)),
			Name: strings.TrimSpace(d.Name),
		})
	}

	out.Rules = domain.RuleSet{
		Holidays:        make([]domain.Holiday, 0, len(seed.Holidays)),
		Hiatus:          make([]domain.HiatusPeriod, 0, len(seed.Hiatus)),
		WorkingWeekends: make([]domain.WorkingWeekend, 0, len(seed.WorkingWeekends)),
		SpecialDates:    make([]domain.SpecialDate, 0, len(seed.SpecialDates)),
	}
	for _, h := range seed.Holidays {
		out.Rules.Holidays = append(out.Rules.Holidays, domain.Holiday{
			ID: uuid.New().String(), ProjectID: project.ID,
			Date: h.Date, Name: h.Name, IsWorking: h.Working, IsShootDay: h.ShootDay,
		})
	}
	for _, h := range seed.Hiatus {
		out.Rules.Hiatus = append(out.Rules.Hiatus, domain.HiatusPeriod{
			ID: uuid.New().String(), ProjectID: project.ID,
			StartDate: h.Start, EndDate: h.End, Name: h.Name,
		})
	}
	for _, w := range seed.WorkingWeekends {
		out.Rules.WorkingWeekends = append(out.Rules.WorkingWeekends, domain.WorkingWeekend{
			ID: uuid.New().String(), ProjectID: project.ID,
			Date: w.Date, Description: w.Description,
		})
	}
	for _, s := range seed.SpecialDates {
		typ := domain.SpecialDateType(domain.CoalesceStr(s.Type, string(domain.SpecialOther)))
		out.Rules.SpecialDates = append(out.Rules.SpecialDates, domain.SpecialDate{
			ID: uuid.New().String(), ProjectID: project.ID,
			Date: s.Date, Type: typ, Name: s.Name, Description: s.Description, IsWorking: s.Working,
		})
	}
	return out, nil
}

// ReuseDefinitions points seeded definitions at existing records with the
// same area name, location name or department code, so importing a seed
// twice updates definitions instead of duplicating them.
func (c *Converted) ReuseDefinitions(existing domain.Definitions) {
	remap := make(map[string]string)
	for i := range c.Areas {
		if a, ok := existing.AreaByName(c.Areas[i].Name); ok {
			remap[c.Areas[i].ID] = a.ID
			c.Areas[i].ID = a.ID
		}
	}
	for i := range c.Locations {
		if id, ok := remap[c.Locations[i].AreaID]; ok {
			c.Locations[i].AreaID = id
		}
		if l, ok := existing.LocationByName(c.Locations[i].Name); ok {
			c.Locations[i].ID = l.ID
		}
	}
	for i := range c.Departments {
		if d, ok := existing.DepartmentByCode(c.Departments[i].Code); ok {
			c.Departments[i].ID = d.ID
		}
	}
}
