package domain

import "strings"

// DefaultAreaColor is used when an area has no colour of its own.
const DefaultAreaColor = "#f8f9fa"

type Location struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name" validate:"required"`
	AreaID    string   `json:"areaId" db:"area_id"`
	Address   string   `json:"address" db:"address"`
	Notes     string   `json:"notes" db:"notes"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude" validate:"omitempty,longitude"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

type Area struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name" validate:"required"`
	Color string `json:"color" db:"color" validate:"omitempty,hexcolor"`
}

// DisplayColor returns the area colour or the default.
func (a *Area) DisplayColor() string {
	return CoalesceStr(a.Color, DefaultAreaColor)
}

type Department struct {
	ID   string `json:"id" db:"id"`
	Code string `json:"code" db:"code" validate:"required"`
	Name string `json:"name" db:"name" validate:"required"`
}

// Definitions is the global lookup data used to resolve day fields.
type Definitions struct {
	Locations   []Location   `json:"locations"`
	Areas       []Area       `json:"areas"`
	Departments []Department `json:"departments"`
}

// LocationByName returns the location with the given name.
func (d *Definitions) LocationByName(name string) (*Location, bool) {
	for i := range d.Locations {
		if d.Locations[i].Name == name {
			return &d.Locations[i], true
		}
	}
	return nil, false
}

func (d *Definitions) AreaByID(id string) (*Area, bool) {
	if id == "" {
		return nil, false
	}
	for i := range d.Areas {
		if d.Areas[i].ID == id {
			return &d.Areas[i], true
		}
	}
	return nil, false
}

func (d *Definitions) AreaByName(name string) (*Area, bool) {
	for i := range d.Areas {
		if d.Areas[i].Name == name {
			return &d.Areas[i], true
		}
	}
	return nil, false
}

// DepartmentByCode matches codes case-insensitively after trimming.
func (d *Definitions) DepartmentByCode(code string) (*Department, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i := range d.Departments {
		if strings.ToUpper(strings.TrimSpace(d.Departments[i].Code)) == code {
			return &d.Departments[i], true
		}
	}
	return nil, false
}
