// Package importer reads YAML project seeds: a project with its exception
// rules plus the global areas, locations and departments it refers to.
package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the top-level YAML structure of a project seed file.
type Seed struct {
	Project         ProjectSeed          `yaml:"project"`
	Areas           []AreaSeed           `yaml:"areas,omitempty"`
	Locations       []LocationSeed       `yaml:"locations,omitempty"`
	Departments     []DepartmentSeed     `yaml:"departments,omitempty"`
	Holidays        []HolidaySeed        `yaml:"holidays,omitempty"`
	Hiatus          []HiatusSeed         `yaml:"hiatus,omitempty"`
	WorkingWeekends []WorkingWeekendSeed `yaml:"working_weekends,omitempty"`
	SpecialDates    []SpecialDateSeed    `yaml:"special_dates,omitempty"`
}

type ProjectSeed struct {
	Title      string `yaml:"title" validate:"required"`
	Owner      string `yaml:"owner,omitempty"`
	PrepStart  string `yaml:"prep_start" validate:"required,datetime=2006-01-02"`
	ShootStart string `yaml:"shoot_start" validate:"required,datetime=2006-01-02"`
	Wrap       string `yaml:"wrap,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Versioned  bool   `yaml:"versioned,omitempty"`
}

// AreaSeed is referenced from locations by Ref, or by Name when Ref is empty.
type AreaSeed struct {
	Ref   string `yaml:"ref,omitempty"`
	Name  string `yaml:"name" validate:"required"`
	Color string `yaml:"color,omitempty" validate:"omitempty,hexcolor"`
}

type LocationSeed struct {
	Name      string   `yaml:"name" validate:"required"`
	Area      string   `yaml:"area,omitempty"`
	Address   string   `yaml:"address,omitempty"`
	Notes     string   `yaml:"notes,omitempty"`
	Latitude  *float64 `yaml:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `yaml:"longitude,omitempty" validate:"omitempty,longitude"`
}

type DepartmentSeed struct {
	Code string `yaml:"code" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

type HolidaySeed struct {
	Date     string `yaml:"date" validate:"required,datetime=2006-01-02"`
	Name     string `yaml:"name" validate:"required"`
	Working  bool   `yaml:"working,omitempty"`
	ShootDay bool   `yaml:"shoot_day,omitempty"`
}

type HiatusSeed struct {
	Start string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End   string `yaml:"end" validate:"required,datetime=2006-01-02"`
	Name  string `yaml:"name,omitempty"`
}

type WorkingWeekendSeed struct {
	Date        string `yaml:"date" validate:"required,datetime=2006-01-02"`
	Description string `yaml:"description,omitempty"`
}

type SpecialDateSeed struct {
	Date        string `yaml:"date" validate:"required,datetime=2006-01-02"`
	Type        string `yaml:"type,omitempty" validate:"omitempty,oneof=travel meeting rehearsal other"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description,omitempty"`
	Working     bool   `yaml:"working,omitempty"`
}

// LoadSeed reads and parses a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeed(data)
}

// ParseSeed decodes YAML seed data. Unknown keys are rejected.
func ParseSeed(data []byte) (*Seed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &seed, nil
}
