package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
)

// SQLiteDefinitionRepo stores the global location, area and department
// definitions.
type SQLiteDefinitionRepo struct {
	db db.DBTX
}

func NewSQLiteDefinitionRepo(conn db.DBTX) *SQLiteDefinitionRepo {
	return &SQLiteDefinitionRepo{db: conn}
}

var definitionTables = map[domain.DefinitionKind]string{
	domain.DefLocation:   "locations",
	domain.DefArea:       "areas",
	domain.DefDepartment: "departments",
}

func (r *SQLiteDefinitionRepo) LoadDefinitions(ctx context.Context) (domain.Definitions, error) {
	var defs domain.Definitions
	var err error
	if defs.Locations, err = r.ListLocations(ctx); err != nil {
		return defs, err
	}
	if defs.Areas, err = r.ListAreas(ctx); err != nil {
		return defs, err
	}
	if defs.Departments, err = r.ListDepartments(ctx); err != nil {
		return defs, err
	}
	return defs, nil
}

func (r *SQLiteDefinitionRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	out := []domain.Location{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, name, area_id, address, notes, latitude, longitude FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	return out, nil
}

func (r *SQLiteDefinitionRepo) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	var l domain.Location
	err := r.db.GetContext(ctx, &l,
		`SELECT id, name, area_id, address, notes, latitude, longitude FROM locations WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, domain.ErrDefinitionNotFound)
	}
	return &l, nil
}

// SaveLocation inserts or replaces the location by id.
func (r *SQLiteDefinitionRepo) SaveLocation(ctx context.Context, l *domain.Location) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO locations (id, name, area_id, address, notes, latitude, longitude)
		VALUES (:id, :name, :area_id, :address, :notes, :latitude, :longitude)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, area_id = excluded.area_id, address = excluded.address,
			notes = excluded.notes, latitude = excluded.latitude, longitude = excluded.longitude`, l)
	if err != nil {
		return fmt.Errorf("saving location: %w", err)
	}
	return nil
}

func (r *SQLiteDefinitionRepo) ListAreas(ctx context.Context) ([]domain.Area, error) {
	out := []domain.Area{}
	if err := r.db.SelectContext(ctx, &out, `SELECT id, name, color FROM areas ORDER BY name`); err != nil {
		return nil, fmt.Errorf("listing areas: %w", err)
	}
	return out, nil
}

func (r *SQLiteDefinitionRepo) SaveArea(ctx context.Context, a *domain.Area) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO areas (id, name, color) VALUES (:id, :name, :color)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, color = excluded.color`, a)
	if err != nil {
		return fmt.Errorf("saving area: %w", err)
	}
	return nil
}

func (r *SQLiteDefinitionRepo) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	out := []domain.Department{}
	if err := r.db.SelectContext(ctx, &out, `SELECT id, code, name FROM departments ORDER BY code`); err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	return out, nil
}

func (r *SQLiteDefinitionRepo) SaveDepartment(ctx context.Context, d *domain.Department) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO departments (id, code, name) VALUES (:id, :code, :name)
		ON CONFLICT(id) DO UPDATE SET code = excluded.code, name = excluded.name`, d)
	if err != nil {
		return fmt.Errorf("saving department: %w", err)
	}
	return nil
}

func (r *SQLiteDefinitionRepo) Delete(ctx context.Context, kind domain.DefinitionKind, id string) error {
	table, ok := definitionTables[kind]
	if !ok {
		return domain.Validationf("unknown definition kind %q", kind)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", kind, err)
	}
	return requireAffected(res, domain.ErrDefinitionNotFound)
}
