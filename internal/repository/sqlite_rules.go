package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
)

// SQLiteRuleRepo stores the four per-project exception rule kinds.
type SQLiteRuleRepo struct {
	db db.DBTX
}

func NewSQLiteRuleRepo(conn db.DBTX) *SQLiteRuleRepo {
	return &SQLiteRuleRepo{db: conn}
}

var ruleTables = map[domain.RuleKind]string{
	domain.RuleHoliday:        "holidays",
	domain.RuleHiatus:         "hiatus_periods",
	domain.RuleWorkingWeekend: "working_weekends",
	domain.RuleSpecialDate:    "special_dates",
}

// LoadRuleSet reads every rule of a project.
func (r *SQLiteRuleRepo) LoadRuleSet(ctx context.Context, projectID string) (domain.RuleSet, error) {
	var set domain.RuleSet
	var err error
	if set.Holidays, err = r.ListHolidays(ctx, projectID); err != nil {
		return set, err
	}
	if set.Hiatus, err = r.ListHiatus(ctx, projectID); err != nil {
		return set, err
	}
	if set.WorkingWeekends, err = r.ListWorkingWeekends(ctx, projectID); err != nil {
		return set, err
	}
	if set.SpecialDates, err = r.ListSpecialDates(ctx, projectID); err != nil {
		return set, err
	}
	return set, nil
}

func (r *SQLiteRuleRepo) ListHolidays(ctx context.Context, projectID string) ([]domain.Holiday, error) {
	out := []domain.Holiday{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, project_id, date, name, is_working, is_shoot_day FROM holidays WHERE project_id = ? ORDER BY date`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	return out, nil
}

func (r *SQLiteRuleRepo) CreateHoliday(ctx context.Context, h *domain.Holiday) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO holidays (id, project_id, date, name, is_working, is_shoot_day) VALUES (?, ?, ?, ?, ?, ?)`,
		h.ID, h.ProjectID, h.Date, h.Name, storeBool(h.IsWorking), storeBool(h.IsShootDay))
	if err != nil {
		return fmt.Errorf("inserting holiday: %w", err)
	}
	return nil
}

func (r *SQLiteRuleRepo) UpdateHoliday(ctx context.Context, h *domain.Holiday) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE holidays SET date = ?, name = ?, is_working = ?, is_shoot_day = ? WHERE project_id = ? AND id = ?`,
		h.Date, h.Name, storeBool(h.IsWorking), storeBool(h.IsShootDay), h.ProjectID, h.ID)
	if err != nil {
		return fmt.Errorf("updating holiday: %w", err)
	}
	return requireAffected(res, domain.ErrRuleNotFound)
}

func (r *SQLiteRuleRepo) ListHiatus(ctx context.Context, projectID string) ([]domain.HiatusPeriod, error) {
	out := []domain.HiatusPeriod{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, project_id, start_date, end_date, name FROM hiatus_periods WHERE project_id = ? ORDER BY start_date`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing hiatus periods: %w", err)
	}
	return out, nil
}

func (r *SQLiteRuleRepo) CreateHiatus(ctx context.Context, h *domain.HiatusPeriod) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO hiatus_periods (id, project_id, start_date, end_date, name) VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.ProjectID, h.StartDate, h.EndDate, h.Name)
	if err != nil {
		return fmt.Errorf("inserting hiatus period: %w", err)
	}
	return nil
}

func (r *SQLiteRuleRepo) UpdateHiatus(ctx context.Context, h *domain.HiatusPeriod) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hiatus_periods SET start_date = ?, end_date = ?, name = ? WHERE project_id = ? AND id = ?`,
		h.StartDate, h.EndDate, h.Name, h.ProjectID, h.ID)
	if err != nil {
		return fmt.Errorf("updating hiatus period: %w", err)
	}
	return requireAffected(res, domain.ErrRuleNotFound)
}

func (r *SQLiteRuleRepo) ListWorkingWeekends(ctx context.Context, projectID string) ([]domain.WorkingWeekend, error) {
	out := []domain.WorkingWeekend{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, project_id, date, description FROM working_weekends WHERE project_id = ? ORDER BY date`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing working weekends: %w", err)
	}
	return out, nil
}

// UpsertWorkingWeekend inserts w, or updates the description of the
// existing record for the same date. w.ID is set to the stored id.
func (r *SQLiteRuleRepo) UpsertWorkingWeekend(ctx context.Context, w *domain.WorkingWeekend) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO working_weekends (id, project_id, date, description) VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, date) DO UPDATE SET description = excluded.description`,
		w.ID, w.ProjectID, w.Date, w.Description)
	if err != nil {
		return fmt.Errorf("upserting working weekend: %w", err)
	}
	if err := r.db.GetContext(ctx, &w.ID,
		`SELECT id FROM working_weekends WHERE project_id = ? AND date = ?`, w.ProjectID, w.Date); err != nil {
		return fmt.Errorf("reading working weekend id: %w", err)
	}
	return nil
}

func (r *SQLiteRuleRepo) UpdateWorkingWeekend(ctx context.Context, w *domain.WorkingWeekend) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE working_weekends SET date = ?, description = ? WHERE project_id = ? AND id = ?`,
		w.Date, w.Description, w.ProjectID, w.ID)
	if err != nil {
		return fmt.Errorf("updating working weekend: %w", err)
	}
	return requireAffected(res, domain.ErrRuleNotFound)
}

func (r *SQLiteRuleRepo) ListSpecialDates(ctx context.Context, projectID string) ([]domain.SpecialDate, error) {
	out := []domain.SpecialDate{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, project_id, date, type, name, description, is_working FROM special_dates WHERE project_id = ? ORDER BY date`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing special dates: %w", err)
	}
	return out, nil
}

func (r *SQLiteRuleRepo) CreateSpecialDate(ctx context.Context, s *domain.SpecialDate) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO special_dates (id, project_id, date, type, name, description, is_working) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.ProjectID, s.Date, string(s.Type), s.Name, s.Description, storeBool(s.IsWorking))
	if err != nil {
		return fmt.Errorf("inserting special date: %w", err)
	}
	return nil
}

func (r *SQLiteRuleRepo) UpdateSpecialDate(ctx context.Context, s *domain.SpecialDate) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE special_dates SET date = ?, type = ?, name = ?, description = ?, is_working = ? WHERE project_id = ? AND id = ?`,
		s.Date, string(s.Type), s.Name, s.Description, storeBool(s.IsWorking), s.ProjectID, s.ID)
	if err != nil {
		return fmt.Errorf("updating special date: %w", err)
	}
	return requireAffected(res, domain.ErrRuleNotFound)
}

func (r *SQLiteRuleRepo) Delete(ctx context.Context, kind domain.RuleKind, projectID, id string) error {
	table, ok := ruleTables[kind]
	if !ok {
		return domain.Validationf("unknown rule kind %q", kind)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE project_id = ? AND id = ?`, projectID, id)
	if err != nil {
		return fmt.Errorf("deleting %s rule: %w", kind, err)
	}
	return requireAffected(res, domain.ErrRuleNotFound)
}
