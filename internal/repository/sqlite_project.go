package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, owner_id, title, prep_start_date, shoot_start_date, wrap_date, is_versioned, created_at, updated_at`

type projectRow struct {
	ID             string         `db:"id"`
	OwnerID        string         `db:"owner_id"`
	Title          string         `db:"title"`
	PrepStartDate  string         `db:"prep_start_date"`
	ShootStartDate string         `db:"shoot_start_date"`
	WrapDate       sql.NullString `db:"wrap_date"`
	IsVersioned    bool           `db:"is_versioned"`
	CreatedAt      string         `db:"created_at"`
	UpdatedAt      string         `db:"updated_at"`
}

func (r projectRow) toDomain() (*domain.Project, error) {
	prep, err := time.Parse(domain.DateLayout, r.PrepStartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing prep_start_date: %w", err)
	}
	shoot, err := time.Parse(domain.DateLayout, r.ShootStartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing shoot_start_date: %w", err)
	}
	return &domain.Project{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Title:          r.Title,
		PrepStartDate:  prep,
		ShootStartDate: shoot,
		WrapDate:       scanOptionalTime(r.WrapDate, domain.DateLayout),
		IsVersioned:    r.IsVersioned,
		CreatedAt:      scanTime(r.CreatedAt),
		UpdatedAt:      scanTime(r.UpdatedAt),
	}, nil
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Title,
		p.PrepStartDate.Format(domain.DateLayout),
		p.ShootStartDate.Format(domain.DateLayout),
		storeOptionalTime(p.WrapDate, domain.DateLayout),
		storeBool(p.IsVersioned),
		storeTime(p.CreatedAt),
		storeTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var row projectRow
	err := r.db.GetContext(ctx, &row, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, domain.ErrProjectNotFound)
	}
	return row.toDomain()
}

func (r *SQLiteProjectRepo) List(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	var rows []projectRow
	var err error
	if ownerID == "" {
		err = r.db.SelectContext(ctx, &rows, `SELECT `+projectColumns+` FROM projects ORDER BY created_at`)
	} else {
		err = r.db.SelectContext(ctx, &rows, `SELECT `+projectColumns+` FROM projects WHERE owner_id = ? ORDER BY created_at`, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET owner_id = ?, title = ?, prep_start_date = ?, shoot_start_date = ?, wrap_date = ?, is_versioned = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.OwnerID,
		p.Title,
		p.PrepStartDate.Format(domain.DateLayout),
		p.ShootStartDate.Format(domain.DateLayout),
		storeOptionalTime(p.WrapDate, domain.DateLayout),
		storeBool(p.IsVersioned),
		storeTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, domain.ErrProjectNotFound)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, domain.ErrProjectNotFound)
}
