package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
)

// SQLiteAccessRepo is the public sharing registry.
type SQLiteAccessRepo struct {
	db db.DBTX
}

func NewSQLiteAccessRepo(conn db.DBTX) *SQLiteAccessRepo {
	return &SQLiteAccessRepo{db: conn}
}

const accessColumns = `code, token, owner_id, project_id, created_at, view_count, last_accessed`

type accessRow struct {
	Code         string         `db:"code"`
	Token        string         `db:"token"`
	OwnerID      string         `db:"owner_id"`
	ProjectID    string         `db:"project_id"`
	CreatedAt    string         `db:"created_at"`
	ViewCount    int            `db:"view_count"`
	LastAccessed sql.NullString `db:"last_accessed"`
}

func (r accessRow) toDomain() *domain.AccessGrant {
	return &domain.AccessGrant{
		Code:         r.Code,
		Token:        r.Token,
		OwnerID:      r.OwnerID,
		ProjectID:    r.ProjectID,
		CreatedAt:    scanTime(r.CreatedAt),
		ViewCount:    r.ViewCount,
		LastAccessed: scanOptionalTime(r.LastAccessed, time.RFC3339),
	}
}

func (r *SQLiteAccessRepo) Create(ctx context.Context, g *domain.AccessGrant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_grants (`+accessColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.Code, g.Token, g.OwnerID, g.ProjectID, storeTime(g.CreatedAt), g.ViewCount,
		storeOptionalTime(g.LastAccessed, time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting access grant: %w", err)
	}
	return nil
}

func (r *SQLiteAccessRepo) GetByCode(ctx context.Context, code string) (*domain.AccessGrant, error) {
	var row accessRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+accessColumns+` FROM access_grants WHERE code = ?`, code); err != nil {
		return nil, notFound(err, domain.ErrAccessNotFound)
	}
	return row.toDomain(), nil
}

func (r *SQLiteAccessRepo) GetByToken(ctx context.Context, token string) (*domain.AccessGrant, error) {
	var row accessRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+accessColumns+` FROM access_grants WHERE token = ?`, token); err != nil {
		return nil, notFound(err, domain.ErrAccessNotFound)
	}
	return row.toDomain(), nil
}

func (r *SQLiteAccessRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.AccessGrant, error) {
	var rows []accessRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+accessColumns+` FROM access_grants WHERE project_id = ? ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing access grants: %w", err)
	}
	out := make([]*domain.AccessGrant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SQLiteAccessRepo) RecordView(ctx context.Context, code string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE access_grants SET view_count = view_count + 1, last_accessed = ? WHERE code = ?`,
		storeTime(at), code)
	if err != nil {
		return fmt.Errorf("recording access: %w", err)
	}
	return requireAffected(res, domain.ErrAccessNotFound)
}

// DeleteByProject revokes every grant of a project and reports how many
// were removed.
func (r *SQLiteAccessRepo) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM access_grants WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("revoking access grants: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
