package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
)

// SQLiteVersionRepo implements VersionRepo. Snapshots are stored as JSON.
type SQLiteVersionRepo struct {
	db db.DBTX
}

func NewSQLiteVersionRepo(conn db.DBTX) *SQLiteVersionRepo {
	return &SQLiteVersionRepo{db: conn}
}

const versionColumns = `id, project_id, owner_id, version_number, notes, created_at, published_at, is_published, is_latest_published, data`

type versionRow struct {
	ID                string         `db:"id"`
	ProjectID         string         `db:"project_id"`
	OwnerID           string         `db:"owner_id"`
	VersionNumber     string         `db:"version_number"`
	Notes             string         `db:"notes"`
	CreatedAt         string         `db:"created_at"`
	PublishedAt       sql.NullString `db:"published_at"`
	IsPublished       bool           `db:"is_published"`
	IsLatestPublished bool           `db:"is_latest_published"`
	Data              string         `db:"data"`
}

func (r versionRow) toDomain() (*domain.Version, error) {
	var cal domain.Calendar
	if err := json.Unmarshal([]byte(r.Data), &cal); err != nil {
		return nil, fmt.Errorf("decoding version %s: %w", r.ID, err)
	}
	return &domain.Version{
		ID:                r.ID,
		ProjectID:         r.ProjectID,
		OwnerID:           r.OwnerID,
		VersionNumber:     r.VersionNumber,
		Notes:             r.Notes,
		CreatedAt:         scanTime(r.CreatedAt),
		PublishedAt:       scanOptionalTime(r.PublishedAt, time.RFC3339),
		IsPublished:       r.IsPublished,
		IsLatestPublished: r.IsLatestPublished,
		Calendar:          &cal,
	}, nil
}

func (r *SQLiteVersionRepo) Create(ctx context.Context, v *domain.Version) error {
	data, err := json.Marshal(v.Calendar)
	if err != nil {
		return fmt.Errorf("encoding version calendar: %w", err)
	}
	query := `INSERT INTO versions (` + versionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		v.ID,
		v.ProjectID,
		v.OwnerID,
		v.VersionNumber,
		v.Notes,
		storeTime(v.CreatedAt),
		storeOptionalTime(v.PublishedAt, time.RFC3339),
		storeBool(v.IsPublished),
		storeBool(v.IsLatestPublished),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("inserting version: %w", err)
	}
	return nil
}

func (r *SQLiteVersionRepo) GetByID(ctx context.Context, projectID, id string) (*domain.Version, error) {
	var row versionRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+versionColumns+` FROM versions WHERE project_id = ? AND id = ?`, projectID, id)
	if err != nil {
		return nil, notFound(err, domain.ErrVersionNotFound)
	}
	return row.toDomain()
}

func (r *SQLiteVersionRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Version, error) {
	var rows []versionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+versionColumns+` FROM versions WHERE project_id = ? ORDER BY created_at, rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	versions := make([]*domain.Version, 0, len(rows))
	for _, row := range rows {
		v, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, nil
}

func (r *SQLiteVersionRepo) LatestPublished(ctx context.Context, projectID string) (*domain.Version, error) {
	var row versionRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+versionColumns+` FROM versions WHERE project_id = ? AND is_latest_published = 1`, projectID)
	if err != nil {
		return nil, notFound(err, domain.ErrVersionNotFound)
	}
	return row.toDomain()
}

func (r *SQLiteVersionRepo) NumberExists(ctx context.Context, projectID, number string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM versions WHERE project_id = ? AND version_number = ?`, projectID, number)
	if err != nil {
		return false, fmt.Errorf("checking version number: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteVersionRepo) Count(ctx context.Context, projectID string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM versions WHERE project_id = ?`, projectID); err != nil {
		return 0, fmt.Errorf("counting versions: %w", err)
	}
	return n, nil
}

func (r *SQLiteVersionRepo) ClearLatestPublished(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE versions SET is_latest_published = 0 WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("clearing latest published: %w", err)
	}
	return nil
}

func (r *SQLiteVersionRepo) MarkPublished(ctx context.Context, projectID, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE versions SET is_published = 1, is_latest_published = 1, published_at = ? WHERE project_id = ? AND id = ?`,
		storeTime(at), projectID, id)
	if err != nil {
		return fmt.Errorf("publishing version: %w", err)
	}
	return requireAffected(res, domain.ErrVersionNotFound)
}
