package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
)

// SQLiteWorkspaceRepo stores workspace calendars as JSON documents keyed by
// project.
type SQLiteWorkspaceRepo struct {
	db db.DBTX
}

func NewSQLiteWorkspaceRepo(conn db.DBTX) *SQLiteWorkspaceRepo {
	return &SQLiteWorkspaceRepo{db: conn}
}

type workspaceRow struct {
	ProjectID     string         `db:"project_id"`
	OwnerID       string         `db:"owner_id"`
	BaseVersionID sql.NullString `db:"base_version_id"`
	IsDraft       bool           `db:"is_draft"`
	LastModified  string         `db:"last_modified"`
	Data          string         `db:"data"`
}

func (r *SQLiteWorkspaceRepo) Load(ctx context.Context, projectID string) (*domain.Workspace, error) {
	var row workspaceRow
	err := r.db.GetContext(ctx, &row,
		`SELECT project_id, owner_id, base_version_id, is_draft, last_modified, data FROM calendars WHERE project_id = ?`,
		projectID)
	if err != nil {
		return nil, notFound(err, domain.ErrCalendarNotFound)
	}

	var cal domain.Calendar
	if err := json.Unmarshal([]byte(row.Data), &cal); err != nil {
		return nil, fmt.Errorf("decoding calendar for project %s: %w", projectID, err)
	}
	return &domain.Workspace{
		ProjectID:     row.ProjectID,
		OwnerID:       row.OwnerID,
		BaseVersionID: row.BaseVersionID.String,
		IsDraft:       row.IsDraft,
		LastModified:  scanTime(row.LastModified),
		Calendar:      &cal,
	}, nil
}

// Save upserts the workspace document.
func (r *SQLiteWorkspaceRepo) Save(ctx context.Context, ws *domain.Workspace) error {
	data, err := json.Marshal(ws.Calendar)
	if err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	var base any
	if ws.BaseVersionID != "" {
		base = ws.BaseVersionID
	}
	query := `INSERT INTO calendars (project_id, owner_id, base_version_id, is_draft, last_modified, data)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			owner_id = excluded.owner_id,
			base_version_id = excluded.base_version_id,
			is_draft = excluded.is_draft,
			last_modified = excluded.last_modified,
			data = excluded.data`
	_, err = r.db.ExecContext(ctx, query,
		ws.ProjectID,
		ws.OwnerID,
		base,
		storeBool(ws.IsDraft),
		storeTime(ws.LastModified),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	return nil
}

// ListProjectIDs returns the ids of every project that has a workspace.
func (r *SQLiteWorkspaceRepo) ListProjectIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT project_id FROM calendars ORDER BY project_id`); err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}
	return ids, nil
}
