package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/google/uuid"
)

// InitialVersionNumber is assigned to the snapshot taken when a project
// switches to versioned mode.
const InitialVersionNumber = "1.0"

type versionService struct {
	uow      db.UnitOfWork
	writer   *workspaceWriter
	observer UseCaseObserver
}

func NewVersionService(uow db.UnitOfWork, engine *calendar.Engine, sun SunTimesProvider, logger *slog.Logger, observers ...UseCaseObserver) VersionService {
	return &versionService{
		uow:      uow,
		writer:   newWorkspaceWriter(engine, sun, logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *versionService) List(ctx context.Context, projectID string) ([]*domain.Version, error) {
	var out []*domain.Version
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.projects.GetByID(ctx, projectID); err != nil {
			return err
		}
		var err error
		out, err = r.versions.ListByProject(ctx, projectID)
		return err
	})
	return out, err
}

// Create snapshots the workspace calendar as a new unpublished version and
// rebases the workspace on it.
func (s *versionService) Create(ctx context.Context, projectID, number, notes string) (v *domain.Version, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "version": number}
	defer func() { observe(ctx, s.observer, "version.create", startedAt, fields, err) }()

	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.Validationf("version number is required")
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := r.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if !p.IsVersioned {
			return domain.Validationf("project %s is not versioned; migrate it first", p.DisplayID())
		}
		exists, err := r.versions.NumberExists(ctx, projectID, number)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateVersion
		}
		ws, err := r.workspaces.Load(ctx, projectID)
		if err != nil {
			return err
		}
		v, err = snapshot(ctx, r, p, ws, number, strings.TrimSpace(notes), startedAt)
		return err
	})
	if v != nil {
		fields["version_id"] = v.ID
	}
	return v, err
}

// Publish makes versionID the only latest-published version of the project.
func (s *versionService) Publish(ctx context.Context, projectID, versionID string) (v *domain.Version, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "version_id": versionID}
	defer func() { observe(ctx, s.observer, "version.publish", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.versions.GetByID(ctx, projectID, versionID); err != nil {
			return err
		}
		if err := r.versions.ClearLatestPublished(ctx, projectID); err != nil {
			return err
		}
		if err := r.versions.MarkPublished(ctx, projectID, versionID, startedAt); err != nil {
			return err
		}
		v, err = r.versions.GetByID(ctx, projectID, versionID)
		return err
	})
	return v, err
}

// MigrateToVersioned wraps the current calendar as published version 1.0
// and makes the workspace a draft on top of it. It is one-way.
func (s *versionService) MigrateToVersioned(ctx context.Context, projectID string) (v *domain.Version, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID}
	defer func() { observe(ctx, s.observer, "version.migrate", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := r.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if p.IsVersioned {
			return domain.Validationf("project %s is already versioned", p.DisplayID())
		}
		ws, err := s.writer.loadWorkspace(ctx, r, projectID)
		if err != nil {
			return err
		}
		if ws == nil {
			if ws, err = s.writer.regenerate(ctx, r, p); err != nil {
				return err
			}
		}

		p.IsVersioned = true
		p.UpdatedAt = startedAt
		if err := r.projects.Update(ctx, p); err != nil {
			return fmt.Errorf("marking project versioned: %w", err)
		}
		v, err = snapshot(ctx, r, p, ws, InitialVersionNumber, "Initial version", startedAt)
		if err != nil {
			return err
		}
		if err := r.versions.MarkPublished(ctx, projectID, v.ID, startedAt); err != nil {
			return err
		}
		v.IsPublished = true
		v.IsLatestPublished = true
		v.PublishedAt = &startedAt
		return nil
	})
	return v, err
}

func (s *versionService) GetWorkspace(ctx context.Context, projectID string) (*domain.Workspace, error) {
	var ws *domain.Workspace
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := r.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if ws, err = s.writer.loadWorkspace(ctx, r, projectID); err != nil {
			return err
		}
		if ws == nil {
			ws, err = s.writer.regenerate(ctx, r, p)
		}
		return err
	})
	return ws, err
}

// ResolveViewer picks the calendar shown to viewerID. A versioned project
// never exposes its draft workspace: an explicit version must be published
// unless the viewer owns the project, and without one the latest published
// version is shown.
func (s *versionService) ResolveViewer(ctx context.Context, projectID, versionID, viewerID string) (*ViewerCalendar, error) {
	out := &ViewerCalendar{}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := r.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		out.Project = p

		if !p.IsVersioned {
			if versionID != "" {
				return domain.ErrVersionNotFound
			}
			ws, err := s.writer.loadWorkspace(ctx, r, projectID)
			if err != nil || ws == nil {
				return err
			}
			out.Calendar = ws.Calendar
			out.Published = true
			return nil
		}

		var v *domain.Version
		if versionID != "" {
			v, err = r.versions.GetByID(ctx, projectID, versionID)
			if err != nil {
				return err
			}
			if !v.IsPublished && viewerID != p.OwnerID {
				return domain.ErrVersionUnpublished
			}
		} else {
			v, err = r.versions.LatestPublished(ctx, projectID)
			if errors.Is(err, domain.ErrVersionNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
		}
		out.Version = v
		out.Calendar = v.Calendar
		out.Published = v.IsPublished
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// snapshot stores a copy of the workspace calendar as a new version and
// points the workspace at it as a clean baseline.
func snapshot(ctx context.Context, r txRepos, p *domain.Project, ws *domain.Workspace, number, notes string, now time.Time) (*domain.Version, error) {
	v := &domain.Version{
		ID:            uuid.New().String(),
		ProjectID:     p.ID,
		OwnerID:       p.OwnerID,
		VersionNumber: number,
		Notes:         notes,
		CreatedAt:     now,
		Calendar:      ws.Calendar.Clone(),
	}
	if err := r.versions.Create(ctx, v); err != nil {
		return nil, err
	}
	ws.BaseVersionID = v.ID
	ws.IsDraft = false
	ws.LastModified = now
	if err := r.workspaces.Save(ctx, ws); err != nil {
		return nil, fmt.Errorf("rebasing workspace: %w", err)
	}
	return v, nil
}
