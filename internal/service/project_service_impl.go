package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/google/uuid"
)

type projectService struct {
	uow      db.UnitOfWork
	writer   *workspaceWriter
	observer UseCaseObserver
}

func NewProjectService(uow db.UnitOfWork, engine *calendar.Engine, sun SunTimesProvider, logger *slog.Logger, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		uow:      uow,
		writer:   newWorkspaceWriter(engine, sun, logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create stores p and generates its first workspace calendar in the same
// transaction.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": p.Title}
	defer func() { observe(ctx, s.observer, "project.create", startedAt, fields, err) }()

	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.Validationf("project title is required")
	}
	if strings.TrimSpace(p.OwnerID) == "" {
		return domain.Validationf("project owner is required")
	}
	if err := p.ValidateDates(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = startedAt
	p.UpdatedAt = startedAt
	fields["project_id"] = p.ID

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if err := r.projects.Create(ctx, p); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		ws, err := s.writer.regenerate(ctx, r, p)
		if err != nil {
			return err
		}
		fields["days"] = len(ws.Calendar.Days)
		return nil
	})
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var p *domain.Project
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		p, err = reposFor(tx).projects.GetByID(ctx, id)
		return err
	})
	return p, err
}

func (s *projectService) List(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	var out []*domain.Project
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		out, err = reposFor(tx).projects.List(ctx, ownerID)
		return err
	})
	return out, err
}

func (s *projectService) Update(ctx context.Context, p *domain.Project, regenerate bool) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": p.ID, "regenerate": regenerate}
	defer func() { observe(ctx, s.observer, "project.update", startedAt, fields, err) }()

	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.Validationf("project title is required")
	}
	if err := p.ValidateDates(); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		current, err := r.projects.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		// Ownership, creation time and versioning mode are not editable here.
		p.OwnerID = current.OwnerID
		p.CreatedAt = current.CreatedAt
		p.IsVersioned = current.IsVersioned
		p.UpdatedAt = startedAt
		if err := r.projects.Update(ctx, p); err != nil {
			return fmt.Errorf("updating project: %w", err)
		}
		if !regenerate {
			return nil
		}
		_, err = s.writer.regenerate(ctx, r, p)
		return err
	})
}

// Delete removes the project; its rules, workspace, versions and access
// grants go with it.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "project.delete", startedAt, map[string]any{"project_id": id}, err)
	}()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return reposFor(tx).projects.Delete(ctx, id)
	})
}
