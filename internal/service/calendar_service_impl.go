package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
)

type calendarService struct {
	uow      db.UnitOfWork
	engine   *calendar.Engine
	writer   *workspaceWriter
	log      *slog.Logger
	observer UseCaseObserver
}

func NewCalendarService(uow db.UnitOfWork, engine *calendar.Engine, sun SunTimesProvider, logger *slog.Logger, observers ...UseCaseObserver) CalendarService {
	writer := newWorkspaceWriter(engine, sun, logger)
	return &calendarService{
		uow:      uow,
		engine:   writer.engine,
		writer:   writer,
		log:      writer.log,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Get returns the workspace calendar, generating it on first access.
func (s *calendarService) Get(ctx context.Context, projectID string) (*domain.Calendar, error) {
	var cal *domain.Calendar
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := r.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
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
		cal = ws.Calendar
		return nil
	})
	return cal, err
}

func (s *calendarService) Generate(ctx context.Context, projectID string) (cal *domain.Calendar, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID}
	defer func() { observe(ctx, s.observer, "calendar.generate", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := r.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		ws, err := s.writer.regenerate(ctx, r, p)
		if err != nil {
			return err
		}
		cal = ws.Calendar
		fields["days"] = len(cal.Days)
		fields["shoot_days"] = cal.ShootDayCount()
		return nil
	})
	return cal, err
}

func (s *calendarService) GetDay(ctx context.Context, projectID, date string) (*domain.CalendarDay, error) {
	cal, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	idx := cal.DayIndex(date)
	if idx < 0 {
		return nil, domain.ErrDayNotFound
	}
	day := cal.Days[idx].Clone()
	return &day, nil
}

// UpdateDay applies patch to one day, re-resolves its sun times and saves
// the workspace.
func (s *calendarService) UpdateDay(ctx context.Context, projectID, date string, patch calendar.DayPatch) (day *domain.CalendarDay, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "date": date, "keys": len(patch)}
	defer func() { observe(ctx, s.observer, "calendar.update_day", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, ws, defs, err := s.loadForEdit(ctx, r, projectID)
		if err != nil {
			return err
		}
		updated, err := s.engine.UpdateDay(ws.Calendar, date, patch, defs, p.ShootStartDate)
		if err != nil {
			return err
		}
		idx := ws.Calendar.DayIndex(date)
		s.writer.annotateDay(&ws.Calendar.Days[idx], &defs)
		updated.SunTimes = ws.Calendar.Days[idx].SunTimes
		if err := s.writer.save(ctx, r, p, ws); err != nil {
			return err
		}
		day = updated
		return nil
	})
	return day, err
}

func (s *calendarService) MoveDay(ctx context.Context, projectID, fromDate, toDate string, mode domain.MoveMode) (res *calendar.SwapResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "from": fromDate, "to": toDate, "mode": string(mode)}
	defer func() { observe(ctx, s.observer, "calendar.move_day", startedAt, fields, err) }()

	if mode == "" {
		mode = domain.MoveSwap
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, ws, defs, err := s.loadForEdit(ctx, r, projectID)
		if err != nil {
			return err
		}
		res, err = s.engine.SwapDays(ws.Calendar.Days, fromDate, toDate, mode)
		if err != nil {
			return err
		}
		ws.Calendar.Days = res.Days
		s.engine.Recount(ws.Calendar, defs)
		return s.writer.save(ctx, r, p, ws)
	})
	return res, err
}

// RecountAll refreshes the aggregate counts of every stored workspace
// against the current definitions.
func (s *calendarService) RecountAll(ctx context.Context) (n int, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "calendar.recount_all", startedAt, map[string]any{"calendars": n}, err)
	}()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		n, err = recountAll(ctx, reposFor(tx), s.writer)
		return err
	})
	return n, err
}

func recountAll(ctx context.Context, r txRepos, w *workspaceWriter) (int, error) {
	defs, err := r.definitions.LoadDefinitions(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading definitions: %w", err)
	}
	ids, err := r.workspaces.ListProjectIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing workspaces: %w", err)
	}
	n := 0
	for _, id := range ids {
		ws, err := r.workspaces.Load(ctx, id)
		if err != nil {
			w.log.Warn("skipping unreadable workspace", "project_id", id, "error", err)
			continue
		}
		w.engine.Recount(ws.Calendar, defs)
		if err := r.workspaces.Save(ctx, ws); err != nil {
			return n, fmt.Errorf("saving workspace %s: %w", id, err)
		}
		n++
	}
	return n, nil
}

func (s *calendarService) loadForEdit(ctx context.Context, r txRepos, projectID string) (*domain.Project, *domain.Workspace, domain.Definitions, error) {
	p, err := r.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, domain.Definitions{}, err
	}
	ws, err := r.workspaces.Load(ctx, projectID)
	if err != nil {
		return nil, nil, domain.Definitions{}, err
	}
	defs, err := r.definitions.LoadDefinitions(ctx)
	if err != nil {
		return nil, nil, domain.Definitions{}, fmt.Errorf("loading definitions: %w", err)
	}
	return p, ws, defs, nil
}
