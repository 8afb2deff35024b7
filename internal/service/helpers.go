package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/repository"
	"github.com/go-playground/validator/v10"
)

// txRepos bundles the repositories bound to one transaction.
type txRepos struct {
	projects    repository.ProjectRepo
	workspaces  repository.WorkspaceRepo
	versions    repository.VersionRepo
	rules       repository.RuleRepo
	definitions repository.DefinitionRepo
	access      repository.AccessRepo
}

func reposFor(tx db.DBTX) txRepos {
	return txRepos{
		projects:    repository.NewSQLiteProjectRepo(tx),
		workspaces:  repository.NewSQLiteWorkspaceRepo(tx),
		versions:    repository.NewSQLiteVersionRepo(tx),
		rules:       repository.NewSQLiteRuleRepo(tx),
		definitions: repository.NewSQLiteDefinitionRepo(tx),
		access:      repository.NewSQLiteAccessRepo(tx),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs struct tag validation and folds every failure into a
// single ErrValidation error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %T: %w", s, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.Validationf("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex colour", fe.Field())
	case "latitude", "longitude":
		return fmt.Sprintf("%s is out of range", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func discardLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// workspaceWriter rebuilds and persists workspace calendars. It is shared by
// every service that changes what a calendar depends on.
type workspaceWriter struct {
	engine *calendar.Engine
	sun    SunTimesProvider
	log    *slog.Logger
	now    func() time.Time
}

func newWorkspaceWriter(engine *calendar.Engine, sun SunTimesProvider, log *slog.Logger) *workspaceWriter {
	if engine == nil {
		engine = calendar.NewEngine(log)
	}
	return &workspaceWriter{
		engine: engine,
		sun:    sun,
		log:    discardLogger(log),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// loadWorkspace returns the stored workspace, or nil when none exists yet.
func (w *workspaceWriter) loadWorkspace(ctx context.Context, r txRepos, projectID string) (*domain.Workspace, error) {
	ws, err := r.workspaces.Load(ctx, projectID)
	if errors.Is(err, domain.ErrCalendarNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}
	return ws, nil
}

// regenerate rebuilds the workspace calendar of p from its rules and the
// global definitions, keeping the production content of surviving days.
func (w *workspaceWriter) regenerate(ctx context.Context, r txRepos, p *domain.Project) (*domain.Workspace, error) {
	rules, err := r.rules.LoadRuleSet(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	defs, err := r.definitions.LoadDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading definitions: %w", err)
	}
	ws, err := w.loadWorkspace(ctx, r, p.ID)
	if err != nil {
		return nil, err
	}
	var existing *domain.Calendar
	if ws != nil {
		existing = ws.Calendar
	} else {
		ws = &domain.Workspace{ProjectID: p.ID, OwnerID: p.OwnerID}
	}

	cal, err := w.engine.Generate(calendar.GenerateInput{
		Project:     p,
		Rules:       rules,
		Definitions: defs,
		Existing:    existing,
		Now:         w.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("generating calendar: %w", err)
	}
	w.annotateSunTimes(cal, defs)
	ws.Calendar = cal
	if err := w.save(ctx, r, p, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// save stamps and persists ws. Edits to a versioned project's workspace
// mark it as a draft.
func (w *workspaceWriter) save(ctx context.Context, r txRepos, p *domain.Project, ws *domain.Workspace) error {
	now := w.now()
	ws.OwnerID = p.OwnerID
	ws.LastModified = now
	ws.IsDraft = p.IsVersioned
	ws.Calendar.ProjectID = p.ID
	ws.Calendar.OwnerID = p.OwnerID
	ws.Calendar.LastUpdated = now
	if err := r.workspaces.Save(ctx, ws); err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	return nil
}

// annotateSunTimes attaches sunrise and sunset to every day whose location
// resolves to coordinates. Days without one lose any stale value.
func (w *workspaceWriter) annotateSunTimes(cal *domain.Calendar, defs domain.Definitions) {
	if w.sun == nil {
		return
	}
	for i := range cal.Days {
		w.annotateDay(&cal.Days[i], &defs)
	}
}

func (w *workspaceWriter) annotateDay(day *domain.CalendarDay, defs *domain.Definitions) {
	if w.sun == nil {
		return
	}
	day.SunTimes = nil
	if day.Location == "" {
		return
	}
	loc, ok := defs.LocationByName(day.Location)
	if !ok || !loc.HasCoordinates() {
		return
	}
	date, err := day.ParsedDate()
	if err != nil {
		w.log.Warn("skipping sun times for malformed date", "date", day.Date)
		return
	}
	if st, ok := w.sun.ForLocation(loc, date); ok {
		day.SunTimes = st
	}
}
