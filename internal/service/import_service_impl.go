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
	"github.com/alexanderramin/shootcal/internal/importer"
)

var errImportInvalid = domain.Validationf("import validation failed")

type importService struct {
	uow          db.UnitOfWork
	writer       *workspaceWriter
	defaultOwner string
	observer     UseCaseObserver
}

// NewImportService builds the seed importer. defaultOwner is assigned to
// seeds that name no owner.
func NewImportService(uow db.UnitOfWork, engine *calendar.Engine, sun SunTimesProvider, logger *slog.Logger, defaultOwner string, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:          uow,
		writer:       newWorkspaceWriter(engine, sun, logger),
		defaultOwner: defaultOwner,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	seed, err := importer.LoadSeed(path)
	if err != nil {
		return nil, fmt.Errorf("loading seed file: %w", err)
	}
	return s.ImportSeed(ctx, seed)
}

// ImportSeed validates and persists a seed, then generates the project's
// calendar. Nothing is written when any step fails.
func (s *importService) ImportSeed(ctx context.Context, seed *importer.Seed) (res *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": seed.Project.Title}
	defer func() { observe(ctx, s.observer, "import.seed", startedAt, fields, err) }()

	if errs := importer.ValidateSeed(seed); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	conv, err := importer.Convert(seed, s.defaultOwner, startedAt)
	if err != nil {
		return nil, fmt.Errorf("converting seed: %w", err)
	}
	fields["project_id"] = conv.Project.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		existing, err := r.definitions.LoadDefinitions(ctx)
		if err != nil {
			return fmt.Errorf("loading definitions: %w", err)
		}
		conv.ReuseDefinitions(existing)

		for i := range conv.Areas {
			if err := r.definitions.SaveArea(ctx, &conv.Areas[i]); err != nil {
				return fmt.Errorf("saving area %q: %w", conv.Areas[i].Name, err)
			}
		}
		for i := range conv.Locations {
			if err := r.definitions.SaveLocation(ctx, &conv.Locations[i]); err != nil {
				return fmt.Errorf("saving location %q: %w", conv.Locations[i].Name, err)
			}
		}
		for i := range conv.Departments {
			if err := r.definitions.SaveDepartment(ctx, &conv.Departments[i]); err != nil {
				return fmt.Errorf("saving department %q: %w", conv.Departments[i].Code, err)
			}
		}

		if err := r.projects.Create(ctx, conv.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for i := range conv.Rules.Holidays {
			if err := r.rules.CreateHoliday(ctx, &conv.Rules.Holidays[i]); err != nil {
				return err
			}
		}
		for i := range conv.Rules.Hiatus {
			if err := r.rules.CreateHiatus(ctx, &conv.Rules.Hiatus[i]); err != nil {
				return err
			}
		}
		for i := range conv.Rules.WorkingWeekends {
			if err := r.rules.UpsertWorkingWeekend(ctx, &conv.Rules.WorkingWeekends[i]); err != nil {
				return err
			}
		}
		for i := range conv.Rules.SpecialDates {
			if err := r.rules.CreateSpecialDate(ctx, &conv.Rules.SpecialDates[i]); err != nil {
				return err
			}
		}

		ws, err := s.writer.regenerate(ctx, r, conv.Project)
		if err != nil {
			return err
		}
		if _, err := recountAll(ctx, r, s.writer); err != nil {
			return fmt.Errorf("recounting calendars: %w", err)
		}
		res = &ImportResult{
			Project:      conv.Project,
			RuleCount:    conv.RuleCount(),
			Definitions:  conv.DefinitionCount(),
			CalendarDays: len(ws.Calendar.Days),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func formatValidationErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = "  - " + e.Error()
	}
	return fmt.Errorf("%w: import has %d errors:\n%s", errImportInvalid, len(errs), strings.Join(msgs, "\n"))
}
