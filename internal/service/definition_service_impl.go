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
	"github.com/alexanderramin/shootcal/internal/geocode"
)

// Every definition change recounts the stored calendars, since department,
// location and area counts are resolved against the live definitions.
type definitionService struct {
	uow      db.UnitOfWork
	writer   *workspaceWriter
	geocoder geocode.Geocoder
	log      *slog.Logger
	observer UseCaseObserver
}

// NewDefinitionService builds the service. A nil geocoder disables address
// lookups.
func NewDefinitionService(uow db.UnitOfWork, engine *calendar.Engine, geocoder geocode.Geocoder, logger *slog.Logger, observers ...UseCaseObserver) DefinitionService {
	writer := newWorkspaceWriter(engine, nil, logger)
	return &definitionService{
		uow:      uow,
		writer:   writer,
		geocoder: geocoder,
		log:      writer.log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *definitionService) All(ctx context.Context) (domain.Definitions, error) {
	var defs domain.Definitions
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		defs, err = reposFor(tx).definitions.LoadDefinitions(ctx)
		return err
	})
	return defs, err
}

func (s *definitionService) Get(ctx context.Context, kind domain.DefinitionKind, id string) (any, error) {
	defs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	switch kind {
	case domain.DefLocation:
		for _, l := range defs.Locations {
			if l.ID == id {
				return l, nil
			}
		}
	case domain.DefArea:
		if a, ok := defs.AreaByID(id); ok {
			return *a, nil
		}
	case domain.DefDepartment:
		for _, d := range defs.Departments {
			if d.ID == id {
				return d, nil
			}
		}
	default:
		return nil, domain.Validationf("unknown definition kind %q", kind)
	}
	return nil, domain.ErrDefinitionNotFound
}

func (s *definitionService) SaveLocation(ctx context.Context, l *domain.Location) error {
	l.Name = strings.TrimSpace(l.Name)
	if err := validateStruct(l); err != nil {
		return err
	}
	if (l.Latitude == nil) != (l.Longitude == nil) {
		return domain.Validationf("latitude and longitude must be set together")
	}
	assignID(&l.ID)
	if !l.HasCoordinates() && strings.TrimSpace(l.Address) != "" {
		s.fillCoordinates(ctx, l)
	}
	return s.mutate(ctx, "definition.save_location", l.ID, func(ctx context.Context, r txRepos) error {
		if l.AreaID != "" {
			if err := requireArea(ctx, r, l.AreaID); err != nil {
				return err
			}
		}
		return r.definitions.SaveLocation(ctx, l)
	})
}

func (s *definitionService) SaveArea(ctx context.Context, a *domain.Area) error {
	a.Name = strings.TrimSpace(a.Name)
	if err := validateStruct(a); err != nil {
		return err
	}
	assignID(&a.ID)
	return s.mutate(ctx, "definition.save_area", a.ID, func(ctx context.Context, r txRepos) error {
		return r.definitions.SaveArea(ctx, a)
	})
}

func (s *definitionService) SaveDepartment(ctx context.Context, d *domain.Department) error {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	d.Name = strings.TrimSpace(d.Name)
	if err := validateStruct(d); err != nil {
		return err
	}
	assignID(&d.ID)
	return s.mutate(ctx, "definition.save_department", d.ID, func(ctx context.Context, r txRepos) error {
		return r.definitions.SaveDepartment(ctx, d)
	})
}

func (s *definitionService) Delete(ctx context.Context, kind domain.DefinitionKind, id string) error {
	return s.mutate(ctx, "definition.delete", id, func(ctx context.Context, r txRepos) error {
		if kind == domain.DefArea {
			locs, err := r.definitions.ListLocations(ctx)
			if err != nil {
				return err
			}
			for _, l := range locs {
				if l.AreaID == id {
					return domain.Validationf("area is still assigned to location %q", l.Name)
				}
			}
		}
		return r.definitions.Delete(ctx, kind, id)
	})
}

// Geocode searches for places matching query. Provider failures degrade to
// an empty result.
func (s *definitionService) Geocode(ctx context.Context, query string, limit int) ([]geocode.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.Validationf("search query is required")
	}
	if s.geocoder == nil {
		return []geocode.Place{}, nil
	}
	places, err := s.geocoder.Search(ctx, query, limit)
	if err != nil {
		s.log.Warn("geocoding failed", "query", query, "error", err)
		return []geocode.Place{}, nil
	}
	return places, nil
}

func (s *definitionService) fillCoordinates(ctx context.Context, l *domain.Location) {
	places, err := s.Geocode(ctx, l.Address, 1)
	if err != nil || len(places) == 0 {
		s.log.Info("no coordinates found for location address", "location", l.Name)
		return
	}
	lat, lng := places[0].Latitude, places[0].Longitude
	l.Latitude = &lat
	l.Longitude = &lng
}

func (s *definitionService) mutate(ctx context.Context, name, id string, fn func(context.Context, txRepos) error) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id}
	defer func() { observe(ctx, s.observer, name, startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if err := fn(ctx, r); err != nil {
			return err
		}
		n, err := recountAll(ctx, r, s.writer)
		if err != nil {
			return fmt.Errorf("recounting calendars: %w", err)
		}
		fields["recounted"] = n
		return nil
	})
}

func requireArea(ctx context.Context, r txRepos, id string) error {
	areas, err := r.definitions.ListAreas(ctx)
	if err != nil {
		return err
	}
	for _, a := range areas {
		if a.ID == id {
			return nil
		}
	}
	return domain.Validationf("unknown area %q", id)
}
