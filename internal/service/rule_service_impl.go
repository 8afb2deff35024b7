package service

import (
	"context"
	"time"

	"github.com/alexanderramin/shootcal/internal/db"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/google/uuid"
)

// ruleService manages exception rules. Changes take effect on the next
// calendar generation.
type ruleService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewRuleService(uow db.UnitOfWork, observers ...UseCaseObserver) RuleService {
	return &ruleService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *ruleService) List(ctx context.Context, projectID string) (domain.RuleSet, error) {
	var set domain.RuleSet
	err := s.inProject(ctx, projectID, func(ctx context.Context, r txRepos) error {
		var err error
		set, err = r.rules.LoadRuleSet(ctx, projectID)
		return err
	})
	return set, err
}

func (s *ruleService) Get(ctx context.Context, kind domain.RuleKind, projectID, id string) (any, error) {
	set, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	switch kind {
	case domain.RuleHoliday:
		for _, h := range set.Holidays {
			if h.ID == id {
				return h, nil
			}
		}
	case domain.RuleHiatus:
		for _, h := range set.Hiatus {
			if h.ID == id {
				return h, nil
			}
		}
	case domain.RuleWorkingWeekend:
		for _, w := range set.WorkingWeekends {
			if w.ID == id {
				return w, nil
			}
		}
	case domain.RuleSpecialDate:
		for _, sd := range set.SpecialDates {
			if sd.ID == id {
				return sd, nil
			}
		}
	default:
		return nil, domain.Validationf("unknown rule kind %q", kind)
	}
	return nil, domain.ErrRuleNotFound
}

func (s *ruleService) AddHoliday(ctx context.Context, h *domain.Holiday) error {
	if err := validateStruct(h); err != nil {
		return err
	}
	assignID(&h.ID)
	return s.mutate(ctx, "rule.add_holiday", h.ProjectID, func(ctx context.Context, r txRepos) error {
		return r.rules.CreateHoliday(ctx, h)
	})
}

func (s *ruleService) AddHiatus(ctx context.Context, h *domain.HiatusPeriod) error {
	if err := validateHiatus(h); err != nil {
		return err
	}
	assignID(&h.ID)
	return s.mutate(ctx, "rule.add_hiatus", h.ProjectID, func(ctx context.Context, r txRepos) error {
		return r.rules.CreateHiatus(ctx, h)
	})
}

func (s *ruleService) AddWorkingWeekend(ctx context.Context, w *domain.WorkingWeekend) error {
	if err := validateWorkingWeekend(w); err != nil {
		return err
	}
	assignID(&w.ID)
	return s.mutate(ctx, "rule.add_working_weekend", w.ProjectID, func(ctx context.Context, r txRepos) error {
		return r.rules.UpsertWorkingWeekend(ctx, w)
	})
}

func (s *ruleService) AddSpecialDate(ctx context.Context, sd *domain.SpecialDate) error {
	if sd.Type == "" {
		sd.Type = domain.SpecialOther
	}
	if err := validateStruct(sd); err != nil {
		return err
	}
	assignID(&sd.ID)
	return s.mutate(ctx, "rule.add_special_date", sd.ProjectID, func(ctx context.Context, r txRepos) error {
		return r.rules.CreateSpecialDate(ctx, sd)
	})
}

func (s *ruleService) UpdateHoliday(ctx context.Context, h *domain.Holiday) error {
	if err := validateStruct(h); err != nil {
		return err
	}
	return s.mutate(ctx, "rule.update_holiday", h.ProjectID, func(ctx context.Context, r txRepos) error {
		return r.rules.UpdateHoliday(ctx, h)
	})
}

func (s *ruleService) UpdateHiatus(ctx context.Context, h *domain.HiatusPeriod) error {
	if err := validateHiatus(h); err != nil {
		return err
	}
	return s.mutate(ctx, "rule.update_hiatus", h.ProjectID, func(ctx context.Context, r txRepos) error {
		return r.rules.UpdateHiatus(ctx, h)
	})
}

func (s *ruleService) UpdateWorkingWeekend(ctx context.Context, w *domain.WorkingWeekend) error {
	if err := validateWorkingWeekend(w); err != nil {
		return err
	}
	return s.mutate(ctx, "rule.update_working_weekend", w.ProjectID, func(ctx context.Context, r txRepos) error {
		return r.rules.UpdateWorkingWeekend(ctx, w)
	})
}

func (s *ruleService) UpdateSpecialDate(ctx context.Context, sd *domain.SpecialDate) error {
	if sd.Type == "" {
		sd.Type = domain.SpecialOther
	}
	if err := validateStruct(sd); err != nil {
		return err
	}
	return s.mutate(ctx, "rule.update_special_date", sd.ProjectID, func(ctx context.Context, r txRepos) error {
		return r.rules.UpdateSpecialDate(ctx, sd)
	})
}

func (s *ruleService) Delete(ctx context.Context, kind domain.RuleKind, projectID, id string) error {
	return s.mutate(ctx, "rule.delete", projectID, func(ctx context.Context, r txRepos) error {
		return r.rules.Delete(ctx, kind, projectID, id)
	})
}

func (s *ruleService) mutate(ctx context.Context, name, projectID string, fn func(context.Context, txRepos) error) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, name, startedAt, map[string]any{"project_id": projectID}, err)
	}()
	return s.inProject(ctx, projectID, fn)
}

// inProject runs fn in a transaction after checking the project exists.
func (s *ruleService) inProject(ctx context.Context, projectID string, fn func(context.Context, txRepos) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.projects.GetByID(ctx, projectID); err != nil {
			return err
		}
		return fn(ctx, r)
	})
}

func validateHiatus(h *domain.HiatusPeriod) error {
	if err := validateStruct(h); err != nil {
		return err
	}
	if h.EndDate < h.StartDate {
		return domain.Validationf("hiatus end date %s is before start date %s", h.EndDate, h.StartDate)
	}
	return nil
}

func validateWorkingWeekend(w *domain.WorkingWeekend) error {
	if err := validateStruct(w); err != nil {
		return err
	}
	d, err := domain.ParseDate(w.Date)
	if err != nil {
		return domain.Validationf("%v", err)
	}
	if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
		return domain.Validationf("working weekend %s falls on a %s", w.Date, wd)
	}
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}
