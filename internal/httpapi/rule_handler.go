package httpapi

import (
	"fmt"
	"net/http"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/gorilla/mux"
)

func (s *Server) handleListRules(kind domain.RuleKind) projectHandler {
	return func(w http.ResponseWriter, r *http.Request, p *domain.Project) {
		rules, err := s.svc.Rules.List(r.Context(), p.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		switch kind {
		case domain.RuleHoliday:
			writeJSON(w, http.StatusOK, nonNil(rules.Holidays))
		case domain.RuleHiatus:
			writeJSON(w, http.StatusOK, nonNil(rules.Hiatus))
		case domain.RuleWorkingWeekend:
			writeJSON(w, http.StatusOK, nonNil(rules.WorkingWeekends))
		case domain.RuleSpecialDate:
			writeJSON(w, http.StatusOK, nonNil(rules.SpecialDates))
		}
	}
}

func (s *Server) handleGetRule(kind domain.RuleKind) projectHandler {
	return func(w http.ResponseWriter, r *http.Request, p *domain.Project) {
		rule, err := s.svc.Rules.Get(r.Context(), kind, p.ID, mux.Vars(r)["ruleId"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rule)
	}
}

func (s *Server) handleCreateRule(kind domain.RuleKind) projectHandler {
	return func(w http.ResponseWriter, r *http.Request, p *domain.Project) {
		rule, err := s.saveRule(r, kind, p.ID, "")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, rule)
	}
}

func (s *Server) handleUpdateRule(kind domain.RuleKind) projectHandler {
	return func(w http.ResponseWriter, r *http.Request, p *domain.Project) {
		rule, err := s.saveRule(r, kind, p.ID, mux.Vars(r)["ruleId"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, rule)
	}
}

func (s *Server) handleDeleteRule(kind domain.RuleKind) projectHandler {
	return func(w http.ResponseWriter, r *http.Request, p *domain.Project) {
		if err := s.svc.Rules.Delete(r.Context(), kind, p.ID, mux.Vars(r)["ruleId"]); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// saveRule decodes the body as the kind's rule and creates it, or updates
// the rule named by id when id is set. The path always wins over any
// project or rule id in the body.
func (s *Server) saveRule(r *http.Request, kind domain.RuleKind, projectID, id string) (any, error) {
	ctx := r.Context()
	update := id != ""
	switch kind {
	case domain.RuleHoliday:
		var h domain.Holiday
		if err := decode(r, &h); err != nil {
			return nil, err
		}
		h.ProjectID, h.ID = projectID, id
		if update {
			return &h, s.svc.Rules.UpdateHoliday(ctx, &h)
		}
		return &h, s.svc.Rules.AddHoliday(ctx, &h)
	case domain.RuleHiatus:
		var h domain.HiatusPeriod
		if err := decode(r, &h); err != nil {
			return nil, err
		}
		h.ProjectID, h.ID = projectID, id
		if update {
			return &h, s.svc.Rules.UpdateHiatus(ctx, &h)
		}
		return &h, s.svc.Rules.AddHiatus(ctx, &h)
	case domain.RuleWorkingWeekend:
		var wk domain.WorkingWeekend
		if err := decode(r, &wk); err != nil {
			return nil, err
		}
		wk.ProjectID, wk.ID = projectID, id
		if update {
			return &wk, s.svc.Rules.UpdateWorkingWeekend(ctx, &wk)
		}
		return &wk, s.svc.Rules.AddWorkingWeekend(ctx, &wk)
	case domain.RuleSpecialDate:
		var sd domain.SpecialDate
		if err := decode(r, &sd); err != nil {
			return nil, err
		}
		sd.ProjectID, sd.ID = projectID, id
		if update {
			return &sd, s.svc.Rules.UpdateSpecialDate(ctx, &sd)
		}
		return &sd, s.svc.Rules.AddSpecialDate(ctx, &sd)
	}
	return nil, fmt.Errorf("unknown rule kind %q", kind)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
