package httpapi

import (
	"net/http"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
)

type projectRequest struct {
	Title          string `json:"title" validate:"required"`
	PrepStartDate  string `json:"prepStartDate" validate:"required,datetime=2006-01-02"`
	ShootStartDate string `json:"shootStartDate" validate:"required,datetime=2006-01-02"`
	WrapDate       string `json:"wrapDate" validate:"omitempty,datetime=2006-01-02"`
	// Regenerate only applies to updates.
	Regenerate bool `json:"regenerate"`
}

func (req projectRequest) apply(p *domain.Project) error {
	var err error
	p.Title = req.Title
	if p.PrepStartDate, err = domain.ParseDate(req.PrepStartDate); err != nil {
		return domain.Validationf("%v", err)
	}
	if p.ShootStartDate, err = domain.ParseDate(req.ShootStartDate); err != nil {
		return domain.Validationf("%v", err)
	}
	if p.WrapDate, err = domain.ParseOptionalDate(req.WrapDate); err != nil {
		return domain.Validationf("%v", err)
	}
	return nil
}

type projectJSON struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	Title          string    `json:"title"`
	PrepStartDate  string    `json:"prepStartDate"`
	ShootStartDate string    `json:"shootStartDate"`
	WrapDate       string    `json:"wrapDate"`
	IsVersioned    bool      `json:"isVersioned"`
	CreatedAt      time.Time `json:"created"`
	UpdatedAt      time.Time `json:"updated"`
}

func toProjectJSON(p *domain.Project) projectJSON {
	return projectJSON{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Title:          p.Title,
		PrepStartDate:  p.PrepStartDate.Format(domain.DateLayout),
		ShootStartDate: p.ShootStartDate.Format(domain.DateLayout),
		WrapDate:       p.EffectiveWrapDate().Format(domain.DateLayout),
		IsVersioned:    p.IsVersioned,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects.List(r.Context(), s.viewer(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]projectJSON, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p := &domain.Project{OwnerID: s.viewer(r)}
	if err := req.apply(p); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Projects.Create(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectJSON(p))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	writeJSON(w, http.StatusOK, toProjectJSON(p))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	var req projectRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.apply(p); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Projects.Update(r.Context(), p, req.Regenerate); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectJSON(p))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	if err := s.svc.Projects.Delete(r.Context(), p.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
