package httpapi

import (
	"net/http"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/gorilla/mux"
)

type shareJSON struct {
	Code         string     `json:"code"`
	Token        string     `json:"token"`
	ShareURL     string     `json:"shareUrl"`
	AccessURL    string     `json:"accessUrl"`
	CreatedAt    time.Time  `json:"createdAt"`
	ViewCount    int        `json:"viewCount"`
	LastAccessed *time.Time `json:"lastAccessed,omitempty"`
}

func toShareJSON(g *domain.AccessGrant) shareJSON {
	return shareJSON{
		Code:         g.Code,
		Token:        g.Token,
		ShareURL:     "/calendar/" + g.Token,
		AccessURL:    "/access/" + g.Code,
		CreatedAt:    g.CreatedAt,
		ViewCount:    g.ViewCount,
		LastAccessed: g.LastAccessed,
	}
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	g, err := s.svc.Access.Share(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShareJSON(g))
}

func (s *Server) handleListShares(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	grants, err := s.svc.Access.List(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]shareJSON, 0, len(grants))
	for _, g := range grants {
		out = append(out, toShareJSON(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRevokeShares(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	n, err := s.svc.Access.Revoke(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"revoked": n})
}

// handlePublicCalendar serves the anonymous viewer behind a share token or
// access code. Anonymous viewers only ever see published calendars.
func (s *Server) handlePublicCalendar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["token"]
	if id == "" {
		id = mux.Vars(r)["code"]
	}
	g, err := s.svc.Access.Resolve(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.svc.Versions.ResolveViewer(r.Context(), g.ProjectID, "", "")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewerJSON(view))
}
