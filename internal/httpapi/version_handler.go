package httpapi

import (
	"net/http"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/service"
	"github.com/gorilla/mux"
)

type createVersionRequest struct {
	VersionNumber string `json:"versionNumber" validate:"required"`
	Notes         string `json:"notes"`
}

type versionJSON struct {
	ID                string           `json:"id"`
	VersionNumber     string           `json:"versionNumber"`
	Notes             string           `json:"notes"`
	CreatedAt         time.Time        `json:"createdAt"`
	PublishedAt       *time.Time       `json:"publishedAt"`
	IsPublished       bool             `json:"isPublished"`
	IsLatestPublished bool             `json:"isLatestPublished"`
	Calendar          *domain.Calendar `json:"calendarData,omitempty"`
}

// toVersionJSON omits the snapshot unless withCalendar is set.
func toVersionJSON(v *domain.Version, withCalendar bool) versionJSON {
	out := versionJSON{
		ID:                v.ID,
		VersionNumber:     v.VersionNumber,
		Notes:             v.Notes,
		CreatedAt:         v.CreatedAt,
		PublishedAt:       v.PublishedAt,
		IsPublished:       v.IsPublished,
		IsLatestPublished: v.IsLatestPublished,
	}
	if withCalendar {
		out.Calendar = v.Calendar
	}
	return out
}

type viewerJSON struct {
	Project   projectJSON      `json:"project"`
	Version   *versionJSON     `json:"version,omitempty"`
	Calendar  *domain.Calendar `json:"calendar"`
	Published bool             `json:"published"`
	Message   string           `json:"message,omitempty"`
}

func toViewerJSON(v *service.ViewerCalendar) viewerJSON {
	out := viewerJSON{
		Project:   toProjectJSON(v.Project),
		Calendar:  v.Calendar,
		Published: v.Published,
	}
	if v.Version != nil {
		vj := toVersionJSON(v.Version, false)
		out.Version = &vj
	}
	if v.Calendar == nil {
		out.Message = "This calendar has not been published yet."
	}
	return out
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	versions, err := s.svc.Versions.List(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]versionJSON, 0, len(versions))
	for _, v := range versions {
		out = append(out, toVersionJSON(v, false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateVersion(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	var req createVersionRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.svc.Versions.Create(r.Context(), p.ID, req.VersionNumber, req.Notes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVersionJSON(v, false))
}

func (s *Server) handlePublishVersion(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	v, err := s.svc.Versions.Publish(r.Context(), p.ID, mux.Vars(r)["versionId"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVersionJSON(v, false))
}

func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	v, err := s.svc.Versions.MigrateToVersioned(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toVersionJSON(v, false))
}

// handleView resolves what a viewer of the project sees, optionally pinned
// to ?version=.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Versions.ResolveViewer(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("version"), s.viewer(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toViewerJSON(view))
}
