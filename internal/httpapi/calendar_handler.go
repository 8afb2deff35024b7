package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alexanderramin/shootcal/internal/calendar"
	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/gorilla/mux"
)

type moveDayRequest struct {
	FromDate string `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate   string `json:"toDate" validate:"required,datetime=2006-01-02"`
	Mode     string `json:"mode" validate:"omitempty,oneof=swap"`
}

type moveDayResponse struct {
	Success     bool                 `json:"success"`
	Mode        domain.MoveMode      `json:"mode"`
	OriginalDay domain.CalendarDay   `json:"originalDay"`
	TargetDay   domain.CalendarDay   `json:"targetDay"`
	Days        []domain.CalendarDay `json:"days"`
}

type workspaceJSON struct {
	ProjectID     string           `json:"projectId"`
	BaseVersionID string           `json:"baseVersionId,omitempty"`
	LastModified  time.Time        `json:"lastModified"`
	IsDraft       bool             `json:"isDraft"`
	Calendar      *domain.Calendar `json:"calendarData"`
}

func (s *Server) handleGetCalendar(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	cal, err := s.svc.Calendars.Get(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (s *Server) handleGenerateCalendar(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	cal, err := s.svc.Calendars.Generate(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	day, err := s.svc.Calendars.GetDay(r.Context(), p.ID, mux.Vars(r)["date"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// handleUpdateDay accepts a flat JSON object of the fields to change.
func (s *Server) handleUpdateDay(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var patch calendar.DayPatch
	if err := dec.Decode(&patch); err != nil {
		s.writeError(w, r, domain.Validationf("invalid request body: %v", err))
		return
	}
	day, err := s.svc.Calendars.UpdateDay(r.Context(), p.ID, mux.Vars(r)["date"], patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleMoveDay(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	var req moveDayRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.svc.Calendars.MoveDay(r.Context(), p.ID, req.FromDate, req.ToDate, domain.MoveMode(req.Mode))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moveDayResponse{
		Success:     true,
		Mode:        res.Mode,
		OriginalDay: res.OriginalDay,
		TargetDay:   res.TargetDay,
		Days:        res.Days,
	})
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request, p *domain.Project) {
	ws, err := s.svc.Versions.GetWorkspace(r.Context(), p.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workspaceJSON{
		ProjectID:     ws.ProjectID,
		BaseVersionID: ws.BaseVersionID,
		LastModified:  ws.LastModified,
		IsDraft:       ws.IsDraft,
		Calendar:      ws.Calendar,
	})
}
