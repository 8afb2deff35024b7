// Package httpapi exposes the calendar services as a JSON API plus the
// public read-only viewer routes.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/alexanderramin/shootcal/internal/service"
	"github.com/gorilla/mux"
)

// UserHeader carries the caller's user id. Authentication happens upstream.
const UserHeader = "X-User-ID"

// Services bundles the use cases the API serves.
type Services struct {
	Projects    service.ProjectService
	Calendars   service.CalendarService
	Versions    service.VersionService
	Rules       service.RuleService
	Definitions service.DefinitionService
	Access      service.AccessService
}

// Server provides the HTTP endpoints.
type Server struct {
	svc          Services
	defaultOwner string
	log          *slog.Logger
	router       *mux.Router
}

// NewServer creates a server. Requests without a user header act as
// defaultOwner.
func NewServer(svc Services, defaultOwner string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		svc:          svc,
		defaultOwner: defaultOwner,
		log:          logger,
		router:       mux.NewRouter(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	s.router.HandleFunc("/api/projects", s.handleListProjects).Methods(http.MethodGet)
	s.router.HandleFunc("/api/projects", s.handleCreateProject).Methods(http.MethodPost)
	s.router.HandleFunc("/api/projects/{id}", s.owned(s.handleGetProject)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/projects/{id}", s.owned(s.handleUpdateProject)).Methods(http.MethodPut)
	s.router.HandleFunc("/api/projects/{id}", s.owned(s.handleDeleteProject)).Methods(http.MethodDelete)

	s.router.HandleFunc("/api/projects/{id}/calendar", s.owned(s.handleGetCalendar)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/projects/{id}/calendar/generate", s.owned(s.handleGenerateCalendar)).Methods(http.MethodPost)
	s.router.HandleFunc("/api/projects/{id}/calendar/day/{date}", s.owned(s.handleGetDay)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/projects/{id}/calendar/day/{date}", s.owned(s.handleUpdateDay)).Methods(http.MethodPut)
	s.router.HandleFunc("/api/projects/{id}/calendar/move-day", s.owned(s.handleMoveDay)).Methods(http.MethodPost)

	s.router.HandleFunc("/api/projects/{id}/workspace", s.owned(s.handleGetWorkspace)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/projects/{id}/migrate-to-versioned", s.owned(s.handleMigrate)).Methods(http.MethodPost)
	s.router.HandleFunc("/api/projects/{id}/versions", s.owned(s.handleListVersions)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/projects/{id}/versions", s.owned(s.handleCreateVersion)).Methods(http.MethodPost)
	s.router.HandleFunc("/api/projects/{id}/versions/{versionId}/publish", s.owned(s.handlePublishVersion)).Methods(http.MethodPost)

	for _, kind := range domain.RuleKinds {
		base := "/api/projects/{id}/" + string(kind)
		s.router.HandleFunc(base, s.owned(s.handleListRules(kind))).Methods(http.MethodGet)
		s.router.HandleFunc(base, s.owned(s.handleCreateRule(kind))).Methods(http.MethodPost)
		s.router.HandleFunc(base+"/{ruleId}", s.owned(s.handleGetRule(kind))).Methods(http.MethodGet)
		s.router.HandleFunc(base+"/{ruleId}", s.owned(s.handleUpdateRule(kind))).Methods(http.MethodPut)
		s.router.HandleFunc(base+"/{ruleId}", s.owned(s.handleDeleteRule(kind))).Methods(http.MethodDelete)
	}

	for _, kind := range domain.DefinitionKinds {
		base := "/api/" + string(kind)
		s.router.HandleFunc(base, s.handleListDefinitions(kind)).Methods(http.MethodGet)
		s.router.HandleFunc(base, s.handleSaveDefinition(kind)).Methods(http.MethodPost)
		s.router.HandleFunc(base+"/{defId}", s.handleGetDefinition(kind)).Methods(http.MethodGet)
		s.router.HandleFunc(base+"/{defId}", s.handleSaveDefinition(kind)).Methods(http.MethodPut)
		s.router.HandleFunc(base+"/{defId}", s.handleDeleteDefinition(kind)).Methods(http.MethodDelete)
	}
	s.router.HandleFunc("/api/geocode", s.handleGeocode).Methods(http.MethodGet)

	s.router.HandleFunc("/api/projects/{id}/share", s.owned(s.handleShare)).Methods(http.MethodPost)
	s.router.HandleFunc("/api/projects/{id}/share", s.owned(s.handleListShares)).Methods(http.MethodGet)
	s.router.HandleFunc("/api/projects/{id}/share", s.owned(s.handleRevokeShares)).Methods(http.MethodDelete)

	s.router.HandleFunc("/view/{id}", s.handleView).Methods(http.MethodGet)
	s.router.HandleFunc("/calendar/{token}", s.handlePublicCalendar).Methods(http.MethodGet)
	s.router.HandleFunc("/access/{code}", s.handlePublicCalendar).Methods(http.MethodGet)
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.router)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// viewer returns the calling user's id.
func (s *Server) viewer(r *http.Request) string {
	if id := r.Header.Get(UserHeader); id != "" {
		return id
	}
	return s.defaultOwner
}

type projectHandler func(w http.ResponseWriter, r *http.Request, p *domain.Project)

// owned loads the {id} project and rejects callers who do not own it.
func (s *Server) owned(h projectHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.svc.Projects.GetByID(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if p.OwnerID != s.viewer(r) {
			s.writeError(w, r, domain.ErrForbidden)
			return
		}
		h(w, r, p)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
