package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexanderramin/shootcal/internal/domain"
	"github.com/gorilla/mux"
)

const defaultGeocodeLimit = 5

func (s *Server) handleListDefinitions(kind domain.DefinitionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs, err := s.svc.Definitions.All(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		switch kind {
		case domain.DefLocation:
			writeJSON(w, http.StatusOK, nonNil(defs.Locations))
		case domain.DefArea:
			writeJSON(w, http.StatusOK, nonNil(defs.Areas))
		case domain.DefDepartment:
			writeJSON(w, http.StatusOK, nonNil(defs.Departments))
		}
	}
}

func (s *Server) handleGetDefinition(kind domain.DefinitionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := s.svc.Definitions.Get(r.Context(), kind, mux.Vars(r)["defId"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, def)
	}
}

// handleSaveDefinition serves both POST and PUT. On PUT the path id
// replaces any id in the body.
func (s *Server) handleSaveDefinition(kind domain.DefinitionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := s.saveDefinition(r, kind, mux.Vars(r)["defId"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		status := http.StatusOK
		if r.Method == http.MethodPost {
			status = http.StatusCreated
		}
		writeJSON(w, status, def)
	}
}

func (s *Server) handleDeleteDefinition(kind domain.DefinitionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.svc.Definitions.Delete(r.Context(), kind, mux.Vars(r)["defId"]); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) saveDefinition(r *http.Request, kind domain.DefinitionKind, id string) (any, error) {
	ctx := r.Context()
	switch kind {
	case domain.DefLocation:
		var l domain.Location
		if err := decode(r, &l); err != nil {
			return nil, err
		}
		if id != "" {
			l.ID = id
		}
		return &l, s.svc.Definitions.SaveLocation(ctx, &l)
	case domain.DefArea:
		var a domain.Area
		if err := decode(r, &a); err != nil {
			return nil, err
		}
		if id != "" {
			a.ID = id
		}
		return &a, s.svc.Definitions.SaveArea(ctx, &a)
	case domain.DefDepartment:
		var d domain.Department
		if err := decode(r, &d); err != nil {
			return nil, err
		}
		if id != "" {
			d.ID = id
		}
		return &d, s.svc.Definitions.SaveDepartment(ctx, &d)
	}
	return nil, fmt.Errorf("unknown definition kind %q", kind)
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := defaultGeocodeLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, r, domain.Validationf("limit must be a positive integer"))
			return
		}
		limit = n
	}
	places, err := s.svc.Definitions.Geocode(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(places))
}
