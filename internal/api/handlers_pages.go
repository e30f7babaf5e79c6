package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/lox/weatherdash/internal/models"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.dashboardData(s.session.State())
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("api: render index: %v", err)
	}
}

func (s *Server) handleWeatherPartial(w http.ResponseWriter, r *http.Request) {
	data := s.dashboardData(s.session.State())
	if err := s.tmpl.ExecuteTemplate(w, "weather.html", data); err != nil {
		log.Printf("api: render weather partial: %v", err)
	}
}

// handleSearch runs a manual lookup from the search form. Blank input is
// ignored, matching a submit with nothing typed.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if city := strings.TrimSpace(r.PostFormValue("city")); city != "" {
		s.session.Search(r.Context(), city)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUnit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	unit, err := models.ParseUnit(r.PostFormValue("unit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.session.SetUnit(r.Context(), unit); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type HealthStatus struct {
	Status        string `json:"status"`
	Ready         bool   `json:"ready"`
	SchemaVersion int    `json:"schema_version"`
	TrackedCity   string `json:"tracked_city,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.session.State()
	health := HealthStatus{
		Status:      "ok",
		Ready:       st.Ready,
		TrackedCity: st.TrackedCity,
	}

	version, err := s.schemaVersion()
	if err != nil {
		health.Status = "error"
		health.Error = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, health)
		return
	}
	health.SchemaVersion = version
	writeJSON(w, http.StatusOK, health)
}

func (s *Server) schemaVersion() (int, error) {
	if err := s.store.Ping(); err != nil {
		return 0, err
	}
	return s.store.MigrationVersion()
}
