package api

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/weatherdash/internal/session"
	"github.com/lox/weatherdash/internal/store"
)

type Server struct {
	session *session.Session
	store   *store.Store
	port    string
	loc     *time.Location
	tmpl    *template.Template
}

// NewServer wires the dashboard to a session. loc is the reference zone used
// to group forecast samples into days; nil means UTC.
func NewServer(sess *session.Session, st *store.Store, port string, loc *time.Location) *Server {
	if loc == nil {
		loc = time.UTC
	}
	return &Server{
		session: sess,
		store:   st,
		port:    port,
		loc:     loc,
		tmpl:    newTemplates(),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)

	r.Get("/", s.handleIndex)
	r.Get("/partials/weather", s.handleWeatherPartial)
	r.Post("/search", s.handleSearch)
	r.Post("/unit", s.handleUnit)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/state", s.handleAPIState)
		r.Post("/search", s.handleAPISearch)
		r.Post("/unit", s.handleAPIUnit)
		r.Get("/runs", s.handleAPIRuns)
	})
	return r
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         ":" + s.port,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("api: listening on :%s", s.port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
