package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/ironlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/tailscale"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	log    *slog.Logger
	lc     *tailscale.LocalClient
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale switches identity resolution from the dev fallback to
// tailnet WhoIs lookups.
func (s *Server) SetTailscale(lc *tailscale.LocalClient) {
	s.lc = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handleListExercises)
			r.Post("/", s.handleCreateExercise)
			r.Get("/{id}", s.handleGetExercise)
			r.Patch("/{id}", s.handleUpdateExercise)
			r.Delete("/{id}", s.handleDeleteExercise)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.handleListTemplates)
			r.Post("/", s.handleCreateTemplate)
			r.Get("/{id}", s.handleGetTemplate)
			r.Patch("/{id}", s.handleUpdateTemplate)
			r.Delete("/{id}", s.handleArchiveTemplate)
			r.Post("/{id}/duplicate", s.handleDuplicateTemplate)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/start", s.handleStartSession)
			r.Get("/", s.handleListSessions)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleDeleteSession)
			r.Post("/{id}/complete", s.handleCompleteSession)
			r.Post("/{sessionID}/exercises/{exerciseID}/sets/{setNumber}", s.handleLogSet)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/stats", s.handleDashboardStats)
			r.Get("/volume", s.handleVolumeSeries)
			r.Get("/1rm", s.handleOneRMSeries)
			r.Get("/prs", s.handlePersonalRecords)
		})

		r.Route("/metrics/body", func(r chi.Router) {
			r.Get("/", s.handleListBodyMetrics)
			r.Post("/", s.handleCreateBodyMetric)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", s.handleListCalendar)
			r.Post("/", s.handleCreateCalendarEntry)
			r.Patch("/{id}", s.handleUpdateCalendarEntry)
			r.Delete("/{id}", s.handleDeleteCalendarEntry)
		})
	})
}
