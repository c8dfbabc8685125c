package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/query"
	"github.com/claude/liftlog/internal/reconcile"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers. It is the boundary the
// UI collaborator talks to; everything behind it is the domain layer.
type Server struct {
	store  *storage.Store
	recon  *reconcile.Reconciler
	query  *query.Service
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store *storage.Store, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		recon:  reconcile.New(store, log),
		query:  query.NewService(store),
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleSaveProfile)

		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Put("/sessions/{id}", s.handleUpdateSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)

		r.Get("/stats", s.handleStats)
	})
}
