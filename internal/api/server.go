package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
)

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
}

// NewRouter builds the chi router with all API endpoints.
func NewRouter(table RoutingTable) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery)
	r.Use(Logger)
	r.Use(CORS)
	r.Use(JSONContentType)

	h := NewHandler(table)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/routes", h.GetRoutes)
		r.Post("/routes", h.AddRoute)
		r.Delete("/routes", h.DeleteRoute)
		r.Get("/routes/default", h.GetDefaultRoute)

		r.Get("/fibs", h.GetFibs)
		r.Get("/interfaces", h.GetInterfaces)
		r.Get("/health", h.CheckHealth)
	})

	return r
}

// NewServer creates an API server bound to bindAddr.
func NewServer(bindAddr string, table RoutingTable) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         bindAddr,
			Handler:      NewRouter(table),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// ListenAndServe runs the server until the listener fails or Shutdown is
// called.
func (s *Server) ListenAndServe() error {
	log.Infof("API server listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
