package handler

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Shivanand-hulikatti/campus-events/internal/token"
)

// NewRouter builds the full route tree with the global middleware stack.
func NewRouter(h *Handler, tokens *token.Service, log zerolog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(log))             // structured access log
	r.Use(CORS)                    // permissive CORS for the browser client

	r.Get("/health", HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.RegisterUser)
		r.Post("/login", h.Login)
		r.Get("/events", h.ListEvents)

		// Protected routes: bearer token required.
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(tokens))
			r.Post("/events", h.CreateEvent)
			r.Post("/events/{id}/register", h.RegisterForEvent)
			r.Get("/user/events", h.ListUserEvents)
		})
	})

	return r
}
