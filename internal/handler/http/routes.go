package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init assembles the route table. Every route passes through recovery,
// trace-ID propagation and request logging; the /user subtree additionally
// requires a valid access token for a verified account.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", h.appVersion)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Post("/logout", h.logout)
			r.Post("/refresh-token", h.refreshToken)
			r.Get("/verify-email", h.verifyEmail)
			r.Post("/forgot-password", h.forgotPassword)
			r.Post("/reset-password", h.resetPassword)
			r.Get("/google/callback", h.googleCallback)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
			r.Get("/sessions", h.listSessions)
			r.Post("/sessions/{id}/revoke", h.revokeSession)
		})
	})

	return router
}
