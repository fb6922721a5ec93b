package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/chat/query", h.chatQuery)
		r.Get("/api/chat/history", h.chatHistory)
		r.Delete("/api/chat/history", h.chatClear)
		r.Get("/api/health", h.health)
	})

	// routes that require a valid session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/user/reset", h.resetPassword)
		r.Put("/api/user/profile", h.updateProfile)
		r.Delete("/api/user", h.deleteAccount)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
