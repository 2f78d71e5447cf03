package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/verify", h.verify)

		r.Get("/api/notes", h.listNotes)
		r.Post("/api/notes", h.createNote)
		r.Put("/api/notes", h.updateNote)
		r.Delete("/api/notes", h.deleteNote)

		r.Get("/api/chat", h.getChat)
		r.Post("/api/chat", h.postChat)
		r.Delete("/api/chat", h.deleteChat)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
