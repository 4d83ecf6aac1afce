package wire

import (
	"net/http"

	"biz-directory/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler, auth func(http.Handler) http.Handler) {
	r.With(auth).Route("/api/categories", func(r chi.Router) {
		r.Post("/", categoryHandler.Create)
		r.Get("/", categoryHandler.List)
		r.Get("/{id}", categoryHandler.Get)
		r.Delete("/{id}", categoryHandler.Delete)
	})
}
