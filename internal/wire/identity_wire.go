package wire

import (
	"net/http"

	"biz-directory/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireIdentity(r chi.Router, identityHandler *adaptor.IdentityHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", identityHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/", identityHandler.List)
			r.Post("/me/photo", identityHandler.UploadPhoto)
			r.Get("/{id}", identityHandler.Get)
			r.Put("/{id}", identityHandler.Update)
			r.Delete("/{id}", identityHandler.Delete)
		})
	})
}
