package wire

import (
	"net/http"

	"biz-directory/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		r.With(auth).Post("/logout", authHandler.Logout)
		r.With(auth).Get("/me", authHandler.Me)
	})
}
