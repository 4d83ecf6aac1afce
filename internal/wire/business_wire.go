package wire

import (
	"net/http"

	"biz-directory/internal/adaptor"
	"biz-directory/internal/data/entity"
	"biz-directory/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBusiness(r chi.Router, businessHandler *adaptor.BusinessHandler, auth func(http.Handler) http.Handler, log *zap.Logger) {
	r.Route("/api/businesses", func(r chi.Router) {
		// public directory
		r.Get("/", businessHandler.List)
		r.Get("/user/{userID}", businessHandler.GetByUser)
		r.Get("/{id}", businessHandler.Get)
		r.Get("/{id}/offers", businessHandler.ListOffers)

		r.With(
			auth,
			middleware.RequireRole(string(entity.RoleBusiness), log),
		).Post("/me/cover", businessHandler.UploadCover)
	})
}
