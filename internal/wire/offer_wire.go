package wire

import (
	"net/http"

	"biz-directory/internal/adaptor"
	"biz-directory/internal/data/entity"
	"biz-directory/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOffer(r chi.Router, offerHandler *adaptor.OfferHandler, auth func(http.Handler) http.Handler, log *zap.Logger) {
	r.Route("/api/offers", func(r chi.Router) {
		// scanned from the QR code, no session
		r.Get("/redeem/{code}", offerHandler.Redeem)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Get("/{id}", offerHandler.Get)

			// ownership is checked per offer in the service
			r.With(middleware.RequireRole(string(entity.RoleBusiness), log)).Group(func(r chi.Router) {
				r.Post("/", offerHandler.Create)
				r.Put("/{id}", offerHandler.Update)
				r.Delete("/{id}", offerHandler.Delete)
				r.Post("/{id}/photo", offerHandler.UploadPhoto)
			})
		})
	})
}
