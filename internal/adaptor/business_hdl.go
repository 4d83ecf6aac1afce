package adaptor

import (
	"net/http"

	"biz-directory/internal/usecase"
	"biz-directory/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BusinessHandler struct {
	service usecase.BusinessService
	offers  usecase.OfferService
	log     *zap.Logger
}

func NewBusinessHandler(service usecase.BusinessService, offers usecase.OfferService, log *zap.Logger) *BusinessHandler {
	return &BusinessHandler{
		service: service,
		offers:  offers,
		log:     log,
	}
}

// List handles GET /api/businesses
func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list businesses")
		return
	}

	utils.ResponseSuccess(w, "Businesses retrieved successfully", businesses)
}

// Get handles GET /api/businesses/{id}
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	business, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get business")
		return
	}

	utils.ResponseSuccess(w, "Business retrieved successfully", business)
}

// GetByUser handles GET /api/businesses/user/{userID}
func (h *BusinessHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	business, err := h.service.GetByUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		handleServiceError(w, h.log, err, "get business by user")
		return
	}

	utils.ResponseSuccess(w, "Business retrieved successfully", business)
}

// ListOffers handles GET /api/businesses/{id}/offers
func (h *BusinessHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offers.ListByBusiness(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list offers")
		return
	}

	utils.ResponseSuccess(w, "Offers retrieved successfully", offers)
}

// UploadCover handles POST /api/businesses/me/cover
func (h *BusinessHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	upload, ok := readUpload(w, r)
	if !ok {
		return
	}

	business, err := h.service.UploadCover(r.Context(), userID, upload)
	if err != nil {
		handleServiceError(w, h.log, err, "upload cover")
		return
	}

	utils.ResponseSuccess(w, "Cover photo uploaded", business)
}
