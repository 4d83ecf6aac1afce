package adaptor

import (
	"net/http"

	"biz-directory/internal/dto/request"
	"biz-directory/internal/usecase"
	"biz-directory/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OfferHandler struct {
	service usecase.OfferService
	log     *zap.Logger
}

func NewOfferHandler(service usecase.OfferService, log *zap.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/offers
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req request.OfferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	offer, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create offer")
		return
	}

	utils.ResponseCreated(w, "Offer created successfully", offer)
}

// Get handles GET /api/offers/{id}
func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	offer, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get offer")
		return
	}

	utils.ResponseSuccess(w, "Offer retrieved successfully", offer)
}

// Update handles PUT /api/offers/{id}
func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req request.OfferUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	offer, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update offer")
		return
	}

	utils.ResponseSuccess(w, "Offer updated successfully", offer)
}

// Delete handles DELETE /api/offers/{id}
func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete offer")
		return
	}

	utils.ResponseSuccess(w, "Offer deleted successfully", nil)
}

// UploadPhoto handles POST /api/offers/{id}/photo
func (h *OfferHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	upload, ok := readUpload(w, r)
	if !ok {
		return
	}

	offer, err := h.service.UploadPhoto(r.Context(), userID, chi.URLParam(r, "id"), upload)
	if err != nil {
		handleServiceError(w, h.log, err, "upload offer photo")
		return
	}

	utils.ResponseSuccess(w, "Offer photo uploaded", offer)
}

// Redeem handles GET /api/offers/redeem/{code}
func (h *OfferHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	redemption, err := h.service.Redeem(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handleServiceError(w, h.log, err, "redeem offer")
		return
	}

	utils.ResponseSuccess(w, "Offer is valid", redemption)
}
