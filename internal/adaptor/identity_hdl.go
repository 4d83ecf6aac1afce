package adaptor

import (
	"net/http"

	"biz-directory/internal/dto/request"
	"biz-directory/internal/usecase"
	"biz-directory/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type IdentityHandler struct {
	service usecase.IdentityService
	log     *zap.Logger
}

func NewIdentityHandler(service usecase.IdentityService, log *zap.Logger) *IdentityHandler {
	return &IdentityHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/users
func (h *IdentityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	identity, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", identity)
}

// List handles GET /api/users
func (h *IdentityHandler) List(w http.ResponseWriter, r *http.Request) {
	identities, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", identities)
}

// Get handles GET /api/users/{id}
func (h *IdentityHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", identity)
}

// Update handles PUT /api/users/{id}
func (h *IdentityHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req request.UpdateIdentityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	identity, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", identity)
}

// Delete handles DELETE /api/users/{id}
func (h *IdentityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", nil)
}

// UploadPhoto handles POST /api/users/me/photo
func (h *IdentityHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	upload, ok := readUpload(w, r)
	if !ok {
		return
	}

	identity, err := h.service.UploadProfilePhoto(r.Context(), userID, upload)
	if err != nil {
		handleServiceError(w, h.log, err, "upload profile photo")
		return
	}

	utils.ResponseSuccess(w, "Profile photo uploaded", identity)
}
