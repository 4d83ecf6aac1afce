package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"biz-directory/internal/dto/request"
	"biz-directory/internal/usecase"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Identity *IdentityHandler
	Category *CategoryHandler
	Business *BusinessHandler
	Offer    *OfferHandler
	Mail     *MailHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, db Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Identity: NewIdentityHandler(service.Identity, log),
		Category: NewCategoryHandler(service.Category, log),
		Business: NewBusinessHandler(service.Business, service.Offer, log),
		Offer:    NewOfferHandler(service.Offer, log),
		Mail:     NewMailHandler(service.Mail, log),
		Health:   NewHealthHandler(db, log),
	}
}

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// actorID returns the authenticated caller, writing a 401 when absent.
func actorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, apperror.ErrUnauthenticated.Message)
		return uuid.Nil, false
	}
	return userID, true
}

// readUpload reads the "file" part of a multipart form.
func readUpload(w http.ResponseWriter, r *http.Request) (*request.FileUpload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(usecase.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseBadRequest(w, "File too large", map[string]string{"file": "Maximum size exceeded"})
			return nil, false
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"file": "This field is required"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxUploadBytes+1))
	if err != nil {
		utils.ResponseBadRequest(w, "Could not read file", nil)
		return nil, false
	}

	// trust the bytes, not the client's header
	return &request.FileUpload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, true
}

// handleServiceError maps typed service errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, appErr.Message, appErr.Fields)

	case apperror.KindConflict:
		log.Warn(operation+" failed - already exists", zap.String("field", appErr.Field))
		utils.ResponseConflict(w, appErr.Message, map[string]string{appErr.Field: "Already exists"})

	case apperror.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, appErr.Message)

	case apperror.KindUnauthenticated:
		log.Warn(operation + " failed - unauthenticated")
		utils.ResponseUnauthorized(w, appErr.Message)

	case apperror.KindForbidden:
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, appErr.Message)

	case apperror.KindDependencyConflict:
		log.Warn(operation+" failed - still referenced", zap.Error(err))
		utils.ResponseConflict(w, appErr.Message, nil)

	case apperror.KindUpstream:
		log.Error(operation+" failed - upstream", zap.Error(err))
		utils.ResponseUnavailable(w, appErr.Message)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
