package adaptor

import (
	"net/http"

	"biz-directory/internal/dto/request"
	"biz-directory/internal/usecase"
	"biz-directory/pkg/utils"

	"go.uber.org/zap"
)

type MailHandler struct {
	service usecase.MailService
	log     *zap.Logger
}

func NewMailHandler(service usecase.MailService, log *zap.Logger) *MailHandler {
	return &MailHandler{
		service: service,
		log:     log,
	}
}

// Contact handles POST /api/mail/contact
func (h *MailHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SendContact(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "send contact mail")
		return
	}

	utils.ResponseSuccess(w, "Message sent", resp)
}
