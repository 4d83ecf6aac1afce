package wire

import (
	"biz-directory/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMail(r chi.Router, mailHandler *adaptor.MailHandler) {
	r.Post("/api/mail/contact", mailHandler.Contact)
}
