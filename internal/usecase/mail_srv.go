package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"biz-directory/internal/data/entity"
	"biz-directory/internal/dto/request"
	"biz-directory/internal/dto/response"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/mailer"
	"biz-directory/pkg/utils"

	"go.uber.org/zap"
)

const mailTimeout = 30 * time.Second

type MailService interface {
	SendContact(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error)
	// SendWelcome queues a welcome mail; delivery failures are only logged.
	SendWelcome(identity *entity.Identity)
	// Wait blocks until queued mails have been attempted.
	Wait()
}

type mailService struct {
	notifier  mailer.Notifier
	contactTo string
	log       *zap.Logger
	wg        sync.WaitGroup
}

func NewMailService(notifier mailer.Notifier, config utils.EmailConfig, log *zap.Logger) MailService {
	contactTo := config.ContactTo
	if contactTo == "" {
		contactTo = config.From
	}
	return &mailService{
		notifier:  notifier,
		contactTo: contactTo,
		log:       log.With(zap.String("service", "mail")),
	}
}

// SendContact forwards a contact-form message to the operator inbox, then
// sends the sender a confirmation in the background.
func (s *mailService) SendContact(ctx context.Context, req *request.ContactRequest) (*response.ContactResponse, error) {
	if err := utils.ValidateRequest(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	body, err := mailer.RenderContact(mailer.ContactData{Name: name, Email: email, Message: req.Message})
	if err != nil {
		return nil, err
	}

	err = s.notifier.Send(ctx, mailer.Message{
		To:       s.contactTo,
		Subject:  "New contact message from " + name,
		HTMLBody: body,
		TextBody: req.Message,
		ReplyTo:  email,
	})
	if err != nil {
		s.log.Error("Failed to forward contact message", zap.Error(err))
		return nil, apperror.Upstream("mail", err)
	}

	s.async("confirmation", func(ctx context.Context) error {
		html, err := mailer.RenderConfirmation(name)
		if err != nil {
			return err
		}
		return s.notifier.Send(ctx, mailer.Message{
			To:       email,
			Subject:  "We received your message",
			HTMLBody: html,
		})
	})

	s.log.Info("Contact message forwarded")
	return &response.ContactResponse{ContactName: name, Status: "sent"}, nil
}

func (s *mailService) SendWelcome(identity *entity.Identity) {
	to := identity.User.Email
	data := mailer.WelcomeData{
		Username: identity.User.Username,
		Business: identity.Role() == entity.RoleBusiness,
	}

	s.async("welcome", func(ctx context.Context) error {
		html, err := mailer.RenderWelcome(data)
		if err != nil {
			return err
		}
		return s.notifier.Send(ctx, mailer.Message{
			To:       to,
			Subject:  "Welcome to the directory",
			HTMLBody: html,
		})
	})
}

func (s *mailService) Wait() {
	s.wg.Wait()
}

func (s *mailService) async(kind string, send func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			s.log.Warn("Failed to send mail", zap.String("kind", kind), zap.Error(err))
		}
	}()
}
