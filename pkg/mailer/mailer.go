package mailer

import (
	"context"
	"fmt"

	"biz-directory/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// Notifier delivers outbound mail.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP notifier, or a log-only notifier when no SMTP host is
// configured.
func New(cfg utils.EmailConfig, log *zap.Logger) Notifier {
	if cfg.Host == "" {
		return &logNotifier{log: log.With(zap.String("mailer", "log"))}
	}
	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log.With(zap.String("mailer", "smtp")),
	}
}

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func (n *smtpNotifier) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	if err := n.dialer.DialAndSend(m); err != nil {
		n.log.Error("failed to send mail", zap.String("subject", msg.Subject), zap.Error(err))
		return fmt.Errorf("send mail: %w", err)
	}

	n.log.Info("mail sent", zap.String("subject", msg.Subject))
	return nil
}

type logNotifier struct {
	log *zap.Logger
}

func (n *logNotifier) Send(ctx context.Context, msg Message) error {
	n.log.Info("smtp not configured, mail dropped",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
