package notification

import (
	"context"
	"denuncias/models"
	"strings"

	"gopkg.in/gomail.v2"
)

// Sender delivers a rendered notification.
type Sender interface {
	Send(ctx context.Context, notification *models.Notification) error
}

// Dialer is the part of *gomail.Dialer the SMTP sender needs.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends HTML email through an SMTP relay
type SMTPSender struct {
	dialer Dialer
	from   string
}

// NewSMTPSender creates an SMTP sender. The gomail dialer opens one connection per message.
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, password), from: from}
}

// NewSMTPSenderWithDialer is used by tests to capture messages.
func NewSMTPSenderWithDialer(d Dialer, from string) *SMTPSender {
	return &SMTPSender{dialer: d, from: from}
}

// Validate checks the fields every message needs.
func (s *SMTPSender) Validate(n *models.Notification) error {
	if n == nil || strings.TrimSpace(n.Recipient) == "" || !strings.Contains(n.Recipient, "@") {
		return ErrInvalidRecipient
	}
	if strings.TrimSpace(n.Subject) == "" {
		return ErrEmptySubject
	}
	return nil
}

// Send builds the MIME message and hands it to the relay.
func (s *SMTPSender) Send(ctx context.Context, n *models.Notification) error {
	if err := s.Validate(n); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &NotificationError{Message: "send cancelled", Err: err}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", n.Recipient)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/html", n.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return &NotificationError{Message: "smtp delivery failed", Err: err}
	}
	return nil
}

// NoopSender accepts everything; used when mail is disabled.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, n *models.Notification) error { return nil }

// Errors
var (
	ErrInvalidRecipient = &NotificationError{Message: "invalid recipient"}
	ErrEmptySubject     = &NotificationError{Message: "empty subject"}
)

// NotificationError represents a notification error
type NotificationError struct {
	Message string
	Err     error
}

func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
