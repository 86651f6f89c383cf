package notification

import (
	"context"
	"denuncias/models"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestSMTPSender_Send(t *testing.T) {
	d := &fakeDialer{}
	s := NewSMTPSenderWithDialer(d, "no-reply@municipalidad.cl")

	err := s.Send(context.Background(), &models.Notification{
		Recipient: "a@x.com",
		Subject:   "Hola",
		Body:      "<p>hola</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(d.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(d.sent))
	}
	m := d.sent[0]
	if got := m.GetHeader("To"); len(got) != 1 || got[0] != "a@x.com" {
		t.Errorf("To = %v", got)
	}
	if got := m.GetHeader("From"); len(got) != 1 || got[0] != "no-reply@municipalidad.cl" {
		t.Errorf("From = %v", got)
	}
	if got := m.GetHeader("Subject"); len(got) != 1 || got[0] != "Hola" {
		t.Errorf("Subject = %v", got)
	}
}

func TestSMTPSender_Validation(t *testing.T) {
	d := &fakeDialer{}
	s := NewSMTPSenderWithDialer(d, "from@x.com")

	tests := []struct {
		name string
		n    *models.Notification
		want error
	}{
		{"nil", nil, ErrInvalidRecipient},
		{"no recipient", &models.Notification{Subject: "s"}, ErrInvalidRecipient},
		{"bad recipient", &models.Notification{Recipient: "nobody", Subject: "s"}, ErrInvalidRecipient},
		{"no subject", &models.Notification{Recipient: "a@x.com"}, ErrEmptySubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Send(context.Background(), tt.n); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if len(d.sent) != 0 {
		t.Errorf("invalid messages reached the relay")
	}
}

func TestSMTPSender_WrapsRelayError(t *testing.T) {
	relayErr := errors.New("connection refused")
	s := NewSMTPSenderWithDialer(&fakeDialer{err: relayErr}, "from@x.com")

	err := s.Send(context.Background(), &models.Notification{Recipient: "a@x.com", Subject: "s"})
	var nerr *NotificationError
	if !errors.As(err, &nerr) || !errors.Is(err, relayErr) {
		t.Fatalf("err = %v, want NotificationError wrapping relay error", err)
	}
}

func TestSMTPSender_CancelledContext(t *testing.T) {
	d := &fakeDialer{}
	s := NewSMTPSenderWithDialer(d, "from@x.com")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, &models.Notification{Recipient: "a@x.com", Subject: "s"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(d.sent) != 0 {
		t.Error("cancelled send reached the relay")
	}
}

func TestComplaintConfirmation(t *testing.T) {
	pid := int64(123456789)
	c := &models.Complaint{
		ID:        4,
		PublicID:  &pid,
		Title:     "Ruidos <b>molestos</b>",
		Address:   "123 Main",
		District:  "Centro",
		CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
	rp := &models.Reporter{FirstName: models.AnonymousName, Email: "a@x.com"}

	n, err := ComplaintConfirmation(c, rp, models.StatusRegistered)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if n.Recipient != "a@x.com" || n.Kind != models.NotificationComplaintConfirmation {
		t.Errorf("unexpected envelope %+v", n)
	}
	if !strings.Contains(n.Subject, "#123456789") {
		t.Errorf("subject %q lacks the public id", n.Subject)
	}
	for _, want := range []string{"Estimado/a a@x.com", "#123456789", "05-03-2024", models.StatusRegistered, "&lt;b&gt;molestos"} {
		if !strings.Contains(n.Body, want) {
			t.Errorf("body lacks %q", want)
		}
	}
}

func TestInspectorAssignment(t *testing.T) {
	last := "Pérez"
	c := &models.Complaint{ID: 9, Title: "Muro caído", Address: "Calle 1", District: "Norte"}
	u := &models.StaffUser{FirstName: "Ana", LastName: &last, Email: "ana@muni.cl"}

	n, err := InspectorAssignment(c, u, "revisar hoy")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if n.Recipient != "ana@muni.cl" || n.Subject != "Nueva Denuncia Asignada: #9" {
		t.Errorf("unexpected envelope %+v", n)
	}
	for _, want := range []string{"Ana Pérez", "Muro caído", "revisar hoy"} {
		if !strings.Contains(n.Body, want) {
			t.Errorf("body lacks %q", want)
		}
	}
}
