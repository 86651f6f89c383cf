package service

import (
	"denuncias/metrics"
	"denuncias/models"
	"denuncias/notification"
	"log/slog"
)

// MailQueue is satisfied by *worker.MailWorker.
type MailQueue interface {
	Enqueue(n *models.Notification) bool
}

// NotificationService renders lifecycle emails and queues them for the mail worker.
// Queueing never blocks and never fails the caller.
type NotificationService struct {
	queue   MailQueue
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewNotificationService creates a new notification service. A nil queue disables mail.
func NewNotificationService(queue MailQueue, log *slog.Logger, m *metrics.Metrics) *NotificationService {
	return &NotificationService{queue: queue, log: log.With("component", "notification"), metrics: m}
}

// ComplaintCreated queues the receipt for the reporter.
func (s *NotificationService) ComplaintCreated(c *models.Complaint, reporter *models.Reporter, status string) {
	if s == nil || s.queue == nil || reporter == nil || reporter.Email == "" {
		return
	}
	n, err := notification.ComplaintConfirmation(c, reporter, status)
	s.enqueue(n, err, models.NotificationComplaintConfirmation, c.ID)
}

// InspectorAssigned queues the assignment notice for the inspector.
func (s *NotificationService) InspectorAssigned(c *models.Complaint, inspector *models.StaffUser, notes string) {
	if s == nil || s.queue == nil || inspector == nil || inspector.Email == "" {
		return
	}
	n, err := notification.InspectorAssignment(c, inspector, notes)
	s.enqueue(n, err, models.NotificationInspectorAssignment, c.ID)
}

func (s *NotificationService) enqueue(n *models.Notification, renderErr error, kind models.NotificationKind, complaintID int64) {
	if renderErr != nil {
		s.log.Error("failed to render notification", "kind", kind, "complaint_id", complaintID, "error", renderErr)
		s.metrics.MailOutcome(string(kind), string(models.NotificationStatusSkipped))
		return
	}
	if s.queue.Enqueue(n) {
		s.log.Debug("notification queued", "kind", kind, "complaint_id", complaintID, "recipient", n.Recipient)
	}
}
