package models

import "time"

// NotificationKind identifies which lifecycle event produced an email
type NotificationKind string

const (
	NotificationComplaintConfirmation NotificationKind = "complaint_confirmation"
	NotificationInspectorAssignment   NotificationKind = "inspector_assignment"
)

// NotificationStatus is the outcome of a delivery attempt
type NotificationStatus string

const (
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
	NotificationStatusDropped NotificationStatus = "dropped"
	NotificationStatusSkipped NotificationStatus = "skipped"
)

// Notification is one outbound email. Body is HTML.
type Notification struct {
	Kind        NotificationKind
	ComplaintID int64
	Recipient   string
	Subject     string
	Body        string
	QueuedAt    time.Time
}
