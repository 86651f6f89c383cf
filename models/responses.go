package models

import "time"

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// CreateComplaintResponse is returned by every creation endpoint
type CreateComplaintResponse struct {
	ID            int64  `json:"id"`
	PublicID      *int64 `json:"public_id,omitempty"`
	InitialStatus string `json:"initial_status"`
	ReporterID    int64  `json:"reporter_id"`
}

// PublicStatusResponse is the unauthenticated status lookup; no internal ids or PII
type PublicStatusResponse struct {
	PublicID        int64     `json:"public_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	CurrentStatus   string    `json:"current_status"`
	CurrentStatusAt time.Time `json:"current_status_at"`
}

// ComplaintSummary is a complaint with its derived current state
type ComplaintSummary struct {
	Complaint
	ReporterEmail   string       `json:"reporter_email"`
	CurrentStatus   *StatusEntry `json:"current_status"`
	CurrentAssignee *Assignment  `json:"current_assignee"`
	Attachments     []Attachment `json:"attachments"`
}

// ComplaintDetail adds the reporter and advance log to a summary
type ComplaintDetail struct {
	ComplaintSummary
	Reporter *Reporter `json:"reporter"`
	Advances []Advance `json:"advances"`
}

// ComplaintHistory lists both history logs in ascending order
type ComplaintHistory struct {
	ComplaintID   int64         `json:"complaint_id"`
	StatusHistory []StatusEntry `json:"status_history"`
	Assignments   []Assignment  `json:"assignments"`
}

// AdvanceResult is returned after logging an advance
type AdvanceResult struct {
	ComplaintID int64        `json:"complaint_id"`
	AdvanceID   *int64       `json:"advance_id"`
	Attachments []Attachment `json:"attachments"`
}

// CountRow is one group of a report
type CountRow struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// InspectorCount is the number of complaints currently assigned to an inspector
type InspectorCount struct {
	InspectorID   int64  `json:"inspector_id"`
	InspectorName string `json:"inspector_name"`
	Total         int64  `json:"total"`
}

// ComplaintReport is the management summary
type ComplaintReport struct {
	ByStatus              []CountRow       `json:"by_status"`
	ByCategory            []CountRow       `json:"by_category"`
	ByInspector           []InspectorCount `json:"by_inspector"`
	AverageResolutionDays *float64         `json:"average_resolution_days"`
}

// AuthResponse carries a freshly issued token
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      any       `json:"user"`
}
