package models

import (
	"strings"
	"time"
)

// Role is a staff or citizen role carried in auth tokens
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleDirector      Role = "director"
	RoleInspector     Role = "inspector"
	RoleCitizen       Role = "citizen"
)

// StaffRoles are the roles a staff account may hold.
var StaffRoles = []Role{RoleAdministrator, RoleDirector, RoleInspector}

// IsStaffRole reports whether r is assignable to a staff account.
func IsStaffRole(r Role) bool {
	for _, s := range StaffRoles {
		if r == s {
			return true
		}
	}
	return false
}

// Status labels written by the lifecycle engine itself. Any other label is accepted on transitions.
const (
	StatusRegistered = "Registrada sin asignar"
	StatusAssigned   = "Asignada"
	StatusResolved   = "Resuelta"
)

// AnonymousName is used for reporters that do not give a name.
const AnonymousName = "Anónimo"

// Complaint represents a complaint (denuncia). Current status and assignee are derived from history.
type Complaint struct {
	ID              int64     `db:"id" json:"id"`
	PublicID        *int64    `db:"public_id" json:"public_id"`
	Category        string    `db:"category" json:"category"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	Address         string    `db:"address" json:"address"`
	District        string    `db:"district" json:"district"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	ReporterID      int64     `db:"reporter_id" json:"reporter_id"`
	ReportedPartyID *int64    `db:"reported_party_id" json:"reported_party_id"`
}

// Reporter is the filer of a complaint; unique by email
type Reporter struct {
	ID             int64   `db:"id" json:"id"`
	FirstName      string  `db:"first_name" json:"first_name"`
	LastName       *string `db:"last_name" json:"last_name"`
	SecondLastName *string `db:"second_last_name" json:"second_last_name"`
	Email          string  `db:"email" json:"email"`
	Phone          *string `db:"phone" json:"phone"`
	CitizenID      *int64  `db:"citizen_id" json:"citizen_id"`
	CitizenEmail   *string `json:"citizen_email,omitempty"`
}

// Citizen is a self-service account (contribuyente)
type Citizen struct {
	ID             int64     `db:"id" json:"id"`
	FirstName      *string   `db:"first_name" json:"first_name"`
	LastName       *string   `db:"last_name" json:"last_name"`
	SecondLastName *string   `db:"second_last_name" json:"second_last_name"`
	RUT            string    `db:"rut" json:"rut"`
	Email          string    `db:"email" json:"email"`
	Phone          *string   `db:"phone" json:"phone"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	RegisteredAt   time.Time `db:"registered_at" json:"registered_at"`
}

// StaffUser is a municipal employee account (usuario)
type StaffUser struct {
	ID             int64     `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       *string   `db:"last_name" json:"last_name"`
	SecondLastName *string   `db:"second_last_name" json:"second_last_name"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Role           Role      `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// FullName joins the non-empty name parts.
func (u *StaffUser) FullName() string {
	return FullName(u.FirstName, u.LastName, u.SecondLastName)
}

// StatusEntry is one append-only status history row
type StatusEntry struct {
	ID            int64     `db:"id" json:"id"`
	ComplaintID   int64     `db:"complaint_id" json:"complaint_id"`
	Status        string    `db:"status" json:"status"`
	ChangedAt     time.Time `db:"changed_at" json:"changed_at"`
	ChangedBy     *int64    `db:"changed_by" json:"changed_by"`
	ChangedByName *string   `json:"changed_by_name,omitempty"`
}

// Assignment is one append-only assignment history row
type Assignment struct {
	ID            int64     `db:"id" json:"id"`
	ComplaintID   int64     `db:"complaint_id" json:"complaint_id"`
	InspectorID   *int64    `db:"inspector_id" json:"inspector_id"`
	AssignedAt    time.Time `db:"assigned_at" json:"assigned_at"`
	Notes         *string   `db:"notes" json:"notes"`
	InspectorName *string   `json:"inspector_name,omitempty"`
}

// Advance is a progress note logged by staff
type Advance struct {
	ID          int64        `db:"id" json:"id"`
	ComplaintID int64        `db:"complaint_id" json:"complaint_id"`
	Comment     string       `db:"comment" json:"comment"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	StaffID     *int64       `db:"staff_id" json:"staff_id"`
	StaffName   *string      `json:"staff_name,omitempty"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment is a stored file linked to a complaint and optionally to an advance
type Attachment struct {
	ID          int64     `db:"id" json:"id"`
	ComplaintID int64     `db:"complaint_id" json:"complaint_id"`
	UploadedBy  *int64    `db:"uploaded_by" json:"uploaded_by"`
	FileName    string    `db:"file_name" json:"file_name"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
	Description *string   `db:"description" json:"description"`
	AdvanceID   *int64    `db:"advance_id" json:"advance_id"`
}

// FullName joins a first name with optional surnames.
func FullName(first string, rest ...*string) string {
	parts := []string{strings.TrimSpace(first)}
	for _, p := range rest {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// StringPtr returns nil for blank strings.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
