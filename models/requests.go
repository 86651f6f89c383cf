package models

// CreateComplaintRequest is the body of every complaint-creation endpoint.
// ReporterEmail may be omitted only when the caller is an authenticated citizen.
type CreateComplaintRequest struct {
	Category               string `json:"category" validate:"required,max=120"`
	Title                  string `json:"title" validate:"required,max=500"`
	Description            string `json:"description" validate:"required"`
	Address                string `json:"address" validate:"required,max=500"`
	District               string `json:"district" validate:"required,max=120"`
	ReporterFirstName      string `json:"reporter_first_name" validate:"max=120"`
	ReporterLastName       string `json:"reporter_last_name" validate:"max=120"`
	ReporterSecondLastName string `json:"reporter_second_last_name" validate:"max=120"`
	ReporterEmail          string `json:"reporter_email" validate:"omitempty,email"`
	ReporterPhone          string `json:"reporter_phone" validate:"max=30"`
	ReportedPartyID        *int64 `json:"reported_party_id" validate:"omitempty,gt=0"`
	CitizenID              *int64 `json:"citizen_id" validate:"omitempty,gt=0"`
}

// UpdateComplaintRequest replaces the editable complaint fields.
type UpdateComplaintRequest struct {
	Category        string `json:"category" validate:"required,max=120"`
	Title           string `json:"title" validate:"required,max=500"`
	Description     string `json:"description" validate:"required"`
	Address         string `json:"address" validate:"required,max=500"`
	District        string `json:"district" validate:"required,max=120"`
	ReportedPartyID *int64 `json:"reported_party_id" validate:"omitempty,gt=0"`
}

// AssignRequest assigns a complaint to an inspector.
type AssignRequest struct {
	InspectorID int64  `json:"inspector_id" validate:"required,gt=0"`
	Notes       string `json:"notes"`
}

// TransitionRequest appends a free-text status label.
type TransitionRequest struct {
	Status string `json:"status" validate:"required,max=120"`
}

// ComplaintFilter narrows complaint listings. Empty fields do not filter.
type ComplaintFilter struct {
	Status   string
	Category string
	District string
	Query    string
}

// LoginRequest is shared by staff and citizen login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterStaffRequest creates a staff account.
type RegisterStaffRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=120"`
	LastName       string `json:"last_name" validate:"max=120"`
	SecondLastName string `json:"second_last_name" validate:"max=120"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           Role   `json:"role" validate:"required"`
}

// UpdateStaffRequest is a partial update; nil fields are kept.
type UpdateStaffRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=120"`
	LastName       *string `json:"last_name" validate:"omitempty,max=120"`
	SecondLastName *string `json:"second_last_name" validate:"omitempty,max=120"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       *string `json:"password" validate:"omitempty,min=6"`
	Role           *Role   `json:"role"`
}

// RegisterCitizenRequest creates a citizen account.
type RegisterCitizenRequest struct {
	FirstName      string `json:"first_name" validate:"max=120"`
	LastName       string `json:"last_name" validate:"max=120"`
	SecondLastName string `json:"second_last_name" validate:"max=120"`
	RUT            string `json:"rut" validate:"required,max=20"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"max=30"`
	Password       string `json:"password" validate:"required,min=6"`
}

// UpdateCitizenRequest is a partial update; nil fields are kept.
type UpdateCitizenRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=120"`
	LastName       *string `json:"last_name" validate:"omitempty,max=120"`
	SecondLastName *string `json:"second_last_name" validate:"omitempty,max=120"`
	RUT            *string `json:"rut" validate:"omitempty,max=20"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateReporterRequest is the admin edit of a reporter; at least one field is required.
type UpdateReporterRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=120"`
	LastName       *string `json:"last_name" validate:"omitempty,max=120"`
	SecondLastName *string `json:"second_last_name" validate:"omitempty,max=120"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
}

// Empty reports whether no field is set.
func (r *UpdateReporterRequest) Empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.SecondLastName == nil && r.Email == nil && r.Phone == nil
}
