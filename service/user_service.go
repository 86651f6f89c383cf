package service

import (
	"context"
	"denuncias/apperr"
	"denuncias/database"
	"denuncias/metrics"
	"denuncias/models"
	"denuncias/repository"
	"denuncias/utils"
	"fmt"
	"log/slog"
	"strings"
)

// StaffService handles staff accounts (usuarios): login and administration
type StaffService struct {
	db      *database.DB
	staff   *repository.StaffRepository
	tokens  *TokenIssuer
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewStaffService creates a new staff service
func NewStaffService(db *database.DB, tokens *TokenIssuer, m *metrics.Metrics, log *slog.Logger) *StaffService {
	return &StaffService{
		db:      db,
		staff:   repository.NewStaffRepository(db),
		tokens:  tokens,
		metrics: m,
		log:     log.With("component", "staff"),
	}
}

// Login checks the credentials and issues a token carrying {id, email, role}.
func (s *StaffService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	user, err := s.staff.GetStaffByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff user: %w", err)
	}
	if user == nil || utils.CheckPassword(req.Password, user.PasswordHash) != nil {
		s.log.Warn("staff login rejected", "email", email)
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return s.tokens.Issue(user.ID, user.Email, user.Role, user)
}

// List returns every staff account.
func (s *StaffService) List(ctx context.Context) ([]models.StaffUser, error) {
	users, err := s.staff.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return users, nil
}

// Get returns one staff account.
func (s *StaffService) Get(ctx context.Context, id int64) (*models.StaffUser, error) {
	user, err := s.staff.GetStaffByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("staff user not found")
	}
	return user, nil
}

// Register creates a staff account with a bcrypt password hash.
func (s *StaffService) Register(ctx context.Context, req *models.RegisterStaffRequest) (*models.StaffUser, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !models.IsStaffRole(req.Role) {
		return nil, apperr.Validation("role must be administrator, director or inspector")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.StaffUser{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       models.StringPtr(req.LastName),
		SecondLastName: models.StringPtr(req.SecondLastName),
		Email:          normalizeEmail(req.Email),
		PasswordHash:   hash,
		Role:           req.Role,
		CreatedAt:      database.Now(),
	}
	if err := s.staff.CreateStaff(ctx, user); err != nil {
		if database.IsDuplicate(err) {
			return nil, apperr.Conflict("email already registered", err)
		}
		return nil, fmt.Errorf("failed to register staff user: %w", err)
	}
	s.log.Info("staff user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Update applies a partial change. A new password is re-hashed; the email stays unique.
func (s *StaffService) Update(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffUser, error) {
	trimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Role != nil && !models.IsStaffRole(*req.Role) {
		return nil, apperr.Validation("role must be administrator, director or inspector")
	}

	var user *models.StaffUser
	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		staff := s.staff.WithTx(tx)
		u, err := staff.GetStaffByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return apperr.NotFound("staff user not found")
		}

		if req.FirstName != nil {
			first := strings.TrimSpace(*req.FirstName)
			if first == "" {
				return apperr.Validation("first_name must not be empty")
			}
			u.FirstName = first
		}
		if req.LastName != nil {
			u.LastName = models.StringPtr(*req.LastName)
		}
		if req.SecondLastName != nil {
			u.SecondLastName = models.StringPtr(*req.SecondLastName)
		}
		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			taken, err := staff.EmailTakenByOther(ctx, email, id)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("email already registered", nil)
			}
			u.Email = email
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		if req.Password != nil {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return err
			}
			u.PasswordHash = hash
		}

		if err := staff.UpdateStaff(ctx, u); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, classify(err, "failed to update staff user")
	}
	s.log.Info("staff user updated", "user_id", id)
	return user, nil
}

// Delete releases every history reference to the account, then deletes it, in one transaction.
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		staff := s.staff.WithTx(tx)
		if err := staff.ReleaseReferences(ctx, id); err != nil {
			return err
		}
		deleted, err := staff.DeleteStaff(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("staff user not found")
		}
		return nil
	})
	if err != nil {
		return classify(err, "failed to delete staff user")
	}
	s.metrics.ComplaintEvent(metrics.EventStaffDelete)
	s.log.Info("staff user deleted", "user_id", id)
	return nil
}
