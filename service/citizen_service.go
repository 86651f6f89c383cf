package service

import (
	"context"
	"denuncias/apperr"
	"denuncias/database"
	"denuncias/models"
	"denuncias/repository"
	"denuncias/utils"
	"fmt"
	"log/slog"
	"strings"
)

// CitizenService handles citizen accounts (contribuyentes): self-service and admin CRUD
type CitizenService struct {
	db         *database.DB
	citizens   *repository.CitizenRepository
	reporters  *repository.ReporterRepository
	complaints *ComplaintService
	tokens     *TokenIssuer
	log        *slog.Logger
}

// NewCitizenService creates a new citizen service
func NewCitizenService(db *database.DB, complaints *ComplaintService, tokens *TokenIssuer, log *slog.Logger) *CitizenService {
	return &CitizenService{
		db:         db,
		citizens:   repository.NewCitizenRepository(db),
		reporters:  repository.NewReporterRepository(db),
		complaints: complaints,
		tokens:     tokens,
		log:        log.With("component", "citizen"),
	}
}

// Register creates the account and links the reporter sharing its email, in one transaction.
func (s *CitizenService) Register(ctx context.Context, req *models.RegisterCitizenRequest) (*models.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	rut := strings.TrimSpace(req.RUT)
	if rut == "" {
		return nil, apperr.Validation("rut is required")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	citizen := &models.Citizen{
		FirstName:      models.StringPtr(req.FirstName),
		LastName:       models.StringPtr(req.LastName),
		SecondLastName: models.StringPtr(req.SecondLastName),
		RUT:            rut,
		Email:          normalizeEmail(req.Email),
		Phone:          models.StringPtr(req.Phone),
		PasswordHash:   hash,
		RegisteredAt:   database.Now(),
	}
	err = database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		if err := s.citizens.WithTx(tx).CreateCitizen(ctx, citizen); err != nil {
			if database.IsDuplicate(err) {
				return apperr.Conflict("email already registered", err)
			}
			return err
		}
		return s.reporters.WithTx(tx).LinkCitizenByEmail(ctx, citizen.Email, citizen.ID)
	})
	if err != nil {
		return nil, classify(err, "failed to register citizen")
	}

	s.log.Info("citizen registered", "citizen_id", citizen.ID)
	return s.tokens.Issue(citizen.ID, citizen.Email, models.RoleCitizen, citizen)
}

// Login checks the credentials and issues a citizen token.
func (s *CitizenService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	citizen, err := s.citizens.GetCitizenByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load citizen: %w", err)
	}
	if citizen == nil || utils.CheckPassword(req.Password, citizen.PasswordHash) != nil {
		s.log.Warn("citizen login rejected", "email", email)
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return s.tokens.Issue(citizen.ID, citizen.Email, models.RoleCitizen, citizen)
}

// Me returns the caller's own account.
func (s *CitizenService) Me(ctx context.Context, actor *models.Actor) (*models.Citizen, error) {
	if !actor.IsCitizen() {
		return nil, apperr.Forbidden("a citizen session is required")
	}
	return s.Get(ctx, actor.ID)
}

// UpdateMe applies a partial change to the caller's own account.
func (s *CitizenService) UpdateMe(ctx context.Context, actor *models.Actor, req *models.UpdateCitizenRequest) (*models.Citizen, error) {
	if !actor.IsCitizen() {
		return nil, apperr.Forbidden("a citizen session is required")
	}
	return s.Update(ctx, actor.ID, req)
}

// DeleteMe deletes the caller's own account.
func (s *CitizenService) DeleteMe(ctx context.Context, actor *models.Actor) error {
	if !actor.IsCitizen() {
		return apperr.Forbidden("a citizen session is required")
	}
	return s.Delete(ctx, actor.ID)
}

// Complaints lists the complaints whose reporter links to citizenID. Citizens may only list their own.
func (s *CitizenService) Complaints(ctx context.Context, actor *models.Actor, citizenID int64) ([]models.ComplaintSummary, error) {
	switch {
	case actor.IsStaff():
	case actor.IsCitizen() && actor.ID == citizenID:
	default:
		return nil, apperr.Forbidden("you may only list your own complaints")
	}
	if _, err := s.Get(ctx, citizenID); err != nil {
		return nil, err
	}
	return s.complaints.ListByCitizen(ctx, citizenID)
}

// List returns every citizen account.
func (s *CitizenService) List(ctx context.Context) ([]models.Citizen, error) {
	citizens, err := s.citizens.ListCitizens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list citizens: %w", err)
	}
	return citizens, nil
}

// Get returns one citizen account.
func (s *CitizenService) Get(ctx context.Context, id int64) (*models.Citizen, error) {
	citizen, err := s.citizens.GetCitizenByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get citizen: %w", err)
	}
	if citizen == nil {
		return nil, apperr.NotFound("citizen not found")
	}
	return citizen, nil
}

// Update applies a partial change; the email stays unique among citizens.
func (s *CitizenService) Update(ctx context.Context, id int64, req *models.UpdateCitizenRequest) (*models.Citizen, error) {
	trimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var citizen *models.Citizen
	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		citizens := s.citizens.WithTx(tx)
		c, err := citizens.GetCitizenByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound("citizen not found")
		}

		if req.FirstName != nil {
			c.FirstName = models.StringPtr(*req.FirstName)
		}
		if req.LastName != nil {
			c.LastName = models.StringPtr(*req.LastName)
		}
		if req.SecondLastName != nil {
			c.SecondLastName = models.StringPtr(*req.SecondLastName)
		}
		if req.Phone != nil {
			c.Phone = models.StringPtr(*req.Phone)
		}
		if req.RUT != nil {
			rut := strings.TrimSpace(*req.RUT)
			if rut == "" {
				return apperr.Validation("rut must not be empty")
			}
			c.RUT = rut
		}
		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			taken, err := citizens.EmailTakenByOther(ctx, email, id)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict("email already registered", nil)
			}
			c.Email = email
		}

		if err := citizens.UpdateCitizen(ctx, c); err != nil {
			return err
		}
		citizen = c
		return nil
	})
	if err != nil {
		return nil, classify(err, "failed to update citizen")
	}
	s.log.Info("citizen updated", "citizen_id", id)
	return citizen, nil
}

// Delete unlinks the account from its reporters, then deletes it.
func (s *CitizenService) Delete(ctx context.Context, id int64) error {
	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		if err := s.reporters.WithTx(tx).UnlinkCitizen(ctx, id); err != nil {
			return err
		}
		deleted, err := s.citizens.WithTx(tx).DeleteCitizen(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("citizen not found")
		}
		return nil
	})
	if err != nil {
		return classify(err, "failed to delete citizen")
	}
	s.log.Info("citizen deleted", "citizen_id", id)
	return nil
}
