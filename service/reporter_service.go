package service

import (
	"context"
	"denuncias/apperr"
	"denuncias/database"
	"denuncias/models"
	"denuncias/repository"
	"fmt"
	"log/slog"
	"strings"
)

// ReporterService is the administrator view over reporters (denunciantes)
type ReporterService struct {
	db        *database.DB
	reporters *repository.ReporterRepository
	citizens  *repository.CitizenRepository
	log       *slog.Logger
}

// NewReporterService creates a new reporter service
func NewReporterService(db *database.DB, log *slog.Logger) *ReporterService {
	return &ReporterService{
		db:        db,
		reporters: repository.NewReporterRepository(db),
		citizens:  repository.NewCitizenRepository(db),
		log:       log.With("component", "reporter"),
	}
}

// List returns every reporter with the linked citizen email.
func (s *ReporterService) List(ctx context.Context) ([]models.Reporter, error) {
	reporters, err := s.reporters.ListReporters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reporters: %w", err)
	}
	return reporters, nil
}

// Get returns one reporter with the linked citizen email.
func (s *ReporterService) Get(ctx context.Context, id int64) (*models.Reporter, error) {
	rp, err := s.reporters.GetReporterByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reporter: %w", err)
	}
	if rp == nil {
		return nil, apperr.NotFound("reporter not found")
	}
	return rp, nil
}

// Update edits a reporter under a row lock. A new email must be free among reporters and among
// citizens other than the linked one; it is copied to the linked citizen account.
func (s *ReporterService) Update(ctx context.Context, id int64, req *models.UpdateReporterRequest) (*models.Reporter, error) {
	if req.Empty() {
		return nil, apperr.Validation("no fields to update")
	}
	trimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var updated *models.Reporter
	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		reporters := s.reporters.WithTx(tx)
		citizens := s.citizens.WithTx(tx)

		rp, err := reporters.LockReporter(ctx, id)
		if err != nil {
			return err
		}
		if rp == nil {
			return apperr.NotFound("reporter not found")
		}

		if req.FirstName != nil {
			rp.FirstName = strings.TrimSpace(*req.FirstName)
			if rp.FirstName == "" {
				rp.FirstName = models.AnonymousName
			}
		}
		if req.LastName != nil {
			rp.LastName = models.StringPtr(*req.LastName)
		}
		if req.SecondLastName != nil {
			rp.SecondLastName = models.StringPtr(*req.SecondLastName)
		}
		if req.Phone != nil {
			rp.Phone = models.StringPtr(*req.Phone)
		}

		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			if email != rp.Email {
				taken, err := reporters.EmailTakenByOther(ctx, email, rp.ID)
				if err != nil {
					return err
				}
				if taken {
					return apperr.Conflict("email already used by another reporter", nil)
				}
				other, err := citizens.GetCitizenByEmail(ctx, email)
				if err != nil {
					return err
				}
				if other != nil && (rp.CitizenID == nil || other.ID != *rp.CitizenID) {
					return apperr.Conflict("email already used by another citizen account", nil)
				}
				rp.Email = email
				if rp.CitizenID != nil {
					if err := citizens.UpdateCitizenEmail(ctx, *rp.CitizenID, email); err != nil {
						return err
					}
				}
			}
		}

		if err := reporters.UpdateReporter(ctx, rp); err != nil {
			return err
		}
		updated, err = reporters.GetReporterByID(ctx, rp.ID)
		return err
	})
	if err != nil {
		return nil, classify(err, "failed to update reporter")
	}
	s.log.Info("reporter updated", "reporter_id", id)
	return updated, nil
}
