package repository

import (
	"context"
	"database/sql"
	"denuncias/database"
	"denuncias/models"
	"errors"
	"fmt"
)

// ReporterRepository handles database operations for reporters (denunciantes)
type ReporterRepository struct {
	db database.Queryer
}

// NewReporterRepository creates a new reporter repository
func NewReporterRepository(db database.Queryer) *ReporterRepository {
	return &ReporterRepository{db: db}
}

// WithTx binds the repository to tx.
func (r *ReporterRepository) WithTx(tx *database.Tx) *ReporterRepository {
	return &ReporterRepository{db: tx}
}

const reporterSelect = `SELECT rp.id, rp.first_name, rp.last_name, rp.second_last_name, rp.email, rp.phone, rp.citizen_id, ct.email
	FROM reporters rp
	LEFT JOIN citizens ct ON ct.id = rp.citizen_id `

func scanReporter(s scanner) (*models.Reporter, error) {
	var (
		rp                  models.Reporter
		last, second, phone sql.NullString
		citizenID           sql.NullInt64
		citizenEmail        sql.NullString
	)
	if err := s.Scan(&rp.ID, &rp.FirstName, &last, &second, &rp.Email, &phone, &citizenID, &citizenEmail); err != nil {
		return nil, err
	}
	rp.LastName = nullStringPtr(last)
	rp.SecondLastName = nullStringPtr(second)
	rp.Phone = nullStringPtr(phone)
	rp.CitizenID = nullInt64Ptr(citizenID)
	rp.CitizenEmail = nullStringPtr(citizenEmail)
	return &rp, nil
}

func (r *ReporterRepository) getOne(ctx context.Context, query string, args ...any) (*models.Reporter, error) {
	rp, err := scanReporter(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reporter: %w", err)
	}
	return rp, nil
}

// GetReporterByEmail returns nil, nil when no reporter has that email.
func (r *ReporterRepository) GetReporterByEmail(ctx context.Context, email string) (*models.Reporter, error) {
	return r.getOne(ctx, reporterSelect+`WHERE rp.email = ?`, email)
}

// GetReporterByID returns nil, nil when absent.
func (r *ReporterRepository) GetReporterByID(ctx context.Context, id int64) (*models.Reporter, error) {
	return r.getOne(ctx, reporterSelect+`WHERE rp.id = ?`, id)
}

// LockReporter reads the reporter row with a row lock (no-op lock on sqlite). Must run inside a transaction.
func (r *ReporterRepository) LockReporter(ctx context.Context, id int64) (*models.Reporter, error) {
	var (
		rp                  models.Reporter
		last, second, phone sql.NullString
		citizenID           sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, second_last_name, email, phone, citizen_id
		FROM reporters WHERE id = ?`+database.ForUpdate(r.db.Dialect()), id,
	).Scan(&rp.ID, &rp.FirstName, &last, &second, &rp.Email, &phone, &citizenID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock reporter: %w", err)
	}
	rp.LastName = nullStringPtr(last)
	rp.SecondLastName = nullStringPtr(second)
	rp.Phone = nullStringPtr(phone)
	rp.CitizenID = nullInt64Ptr(citizenID)
	return &rp, nil
}

// ListReporters returns all reporters ordered by id.
func (r *ReporterRepository) ListReporters(ctx context.Context) ([]models.Reporter, error) {
	rows, err := r.db.QueryContext(ctx, reporterSelect+`ORDER BY rp.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reporters: %w", err)
	}
	defer rows.Close()
	out := []models.Reporter{}
	for rows.Next() {
		rp, err := scanReporter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reporter: %w", err)
		}
		out = append(out, *rp)
	}
	return out, rows.Err()
}

// CreateReporter inserts rp and sets rp.ID.
func (r *ReporterRepository) CreateReporter(ctx context.Context, rp *models.Reporter) error {
	id, err := r.db.InsertID(ctx, `
		INSERT INTO reporters (first_name, last_name, second_last_name, email, phone, citizen_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rp.FirstName, nullable(rp.LastName), nullable(rp.SecondLastName), rp.Email, nullable(rp.Phone), nullable(rp.CitizenID),
	)
	if err != nil {
		return fmt.Errorf("failed to create reporter: %w", database.TranslateError(err))
	}
	rp.ID = id
	return nil
}

// UpdateReporter writes every editable field of rp.
func (r *ReporterRepository) UpdateReporter(ctx context.Context, rp *models.Reporter) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE reporters SET first_name = ?, last_name = ?, second_last_name = ?, email = ?, phone = ?
		WHERE id = ?`,
		rp.FirstName, nullable(rp.LastName), nullable(rp.SecondLastName), rp.Email, nullable(rp.Phone), rp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reporter: %w", database.TranslateError(err))
	}
	return nil
}

// SetCitizen links a reporter to a citizen account.
func (r *ReporterRepository) SetCitizen(ctx context.Context, reporterID, citizenID int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE reporters SET citizen_id = ? WHERE id = ?`, citizenID, reporterID); err != nil {
		return fmt.Errorf("failed to link reporter: %w", database.TranslateError(err))
	}
	return nil
}

// LinkCitizenByEmail sets citizen_id on the reporter sharing email. Only that column changes.
func (r *ReporterRepository) LinkCitizenByEmail(ctx context.Context, email string, citizenID int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE reporters SET citizen_id = ? WHERE email = ?`, citizenID, email); err != nil {
		return fmt.Errorf("failed to link reporter by email: %w", database.TranslateError(err))
	}
	return nil
}

// UnlinkCitizen clears citizen_id on every reporter linked to citizenID.
func (r *ReporterRepository) UnlinkCitizen(ctx context.Context, citizenID int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE reporters SET citizen_id = NULL WHERE citizen_id = ?`, citizenID); err != nil {
		return fmt.Errorf("failed to unlink reporters: %w", err)
	}
	return nil
}

// EmailTakenByOther reports whether another reporter already uses email.
func (r *ReporterRepository) EmailTakenByOther(ctx context.Context, email string, reporterID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reporters WHERE email = ? AND id <> ?`, email, reporterID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check reporter email: %w", err)
	}
	return n > 0, nil
}

// CountReporters returns the number of reporter rows.
func (r *ReporterRepository) CountReporters(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reporters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reporters: %w", err)
	}
	return n, nil
}
