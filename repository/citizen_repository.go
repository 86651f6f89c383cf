package repository

import (
	"context"
	"database/sql"
	"denuncias/database"
	"denuncias/models"
	"errors"
	"fmt"
)

// CitizenRepository handles database operations for citizen accounts (contribuyentes)
type CitizenRepository struct {
	db database.Queryer
}

// NewCitizenRepository creates a new citizen repository
func NewCitizenRepository(db database.Queryer) *CitizenRepository {
	return &CitizenRepository{db: db}
}

// WithTx binds the repository to tx.
func (r *CitizenRepository) WithTx(tx *database.Tx) *CitizenRepository {
	return &CitizenRepository{db: tx}
}

const citizenColumns = `id, first_name, last_name, second_last_name, rut, email, phone, password_hash, registered_at`

func scanCitizen(s scanner) (*models.Citizen, error) {
	var (
		c                          models.Citizen
		first, last, second, phone sql.NullString
	)
	if err := s.Scan(&c.ID, &first, &last, &second, &c.RUT, &c.Email, &phone, &c.PasswordHash, &c.RegisteredAt); err != nil {
		return nil, err
	}
	c.FirstName = nullStringPtr(first)
	c.LastName = nullStringPtr(last)
	c.SecondLastName = nullStringPtr(second)
	c.Phone = nullStringPtr(phone)
	c.RegisteredAt = utc(c.RegisteredAt)
	return &c, nil
}

func (r *CitizenRepository) getOne(ctx context.Context, where string, arg any) (*models.Citizen, error) {
	c, err := scanCitizen(r.db.QueryRowContext(ctx, `SELECT `+citizenColumns+` FROM citizens WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get citizen: %w", err)
	}
	return c, nil
}

// GetCitizenByID returns nil, nil when absent.
func (r *CitizenRepository) GetCitizenByID(ctx context.Context, id int64) (*models.Citizen, error) {
	return r.getOne(ctx, `id = ?`, id)
}

// GetCitizenByEmail returns nil, nil when absent.
func (r *CitizenRepository) GetCitizenByEmail(ctx context.Context, email string) (*models.Citizen, error) {
	return r.getOne(ctx, `email = ?`, email)
}

// ListCitizens returns all citizen accounts ordered by id.
func (r *CitizenRepository) ListCitizens(ctx context.Context) ([]models.Citizen, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+citizenColumns+` FROM citizens ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query citizens: %w", err)
	}
	defer rows.Close()
	out := []models.Citizen{}
	for rows.Next() {
		c, err := scanCitizen(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan citizen: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// CreateCitizen inserts c and sets c.ID. Duplicate emails surface as database.ErrDuplicate.
func (r *CitizenRepository) CreateCitizen(ctx context.Context, c *models.Citizen) error {
	id, err := r.db.InsertID(ctx, `
		INSERT INTO citizens (first_name, last_name, second_last_name, rut, email, phone, password_hash, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullable(c.FirstName), nullable(c.LastName), nullable(c.SecondLastName), c.RUT, c.Email,
		nullable(c.Phone), c.PasswordHash, c.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create citizen: %w", database.TranslateError(err))
	}
	c.ID = id
	return nil
}

// UpdateCitizen writes the profile fields of c (not the password).
func (r *CitizenRepository) UpdateCitizen(ctx context.Context, c *models.Citizen) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE citizens SET first_name = ?, last_name = ?, second_last_name = ?, rut = ?, email = ?, phone = ?
		WHERE id = ?`,
		nullable(c.FirstName), nullable(c.LastName), nullable(c.SecondLastName), c.RUT, c.Email, nullable(c.Phone), c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update citizen: %w", database.TranslateError(err))
	}
	return nil
}

// UpdateCitizenEmail changes only the email column.
func (r *CitizenRepository) UpdateCitizenEmail(ctx context.Context, id int64, email string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE citizens SET email = ? WHERE id = ?`, email, id); err != nil {
		return fmt.Errorf("failed to update citizen email: %w", database.TranslateError(err))
	}
	return nil
}

// DeleteCitizen removes the account. Returns false when it did not exist.
func (r *CitizenRepository) DeleteCitizen(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM citizens WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete citizen: %w", database.TranslateError(err))
	}
	return affected(res)
}

// EmailTakenByOther reports whether another citizen already uses email.
func (r *CitizenRepository) EmailTakenByOther(ctx context.Context, email string, citizenID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM citizens WHERE email = ? AND id <> ?`, email, citizenID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check citizen email: %w", err)
	}
	return n > 0, nil
}
