package repository

import (
	"context"
	"database/sql"
	"denuncias/database"
	"denuncias/models"
	"errors"
	"fmt"
)

// StaffRepository handles database operations for staff accounts (usuarios)
type StaffRepository struct {
	db database.Queryer
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db database.Queryer) *StaffRepository {
	return &StaffRepository{db: db}
}

// WithTx binds the repository to tx.
func (r *StaffRepository) WithTx(tx *database.Tx) *StaffRepository {
	return &StaffRepository{db: tx}
}

const staffColumns = `id, first_name, last_name, second_last_name, email, password_hash, role, created_at`

func scanStaff(s scanner) (*models.StaffUser, error) {
	var (
		u            models.StaffUser
		last, second sql.NullString
		role         string
	)
	if err := s.Scan(&u.ID, &u.FirstName, &last, &second, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.LastName = nullStringPtr(last)
	u.SecondLastName = nullStringPtr(second)
	u.Role = models.Role(role)
	u.CreatedAt = utc(u.CreatedAt)
	return &u, nil
}

func (r *StaffRepository) getOne(ctx context.Context, where string, arg any) (*models.StaffUser, error) {
	u, err := scanStaff(r.db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff_users WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	return u, nil
}

// GetStaffByID returns nil, nil when absent.
func (r *StaffRepository) GetStaffByID(ctx context.Context, id int64) (*models.StaffUser, error) {
	return r.getOne(ctx, `id = ?`, id)
}

// GetStaffByEmail returns nil, nil when absent.
func (r *StaffRepository) GetStaffByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	return r.getOne(ctx, `email = ?`, email)
}

// ListStaff returns all staff accounts ordered by id.
func (r *StaffRepository) ListStaff(ctx context.Context) ([]models.StaffUser, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+staffColumns+` FROM staff_users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()
	out := []models.StaffUser{}
	for rows.Next() {
		u, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// CreateStaff inserts u and sets u.ID.
func (r *StaffRepository) CreateStaff(ctx context.Context, u *models.StaffUser) error {
	id, err := r.db.InsertID(ctx, `
		INSERT INTO staff_users (first_name, last_name, second_last_name, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.FirstName, nullable(u.LastName), nullable(u.SecondLastName), u.Email, u.PasswordHash, string(u.Role), u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff user: %w", database.TranslateError(err))
	}
	u.ID = id
	return nil
}

// UpdateStaff writes every field of u, including the password hash.
func (r *StaffRepository) UpdateStaff(ctx context.Context, u *models.StaffUser) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE staff_users SET first_name = ?, last_name = ?, second_last_name = ?, email = ?, password_hash = ?, role = ?
		WHERE id = ?`,
		u.FirstName, nullable(u.LastName), nullable(u.SecondLastName), u.Email, u.PasswordHash, string(u.Role), u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff user: %w", database.TranslateError(err))
	}
	return nil
}

// ReleaseReferences nulls every history reference to a staff account so the rows survive its deletion.
func (r *StaffRepository) ReleaseReferences(ctx context.Context, id int64) error {
	stmts := []struct{ table, query string }{
		{"complaint_assignments", `UPDATE complaint_assignments SET inspector_id = NULL WHERE inspector_id = ?`},
		{"complaint_status_history", `UPDATE complaint_status_history SET changed_by = NULL WHERE changed_by = ?`},
		{"internal_comments", `UPDATE internal_comments SET staff_id = NULL WHERE staff_id = ?`},
		{"inspection_reports", `UPDATE inspection_reports SET staff_id = NULL WHERE staff_id = ?`},
		{"complaint_advances", `UPDATE complaint_advances SET staff_id = NULL WHERE staff_id = ?`},
		{"complaint_attachments", `UPDATE complaint_attachments SET uploaded_by = NULL WHERE uploaded_by = ?`},
	}
	for _, st := range stmts {
		if _, err := r.db.ExecContext(ctx, st.query, id); err != nil {
			return fmt.Errorf("failed to release %s references: %w", st.table, err)
		}
	}
	return nil
}

// DeleteStaff removes the account. Returns false when it did not exist.
func (r *StaffRepository) DeleteStaff(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM staff_users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete staff user: %w", database.TranslateError(err))
	}
	return affected(res)
}

// EmailTakenByOther reports whether another staff account already uses email.
func (r *StaffRepository) EmailTakenByOther(ctx context.Context, email string, id int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_users WHERE email = ? AND id <> ?`, email, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check staff email: %w", err)
	}
	return n > 0, nil
}

// CountByRole returns how many accounts hold role.
func (r *StaffRepository) CountByRole(ctx context.Context, role models.Role) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_users WHERE role = ?`, string(role)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count staff: %w", err)
	}
	return n, nil
}
