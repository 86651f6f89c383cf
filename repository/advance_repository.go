package repository

import (
	"context"
	"database/sql"
	"denuncias/database"
	"denuncias/models"
	"fmt"
)

// AdvanceRepository handles progress notes
type AdvanceRepository struct {
	db database.Queryer
}

// NewAdvanceRepository creates a new advance repository
func NewAdvanceRepository(db database.Queryer) *AdvanceRepository {
	return &AdvanceRepository{db: db}
}

// WithTx binds the repository to tx.
func (r *AdvanceRepository) WithTx(tx *database.Tx) *AdvanceRepository {
	return &AdvanceRepository{db: tx}
}

// CreateAdvance inserts a and sets a.ID.
func (r *AdvanceRepository) CreateAdvance(ctx context.Context, a *models.Advance) error {
	id, err := r.db.InsertID(ctx, `
		INSERT INTO complaint_advances (complaint_id, comment, created_at, staff_id)
		VALUES (?, ?, ?, ?)`,
		a.ComplaintID, a.Comment, a.CreatedAt, nullable(a.StaffID),
	)
	if err != nil {
		return fmt.Errorf("failed to create advance: %w", database.TranslateError(err))
	}
	a.ID = id
	return nil
}

// ListByComplaint returns advances oldest first with the staff name. Attachments are not loaded.
func (r *AdvanceRepository) ListByComplaint(ctx context.Context, complaintID int64) ([]models.Advance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ad.id, ad.complaint_id, ad.comment, ad.created_at, ad.staff_id,
			u.first_name, u.last_name, u.second_last_name
		FROM complaint_advances ad
		LEFT JOIN staff_users u ON u.id = ad.staff_id
		WHERE ad.complaint_id = ?
		ORDER BY ad.created_at ASC, ad.id ASC`, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query advances: %w", err)
	}
	defer rows.Close()

	out := []models.Advance{}
	for rows.Next() {
		var (
			a                   models.Advance
			staffID             sql.NullInt64
			first, last, second sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.ComplaintID, &a.Comment, &a.CreatedAt, &staffID, &first, &last, &second); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		a.StaffID = nullInt64Ptr(staffID)
		a.CreatedAt = utc(a.CreatedAt)
		if first.Valid {
			name := models.FullName(first.String, nullStringPtr(last), nullStringPtr(second))
			a.StaffName = &name
		}
		a.Attachments = []models.Attachment{}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteByComplaint removes all advances of a complaint (cascade only).
func (r *AdvanceRepository) DeleteByComplaint(ctx context.Context, complaintID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM complaint_advances WHERE complaint_id = ?`, complaintID); err != nil {
		return fmt.Errorf("failed to delete advances: %w", database.TranslateError(err))
	}
	return nil
}

// CountByComplaint returns the number of advances of a complaint.
func (r *AdvanceRepository) CountByComplaint(ctx context.Context, complaintID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaint_advances WHERE complaint_id = ?`, complaintID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count advances: %w", err)
	}
	return n, nil
}
