package repository

import (
	"context"
	"database/sql"
	"denuncias/database"
	"denuncias/models"
	"errors"
	"fmt"
)

// HistoryRepository handles the append-only status and assignment logs
type HistoryRepository struct {
	db database.Queryer
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db database.Queryer) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// WithTx binds the repository to tx.
func (r *HistoryRepository) WithTx(tx *database.Tx) *HistoryRepository {
	return &HistoryRepository{db: tx}
}

// AppendStatus inserts a status row and sets e.ID.
func (r *HistoryRepository) AppendStatus(ctx context.Context, e *models.StatusEntry) error {
	id, err := r.db.InsertID(ctx, `
		INSERT INTO complaint_status_history (complaint_id, status, changed_at, changed_by)
		VALUES (?, ?, ?, ?)`,
		e.ComplaintID, e.Status, e.ChangedAt, nullable(e.ChangedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to append status: %w", database.TranslateError(err))
	}
	e.ID = id
	return nil
}

// CurrentStatus returns the latest status row, or nil, nil when the complaint has none.
func (r *HistoryRepository) CurrentStatus(ctx context.Context, complaintID int64) (*models.StatusEntry, error) {
	e := &models.StatusEntry{}
	var changedBy sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, complaint_id, status, changed_at, changed_by
		FROM complaint_status_history
		WHERE complaint_id = ?
		ORDER BY changed_at DESC, id DESC
		LIMIT 1`, complaintID,
	).Scan(&e.ID, &e.ComplaintID, &e.Status, &e.ChangedAt, &changedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current status: %w", err)
	}
	e.ChangedBy = nullInt64Ptr(changedBy)
	e.ChangedAt = utc(e.ChangedAt)
	return e, nil
}

// StatusHistory lists status rows oldest first, with the acting staff name when known.
func (r *HistoryRepository) StatusHistory(ctx context.Context, complaintID int64) ([]models.StatusEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.complaint_id, s.status, s.changed_at, s.changed_by,
			u.first_name, u.last_name, u.second_last_name
		FROM complaint_status_history s
		LEFT JOIN staff_users u ON u.id = s.changed_by
		WHERE s.complaint_id = ?
		ORDER BY s.changed_at ASC, s.id ASC`, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	out := []models.StatusEntry{}
	for rows.Next() {
		var (
			e                   models.StatusEntry
			changedBy           sql.NullInt64
			first, last, second sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.ComplaintID, &e.Status, &e.ChangedAt, &changedBy, &first, &last, &second); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		e.ChangedBy = nullInt64Ptr(changedBy)
		e.ChangedAt = utc(e.ChangedAt)
		if first.Valid {
			name := models.FullName(first.String, nullStringPtr(last), nullStringPtr(second))
			e.ChangedByName = &name
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountStatus returns the number of status rows of a complaint.
func (r *HistoryRepository) CountStatus(ctx context.Context, complaintID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaint_status_history WHERE complaint_id = ?`, complaintID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count status rows: %w", err)
	}
	return n, nil
}

// AppendAssignment inserts an assignment row and sets a.ID.
func (r *HistoryRepository) AppendAssignment(ctx context.Context, a *models.Assignment) error {
	id, err := r.db.InsertID(ctx, `
		INSERT INTO complaint_assignments (complaint_id, inspector_id, assigned_at, notes)
		VALUES (?, ?, ?, ?)`,
		a.ComplaintID, nullable(a.InspectorID), a.AssignedAt, nullable(a.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to append assignment: %w", database.TranslateError(err))
	}
	a.ID = id
	return nil
}

// CurrentAssignment returns the latest assignment, or nil, nil when never assigned.
func (r *HistoryRepository) CurrentAssignment(ctx context.Context, complaintID int64) (*models.Assignment, error) {
	rows, err := r.queryAssignments(ctx, `WHERE a.complaint_id = ? ORDER BY a.assigned_at DESC, a.id DESC LIMIT 1`, complaintID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Assignments lists assignment rows oldest first.
func (r *HistoryRepository) Assignments(ctx context.Context, complaintID int64) ([]models.Assignment, error) {
	return r.queryAssignments(ctx, `WHERE a.complaint_id = ? ORDER BY a.assigned_at ASC, a.id ASC`, complaintID)
}

func (r *HistoryRepository) queryAssignments(ctx context.Context, tail string, args ...any) ([]models.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.complaint_id, a.inspector_id, a.assigned_at, a.notes,
			u.first_name, u.last_name, u.second_last_name
		FROM complaint_assignments a
		LEFT JOIN staff_users u ON u.id = a.inspector_id
		`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	out := []models.Assignment{}
	for rows.Next() {
		var (
			a                   models.Assignment
			inspector           sql.NullInt64
			notes               sql.NullString
			first, last, second sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.ComplaintID, &inspector, &a.AssignedAt, &notes, &first, &last, &second); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.InspectorID = nullInt64Ptr(inspector)
		a.Notes = nullStringPtr(notes)
		a.AssignedAt = utc(a.AssignedAt)
		if first.Valid {
			name := models.FullName(first.String, nullStringPtr(last), nullStringPtr(second))
			a.InspectorName = &name
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountAssignments returns the number of assignment rows of a complaint.
func (r *HistoryRepository) CountAssignments(ctx context.Context, complaintID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaint_assignments WHERE complaint_id = ?`, complaintID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return n, nil
}

// DeleteStatusByComplaint removes all status rows of a complaint (cascade only).
func (r *HistoryRepository) DeleteStatusByComplaint(ctx context.Context, complaintID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM complaint_status_history WHERE complaint_id = ?`, complaintID); err != nil {
		return fmt.Errorf("failed to delete status history: %w", database.TranslateError(err))
	}
	return nil
}

// DeleteAssignmentsByComplaint removes all assignment rows of a complaint (cascade only).
func (r *HistoryRepository) DeleteAssignmentsByComplaint(ctx context.Context, complaintID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM complaint_assignments WHERE complaint_id = ?`, complaintID); err != nil {
		return fmt.Errorf("failed to delete assignments: %w", database.TranslateError(err))
	}
	return nil
}
