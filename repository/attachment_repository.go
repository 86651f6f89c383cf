package repository

import (
	"context"
	"database/sql"
	"denuncias/database"
	"denuncias/models"
	"errors"
	"fmt"
)

// AttachmentRepository handles attachment rows. File bytes live in the storage package.
type AttachmentRepository struct {
	db database.Queryer
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db database.Queryer) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// WithTx binds the repository to tx.
func (r *AttachmentRepository) WithTx(tx *database.Tx) *AttachmentRepository {
	return &AttachmentRepository{db: tx}
}

const attachmentColumns = `id, complaint_id, uploaded_by, file_name, mime_type, storage_path, uploaded_at, description, advance_id`

func scanAttachment(s scanner) (models.Attachment, error) {
	var (
		a                     models.Attachment
		uploadedBy, advanceID sql.NullInt64
		description           sql.NullString
	)
	if err := s.Scan(&a.ID, &a.ComplaintID, &uploadedBy, &a.FileName, &a.MimeType, &a.StoragePath,
		&a.UploadedAt, &description, &advanceID); err != nil {
		return a, err
	}
	a.UploadedBy = nullInt64Ptr(uploadedBy)
	a.AdvanceID = nullInt64Ptr(advanceID)
	a.Description = nullStringPtr(description)
	a.UploadedAt = utc(a.UploadedAt)
	return a, nil
}

// CreateAttachment inserts a and sets a.ID.
func (r *AttachmentRepository) CreateAttachment(ctx context.Context, a *models.Attachment) error {
	id, err := r.db.InsertID(ctx, `
		INSERT INTO complaint_attachments (complaint_id, uploaded_by, file_name, mime_type, storage_path, uploaded_at, description, advance_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ComplaintID, nullable(a.UploadedBy), a.FileName, a.MimeType, a.StoragePath, a.UploadedAt,
		nullable(a.Description), nullable(a.AdvanceID),
	)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", database.TranslateError(err))
	}
	a.ID = id
	return nil
}

// GetAttachmentByID returns nil, nil when absent.
func (r *AttachmentRepository) GetAttachmentByID(ctx context.Context, id int64) (*models.Attachment, error) {
	a, err := scanAttachment(r.db.QueryRowContext(ctx, `SELECT `+attachmentColumns+` FROM complaint_attachments WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return &a, nil
}

// ListByComplaint returns all attachments of a complaint, oldest first.
func (r *AttachmentRepository) ListByComplaint(ctx context.Context, complaintID int64) ([]models.Attachment, error) {
	return r.list(ctx, `WHERE complaint_id = ? ORDER BY uploaded_at ASC, id ASC`, complaintID)
}

// ListByAdvance returns the attachments logged with an advance.
func (r *AttachmentRepository) ListByAdvance(ctx context.Context, advanceID int64) ([]models.Attachment, error) {
	return r.list(ctx, `WHERE advance_id = ? ORDER BY uploaded_at ASC, id ASC`, advanceID)
}

func (r *AttachmentRepository) list(ctx context.Context, tail string, args ...any) ([]models.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+attachmentColumns+` FROM complaint_attachments `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()
	out := []models.Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAttachment removes one row. Returns false when it did not exist.
func (r *AttachmentRepository) DeleteAttachment(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM complaint_attachments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete attachment: %w", database.TranslateError(err))
	}
	return affected(res)
}

// DeleteByComplaint removes every attachment row of a complaint (cascade only).
func (r *AttachmentRepository) DeleteByComplaint(ctx context.Context, complaintID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM complaint_attachments WHERE complaint_id = ?`, complaintID); err != nil {
		return fmt.Errorf("failed to delete attachments: %w", database.TranslateError(err))
	}
	return nil
}
