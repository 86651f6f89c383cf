package service

import (
	"context"
	"denuncias/apperr"
	"denuncias/database"
	"denuncias/metrics"
	"denuncias/models"
	"denuncias/repository"
	"denuncias/storage"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// AttachmentService handles standalone uploads (adjuntos), downloads and deletion
type AttachmentService struct {
	complaints  *repository.ComplaintRepository
	reporters   *repository.ReporterRepository
	attachments *repository.AttachmentRepository
	files       FileStore
	metrics     *metrics.Metrics
	log         *slog.Logger
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(db *database.DB, files FileStore, m *metrics.Metrics, log *slog.Logger) *AttachmentService {
	return &AttachmentService{
		complaints:  repository.NewComplaintRepository(db),
		reporters:   repository.NewReporterRepository(db),
		attachments: repository.NewAttachmentRepository(db),
		files:       files,
		metrics:     m,
		log:         log.With("component", "attachment"),
	}
}

// Upload stores one file and links it to a complaint. The stored file is removed again when the
// complaint is missing or the insert fails. Citizens may only attach to their own complaints.
func (s *AttachmentService) Upload(ctx context.Context, actor *models.Actor, complaintID int64, description string, up Upload) (*models.Attachment, error) {
	stored, err := storeUploads(s.files, s.log, []Upload{up})
	if err != nil {
		return nil, err
	}
	st := stored[0]

	att, err := s.link(ctx, actor, complaintID, description, st)
	if err != nil {
		removePath(s.files, s.log, st.Path)
		return nil, err
	}
	s.metrics.ComplaintEvent(metrics.EventAttachment)
	s.log.Info("attachment uploaded", "attachment_id", att.ID, "complaint_id", complaintID, "mime_type", att.MimeType)
	return att, nil
}

func (s *AttachmentService) link(ctx context.Context, actor *models.Actor, complaintID int64, description string, st *storage.Stored) (*models.Attachment, error) {
	if complaintID <= 0 {
		return nil, apperr.Validation("complaint_id is required")
	}
	c, err := s.complaints.GetComplaintByID(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFound("complaint not found")
	}

	att := &models.Attachment{
		ComplaintID: complaintID,
		FileName:    st.OriginalName,
		MimeType:    st.MimeType,
		StoragePath: st.Path,
		UploadedAt:  database.Now(),
		Description: models.StringPtr(description),
	}
	switch {
	case actor.IsStaff():
		id := actor.ID
		att.UploadedBy = &id
	case actor.IsCitizen():
		rp, err := s.reporters.GetReporterByID(ctx, c.ReporterID)
		if err != nil {
			return nil, fmt.Errorf("failed to get reporter: %w", err)
		}
		if rp == nil || rp.CitizenID == nil || *rp.CitizenID != actor.ID {
			return nil, apperr.Forbidden("you may only attach files to your own complaints")
		}
		// uploaded_by references staff accounts; citizen uploads leave it empty
	default:
		return nil, apperr.Unauthorized("authentication required")
	}

	if err := s.attachments.CreateAttachment(ctx, att); err != nil {
		return nil, classify(err, "failed to save attachment")
	}
	return att, nil
}

// Download returns the attachment row and an open handle on its file. The caller closes the file.
func (s *AttachmentService) Download(ctx context.Context, id int64) (*models.Attachment, *os.File, error) {
	att, err := s.attachments.GetAttachmentByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	if att == nil {
		return nil, nil, apperr.NotFound("attachment not found")
	}
	f, err := s.files.Open(att.StoragePath)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("attachment file missing on disk", "attachment_id", id, "path", att.StoragePath)
		return nil, nil, apperr.NotFound("attachment file not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	return att, f, nil
}

// Delete removes an attachment row, then its file.
func (s *AttachmentService) Delete(ctx context.Context, id int64) error {
	att, err := s.attachments.GetAttachmentByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get attachment: %w", err)
	}
	if att == nil {
		return apperr.NotFound("attachment not found")
	}
	deleted, err := s.attachments.DeleteAttachment(ctx, id)
	if err != nil {
		return classify(err, "failed to delete attachment")
	}
	if !deleted {
		return apperr.NotFound("attachment not found")
	}
	removePath(s.files, s.log, att.StoragePath)
	s.log.Info("attachment deleted", "attachment_id", id, "complaint_id", att.ComplaintID)
	return nil
}

// safeFileName strips characters that would break a Content-Disposition header.
func safeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '\r', '\n':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "attachment"
	}
	return name
}

// DownloadName is the file name to send with a download.
func DownloadName(att *models.Attachment) string {
	return safeFileName(att.FileName)
}
