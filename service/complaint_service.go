package service

import (
	"context"
	"denuncias/apperr"
	"denuncias/database"
	"denuncias/metrics"
	"denuncias/models"
	"denuncias/repository"
	"denuncias/utils"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxPublicIDAttempts bounds the redraws when a tracking number is already taken.
const maxPublicIDAttempts = 5

// maxCreateAttempts bounds the creation transaction when a concurrent request inserts the same reporter first.
const maxCreateAttempts = 2

var (
	errPublicIDExhausted = errors.New("could not allocate a unique public id")
	errReporterTaken     = errors.New("reporter email inserted concurrently")
)

// ComplaintService handles the complaint lifecycle: creation, assignment, transitions, advances and deletion
type ComplaintService struct {
	db          *database.DB
	complaints  *repository.ComplaintRepository
	history     *repository.HistoryRepository
	advances    *repository.AdvanceRepository
	attachments *repository.AttachmentRepository
	reporters   *repository.ReporterRepository
	staff       *repository.StaffRepository
	citizens    *repository.CitizenRepository
	files       FileStore
	notifier    *NotificationService
	metrics     *metrics.Metrics
	log         *slog.Logger
	publicID    func() (int64, error)
	addReporter func(*repository.ReporterRepository, context.Context, *models.Reporter) error
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	db *database.DB,
	files FileStore,
	notifier *NotificationService,
	m *metrics.Metrics,
	log *slog.Logger,
) *ComplaintService {
	return &ComplaintService{
		db:          db,
		complaints:  repository.NewComplaintRepository(db),
		history:     repository.NewHistoryRepository(db),
		advances:    repository.NewAdvanceRepository(db),
		attachments: repository.NewAttachmentRepository(db),
		reporters:   repository.NewReporterRepository(db),
		staff:       repository.NewStaffRepository(db),
		citizens:    repository.NewCitizenRepository(db),
		files:       files,
		notifier:    notifier,
		metrics:     m,
		log:         log.With("component", "complaint"),
		publicID:    utils.NewPublicID,
		addReporter: (*repository.ReporterRepository).CreateReporter,
	}
}

// CreatePublic files a complaint from the public form. When actor is a citizen session
// the account is linked to the reporter and its email is used when none is given.
func (s *ComplaintService) CreatePublic(ctx context.Context, req *models.CreateComplaintRequest, actor *models.Actor) (*models.CreateComplaintResponse, error) {
	var citizenID *int64
	if actor.IsCitizen() {
		account, err := s.citizens.GetCitizenByID(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load citizen account: %w", err)
		}
		if account == nil {
			return nil, apperr.Unauthorized("citizen account no longer exists")
		}
		if strings.TrimSpace(req.ReporterEmail) == "" {
			req.ReporterEmail = account.Email
		}
		id := account.ID
		citizenID = &id
	}
	return s.create(ctx, req, citizenID, nil, "public")
}

// CreateByCitizen is CreatePublic for callers that must hold a citizen session.
func (s *ComplaintService) CreateByCitizen(ctx context.Context, req *models.CreateComplaintRequest, actor *models.Actor) (*models.CreateComplaintResponse, error) {
	if !actor.IsCitizen() {
		return nil, apperr.Forbidden("a citizen session is required")
	}
	return s.CreatePublic(ctx, req, actor)
}

// CreateByStaff files a complaint on behalf of a reporter. The initial status row records the staff member.
// Staff may link the reporter to an existing citizen account through req.CitizenID.
func (s *ComplaintService) CreateByStaff(ctx context.Context, req *models.CreateComplaintRequest, actor *models.Actor) (*models.CreateComplaintResponse, error) {
	if !actor.IsStaff() {
		return nil, apperr.Forbidden("a staff session is required")
	}
	if req.CitizenID != nil {
		account, err := s.citizens.GetCitizenByID(ctx, *req.CitizenID)
		if err != nil {
			return nil, fmt.Errorf("failed to load citizen account: %w", err)
		}
		if account == nil {
			return nil, apperr.Validation("citizen account not found")
		}
	}
	staffID := actor.ID
	return s.create(ctx, req, req.CitizenID, &staffID, "staff")
}

// create runs the creation transaction shared by every entry point.
//
// Steps:
// 1. Reuse the reporter with this email or create one ("Anónimo" when unnamed)
// 2. Insert the complaint with a fresh tracking number
// 3. Insert the initial status row
// 4. After commit, queue the confirmation email
func (s *ComplaintService) create(
	ctx context.Context,
	req *models.CreateComplaintRequest,
	citizenID *int64,
	changedBy *int64,
	source string,
) (*models.CreateComplaintResponse, error) {
	// Trim before the email tag runs; padded addresses still match their reporter.
	req.ReporterEmail = strings.TrimSpace(req.ReporterEmail)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.ReporterEmail)
	if email == "" {
		return nil, apperr.Validation("reporter_email is required")
	}

	var (
		complaint *models.Complaint
		reporter  *models.Reporter
	)
	createTx := func(tx *database.Tx) error {
		reporters := s.reporters.WithTx(tx)
		complaints := s.complaints.WithTx(tx)

		rp, err := reporters.GetReporterByEmail(ctx, email)
		if err != nil {
			return err
		}
		if rp == nil {
			first := strings.TrimSpace(req.ReporterFirstName)
			if first == "" {
				first = models.AnonymousName
			}
			rp = &models.Reporter{
				FirstName:      first,
				LastName:       models.StringPtr(req.ReporterLastName),
				SecondLastName: models.StringPtr(req.ReporterSecondLastName),
				Email:          email,
				Phone:          models.StringPtr(req.ReporterPhone),
				CitizenID:      citizenID,
			}
			if err := s.addReporter(reporters, ctx, rp); err != nil {
				if database.IsDuplicate(err) {
					return fmt.Errorf("%w: %w", errReporterTaken, err)
				}
				return err
			}
		} else if citizenID != nil && rp.CitizenID == nil {
			if err := reporters.SetCitizen(ctx, rp.ID, *citizenID); err != nil {
				return err
			}
			rp.CitizenID = citizenID
		}

		publicID, err := s.freshPublicID(ctx, complaints)
		if err != nil {
			return err
		}
		c := &models.Complaint{
			PublicID:        &publicID,
			Category:        strings.TrimSpace(req.Category),
			Title:           strings.TrimSpace(req.Title),
			Description:     req.Description,
			Address:         strings.TrimSpace(req.Address),
			District:        strings.TrimSpace(req.District),
			CreatedAt:       database.Now(),
			ReporterID:      rp.ID,
			ReportedPartyID: req.ReportedPartyID,
		}
		if err := complaints.CreateComplaint(ctx, c); err != nil {
			return err
		}

		err = s.history.WithTx(tx).AppendStatus(ctx, &models.StatusEntry{
			ComplaintID: c.ID,
			Status:      models.StatusRegistered,
			ChangedAt:   c.CreatedAt,
			ChangedBy:   changedBy,
		})
		if err != nil {
			return err
		}

		complaint, reporter = c, rp
		return nil
	}

	var err error
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		err = database.WithTx(ctx, s.db, createTx)
		if !errors.Is(err, errReporterTaken) || attempt == maxCreateAttempts {
			break
		}
		// The other request committed the reporter; the next lookup reuses it.
		s.log.Warn("reporter created concurrently, retrying", "attempt", attempt)
	}
	if err != nil {
		return nil, classify(err, "failed to create complaint")
	}

	s.metrics.ComplaintEvent(metrics.EventCreated)
	s.log.Info("complaint created", "complaint_id", complaint.ID, "public_id", *complaint.PublicID,
		"reporter_id", reporter.ID, "source", source)
	s.notifier.ComplaintCreated(complaint, reporter, models.StatusRegistered)

	return &models.CreateComplaintResponse{
		ID:            complaint.ID,
		PublicID:      complaint.PublicID,
		InitialStatus: models.StatusRegistered,
		ReporterID:    reporter.ID,
	}, nil
}

func (s *ComplaintService) freshPublicID(ctx context.Context, complaints *repository.ComplaintRepository) (int64, error) {
	for attempt := 1; attempt <= maxPublicIDAttempts; attempt++ {
		id, err := s.publicID()
		if err != nil {
			return 0, fmt.Errorf("failed to generate public id: %w", err)
		}
		taken, err := complaints.PublicIDExists(ctx, id)
		if err != nil {
			return 0, err
		}
		if !taken {
			return id, nil
		}
		s.log.Warn("public id collision, drawing again", "attempt", attempt)
	}
	return 0, errPublicIDExhausted
}

// Assign records an assignment and the "Asignada" status in one transaction, then notifies the inspector.
func (s *ComplaintService) Assign(ctx context.Context, actor *models.Actor, complaintID int64, req *models.AssignRequest) (*models.Assignment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	directorID := actor.ID

	var (
		complaint  *models.Complaint
		inspector  *models.StaffUser
		assignment *models.Assignment
	)
	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		c, err := s.complaints.WithTx(tx).GetComplaintByID(ctx, complaintID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound("complaint not found")
		}
		u, err := s.staff.WithTx(tx).GetStaffByID(ctx, req.InspectorID)
		if err != nil {
			return err
		}
		if u == nil {
			return apperr.Validation("inspector not found")
		}
		if u.Role != models.RoleInspector {
			return apperr.Validation("the selected user is not an inspector")
		}

		now := database.Now()
		history := s.history.WithTx(tx)
		inspectorID := u.ID
		a := &models.Assignment{
			ComplaintID: c.ID,
			InspectorID: &inspectorID,
			AssignedAt:  now,
			Notes:       models.StringPtr(req.Notes),
		}
		if err := history.AppendAssignment(ctx, a); err != nil {
			return err
		}
		err = history.AppendStatus(ctx, &models.StatusEntry{
			ComplaintID: c.ID,
			Status:      models.StatusAssigned,
			ChangedAt:   now,
			ChangedBy:   &directorID,
		})
		if err != nil {
			return err
		}

		name := u.FullName()
		a.InspectorName = &name
		complaint, inspector, assignment = c, u, a
		return nil
	})
	if err != nil {
		return nil, classify(err, "failed to assign complaint")
	}

	s.metrics.ComplaintEvent(metrics.EventAssigned)
	s.log.Info("complaint assigned", "complaint_id", complaintID, "inspector_id", inspector.ID, "director_id", directorID)
	s.notifier.InspectorAssigned(complaint, inspector, req.Notes)
	return assignment, nil
}

// Transition appends a free-text status label. Any non-blank label is accepted.
func (s *ComplaintService) Transition(ctx context.Context, actor *models.Actor, complaintID int64, req *models.TransitionRequest) (*models.StatusEntry, error) {
	req.Status = strings.TrimSpace(req.Status)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	actorID := actor.ID
	entry := &models.StatusEntry{
		ComplaintID: complaintID,
		Status:      req.Status,
		ChangedBy:   &actorID,
	}

	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		exists, err := s.complaints.WithTx(tx).Exists(ctx, complaintID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("complaint not found")
		}
		entry.ChangedAt = database.Now()
		return s.history.WithTx(tx).AppendStatus(ctx, entry)
	})
	if err != nil {
		return nil, classify(err, "failed to change complaint status")
	}

	s.metrics.ComplaintEvent(metrics.EventTransition)
	s.log.Info("complaint status changed", "complaint_id", complaintID, "status", entry.Status, "changed_by", actorID)
	return entry, nil
}

// AddAdvance logs a progress note with optional files. Files are stored before the transaction
// and removed again if it fails.
func (s *ComplaintService) AddAdvance(ctx context.Context, actor *models.Actor, complaintID int64, comment string, uploads []Upload) (*models.AdvanceResult, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" && len(uploads) == 0 {
		return nil, apperr.Validation("a comment or at least one file is required")
	}

	stored, err := storeUploads(s.files, s.log, uploads)
	if err != nil {
		return nil, err
	}

	staffID := actor.ID
	result := &models.AdvanceResult{ComplaintID: complaintID, Attachments: []models.Attachment{}}
	err = database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		exists, err := s.complaints.WithTx(tx).Exists(ctx, complaintID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("complaint not found")
		}

		now := database.Now()
		if comment != "" {
			a := &models.Advance{ComplaintID: complaintID, Comment: comment, CreatedAt: now, StaffID: &staffID}
			if err := s.advances.WithTx(tx).CreateAdvance(ctx, a); err != nil {
				return err
			}
			result.AdvanceID = &a.ID
		}

		attachments := s.attachments.WithTx(tx)
		for _, st := range stored {
			att := &models.Attachment{
				ComplaintID: complaintID,
				UploadedBy:  &staffID,
				FileName:    st.OriginalName,
				MimeType:    st.MimeType,
				StoragePath: st.Path,
				UploadedAt:  now,
				Description: models.StringPtr(comment),
				AdvanceID:   result.AdvanceID,
			}
			if err := attachments.CreateAttachment(ctx, att); err != nil {
				return err
			}
			result.Attachments = append(result.Attachments, *att)
		}
		return nil
	})
	if err != nil {
		removeStored(s.files, s.log, stored)
		return nil, classify(err, "failed to record advance")
	}

	s.metrics.ComplaintEvent(metrics.EventAdvance)
	s.log.Info("advance recorded", "complaint_id", complaintID, "staff_id", staffID, "files", len(stored))
	return result, nil
}

// ListAdvances returns the advance log oldest first, each with its attachments.
func (s *ComplaintService) ListAdvances(ctx context.Context, complaintID int64) ([]models.Advance, error) {
	exists, err := s.complaints.Exists(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("complaint not found")
	}
	return s.loadAdvances(ctx, complaintID)
}

func (s *ComplaintService) loadAdvances(ctx context.Context, complaintID int64) ([]models.Advance, error) {
	advances, err := s.advances.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	for i := range advances {
		atts, err := s.attachments.ListByAdvance(ctx, advances[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list advance attachments: %w", err)
		}
		advances[i].Attachments = atts
	}
	return advances, nil
}

// Delete removes a complaint and every dependent row in one transaction, then the stored files.
func (s *ComplaintService) Delete(ctx context.Context, complaintID int64) error {
	var paths []string
	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		complaints := s.complaints.WithTx(tx)
		attachments := s.attachments.WithTx(tx)
		history := s.history.WithTx(tx)

		atts, err := attachments.ListByComplaint(ctx, complaintID)
		if err != nil {
			return err
		}
		for _, a := range atts {
			paths = append(paths, a.StoragePath)
		}

		// dependency order: attachments reference advances
		steps := []func(context.Context, int64) error{
			attachments.DeleteByComplaint,
			complaints.DeleteInspectionReports,
			complaints.DeleteInternalComments,
			s.advances.WithTx(tx).DeleteByComplaint,
			history.DeleteStatusByComplaint,
			history.DeleteAssignmentsByComplaint,
		}
		for _, step := range steps {
			if err := step(ctx, complaintID); err != nil {
				return err
			}
		}

		deleted, err := complaints.DeleteComplaint(ctx, complaintID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("complaint not found")
		}
		return nil
	})
	if err != nil {
		return classify(err, "failed to delete complaint")
	}

	for _, p := range paths {
		removePath(s.files, s.log, p)
	}
	s.metrics.ComplaintEvent(metrics.EventDeleted)
	s.log.Info("complaint deleted", "complaint_id", complaintID, "files_removed", len(paths))
	return nil
}

// PublicStatus resolves a tracking number for the unauthenticated lookup.
func (s *ComplaintService) PublicStatus(ctx context.Context, rawPublicID string) (*models.PublicStatusResponse, error) {
	publicID, err := strconv.ParseInt(strings.TrimSpace(rawPublicID), 10, 64)
	if err != nil {
		return nil, apperr.Validation("public id must be numeric")
	}
	if !utils.ValidPublicID(publicID) {
		return nil, apperr.NotFound("no complaint matches that tracking number")
	}
	status, err := s.complaints.GetPublicStatus(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up public status: %w", err)
	}
	if status == nil {
		return nil, apperr.NotFound("no complaint matches that tracking number")
	}
	return status, nil
}

// List returns complaints newest first with their current status, assignee and attachments.
func (s *ComplaintService) List(ctx context.Context, filter models.ComplaintFilter) ([]models.ComplaintSummary, error) {
	filter.Status = strings.TrimSpace(filter.Status)
	filter.Category = strings.TrimSpace(filter.Category)
	filter.District = strings.TrimSpace(filter.District)
	filter.Query = strings.TrimSpace(filter.Query)

	items, err := s.complaints.ListComplaints(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	if err := s.decorate(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByCitizen returns the complaints whose reporter links to citizenID.
func (s *ComplaintService) ListByCitizen(ctx context.Context, citizenID int64) ([]models.ComplaintSummary, error) {
	items, err := s.complaints.ListByCitizen(ctx, citizenID)
	if err != nil {
		return nil, fmt.Errorf("failed to list citizen complaints: %w", err)
	}
	if err := s.decorate(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// decorate fills the derived fields of each summary.
func (s *ComplaintService) decorate(ctx context.Context, items []models.ComplaintSummary) error {
	for i := range items {
		id := items[i].ID
		st, err := s.history.CurrentStatus(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load current status: %w", err)
		}
		a, err := s.history.CurrentAssignment(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load current assignee: %w", err)
		}
		atts, err := s.attachments.ListByComplaint(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load attachments: %w", err)
		}
		items[i].CurrentStatus = st
		items[i].CurrentAssignee = a
		items[i].Attachments = atts
	}
	return nil
}

// Get returns one complaint with its reporter, derived state, attachments and advances.
func (s *ComplaintService) Get(ctx context.Context, complaintID int64) (*models.ComplaintDetail, error) {
	c, err := s.complaints.GetComplaintByID(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFound("complaint not found")
	}
	reporter, err := s.reporters.GetReporterByID(ctx, c.ReporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reporter: %w", err)
	}

	detail := &models.ComplaintDetail{ComplaintSummary: models.ComplaintSummary{Complaint: *c}, Reporter: reporter}
	if reporter != nil {
		detail.ReporterEmail = reporter.Email
	}
	items := []models.ComplaintSummary{detail.ComplaintSummary}
	if err := s.decorate(ctx, items); err != nil {
		return nil, err
	}
	detail.ComplaintSummary = items[0]

	if detail.Advances, err = s.loadAdvances(ctx, complaintID); err != nil {
		return nil, err
	}
	return detail, nil
}

// Update replaces the editable fields of a complaint.
func (s *ComplaintService) Update(ctx context.Context, complaintID int64, req *models.UpdateComplaintRequest) (*models.Complaint, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	var updated *models.Complaint
	err := database.WithTx(ctx, s.db, func(tx *database.Tx) error {
		complaints := s.complaints.WithTx(tx)
		exists, err := complaints.Exists(ctx, complaintID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("complaint not found")
		}
		if err := complaints.UpdateComplaint(ctx, complaintID, req); err != nil {
			return err
		}
		updated, err = complaints.GetComplaintByID(ctx, complaintID)
		return err
	})
	if err != nil {
		return nil, classify(err, "failed to update complaint")
	}
	s.log.Info("complaint updated", "complaint_id", complaintID)
	return updated, nil
}

// History returns both history logs oldest first.
func (s *ComplaintService) History(ctx context.Context, complaintID int64) (*models.ComplaintHistory, error) {
	exists, err := s.complaints.Exists(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("complaint not found")
	}
	statuses, err := s.history.StatusHistory(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	assignments, err := s.history.Assignments(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment history: %w", err)
	}
	return &models.ComplaintHistory{ComplaintID: complaintID, StatusHistory: statuses, Assignments: assignments}, nil
}

// Report builds the management summary.
func (s *ComplaintService) Report(ctx context.Context) (*models.ComplaintReport, error) {
	byStatus, err := s.complaints.CountByCurrentStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	byCategory, err := s.complaints.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	byInspector, err := s.complaints.CountByCurrentInspector(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	resolutions, err := s.complaints.ListResolutions(ctx, models.StatusResolved)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return &models.ComplaintReport{
		ByStatus:              byStatus,
		ByCategory:            byCategory,
		ByInspector:           byInspector,
		AverageResolutionDays: averageResolutionDays(resolutions),
	}, nil
}

// averageResolutionDays uses the latest resolution row of each complaint. Nil when nothing was resolved.
func averageResolutionDays(rows []repository.ResolutionRow) *float64 {
	type span struct{ created, resolved time.Time }
	latest := map[int64]span{}
	for _, r := range rows {
		cur, ok := latest[r.ComplaintID]
		if !ok || r.ResolvedAt.After(cur.resolved) {
			latest[r.ComplaintID] = span{created: r.CreatedAt, resolved: r.ResolvedAt}
		}
	}
	if len(latest) == 0 {
		return nil
	}
	var total float64
	for _, sp := range latest {
		total += sp.resolved.Sub(sp.created).Hours() / 24
	}
	avg := math.Round(total/float64(len(latest))*100) / 100
	return &avg
}

// DeleteAttachment removes an attachment that belongs to the given complaint, then its file.
func (s *ComplaintService) DeleteAttachment(ctx context.Context, complaintID, attachmentID int64) error {
	att, err := s.attachments.GetAttachmentByID(ctx, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to get attachment: %w", err)
	}
	if att == nil || att.ComplaintID != complaintID {
		return apperr.NotFound("attachment not found for this complaint")
	}
	deleted, err := s.attachments.DeleteAttachment(ctx, attachmentID)
	if err != nil {
		return classify(err, "failed to delete attachment")
	}
	if !deleted {
		return apperr.NotFound("attachment not found for this complaint")
	}
	removePath(s.files, s.log, att.StoragePath)
	s.log.Info("attachment deleted", "complaint_id", complaintID, "attachment_id", attachmentID)
	return nil
}
