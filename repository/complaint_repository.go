package repository

import (
	"context"
	"database/sql"
	"denuncias/database"
	"denuncias/models"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ComplaintRepository handles database operations for complaints
type ComplaintRepository struct {
	db database.Queryer
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db database.Queryer) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// WithTx binds the repository to tx.
func (r *ComplaintRepository) WithTx(tx *database.Tx) *ComplaintRepository {
	return &ComplaintRepository{db: tx}
}

const complaintColumns = `c.id, c.public_id, c.category, c.title, c.description, c.address, c.district,
	c.created_at, c.reporter_id, c.reported_party_id`

// latestStatusSubquery yields the current status label of complaint c.
const latestStatusSubquery = `(SELECT s.status FROM complaint_status_history s
	WHERE s.complaint_id = c.id ORDER BY s.changed_at DESC, s.id DESC LIMIT 1)`

const latestInspectorSubquery = `(SELECT a.inspector_id FROM complaint_assignments a
	WHERE a.complaint_id = c.id ORDER BY a.assigned_at DESC, a.id DESC LIMIT 1)`

func scanComplaint(s scanner, c *models.Complaint) error {
	var publicID, partyID sql.NullInt64
	if err := s.Scan(&c.ID, &publicID, &c.Category, &c.Title, &c.Description, &c.Address, &c.District,
		&c.CreatedAt, &c.ReporterID, &partyID); err != nil {
		return err
	}
	c.PublicID = nullInt64Ptr(publicID)
	c.ReportedPartyID = nullInt64Ptr(partyID)
	c.CreatedAt = utc(c.CreatedAt)
	return nil
}

// CreateComplaint inserts c and sets c.ID.
func (r *ComplaintRepository) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	id, err := r.db.InsertID(ctx, `
		INSERT INTO complaints (public_id, category, title, description, address, district, created_at, reporter_id, reported_party_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullable(c.PublicID), c.Category, c.Title, c.Description, c.Address, c.District,
		c.CreatedAt, c.ReporterID, nullable(c.ReportedPartyID),
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", database.TranslateError(err))
	}
	c.ID = id
	return nil
}

// PublicIDExists reports whether a tracking number is already taken.
func (r *ComplaintRepository) PublicIDExists(ctx context.Context, publicID int64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints WHERE public_id = ?`, publicID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check public id: %w", err)
	}
	return n > 0, nil
}

// GetComplaintByID returns nil, nil when the complaint does not exist.
func (r *ComplaintRepository) GetComplaintByID(ctx context.Context, id int64) (*models.Complaint, error) {
	c := &models.Complaint{}
	err := scanComplaint(r.db.QueryRowContext(ctx, `SELECT `+complaintColumns+` FROM complaints c WHERE c.id = ?`, id), c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return c, nil
}

// Exists reports whether complaint id exists.
func (r *ComplaintRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check complaint: %w", err)
	}
	return n > 0, nil
}

// UpdateComplaint replaces the editable fields. Callers check existence first: mysql reports
// changed rows, not matched rows.
func (r *ComplaintRepository) UpdateComplaint(ctx context.Context, id int64, req *models.UpdateComplaintRequest) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE complaints SET category = ?, title = ?, description = ?, address = ?, district = ?, reported_party_id = ?
		WHERE id = ?`,
		req.Category, req.Title, req.Description, req.Address, req.District, nullable(req.ReportedPartyID), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update complaint: %w", database.TranslateError(err))
	}
	return nil
}

// DeleteComplaint deletes the complaint row only; dependents must be gone already.
func (r *ComplaintRepository) DeleteComplaint(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete complaint: %w", database.TranslateError(err))
	}
	return affected(res)
}

// DeleteInspectionReports removes inspection reports of a complaint.
func (r *ComplaintRepository) DeleteInspectionReports(ctx context.Context, complaintID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM inspection_reports WHERE complaint_id = ?`, complaintID); err != nil {
		return fmt.Errorf("failed to delete inspection reports: %w", database.TranslateError(err))
	}
	return nil
}

// DeleteInternalComments removes internal comments of a complaint.
func (r *ComplaintRepository) DeleteInternalComments(ctx context.Context, complaintID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM internal_comments WHERE complaint_id = ?`, complaintID); err != nil {
		return fmt.Errorf("failed to delete internal comments: %w", database.TranslateError(err))
	}
	return nil
}

// ListComplaints returns complaints newest first, with the reporter email. The status filter
// compares against the current (latest) status.
func (r *ComplaintRepository) ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.ComplaintSummary, error) {
	var (
		conds []string
		args  []any
	)
	if f.Category != "" {
		conds = append(conds, `LOWER(c.category) LIKE LOWER(?)`)
		args = append(args, "%"+f.Category+"%")
	}
	if f.District != "" {
		conds = append(conds, `LOWER(c.district) LIKE LOWER(?)`)
		args = append(args, "%"+f.District+"%")
	}
	if f.Query != "" {
		conds = append(conds, `(LOWER(c.title) LIKE LOWER(?) OR LOWER(c.description) LIKE LOWER(?))`)
		args = append(args, "%"+f.Query+"%", "%"+f.Query+"%")
	}
	if f.Status != "" {
		conds = append(conds, latestStatusSubquery+` = ?`)
		args = append(args, f.Status)
	}

	query := `SELECT ` + complaintColumns + `, rp.email FROM complaints c JOIN reporters rp ON rp.id = c.reporter_id`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY c.created_at DESC, c.id DESC`
	return r.querySummaries(ctx, query, args...)
}

// ListByCitizen returns the complaints whose reporter is linked to citizenID.
func (r *ComplaintRepository) ListByCitizen(ctx context.Context, citizenID int64) ([]models.ComplaintSummary, error) {
	return r.querySummaries(ctx, `SELECT `+complaintColumns+`, rp.email FROM complaints c
		JOIN reporters rp ON rp.id = c.reporter_id
		WHERE rp.citizen_id = ?
		ORDER BY c.created_at DESC, c.id DESC`, citizenID)
}

func (r *ComplaintRepository) querySummaries(ctx context.Context, query string, args ...any) ([]models.ComplaintSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	out := []models.ComplaintSummary{}
	for rows.Next() {
		var s models.ComplaintSummary
		var publicID, partyID sql.NullInt64
		if err := rows.Scan(&s.ID, &publicID, &s.Category, &s.Title, &s.Description, &s.Address, &s.District,
			&s.CreatedAt, &s.ReporterID, &partyID, &s.ReporterEmail); err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		s.PublicID = nullInt64Ptr(publicID)
		s.ReportedPartyID = nullInt64Ptr(partyID)
		s.CreatedAt = utc(s.CreatedAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate complaints: %w", err)
	}
	return out, nil
}

// GetPublicStatus returns the whitelisted public view, or nil, nil if no complaint carries publicID.
func (r *ComplaintRepository) GetPublicStatus(ctx context.Context, publicID int64) (*models.PublicStatusResponse, error) {
	out := &models.PublicStatusResponse{}
	err := r.db.QueryRowContext(ctx, `
		SELECT c.public_id, c.title, c.description, c.created_at, s.status, s.changed_at
		FROM complaints c
		JOIN complaint_status_history s ON s.complaint_id = c.id
		WHERE c.public_id = ?
		ORDER BY s.changed_at DESC, s.id DESC
		LIMIT 1`, publicID,
	).Scan(&out.PublicID, &out.Title, &out.Description, &out.CreatedAt, &out.CurrentStatus, &out.CurrentStatusAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get public status: %w", err)
	}
	out.CreatedAt = utc(out.CreatedAt)
	out.CurrentStatusAt = utc(out.CurrentStatusAt)
	return out, nil
}

// CountByCurrentStatus groups complaints by their latest status.
func (r *ComplaintRepository) CountByCurrentStatus(ctx context.Context) ([]models.CountRow, error) {
	return r.queryCounts(ctx, `
		SELECT latest.status, COUNT(*) FROM (
			SELECT `+latestStatusSubquery+` AS status FROM complaints c
		) latest
		WHERE latest.status IS NOT NULL
		GROUP BY latest.status
		ORDER BY latest.status`)
}

// CountByCategory groups complaints by category.
func (r *ComplaintRepository) CountByCategory(ctx context.Context) ([]models.CountRow, error) {
	return r.queryCounts(ctx, `SELECT category, COUNT(*) FROM complaints GROUP BY category ORDER BY category`)
}

func (r *ComplaintRepository) queryCounts(ctx context.Context, query string) ([]models.CountRow, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts: %w", err)
	}
	defer rows.Close()
	out := []models.CountRow{}
	for rows.Next() {
		var row models.CountRow
		if err := rows.Scan(&row.Label, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CountByCurrentInspector groups complaints by their latest assignee, limited to inspector accounts.
func (r *ComplaintRepository) CountByCurrentInspector(ctx context.Context) ([]models.InspectorCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.first_name, u.last_name, u.second_last_name, COUNT(*) FROM (
			SELECT `+latestInspectorSubquery+` AS inspector_id FROM complaints c
		) latest
		JOIN staff_users u ON u.id = latest.inspector_id
		WHERE u.role = ?
		GROUP BY u.id, u.first_name, u.last_name, u.second_last_name
		ORDER BY COUNT(*) DESC, u.id`, string(models.RoleInspector))
	if err != nil {
		return nil, fmt.Errorf("failed to count by inspector: %w", err)
	}
	defer rows.Close()
	out := []models.InspectorCount{}
	for rows.Next() {
		var (
			row          models.InspectorCount
			first        string
			last, second sql.NullString
		)
		if err := rows.Scan(&row.InspectorID, &first, &last, &second, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan inspector count: %w", err)
		}
		row.InspectorName = models.FullName(first, nullStringPtr(last), nullStringPtr(second))
		out = append(out, row)
	}
	return out, rows.Err()
}

// ResolutionRow pairs a complaint's intake time with one of its resolution rows.
type ResolutionRow struct {
	ComplaintID int64
	CreatedAt   time.Time
	ResolvedAt  time.Time
}

// ListResolutions returns every (complaint, status row) pair carrying the given label.
func (r *ComplaintRepository) ListResolutions(ctx context.Context, status string) ([]ResolutionRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.created_at, s.changed_at
		FROM complaints c
		JOIN complaint_status_history s ON s.complaint_id = c.id
		WHERE s.status = ?`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolutions: %w", err)
	}
	defer rows.Close()
	var out []ResolutionRow
	for rows.Next() {
		var row ResolutionRow
		if err := rows.Scan(&row.ComplaintID, &row.CreatedAt, &row.ResolvedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resolution: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
