package service

import (
	"bytes"
	"context"
	"denuncias/apperr"
	"denuncias/database"
	"denuncias/models"
	"denuncias/repository"
	"denuncias/utils"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestCreatePublic_ThenPublicStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.createComplaint(t, "a@x.com")
	if resp.PublicID == nil || !utils.ValidPublicID(*resp.PublicID) {
		t.Fatalf("public id %v is not a 9-digit number", resp.PublicID)
	}
	if resp.InitialStatus != "Registrada sin asignar" {
		t.Errorf("initial status = %q", resp.InitialStatus)
	}

	status, err := env.complaints.PublicStatus(ctx, strconv.FormatInt(*resp.PublicID, 10))
	if err != nil {
		t.Fatalf("PublicStatus: %v", err)
	}
	if status.CurrentStatus != resp.InitialStatus || status.Title != "Loud construction" {
		t.Errorf("unexpected public status %+v", status)
	}
	if status.CreatedAt.IsZero() || status.CurrentStatusAt.IsZero() {
		t.Error("timestamps missing from public status")
	}

	queued := env.queue.Queued()
	if len(queued) != 1 || queued[0].Recipient != "a@x.com" || queued[0].Kind != models.NotificationComplaintConfirmation {
		t.Errorf("expected one confirmation to a@x.com, got %+v", queued)
	}
}

func TestCreate_AnonymousReporterDefaults(t *testing.T) {
	env := newTestEnv(t)
	resp := env.createComplaint(t, "anon@x.com")

	rp, err := env.reporters.Get(context.Background(), resp.ReporterID)
	if err != nil {
		t.Fatalf("Get reporter: %v", err)
	}
	if rp.FirstName != models.AnonymousName || rp.LastName != nil || rp.CitizenID != nil {
		t.Errorf("unexpected reporter %+v", rp)
	}
}

func TestCreate_ValidationAndAtomicity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateComplaintRequest
	}{
		{"missing title", models.CreateComplaintRequest{Category: "c", Description: "d", Address: "a", District: "x", ReporterEmail: "a@x.com"}},
		{"missing email", models.CreateComplaintRequest{Category: "c", Title: "t", Description: "d", Address: "a", District: "x"}},
		{"bad email", models.CreateComplaintRequest{Category: "c", Title: "t", Description: "d", Address: "a", District: "x", ReporterEmail: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.complaints.CreatePublic(ctx, &req, nil)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("err = %v, want validation", err)
			}
		})
	}
	if n := env.count(t, "complaints", ""); n != 0 {
		t.Errorf("complaints = %d after failed creations", n)
	}
	if n := env.count(t, "reporters", ""); n != 0 {
		t.Errorf("reporters = %d after failed creations", n)
	}
}

func TestCreate_ReusesReporterByEmail(t *testing.T) {
	env := newTestEnv(t)

	first := env.createComplaint(t, "same@x.com")
	second := env.createComplaint(t, "  SAME@x.com ")

	if first.ReporterID != second.ReporterID {
		t.Fatalf("reporter ids differ: %d vs %d", first.ReporterID, second.ReporterID)
	}
	if n := env.count(t, "reporters", ""); n != 1 {
		t.Errorf("reporters = %d, want 1", n)
	}
}

func TestCreate_RollsBackWhenPublicIDsExhausted(t *testing.T) {
	env := newTestEnv(t)
	existing := env.createComplaint(t, "a@x.com")

	env.complaints.publicID = func() (int64, error) { return *existing.PublicID, nil }
	_, err := env.complaints.CreatePublic(context.Background(), &models.CreateComplaintRequest{
		Category: "c", Title: "t", Description: "d", Address: "a", District: "x", ReporterEmail: "new@x.com",
	}, nil)
	if !errors.Is(err, errPublicIDExhausted) {
		t.Fatalf("err = %v, want errPublicIDExhausted", err)
	}
	if n := env.count(t, "reporters", "email = ?", "new@x.com"); n != 0 {
		t.Error("reporter from the failed creation was committed")
	}
	if n := env.count(t, "complaints", ""); n != 1 {
		t.Errorf("complaints = %d, want 1", n)
	}
}

func TestCreate_RedrawsOnCollision(t *testing.T) {
	env := newTestEnv(t)
	existing := env.createComplaint(t, "a@x.com")

	draws := []int64{*existing.PublicID, *existing.PublicID, 555555555}
	env.complaints.publicID = func() (int64, error) {
		id := draws[0]
		draws = draws[1:]
		return id, nil
	}
	resp := env.createComplaint(t, "b@x.com")
	if *resp.PublicID != 555555555 {
		t.Errorf("public id = %d, want 555555555", *resp.PublicID)
	}
}

func TestCreate_RetriesWhenReporterInsertedConcurrently(t *testing.T) {
	env := newTestEnv(t)
	insert := env.complaints.addReporter
	calls := 0
	env.complaints.addReporter = func(r *repository.ReporterRepository, ctx context.Context, rp *models.Reporter) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("insert reporter: %w", database.ErrDuplicate)
		}
		return insert(r, ctx, rp)
	}

	resp := env.createComplaint(t, "race@x.com")
	if calls != 2 {
		t.Errorf("reporter inserts = %d, want 2", calls)
	}
	if n := env.count(t, "reporters", "email = ?", "race@x.com"); n != 1 {
		t.Errorf("reporters = %d, want 1", n)
	}
	if n := env.count(t, "complaints", "reporter_id = ?", resp.ReporterID); n != 1 {
		t.Errorf("complaints = %d, want 1", n)
	}
}

func TestCreate_PersistentDuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t)
	env.complaints.addReporter = func(*repository.ReporterRepository, context.Context, *models.Reporter) error {
		return fmt.Errorf("insert reporter: %w", database.ErrDuplicate)
	}

	_, err := env.complaints.CreatePublic(context.Background(), &models.CreateComplaintRequest{
		Category: "c", Title: "t", Description: "d", Address: "a", District: "x", ReporterEmail: "race@x.com",
	}, nil)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if n := env.count(t, "complaints", ""); n != 0 {
		t.Errorf("complaints = %d, want 0", n)
	}
}

func TestCreate_TrimsPaddedReporterEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.createComplaint(t, "  Vecina@Example.com \t")
	var email string
	if err := env.db.QueryRowContext(context.Background(), `SELECT email FROM reporters WHERE id = ?`, resp.ReporterID).Scan(&email); err != nil {
		t.Fatal(err)
	}
	if email != "vecina@example.com" {
		t.Errorf("stored email = %q, want vecina@example.com", email)
	}
}

func TestCreatePublic_CitizenSessionLinksAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	auth, err := env.citizens.Register(ctx, &models.RegisterCitizenRequest{RUT: "11.111.111-1", Email: "vecino@x.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	citizen := auth.User.(*models.Citizen)

	resp, err := env.complaints.CreatePublic(ctx, &models.CreateComplaintRequest{
		Category: "c", Title: "t", Description: "d", Address: "a", District: "x",
	}, &models.Actor{ID: citizen.ID, Email: citizen.Email, Role: models.RoleCitizen})
	if err != nil {
		t.Fatalf("CreatePublic: %v", err)
	}
	rp, err := env.reporters.Get(ctx, resp.ReporterID)
	if err != nil {
		t.Fatal(err)
	}
	if rp.Email != "vecino@x.com" || rp.CitizenID == nil || *rp.CitizenID != citizen.ID {
		t.Errorf("reporter not linked to the session account: %+v", rp)
	}
}

func TestCreateByStaff_RecordsCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inspector := env.seedStaff(t, models.RoleInspector, "insp@muni.cl")

	resp, err := env.complaints.CreateByStaff(ctx, &models.CreateComplaintRequest{
		Category: "c", Title: "t", Description: "d", Address: "a", District: "x", ReporterEmail: "r@x.com",
	}, actor(inspector))
	if err != nil {
		t.Fatalf("CreateByStaff: %v", err)
	}
	h, err := env.complaints.History(ctx, resp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.StatusHistory) != 1 || h.StatusHistory[0].ChangedBy == nil || *h.StatusHistory[0].ChangedBy != inspector.ID {
		t.Errorf("initial status row should record the creator: %+v", h.StatusHistory)
	}

	missing := int64(999)
	_, err = env.complaints.CreateByStaff(ctx, &models.CreateComplaintRequest{
		Category: "c", Title: "t", Description: "d", Address: "a", District: "x", ReporterEmail: "r2@x.com", CitizenID: &missing,
	}, actor(inspector))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("unknown citizen id: err = %v, want validation", err)
	}
}

func TestCurrentStatusAlwaysPresent(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 3; i++ {
		env.createComplaint(t, "r"+strconv.Itoa(i)+"@x.com")
	}
	items, err := env.complaints.List(context.Background(), models.ComplaintFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("listed %d complaints, want 3", len(items))
	}
	for _, it := range items {
		if it.CurrentStatus == nil || it.CurrentStatus.Status != models.StatusRegistered {
			t.Errorf("complaint %d has current status %+v", it.ID, it.CurrentStatus)
		}
	}
}

func TestAssign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	director := env.seedStaff(t, models.RoleDirector, "dir@muni.cl")
	inspector := env.seedStaff(t, models.RoleInspector, "insp@muni.cl")
	admin := env.seedStaff(t, models.RoleAdministrator, "admin@muni.cl")
	c := env.createComplaint(t, "a@x.com")

	t.Run("non inspector is rejected without writes", func(t *testing.T) {
		beforeStatus := env.count(t, "complaint_status_history", "complaint_id = ?", c.ID)
		beforeAssign := env.count(t, "complaint_assignments", "complaint_id = ?", c.ID)

		_, err := env.complaints.Assign(ctx, actor(director), c.ID, &models.AssignRequest{InspectorID: admin.ID})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("err = %v, want validation", err)
		}
		if got := env.count(t, "complaint_status_history", "complaint_id = ?", c.ID); got != beforeStatus {
			t.Errorf("status rows %d -> %d", beforeStatus, got)
		}
		if got := env.count(t, "complaint_assignments", "complaint_id = ?", c.ID); got != beforeAssign {
			t.Errorf("assignment rows %d -> %d", beforeAssign, got)
		}
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		_, err := env.complaints.Assign(ctx, actor(director), c.ID, &models.AssignRequest{InspectorID: 4242})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("err = %v, want validation", err)
		}
	})

	t.Run("missing complaint", func(t *testing.T) {
		_, err := env.complaints.Assign(ctx, actor(director), 4242, &models.AssignRequest{InspectorID: inspector.ID})
		if !apperr.Is(err, apperr.KindNotFound) {
			t.Fatalf("err = %v, want not found", err)
		}
	})

	t.Run("inspector", func(t *testing.T) {
		beforeStatus := env.count(t, "complaint_status_history", "complaint_id = ?", c.ID)
		a, err := env.complaints.Assign(ctx, actor(director), c.ID, &models.AssignRequest{InspectorID: inspector.ID, Notes: "urgente"})
		if err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if a.InspectorID == nil || *a.InspectorID != inspector.ID || a.Notes == nil || *a.Notes != "urgente" {
			t.Errorf("unexpected assignment %+v", a)
		}
		if got := env.count(t, "complaint_assignments", "complaint_id = ? AND inspector_id = ?", c.ID, inspector.ID); got != 1 {
			t.Errorf("assignment rows = %d, want 1", got)
		}
		if got := env.count(t, "complaint_status_history", "complaint_id = ?", c.ID); got != beforeStatus+1 {
			t.Errorf("status rows = %d, want %d", got, beforeStatus+1)
		}

		detail, err := env.complaints.Get(ctx, c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if detail.CurrentStatus.Status != models.StatusAssigned || *detail.CurrentStatus.ChangedBy != director.ID {
			t.Errorf("current status = %+v", detail.CurrentStatus)
		}
		if detail.CurrentAssignee == nil || *detail.CurrentAssignee.InspectorID != inspector.ID {
			t.Errorf("current assignee = %+v", detail.CurrentAssignee)
		}

		var notice *models.Notification
		for _, n := range env.queue.Queued() {
			if n.Kind == models.NotificationInspectorAssignment {
				n := n
				notice = &n
			}
		}
		if notice == nil || notice.Recipient != "insp@muni.cl" {
			t.Errorf("inspector notice = %+v", notice)
		}
	})
}

func TestTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inspector := env.seedStaff(t, models.RoleInspector, "insp@muni.cl")
	c := env.createComplaint(t, "a@x.com")

	before := env.count(t, "complaint_status_history", "complaint_id = ?", c.ID)
	for _, label := range []string{"En Revisión", "Resuelta"} {
		if _, err := env.complaints.Transition(ctx, actor(inspector), c.ID, &models.TransitionRequest{Status: label}); err != nil {
			t.Fatalf("Transition %q: %v", label, err)
		}
	}
	if got := env.count(t, "complaint_status_history", "complaint_id = ?", c.ID); got != before+2 {
		t.Errorf("status rows = %d, want %d", got, before+2)
	}
	detail, err := env.complaints.Get(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.CurrentStatus.Status != "Resuelta" {
		t.Errorf("current status = %q, want Resuelta", detail.CurrentStatus.Status)
	}

	if _, err := env.complaints.Transition(ctx, actor(inspector), c.ID, &models.TransitionRequest{Status: "   "}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("blank label: err = %v, want validation", err)
	}
	if _, err := env.complaints.Transition(ctx, actor(inspector), 999, &models.TransitionRequest{Status: "x"}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing complaint: err = %v, want not found", err)
	}
}

func TestAddAdvance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inspector := env.seedStaff(t, models.RoleInspector, "insp@muni.cl")
	c := env.createComplaint(t, "a@x.com")

	t.Run("requires comment or files", func(t *testing.T) {
		_, err := env.complaints.AddAdvance(ctx, actor(inspector), c.ID, "  ", nil)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("err = %v, want validation", err)
		}
	})

	t.Run("missing complaint removes stored files", func(t *testing.T) {
		_, err := env.complaints.AddAdvance(ctx, actor(inspector), 999, "visita", []Upload{
			{Field: "files", Name: "a.png", Body: bytes.NewReader(pngBytes)},
		})
		if !apperr.Is(err, apperr.KindNotFound) {
			t.Fatalf("err = %v, want not found", err)
		}
		if n := env.storedFiles(t); n != 0 {
			t.Errorf("%d files left on disk after rollback", n)
		}
	})

	t.Run("unsupported file", func(t *testing.T) {
		_, err := env.complaints.AddAdvance(ctx, actor(inspector), c.ID, "visita", []Upload{
			{Field: "files", Name: "a.png", Body: bytes.NewReader(pngBytes)},
			{Field: "files", Name: "notes.txt", Body: strings.NewReader("plain text")},
		})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("err = %v, want validation", err)
		}
		if n := env.storedFiles(t); n != 0 {
			t.Errorf("%d files left on disk after rejection", n)
		}
	})

	t.Run("comment and files", func(t *testing.T) {
		res, err := env.complaints.AddAdvance(ctx, actor(inspector), c.ID, "Se visitó el lugar", []Upload{
			{Field: "files", Name: "a.png", Body: bytes.NewReader(pngBytes)},
			{Field: "files", Name: "b.png", Body: bytes.NewReader(pngBytes)},
		})
		if err != nil {
			t.Fatalf("AddAdvance: %v", err)
		}
		if res.AdvanceID == nil || len(res.Attachments) != 2 {
			t.Fatalf("unexpected result %+v", res)
		}
		for _, a := range res.Attachments {
			if a.AdvanceID == nil || *a.AdvanceID != *res.AdvanceID || *a.UploadedBy != inspector.ID {
				t.Errorf("attachment not linked: %+v", a)
			}
		}

		advances, err := env.complaints.ListAdvances(ctx, c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(advances) != 1 || len(advances[0].Attachments) != 2 || advances[0].StaffName == nil {
			t.Errorf("unexpected advances %+v", advances)
		}
	})

	t.Run("files only", func(t *testing.T) {
		res, err := env.complaints.AddAdvance(ctx, actor(inspector), c.ID, "", []Upload{
			{Field: "files", Name: "c.png", Body: bytes.NewReader(pngBytes)},
		})
		if err != nil {
			t.Fatalf("AddAdvance: %v", err)
		}
		if res.AdvanceID != nil || len(res.Attachments) != 1 {
			t.Errorf("unexpected result %+v", res)
		}
	})
}

func TestDelete_Cascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	director := env.seedStaff(t, models.RoleDirector, "dir@muni.cl")
	inspector := env.seedStaff(t, models.RoleInspector, "insp@muni.cl")
	c := env.createComplaint(t, "a@x.com")
	other := env.createComplaint(t, "b@x.com")

	if _, err := env.complaints.Assign(ctx, actor(director), c.ID, &models.AssignRequest{InspectorID: inspector.ID}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.complaints.AddAdvance(ctx, actor(inspector), c.ID, "visita", []Upload{
		{Field: "files", Name: "a.png", Body: bytes.NewReader(pngBytes)},
	}); err != nil {
		t.Fatal(err)
	}
	now := time.Now().UTC()
	if _, err := env.db.ExecContext(ctx, `INSERT INTO inspection_reports (complaint_id, staff_id, findings, inspected_at) VALUES (?, ?, ?, ?)`,
		c.ID, inspector.ID, "muro trizado", now); err != nil {
		t.Fatal(err)
	}
	if _, err := env.db.ExecContext(ctx, `INSERT INTO internal_comments (complaint_id, staff_id, body, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, director.ID, "prioridad", now); err != nil {
		t.Fatal(err)
	}

	if err := env.complaints.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, table := range []string{"complaint_attachments", "inspection_reports", "internal_comments", "complaint_advances",
		"complaint_status_history", "complaint_assignments", "complaints"} {
		col := "complaint_id"
		if table == "complaints" {
			col = "id"
		}
		if n := env.count(t, table, col+" = ?", c.ID); n != 0 {
			t.Errorf("%s still has %d rows for the deleted complaint", table, n)
		}
	}
	if n := env.storedFiles(t); n != 0 {
		t.Errorf("%d files left on disk", n)
	}
	if n := env.count(t, "complaint_status_history", "complaint_id = ?", other.ID); n != 1 {
		t.Errorf("unrelated complaint lost history rows")
	}
}

func TestDelete_MissingLeavesDatabaseUnchanged(t *testing.T) {
	env := newTestEnv(t)
	c := env.createComplaint(t, "a@x.com")
	before := env.count(t, "complaint_status_history", "")

	err := env.complaints.Delete(context.Background(), c.ID+100)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if env.count(t, "complaints", "") != 1 || env.count(t, "complaint_status_history", "") != before {
		t.Error("database changed by a failed delete")
	}
}

func TestPublicStatus_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.complaints.PublicStatus(ctx, "abc"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("non numeric: err = %v, want validation", err)
	}
	if _, err := env.complaints.PublicStatus(ctx, "123456789"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown: err = %v, want not found", err)
	}

	// Tracking numbers are always nine digits; anything else is never looked up.
	resp := env.createComplaint(t, "a@x.com")
	if _, err := env.db.ExecContext(ctx, `UPDATE complaints SET public_id = ? WHERE id = ?`, 42, resp.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := env.complaints.PublicStatus(ctx, "42"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("out of range: err = %v, want not found", err)
	}
}

func TestList_Filters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inspector := env.seedStaff(t, models.RoleInspector, "insp@muni.cl")

	mk := func(category, title, district string) int64 {
		resp, err := env.complaints.CreatePublic(ctx, &models.CreateComplaintRequest{
			Category: category, Title: title, Description: "detalle", Address: "a", District: district, ReporterEmail: "r@x.com",
		}, nil)
		if err != nil {
			t.Fatal(err)
		}
		return resp.ID
	}
	noise := mk("Ruidos Molestos", "Fiesta", "Centro")
	mk("Construcción", "Muro", "Norte")
	if _, err := env.complaints.Transition(ctx, actor(inspector), noise, &models.TransitionRequest{Status: "Resuelta"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		filter models.ComplaintFilter
		want   int
	}{
		{"all", models.ComplaintFilter{}, 2},
		{"category substring", models.ComplaintFilter{Category: "ruidos"}, 1},
		{"district", models.ComplaintFilter{District: "NORTE"}, 1},
		{"query on title", models.ComplaintFilter{Query: "muro"}, 1},
		{"current status", models.ComplaintFilter{Status: "Resuelta"}, 1},
		{"old status does not match", models.ComplaintFilter{Status: models.StatusRegistered}, 1},
		{"no match", models.ComplaintFilter{Category: "zzz"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := env.complaints.List(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(items) != tt.want {
				t.Errorf("got %d items, want %d", len(items), tt.want)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.createComplaint(t, "a@x.com")

	updated, err := env.complaints.Update(ctx, c.ID, &models.UpdateComplaintRequest{
		Category: "Basura", Title: "Microbasural", Description: "d", Address: "Calle 2", District: "Sur",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Microbasural" || updated.PublicID == nil || *updated.PublicID != *c.PublicID {
		t.Errorf("unexpected update result %+v", updated)
	}

	_, err = env.complaints.Update(ctx, 999, &models.UpdateComplaintRequest{
		Category: "x", Title: "x", Description: "x", Address: "x", District: "x",
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	director := env.seedStaff(t, models.RoleDirector, "dir@muni.cl")
	inspector := env.seedStaff(t, models.RoleInspector, "insp@muni.cl")

	empty, err := env.complaints.Report(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if empty.AverageResolutionDays != nil {
		t.Errorf("average should be nil with no resolutions")
	}

	resolved := env.createComplaint(t, "a@x.com")
	env.createComplaint(t, "b@x.com")
	if _, err := env.complaints.Assign(ctx, actor(director), resolved.ID, &models.AssignRequest{InspectorID: inspector.ID}); err != nil {
		t.Fatal(err)
	}
	entry, err := env.complaints.Transition(ctx, actor(inspector), resolved.ID, &models.TransitionRequest{Status: models.StatusResolved})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.db.ExecContext(ctx, `UPDATE complaints SET created_at = ? WHERE id = ?`,
		entry.ChangedAt.Add(-36*time.Hour), resolved.ID); err != nil {
		t.Fatal(err)
	}

	report, err := env.complaints.Report(ctx)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	byStatus := map[string]int64{}
	for _, r := range report.ByStatus {
		byStatus[r.Label] = r.Total
	}
	if byStatus[models.StatusResolved] != 1 || byStatus[models.StatusRegistered] != 1 {
		t.Errorf("by status = %+v", report.ByStatus)
	}
	if len(report.ByCategory) != 1 || report.ByCategory[0].Total != 2 {
		t.Errorf("by category = %+v", report.ByCategory)
	}
	if len(report.ByInspector) != 1 || report.ByInspector[0].InspectorID != inspector.ID || report.ByInspector[0].Total != 1 {
		t.Errorf("by inspector = %+v", report.ByInspector)
	}
	if report.AverageResolutionDays == nil || *report.AverageResolutionDays != 1.5 {
		t.Errorf("average = %v, want 1.5", report.AverageResolutionDays)
	}
}

func TestAverageResolutionDays_UsesLatestRow(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []repository.ResolutionRow{
		{ComplaintID: 1, CreatedAt: base, ResolvedAt: base.Add(24 * time.Hour)},
		{ComplaintID: 1, CreatedAt: base, ResolvedAt: base.Add(60 * time.Hour)},
		{ComplaintID: 2, CreatedAt: base, ResolvedAt: base.Add(24 * time.Hour)},
	}
	got := averageResolutionDays(rows)
	// (2.5 + 1) / 2
	if got == nil || *got != 1.75 {
		t.Fatalf("average = %v, want 1.75", got)
	}
}

func TestDeleteAttachment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inspector := env.seedStaff(t, models.RoleInspector, "insp@muni.cl")
	c := env.createComplaint(t, "a@x.com")
	other := env.createComplaint(t, "b@x.com")

	res, err := env.complaints.AddAdvance(ctx, actor(inspector), c.ID, "", []Upload{
		{Field: "files", Name: "a.png", Body: bytes.NewReader(pngBytes)},
	})
	if err != nil {
		t.Fatal(err)
	}
	attID := res.Attachments[0].ID

	if err := env.complaints.DeleteAttachment(ctx, other.ID, attID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("foreign complaint: err = %v, want not found", err)
	}
	if err := env.complaints.DeleteAttachment(ctx, c.ID, attID); err != nil {
		t.Fatalf("DeleteAttachment: %v", err)
	}
	if n := env.storedFiles(t); n != 0 {
		t.Errorf("%d files left on disk", n)
	}
}
