// Package schema: safe database initialization. Creates only missing tables, never drops or overwrites.
package schema

import (
	"context"
	"denuncias/database"
	"fmt"
	"log/slog"
	"strings"
)

type table struct {
	name    string
	ddl     string
	indexes []string
}

// Tables in dependency order; deletes in the lifecycle engine walk them in reverse.
var tables = []table{
	{
		name: "staff_users",
		ddl: `
CREATE TABLE staff_users (
    id {{PK}},
    first_name VARCHAR(120) NOT NULL,
    last_name VARCHAR(120) NULL,
    second_last_name VARCHAR(120) NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(32) NOT NULL,
    created_at {{TS}} NOT NULL
){{ENGINE}}`,
		indexes: []string{"CREATE INDEX idx_staff_users_role ON staff_users (role)"},
	},
	{
		name: "citizens",
		ddl: `
CREATE TABLE citizens (
    id {{PK}},
    first_name VARCHAR(120) NULL,
    last_name VARCHAR(120) NULL,
    second_last_name VARCHAR(120) NULL,
    rut VARCHAR(20) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    phone VARCHAR(30) NULL,
    password_hash VARCHAR(255) NOT NULL,
    registered_at {{TS}} NOT NULL
){{ENGINE}}`,
	},
	{
		name: "reporters",
		ddl: `
CREATE TABLE reporters (
    id {{PK}},
    first_name VARCHAR(120) NOT NULL,
    last_name VARCHAR(120) NULL,
    second_last_name VARCHAR(120) NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    phone VARCHAR(30) NULL,
    citizen_id {{REF}} NULL,
    FOREIGN KEY (citizen_id) REFERENCES citizens(id)
){{ENGINE}}`,
		indexes: []string{"CREATE INDEX idx_reporters_citizen ON reporters (citizen_id)"},
	},
	{
		name: "complaints",
		ddl: `
CREATE TABLE complaints (
    id {{PK}},
    public_id BIGINT NULL UNIQUE,
    category VARCHAR(120) NOT NULL,
    title VARCHAR(500) NOT NULL,
    description TEXT NOT NULL,
    address VARCHAR(500) NOT NULL,
    district VARCHAR(120) NOT NULL,
    created_at {{TS}} NOT NULL,
    reporter_id {{REF}} NOT NULL,
    reported_party_id {{REF}} NULL,
    FOREIGN KEY (reporter_id) REFERENCES reporters(id)
){{ENGINE}}`,
		indexes: []string{
			"CREATE INDEX idx_complaints_reporter ON complaints (reporter_id)",
			"CREATE INDEX idx_complaints_created ON complaints (created_at)",
		},
	},
	{
		name: "complaint_status_history",
		ddl: `
CREATE TABLE complaint_status_history (
    id {{PK}},
    complaint_id {{REF}} NOT NULL,
    status VARCHAR(120) NOT NULL,
    changed_at {{TS}} NOT NULL,
    changed_by {{REF}} NULL,
    FOREIGN KEY (complaint_id) REFERENCES complaints(id),
    FOREIGN KEY (changed_by) REFERENCES staff_users(id)
){{ENGINE}}`,
		// latest-row lookups: (complaint_id) ORDER BY changed_at DESC, id DESC LIMIT 1
		indexes: []string{
			"CREATE INDEX idx_status_latest ON complaint_status_history (complaint_id, changed_at, id)",
			"CREATE INDEX idx_status_changed_by ON complaint_status_history (changed_by)",
		},
	},
	{
		name: "complaint_assignments",
		ddl: `
CREATE TABLE complaint_assignments (
    id {{PK}},
    complaint_id {{REF}} NOT NULL,
    inspector_id {{REF}} NULL,
    assigned_at {{TS}} NOT NULL,
    notes TEXT NULL,
    FOREIGN KEY (complaint_id) REFERENCES complaints(id),
    FOREIGN KEY (inspector_id) REFERENCES staff_users(id)
){{ENGINE}}`,
		indexes: []string{
			"CREATE INDEX idx_assignment_latest ON complaint_assignments (complaint_id, assigned_at, id)",
			"CREATE INDEX idx_assignment_inspector ON complaint_assignments (inspector_id)",
		},
	},
	{
		name: "complaint_advances",
		ddl: `
CREATE TABLE complaint_advances (
    id {{PK}},
    complaint_id {{REF}} NOT NULL,
    comment TEXT NOT NULL,
    created_at {{TS}} NOT NULL,
    staff_id {{REF}} NULL,
    FOREIGN KEY (complaint_id) REFERENCES complaints(id),
    FOREIGN KEY (staff_id) REFERENCES staff_users(id)
){{ENGINE}}`,
		indexes: []string{"CREATE INDEX idx_advances_complaint ON complaint_advances (complaint_id, created_at)"},
	},
	{
		name: "complaint_attachments",
		ddl: `
CREATE TABLE complaint_attachments (
    id {{PK}},
    complaint_id {{REF}} NOT NULL,
    uploaded_by {{REF}} NULL,
    file_name VARCHAR(255) NOT NULL,
    mime_type VARCHAR(120) NOT NULL,
    storage_path VARCHAR(500) NOT NULL,
    uploaded_at {{TS}} NOT NULL,
    description TEXT NULL,
    advance_id {{REF}} NULL,
    FOREIGN KEY (complaint_id) REFERENCES complaints(id),
    FOREIGN KEY (uploaded_by) REFERENCES staff_users(id),
    FOREIGN KEY (advance_id) REFERENCES complaint_advances(id)
){{ENGINE}}`,
		indexes: []string{
			"CREATE INDEX idx_attachments_complaint ON complaint_attachments (complaint_id)",
			"CREATE INDEX idx_attachments_advance ON complaint_attachments (advance_id)",
		},
	},
	{
		name: "inspection_reports",
		ddl: `
CREATE TABLE inspection_reports (
    id {{PK}},
    complaint_id {{REF}} NOT NULL,
    staff_id {{REF}} NULL,
    findings TEXT NOT NULL,
    inspected_at {{TS}} NOT NULL,
    FOREIGN KEY (complaint_id) REFERENCES complaints(id),
    FOREIGN KEY (staff_id) REFERENCES staff_users(id)
){{ENGINE}}`,
	},
	{
		name: "internal_comments",
		ddl: `
CREATE TABLE internal_comments (
    id {{PK}},
    complaint_id {{REF}} NOT NULL,
    staff_id {{REF}} NULL,
    body TEXT NOT NULL,
    created_at {{TS}} NOT NULL,
    FOREIGN KEY (complaint_id) REFERENCES complaints(id),
    FOREIGN KEY (staff_id) REFERENCES staff_users(id)
){{ENGINE}}`,
	},
}

func replacerFor(d database.Dialect) *strings.Replacer {
	switch d {
	case database.Postgres:
		return strings.NewReplacer("{{PK}}", "BIGSERIAL PRIMARY KEY", "{{REF}}", "BIGINT", "{{TS}}", "TIMESTAMPTZ", "{{ENGINE}}", "")
	case database.SQLite:
		return strings.NewReplacer("{{PK}}", "INTEGER PRIMARY KEY AUTOINCREMENT", "{{REF}}", "INTEGER", "{{TS}}", "TIMESTAMP", "{{ENGINE}}", "")
	default:
		return strings.NewReplacer("{{PK}}", "BIGINT PRIMARY KEY AUTO_INCREMENT", "{{REF}}", "BIGINT", "{{TS}}", "DATETIME(6)",
			"{{ENGINE}}", " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci")
	}
}

// InitializeDatabase ensures every table exists, creating missing ones (and their indexes) in dependency order.
// Existing tables are left untouched.
func InitializeDatabase(ctx context.Context, db *database.DB, log *slog.Logger) error {
	r := replacerFor(db.Dialect())
	for _, t := range tables {
		exists, err := tableExists(ctx, db, t.name)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", t.name, err)
		}
		if exists {
			log.Debug("table exists", "table", t.name)
			continue
		}
		if _, err := db.Conn().ExecContext(ctx, r.Replace(t.ddl)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}
		for _, idx := range t.indexes {
			if _, err := db.Conn().ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", t.name, err)
			}
		}
		log.Info("created table", "table", t.name)
	}
	return nil
}

// TableNames lists managed tables in creation order.
func TableNames() []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.name
	}
	return names
}

func tableExists(ctx context.Context, db *database.DB, name string) (bool, error) {
	var q string
	switch db.Dialect() {
	case database.SQLite:
		q = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	case database.Postgres:
		q = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`
	default:
		q = `SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`
	}
	var count int
	if err := db.QueryRowContext(ctx, q, name).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
