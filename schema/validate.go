package schema

import (
	"context"
	"denuncias/database"
	"fmt"
	"strings"
)

// RequiredColumn defines a required column for a table.
type RequiredColumn struct {
	Table  string
	Column string
}

// DefaultRequiredColumns are the columns the latest-row projections and the cascade depend on.
// A database created by an older release without them must be migrated before the server starts.
var DefaultRequiredColumns = []RequiredColumn{
	{Table: "complaints", Column: "public_id"},
	{Table: "reporters", Column: "citizen_id"},
	{Table: "complaint_status_history", Column: "changed_by"},
	{Table: "complaint_assignments", Column: "notes"},
	{Table: "complaint_attachments", Column: "advance_id"},
}

// ValidateRequiredColumns checks that all required columns exist and lists the missing ones in the error.
func ValidateRequiredColumns(ctx context.Context, db *database.DB, required []RequiredColumn) error {
	if len(required) == 0 {
		required = DefaultRequiredColumns
	}
	var missing []string
	for _, rc := range required {
		exists, err := columnExists(ctx, db, rc.Table, rc.Column)
		if err != nil {
			return fmt.Errorf("failed to check column %s.%s: %w", rc.Table, rc.Column, err)
		}
		if !exists {
			missing = append(missing, rc.Table+"."+rc.Column)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns (run migrations to fix): %s", strings.Join(missing, ", "))
	}
	return nil
}

func columnExists(ctx context.Context, db *database.DB, table, column string) (bool, error) {
	var q string
	switch db.Dialect() {
	case database.SQLite:
		q = `SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`
	case database.Postgres:
		q = `SELECT COUNT(*) FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = ? AND column_name = ?`
	default:
		q = `SELECT COUNT(*) FROM information_schema.COLUMNS
		 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?`
	}
	var count int
	if err := db.QueryRowContext(ctx, q, table, column).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
