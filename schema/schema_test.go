package schema_test

import (
	"context"
	"denuncias/logger"
	"denuncias/schema"
	"denuncias/testutil"
	"strings"
	"testing"
)

func TestInitializeDatabaseIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	if err := schema.InitializeDatabase(ctx, db, logger.Discard()); err != nil {
		t.Fatalf("second InitializeDatabase: %v", err)
	}
	for _, name := range schema.TableNames() {
		var n int
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n); err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if n != 1 {
			t.Errorf("table %s: count = %d, want 1", name, n)
		}
	}
}

func TestValidateRequiredColumns(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	if err := schema.ValidateRequiredColumns(ctx, db, schema.DefaultRequiredColumns); err != nil {
		t.Fatalf("fresh schema should validate: %v", err)
	}

	err := schema.ValidateRequiredColumns(ctx, db, []schema.RequiredColumn{
		{Table: "complaints", Column: "public_id"},
		{Table: "complaints", Column: "legacy_flag"},
		{Table: "reporters", Column: "nickname"},
	})
	if err == nil {
		t.Fatal("expected missing column error")
	}
	for _, want := range []string{"complaints.legacy_flag", "reporters.nickname"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
	if strings.Contains(err.Error(), "complaints.public_id") {
		t.Errorf("error %q lists a column that exists", err)
	}
}
