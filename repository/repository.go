// Package repository holds the parameterized SQL for each aggregate. Every repository wraps a
// database.Queryer; WithTx returns a copy bound to a transaction.
package repository

import (
	"database/sql"
	"time"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullStringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}

// nullable converts optional values for INSERT/UPDATE arguments.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func utc(t time.Time) time.Time { return t.UTC() }
