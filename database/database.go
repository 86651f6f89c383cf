// Package database wraps database/sql for the three supported engines (mysql, postgres, sqlite3).
// Queries are always written with '?' placeholders and rebound for the active engine.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect names a SQL engine; values double as database/sql driver names.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// ParseDialect validates a DB_DRIVER value.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case MySQL:
		return MySQL, nil
	case Postgres, "postgresql", "pq":
		return Postgres, nil
	case SQLite, "sqlite":
		return SQLite, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", s)
}

// Queryer is satisfied by both *DB and *Tx so repositories can run in or out of a transaction.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	// InsertID executes an INSERT into a table whose primary key column is "id" and returns the new id.
	InsertID(ctx context.Context, query string, args ...any) (int64, error)
	Dialect() Dialect
}

// DB is the process-wide connection pool.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// Open opens and pings a pool for the given dialect.
func Open(ctx context.Context, dialect Dialect, dsn string, maxOpenConns int) (*DB, error) {
	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dialect, err)
	}
	if dialect == SQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY under concurrent requests.
		conn.SetMaxOpenConns(1)
	} else if maxOpenConns > 0 {
		conn.SetMaxOpenConns(maxOpenConns)
		conn.SetMaxIdleConns(maxOpenConns)
		conn.SetConnMaxLifetime(30 * time.Minute)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}
	return &DB{conn: conn, dialect: dialect}, nil
}

// New wraps an already opened pool.
func New(conn *sql.DB, dialect Dialect) *DB {
	return &DB{conn: conn, dialect: dialect}
}

func (db *DB) Dialect() Dialect { return db.dialect }

// Conn exposes the underlying pool (schema checks, health).
func (db *DB) Conn() *sql.DB { return db.conn }

func (db *DB) Close() error { return db.conn.Close() }

func (db *DB) PingContext(ctx context.Context) error { return db.conn.PingContext(ctx) }

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, Rebind(db.dialect, query), args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, Rebind(db.dialect, query), args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, Rebind(db.dialect, query), args...)
}

func (db *DB) InsertID(ctx context.Context, query string, args ...any) (int64, error) {
	return insertID(ctx, db, query, args...)
}

// Tx is a transaction bound to the pool's dialect.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *Tx) Dialect() Dialect { return t.dialect }

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, Rebind(t.dialect, query), args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, Rebind(t.dialect, query), args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, Rebind(t.dialect, query), args...)
}

func (t *Tx) InsertID(ctx context.Context, query string, args ...any) (int64, error) {
	return insertID(ctx, t, query, args...)
}

// WithTx runs fn inside a transaction. Any error (or panic) from fn rolls back; otherwise it commits.
// fn must only use tx: on sqlite the pool has a single connection and reaching for db would block.
func WithTx(ctx context.Context, db *DB, fn func(tx *Tx) error) (err error) {
	sqlTx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	tx := &Tx{tx: sqlTx, dialect: db.dialect}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertID(ctx context.Context, q Queryer, query string, args ...any) (int64, error) {
	if q.Dialect() == Postgres {
		var id int64
		if err := q.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Rebind rewrites '?' placeholders for engines that need numbered ones.
func Rebind(dialect Dialect, query string) string {
	if dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	idx := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			fmt.Fprintf(&b, "$%d", idx)
			idx++
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// ForUpdate returns the row-lock suffix for SELECT statements; sqlite locks the whole database instead.
func ForUpdate(dialect Dialect) string {
	if dialect == SQLite {
		return ""
	}
	return " FOR UPDATE"
}

// Now returns the timestamp written into history rows. UTC everywhere.
func Now() time.Time {
	return time.Now().UTC()
}
