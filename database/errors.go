package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrDuplicate marks a unique-key violation.
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey marks a write blocked by (or pointing at a missing) foreign key.
	ErrForeignKey = errors.New("foreign key violation")
)

// TranslateError maps engine-specific constraint errors onto ErrDuplicate / ErrForeignKey.
// Other errors are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return errors.Join(ErrDuplicate, err)
		case 1451, 1452:
			return errors.Join(ErrForeignKey, err)
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return errors.Join(ErrDuplicate, err)
		case "23503":
			return errors.Join(ErrForeignKey, err)
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return errors.Join(ErrDuplicate, err)
		case sqlite3.ErrConstraintForeignKey:
			return errors.Join(ErrForeignKey, err)
		}
	}
	return err
}

// IsDuplicate reports whether err (translated or raw) is a unique-key violation.
func IsDuplicate(err error) bool {
	return errors.Is(TranslateError(err), ErrDuplicate)
}

// IsForeignKey reports whether err (translated or raw) is a foreign-key violation.
func IsForeignKey(err error) bool {
	return errors.Is(TranslateError(err), ErrForeignKey)
}
