//go:build cgo

package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// isSQLiteUniqueViolation reports whether the sqlite3 driver rejected
// an insert on a primary key or unique constraint.
func isSQLiteUniqueViolation(err error) bool {
	var sqerr sqlite3.Error
	if errors.As(err, &sqerr) {
		return sqerr.Code == sqlite3.ErrConstraint
	}
	return false
}
