package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrAlreadyOwned        = errors.New("cosmetic already owned")
	ErrNotOwned            = errors.New("cosmetic not owned")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrEmptyBundle         = errors.New("bundle has no items")
	ErrDuplicateBundleItem = errors.New("bundle lists a cosmetic more than once")
	ErrInvalidPrice        = errors.New("invalid price")
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	sqliteUniqueFragment = "UNIQUE constraint failed"
)

// isUniqueViolation reports whether err is a unique-constraint failure from
// any supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	return strings.Contains(err.Error(), sqliteUniqueFragment)
}
