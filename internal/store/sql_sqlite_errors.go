package store

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteErrorClassifier implements [ErrorClassificator] for the go-sqlite3 driver.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Busy and locked databases are
// transient, everything else is not.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}

	return NonRetryable
}

// UniqueViolation implements [ErrorClassificator]. SQLite names the column in
// the message: "UNIQUE constraint failed: users.email".
func (c *SQLiteErrorClassifier) UniqueViolation(err error) (string, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}

	return uniqueColumnFromMessage(sqliteErr.Error()), true
}

func uniqueColumnFromMessage(msg string) string {
	_, target, found := strings.Cut(msg, "UNIQUE constraint failed: ")
	if !found {
		return ""
	}

	// composite constraints list every column; the first one is enough
	target, _, _ = strings.Cut(target, ",")
	_, column, found := strings.Cut(target, ".")
	if !found {
		return ""
	}

	return strings.TrimSpace(column)
}
