package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("boom"), want: NonRetryable},
		{name: "deadlock", err: pgError(pgerrcode.DeadlockDetected), want: Retryable},
		{name: "wrapped serialization failure", err: fmt.Errorf("tx: %w", pgError(pgerrcode.SerializationFailure)), want: Retryable},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: Retryable},
		{name: "unique violation", err: pgError(pgerrcode.UniqueViolation), want: NonRetryable},
		{name: "syntax error", err: pgError(pgerrcode.SyntaxError), want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestPostgresErrorClassifier_UniqueViolation(t *testing.T) {
	c := NewPostgresErrorClassifier()

	column, ok := c.UniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_unique"})
	assert.True(t, ok)
	assert.Equal(t, "email", column)

	column, ok = c.UniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ColumnName: "username"})
	assert.True(t, ok)
	assert.Equal(t, "username", column)

	_, ok = c.UniqueViolation(pgError(pgerrcode.ForeignKeyViolation))
	assert.False(t, ok)

	_, ok = c.UniqueViolation(errors.New("UNIQUE constraint failed: users.email"))
	assert.False(t, ok)
}
