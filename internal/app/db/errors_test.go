package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	req := require.New(t)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "participants_name_key"}
	req.True(IsUniqueViolation(dup))
	req.True(IsUniqueViolation(fmt.Errorf("insert participant: %w", dup)))

	req.False(IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	req.False(IsUniqueViolation(errors.New("connection refused")))
	req.False(IsUniqueViolation(nil))
}
