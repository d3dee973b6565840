package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"go-hrms/internal/shared/dberr"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, dberr.IsUniqueViolation(nil))
	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062})))
	assert.True(t, dberr.IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`)))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, dberr.IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, dberr.IsForeignKeyViolation(&mysql.MySQLError{Number: 1451}))
	assert.False(t, dberr.IsForeignKeyViolation(errors.New("x")))
}
