package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			"email constraint",
			&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"},
			ErrDuplicateEmail,
		},
		{
			"phone constraint",
			&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_phone"},
			ErrDuplicatePhone,
		},
		{
			"wrapped by the driver",
			fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}),
			ErrDuplicateEmail,
		},
		{
			"other postgres error",
			&pgconn.PgError{Code: "23503", ConstraintName: "fk_users_wallet"},
			nil,
		},
		{
			"plain error mentioning duplicates",
			errors.New(`duplicate key value violates unique constraint "idx_users_email"`),
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueViolation(tt.err))
		})
	}
}
