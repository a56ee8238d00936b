package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"matching constraint", dup, "users_email_key", true},
		{"any constraint", dup, "", true},
		{"different constraint", dup, "tax_profiles_user_id_assessment_year_key", false},
		{"wrapped", fmt.Errorf("insert user: %w", dup), "users_email_key", true},
		{"other pg error", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "users_email_key", false},
		{"non-pg error", errors.New("connection reset"), "users_email_key", false},
		{"nil", nil, "users_email_key", false},
	}
	for _, tc := range tests {
		if got := IsUniqueViolation(tc.err, tc.constraint); got != tc.want {
			t.Errorf("%s: IsUniqueViolation = %v, want %v", tc.name, got, tc.want)
		}
	}
}
