//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"rentalhub/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr_ClassifiesDriverErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{
			name: "no rows maps to not found",
			err:  pgx.ErrNoRows,
			want: infra.KindNotFound,
		},
		{
			name: "unique violation maps to duplicate key",
			err:  &pgconn.PgError{Code: "23505"},
			want: infra.KindDuplicateKey,
		},
		{
			name: "foreign key violation maps to foreign key violated",
			err:  &pgconn.PgError{Code: "23503"},
			want: infra.KindForeignKeyViolated,
		},
		{
			name: "exclusion violation maps to conflict",
			err:  &pgconn.PgError{Code: "23P01"},
			want: infra.KindConflict,
		},
		{
			name: "unknown error maps to db failure",
			err:  errors.New("connection reset"),
			want: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("query failed", tt.err)
			assert.True(t, infra.IsKind(wrapped, tt.want))
		})
	}
}

func TestWrapRepoErr_ExplicitKindWins(t *testing.T) {
	err := infra.WrapRepoErr("period overlaps an existing booking", nil, infra.KindConflict)
	assert.True(t, infra.IsKind(err, infra.KindConflict))
	assert.False(t, infra.IsKind(err, infra.KindNotFound))

	// Explicit kind overrides whatever classify would have said.
	err = infra.WrapRepoErr("booking not found", &pgconn.PgError{Code: "23505"}, infra.KindNotFound)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestIsKind_NonRepositoryError(t *testing.T) {
	assert.False(t, infra.IsKind(errors.New("plain"), infra.KindDBFailure))
}
