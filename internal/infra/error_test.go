package infra_test

import (
	"errors"
	"testing"

	"table-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, kind: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, kind: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, kind: infra.KindForeignKeyViolated},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, kind: infra.KindConflict},
		{name: "anything else", err: errors.New("connection reset"), kind: infra.KindDBFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := infra.WrapRepoErr("failed to do something", tt.err)
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tt.kind))
			assert.Contains(t, err.Error(), "failed to do something")
		})
	}
}

func TestWrapRepoErr_KeepsCause(t *testing.T) {
	deadlock := &pgconn.PgError{Code: "40P01"}
	err := infra.WrapRepoErr("failed to lock", deadlock)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "40P01", pgErr.Code)
}

func TestWrapRepoErr_AlreadyClassified(t *testing.T) {
	inner := infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	err := infra.WrapRepoErr("outer", inner)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.Nil(t, infra.WrapRepoErr("nothing", nil))
}
