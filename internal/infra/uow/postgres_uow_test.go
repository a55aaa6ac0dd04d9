package uow

import (
	"context"
	"errors"
	"testing"

	"table-booking/internal/infra/query"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs     []*fakeTx
	options []pgx.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	b.options = append(b.options, opts)
	return tx, nil
}

func newTestUoW(b *fakeBeginner) *PostgresUoW {
	u := newPostgresUoW(b, query.New())
	u.baseDelay = 0
	return u
}

func TestWithin_RetriesSerializationFailures(t *testing.T) {
	b := &fakeBeginner{}
	u := newTestUoW(b)

	calls := 0
	err := u.Within(context.Background(), func(_ context.Context, tx shared.Tx) error {
		calls++
		assert.NotNil(t, tx.Reservations())
		if calls < 3 {
			return &pgconn.PgError{Code: pgErrCodeSerializationFailure}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, b.txs, 3)
	assert.True(t, b.txs[0].rolledBack)
	assert.True(t, b.txs[1].rolledBack)
	assert.True(t, b.txs[2].committed)
	assert.Equal(t, pgx.ReadCommitted, b.options[0].IsoLevel)
}

func TestWithin_GivesUpAfterMaxRetries(t *testing.T) {
	b := &fakeBeginner{}
	u := newTestUoW(b)

	err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
		return &pgconn.PgError{Code: pgErrCodeDeadlockDetected}
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errMaxRetriesExceeded))
	assert.Len(t, b.txs, u.maxRetries+1)
}

func TestWithin_DoesNotRetryOtherErrors(t *testing.T) {
	b := &fakeBeginner{}
	u := newTestUoW(b)
	boom := errors.New("boom")

	err := u.Within(context.Background(), func(context.Context, shared.Tx) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Len(t, b.txs, 1)
	assert.True(t, b.txs[0].rolledBack)
}

func TestWithinReadOnly(t *testing.T) {
	b := &fakeBeginner{}
	u := newTestUoW(b)

	err := u.WithinReadOnly(context.Background(), func(_ context.Context, tx shared.Tx) error {
		assert.Same(t, tx.Audit(), tx.Audit(), "repositories are cached per transaction")
		return nil
	})
	require.NoError(t, err)
	require.Len(t, b.txs, 1)
	assert.True(t, b.txs[0].committed)
	assert.Equal(t, pgx.ReadOnly, b.options[0].AccessMode)
}
