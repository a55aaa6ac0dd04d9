package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/infra/memstore"
	"table-booking/internal/testutil/builder"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithin_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	b := builder.NewReservationBuilder()
	store.AddTable(b.Table())
	res := b.BuildStored()

	boom := errors.New("boom")
	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Reservations().Create(ctx, res))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Reservations().FindByID(ctx, res.ID())
		return err
	})
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestWithin_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memstore.New().Within(ctx, func(context.Context, shared.Tx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestReservations_ExclusionAndForeignKeys(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	b := builder.NewReservationBuilder()
	store.AddTable(b.Table())

	first := b.BuildStored()
	overlapping := builder.NewReservationBuilder().WithTable(b.TableID).
		WithInterval(b.Start.Add(30*time.Minute), b.End.Add(30*time.Minute)).BuildStored()
	adjacent := builder.NewReservationBuilder().WithTable(b.TableID).
		WithInterval(b.End, b.End.Add(time.Hour)).BuildStored()
	cancelled := builder.NewReservationBuilder().WithTable(b.TableID).
		WithStatus(reservation.StatusCancelled).BuildStored()
	orphan := builder.NewReservationBuilder().BuildStored()

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()
		require.NoError(t, repo.Create(ctx, first))
		assert.True(t, infra.IsKind(repo.Create(ctx, first), infra.KindDuplicateKey))
		assert.True(t, infra.IsKind(repo.Create(ctx, overlapping), infra.KindConflict))
		assert.NoError(t, repo.Create(ctx, adjacent))
		assert.NoError(t, repo.Create(ctx, cancelled))
		assert.True(t, infra.IsKind(repo.Create(ctx, orphan), infra.KindForeignKeyViolated))

		found, err := repo.FindOverlapping(ctx, b.TableID, first.Interval(), nil)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, first.ID(), found[0].ID())

		excluded := first.ID()
		found, err = repo.FindOverlapping(ctx, b.TableID, first.Interval(), &excluded)
		require.NoError(t, err)
		assert.Empty(t, found)
		return nil
	})
	require.NoError(t, err)
}

func TestAudit_SequenceIsPerReservation(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	b := builder.NewReservationBuilder()
	store.AddTable(b.Table())
	one := b.BuildStored()
	two := builder.NewReservationBuilder().WithTable(b.TableID).
		WithInterval(b.End, b.End.Add(time.Hour)).BuildStored()

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Reservations().Create(ctx, one))
		require.NoError(t, tx.Reservations().Create(ctx, two))
		for i := 0; i < 3; i++ {
			entry, err := tx.Audit().Append(ctx, reservation.RecordCurrent(one, nil, b.Now))
			require.NoError(t, err)
			assert.Equal(t, i+1, entry.Sequence)
		}
		entry, err := tx.Audit().Append(ctx, reservation.RecordCurrent(two, nil, b.Now))
		require.NoError(t, err)
		assert.Equal(t, 1, entry.Sequence)

		_, err = tx.Audit().Append(ctx, reservation.RecordCurrent(builder.NewReservationBuilder().BuildStored(), nil, b.Now))
		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))

		entries, err := tx.Audit().ListByReservation(ctx, one.ID())
		require.NoError(t, err)
		assert.True(t, reservation.IsContiguous(entries))
		return nil
	})
	require.NoError(t, err)
}

func TestRecipients_ListManagers(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	b := builder.NewReservationBuilder()
	manager := recipient(*b.ManagerID)
	store.AddRecipient(manager, true)
	store.AddRecipient(recipient(uuid.New()), false)

	err := store.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Recipients().ListManagers(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, manager.ID, list[0].ID)
		return nil
	})
	require.NoError(t, err)
}

func recipient(id uuid.UUID) notification.Recipient {
	return notification.Recipient{ID: id, Name: "someone", Email: "someone@example.com"}
}
