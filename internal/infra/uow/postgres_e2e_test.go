//go:build e2e

package uow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra/query"
	"table-booking/internal/infra/uow"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/testutil/pgtest"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type collectingQueue struct {
	mu    sync.Mutex
	tasks []shared.NotificationTask
}

func (q *collectingQueue) Enqueue(_ context.Context, task shared.NotificationTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

type PostgresSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	uow   shared.UnitOfWork
	clock *clock.MockClock
	queue *collectingQueue
	dir   pgtest.Directory

	customer actor.Actor
	manager  actor.Actor
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupTest() {
	s.pool, _ = pgtest.NewDatabase(s.T())
	s.uow = uow.NewPostgresUoW(s.pool, query.New())
	s.clock = clock.NewMockClock(time.Date(2030, 6, 1, 8, 0, 0, 0, time.UTC))
	s.queue = &collectingQueue{}
	s.dir = pgtest.SeedDirectory(s.T(), s.pool, 4)
	s.customer = actor.New(s.dir.CustomerID, []actor.Role{actor.RoleCustomer}, []actor.Permission{actor.PermissionBookTable})
	s.manager = actor.New(s.dir.ManagerID, []actor.Role{actor.RoleManager}, nil)
}

func (s *PostgresSuite) reservations() commands.ReservationCommands {
	return commands.NewReservationUseCase(s.uow, commands.NewConflictResolver(s.clock), s.queue, shared.NoopAvailabilityCache{}, s.clock, time.UTC)
}

func at(hour int) time.Time {
	return time.Date(2030, 6, 1, hour, 0, 0, 0, time.UTC)
}

func (s *PostgresSuite) book(table uuid.UUID, start, end time.Time) (*reservation.Reservation, error) {
	return s.reservations().CreateReservation(context.Background(), s.customer, commands.CreateReservationInput{
		TableID: table, Start: start, End: end, GuestCount: 2,
	})
}

func (s *PostgresSuite) TestBookingBoundariesAndConflicts() {
	first, err := s.book(s.dir.TableID, at(10), at(12))
	s.Require().NoError(err)
	s.Equal(&s.dir.ManagerID, first.ManagerID())

	_, err = s.book(s.dir.TableID, at(12), at(14))
	s.Require().NoError(err, "adjacent interval is admitted")

	_, err = s.book(s.dir.TableID, at(11), at(13))
	var conflict *reservation.ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.ErrorIs(err, reservation.ErrTableUnavailable)
	s.Len(conflict.Conflicts, 2)

	_, err = s.reservations().Transition(context.Background(), s.customer, first.ID(), commands.TransitionInput{
		Event: reservation.EventCancel, Reason: "plans changed",
	})
	s.Require().NoError(err)

	_, err = s.book(s.dir.TableID, at(10), at(12))
	s.NoError(err, "cancelled reservations no longer block")
}

func (s *PostgresSuite) TestConcurrentBookingRace() {
	const workers = 12
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.book(s.dir.TableID, at(18), at(20))
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			s.ErrorIs(err, reservation.ErrTableUnavailable)
		}()
	}
	wg.Wait()
	s.Equal(1, success)
}

func (s *PostgresSuite) TestAuditSequenceAndStateMachine() {
	ctx := context.Background()
	res, err := s.book(s.dir.TableID, at(10), at(12))
	s.Require().NoError(err)

	admin := actor.New(uuid.New(), []actor.Role{actor.RoleAdmin}, nil)
	for _, ev := range []reservation.Event{reservation.EventConfirm, reservation.EventStartService, reservation.EventCompleteService} {
		_, err := s.reservations().Transition(ctx, admin, res.ID(), commands.TransitionInput{Event: ev})
		s.Require().NoError(err, ev.String())
	}

	_, err = s.reservations().Transition(ctx, admin, res.ID(), commands.TransitionInput{Event: reservation.EventConfirm})
	s.ErrorIs(err, reservation.ErrInvalidTransition)

	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		entries, err := tx.Audit().ListByReservation(ctx, res.ID())
		if err != nil {
			return err
		}
		s.Len(entries, 4)
		s.True(reservation.IsContiguous(entries))
		s.Equal(reservation.StatusCompleted, entries[3].Status)
		return nil
	})
	s.Require().NoError(err)
	s.Len(s.queue.tasks, 1, "completion requests a rating")
}

func (s *PostgresSuite) TestEmergencyCascade() {
	ctx := context.Background()
	tableB := s.dir.AddTable(s.T(), s.pool, 6)

	a, err := s.book(s.dir.TableID, at(10), at(12))
	s.Require().NoError(err)
	b, err := s.book(tableB, at(12), at(14))
	s.Require().NoError(err)
	c, err := s.book(s.dir.TableID, at(14), at(15))
	s.Require().NoError(err)

	admin := actor.New(uuid.New(), []actor.Role{actor.RoleAdmin}, nil)
	emergencies := commands.NewEmergencyUseCase(s.uow, s.queue, shared.NoopAvailabilityCache{}, s.clock, time.UTC)
	_, result, err := emergencies.DeclareEmergency(ctx, admin, commands.CreateEmergencyInput{Name: "Flood", Start: at(11), End: at(13)})
	s.Require().NoError(err)
	s.ElementsMatch([]uuid.UUID{a.ID(), b.ID()}, result.Cancelled)
	s.Empty(result.Failed)

	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, id := range []uuid.UUID{a.ID(), b.ID()} {
			r, err := tx.Reservations().FindByID(ctx, id)
			s.Require().NoError(err)
			s.Equal(reservation.StatusCancelled, r.Status())
			s.Require().NotNil(r.CancellationReason())
			s.Equal("Emergency closure: Flood", *r.CancellationReason())
		}
		untouched, err := tx.Reservations().FindByID(ctx, c.ID())
		s.Require().NoError(err)
		s.Equal(reservation.StatusPending, untouched.Status())
		return nil
	})
	s.Require().NoError(err)
}

func (s *PostgresSuite) TestNotificationLogUpsert() {
	ctx := context.Background()
	params := shared.BeginAttemptParams{
		RecipientID: s.dir.CustomerID,
		Channel:     notification.ChannelTelegram,
		Reason:      notification.ReasonEmergencyClosure,
		SubjectKey:  uuid.NewString(),
		Description: "Flood",
		At:          at(9),
	}

	var firstID uuid.UUID
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entry, err := tx.Notifications().BeginAttempt(ctx, params)
		if err != nil {
			return err
		}
		firstID = entry.ID
		lastErr := "bot blocked"
		_, err = tx.Notifications().RecordAttempt(ctx, shared.RecordAttemptParams{
			ID: entry.ID, Status: notification.StatusFailed, Attempts: 3, LastError: &lastErr, At: at(9),
		})
		return err
	})
	s.Require().NoError(err)

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entry, err := tx.Notifications().BeginAttempt(ctx, params)
		if err != nil {
			return err
		}
		s.Equal(firstID, entry.ID, "retry reopens the live row")
		s.Equal(notification.StatusAttempting, entry.Status)
		s.Equal(3, entry.Attempts)
		return nil
	})
	s.Require().NoError(err)

	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		list, err := tx.Notifications().List(ctx, shared.NotificationLogFilter{RecipientID: &s.dir.CustomerID, Limit: 10})
		if err != nil {
			return err
		}
		s.Len(list, 1)
		return nil
	})
	require.NoError(s.T(), err)
}
