package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra/memstore"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/commands/mocks"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2030, 6, 1, 8, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2030, 6, 1, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	store    *memstore.Store
	clock    *clock.MockClock
	queue    *mocks.MockTaskQueue
	cache    *recordingCache
	resolver *commands.ConflictResolver

	tableA    reservation.TableSpec
	tableB    reservation.TableSpec
	manager   actor.Actor
	admin     actor.Actor
	staff     actor.Actor
	customer  actor.Actor
	customer2 actor.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	managerID := uuid.New()
	f := &fixture{
		store:     memstore.New(),
		clock:     clock.NewMockClock(now),
		queue:     mocks.NewMockTaskQueue(ctrl),
		cache:     &recordingCache{},
		manager:   actor.New(managerID, []actor.Role{actor.RoleManager}, nil),
		admin:     actor.New(uuid.New(), []actor.Role{actor.RoleAdmin}, nil),
		staff:     actor.New(uuid.New(), []actor.Role{actor.RoleStaff}, []actor.Permission{actor.PermissionStartService, actor.PermissionCompleteService}),
		customer:  actor.New(uuid.New(), []actor.Role{actor.RoleCustomer}, []actor.Permission{actor.PermissionBookTable}),
		customer2: actor.New(uuid.New(), []actor.Role{actor.RoleCustomer}, []actor.Permission{actor.PermissionBookTable}),
	}
	f.resolver = commands.NewConflictResolver(f.clock)
	f.tableA = reservation.TableSpec{ID: uuid.New(), ManagerID: &managerID, Capacity: 4}
	f.tableB = reservation.TableSpec{ID: uuid.New(), ManagerID: &managerID, Capacity: 6}
	f.store.AddTable(f.tableA)
	f.store.AddTable(f.tableB)

	f.store.AddRecipient(notification.Recipient{ID: managerID, Name: "Mia Manager", Email: "mia@example.com", PreferredChannel: notification.ChannelMail}, true)
	f.store.AddRecipient(notification.Recipient{ID: f.customer.ID(), Name: "Carl", TelegramChatID: "1001", PreferredChannel: notification.ChannelTelegram}, false)
	f.store.AddRecipient(notification.Recipient{ID: f.customer2.ID(), Name: "Cora"}, false)
	return f
}

func (f *fixture) reservations() commands.ReservationCommands {
	return commands.NewReservationUseCase(f.store, f.resolver, f.queue, f.cache, f.clock, time.UTC)
}

func (f *fixture) book(t *testing.T, who actor.Actor, table reservation.TableSpec, start, end time.Time) *reservation.Reservation {
	t.Helper()
	res, err := f.reservations().CreateReservation(context.Background(), who, commands.CreateReservationInput{
		TableID:    table.ID,
		Start:      start,
		End:        end,
		GuestCount: 2,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) load(t *testing.T, id uuid.UUID) *reservation.Reservation {
	t.Helper()
	var res *reservation.Reservation
	err := f.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = tx.Reservations().FindByID(ctx, id)
		return err
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) audit(t *testing.T, id uuid.UUID) []reservation.AuditEntry {
	t.Helper()
	var entries []reservation.AuditEntry
	err := f.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		entries, err = tx.Audit().ListByReservation(ctx, id)
		return err
	})
	require.NoError(t, err)
	return entries
}

func (f *fixture) logs(t *testing.T) []notification.LogEntry {
	t.Helper()
	var entries []notification.LogEntry
	err := f.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		entries, err = tx.Notifications().List(ctx, shared.NotificationLogFilter{})
		return err
	})
	require.NoError(t, err)
	return entries
}

type recordingCache struct {
	mu          sync.Mutex
	invalidated []uuid.UUID
}

func (c *recordingCache) Get(context.Context, uuid.UUID, time.Time) ([]shared.BusyInterval, bool, error) {
	return nil, false, nil
}

func (c *recordingCache) Set(context.Context, uuid.UUID, time.Time, []shared.BusyInterval) error {
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, tableID uuid.UUID, _ ...time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, tableID)
	return nil
}

func (c *recordingCache) count(tableID uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, id := range c.invalidated {
		if id == tableID {
			n++
		}
	}
	return n
}
