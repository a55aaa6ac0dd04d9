// Package memstore is an in-process unit of work for local runs and tests.
// Transactions are serialized by one mutex and work on a copy of the state
// that replaces the committed state only when fn succeeds.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type emergencyRow struct {
	ID          uuid.UUID
	Name        string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	CreatedBy   *uuid.UUID
	CreatedAt   time.Time
}

type state struct {
	reservations map[uuid.UUID]reservation.Snapshot
	audit        map[uuid.UUID][]reservation.AuditEntry
	logs         []notification.LogEntry
	emergencies  map[uuid.UUID]emergencyRow
	tables       map[uuid.UUID]reservation.TableSpec
	recipients   map[uuid.UUID]notification.Recipient
	managers     map[uuid.UUID]struct{}
}

func newState() *state {
	return &state{
		reservations: map[uuid.UUID]reservation.Snapshot{},
		audit:        map[uuid.UUID][]reservation.AuditEntry{},
		emergencies:  map[uuid.UUID]emergencyRow{},
		tables:       map[uuid.UUID]reservation.TableSpec{},
		recipients:   map[uuid.UUID]notification.Recipient{},
		managers:     map[uuid.UUID]struct{}{},
	}
}

func (s *state) clone() *state {
	audit := make(map[uuid.UUID][]reservation.AuditEntry, len(s.audit))
	for id, entries := range s.audit {
		audit[id] = slices.Clone(entries)
	}
	return &state{
		reservations: maps.Clone(s.reservations),
		audit:        audit,
		logs:         slices.Clone(s.logs),
		emergencies:  maps.Clone(s.emergencies),
		tables:       maps.Clone(s.tables),
		recipients:   maps.Clone(s.recipients),
		managers:     maps.Clone(s.managers),
	}
}

type Store struct {
	mu    sync.Mutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(ctx, &memTx{state: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &memTx{state: s.state.clone()})
}

// AddTable registers a restaurant table owned by the external directory.
func (s *Store) AddTable(t reservation.TableSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.tables[t.ID] = t
}

// AddRecipient registers a user; managers receive daily reports.
func (s *Store) AddRecipient(r notification.Recipient, manager bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.recipients[r.ID] = r
	if manager {
		s.state.managers[r.ID] = struct{}{}
	}
}

type memTx struct {
	state *state
}

func (t *memTx) Reservations() shared.ReservationRepository { return &reservationRepo{state: t.state} }
func (t *memTx) Audit() shared.AuditRepository              { return &auditRepo{state: t.state} }
func (t *memTx) Notifications() shared.NotificationLogRepository {
	return &notificationLogRepo{state: t.state}
}
func (t *memTx) Emergencies() shared.EmergencyRepository { return &emergencyRepo{state: t.state} }
func (t *memTx) Tables() shared.TableReadStore           { return &tableStore{state: t.state} }
func (t *memTx) Recipients() shared.RecipientReadStore   { return &recipientStore{state: t.state} }
