package shared

import (
	"context"
	"time"

	"table-booking/internal/domain/emergency"
	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Reservations() ReservationRepository
	Audit() AuditRepository
	Notifications() NotificationLogRepository
	Emergencies() EmergencyRepository
	Tables() TableReadStore
	Recipients() RecipientReadStore
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	// FindByID returns soft-deleted reservations too.
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// LockByID loads the reservation row FOR UPDATE.
	LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Save(ctx context.Context, r *reservation.Reservation) error
	// FindOverlapping returns blocking, non-deleted reservations on the table
	// overlapping the half-open interval.
	FindOverlapping(ctx context.Context, tableID uuid.UUID, interval reservation.Interval, excludeID *uuid.UUID) ([]*reservation.Reservation, error)
	FindOverlappingAcrossWindow(ctx context.Context, interval reservation.Interval) ([]*reservation.Reservation, error)
	// ListByManager returns non-deleted reservations of any status starting inside the interval.
	ListByManager(ctx context.Context, managerID uuid.UUID, interval reservation.Interval) ([]*reservation.Reservation, error)
}

type AuditRepository interface {
	// Append assigns max(sequence)+1 for the reservation.
	Append(ctx context.Context, rec reservation.AuditRecord) (reservation.AuditEntry, error)
	ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]reservation.AuditEntry, error)
}

type BeginAttemptParams struct {
	RecipientID uuid.UUID
	Channel     notification.Channel
	Reason      notification.Reason
	SubjectKey  string
	Description string
	At          time.Time
}

type RecordAttemptParams struct {
	ID        uuid.UUID
	Status    notification.Status
	Attempts  int
	LastError *string
	At        time.Time
}

// NotificationLogFilter lists newest first by (created_at, id); Before* is an exclusive keyset cursor.
type NotificationLogFilter struct {
	RecipientID     *uuid.UUID
	Status          *notification.Status
	BeforeCreatedAt *time.Time
	BeforeID        *uuid.UUID
	Limit           int
}

type NotificationLogRepository interface {
	// BeginAttempt upserts the live row for (recipient, reason, subject key) in status attempting.
	BeginAttempt(ctx context.Context, p BeginAttemptParams) (notification.LogEntry, error)
	RecordAttempt(ctx context.Context, p RecordAttemptParams) (notification.LogEntry, error)
	List(ctx context.Context, filter NotificationLogFilter) ([]notification.LogEntry, error)
}

type EmergencyRepository interface {
	Create(ctx context.Context, w *emergency.Window) error
	FindByID(ctx context.Context, id uuid.UUID) (*emergency.Window, error)
}

type TableReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (reservation.TableSpec, error)
	// LockForBooking locks the table row FOR UPDATE, serializing admission per table.
	LockForBooking(ctx context.Context, id uuid.UUID) (reservation.TableSpec, error)
}

type RecipientReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (notification.Recipient, error)
	ListManagers(ctx context.Context) ([]notification.Recipient, error)
}
