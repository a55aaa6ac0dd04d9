package reservation

import (
	"errors"
	"fmt"
	"time"

	"table-booking/internal/domain/actor"

	"github.com/google/uuid"
)

var (
	ErrInvalidInterval    = errors.New("invalid reservation interval")
	ErrInvalidGuestCount  = errors.New("guest count must be at least 1")
	ErrCapacityExceeded   = errors.New("guest count exceeds table capacity")
	ErrServicesTooLong    = errors.New("services description is too long")
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrInvalidEvent       = errors.New("invalid reservation event")
	ErrInvalidTransition  = errors.New("transition not allowed from current status")
	ErrUnauthorized       = errors.New("actor is not allowed to perform this action")
	ErrReasonRequired     = errors.New("cancellation reason is required")
	ErrTableUnavailable   = errors.New("table is unavailable for the requested interval")
	ErrAlreadyDeleted     = errors.New("reservation is already deleted")
	ErrNotDeleted         = errors.New("reservation is not deleted")
	ErrNotEditable        = errors.New("reservation can no longer be edited")
	ErrInvalidReservation = errors.New("invalid reservation")

	ErrStartInPast = fmt.Errorf("%w: start is in the past", ErrInvalidInterval)
)

// TableSpec is the slice of a restaurant table the booking flow needs.
type TableSpec struct {
	ID        uuid.UUID
	ManagerID *uuid.UUID
	Capacity  int
}

type Reservation struct {
	id                 uuid.UUID
	tableID            uuid.UUID
	customerID         uuid.UUID
	managerID          *uuid.UUID
	interval           Interval
	guestCount         GuestCount
	services           Services
	status             Status
	cancellationReason *string
	ratingEmailSentAt  *time.Time
	createdAt          time.Time
	updatedAt          time.Time
	deletedAt          *time.Time
}

// NewReservation builds a pending reservation. Conflicts are resolved by the caller.
func NewReservation(
	table TableSpec,
	customer actor.Actor,
	interval Interval,
	guests GuestCount,
	services Services,
	now time.Time,
) (*Reservation, error) {
	if customer.IsSystem() || customer.ID() == uuid.Nil || !customer.HasPermission(actor.PermissionBookTable) {
		return nil, ErrUnauthorized
	}
	if table.ID == uuid.Nil {
		return nil, ErrInvalidReservation
	}
	if table.Capacity > 0 && guests.Int() > table.Capacity {
		return nil, ErrCapacityExceeded
	}

	return &Reservation{
		id:         uuid.New(),
		tableID:    table.ID,
		customerID: customer.ID(),
		managerID:  table.ManagerID,
		interval:   interval,
		guestCount: guests,
		services:   services,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Snapshot is the flat persistence shape of a reservation.
type Snapshot struct {
	ID                 uuid.UUID
	TableID            uuid.UUID
	CustomerID         uuid.UUID
	ManagerID          *uuid.UUID
	StartAt            time.Time
	EndAt              time.Time
	GuestCount         int
	Services           string
	Status             Status
	CancellationReason *string
	RatingEmailSentAt  *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// Reconstruct rebuilds a reservation from storage without re-running booking rules.
func Reconstruct(s Snapshot) (*Reservation, error) {
	interval, err := NewInterval(s.StartAt, s.EndAt)
	if err != nil {
		return nil, err
	}
	if !s.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	guests, err := NewGuestCount(s.GuestCount)
	if err != nil {
		return nil, err
	}
	return &Reservation{
		id:                 s.ID,
		tableID:            s.TableID,
		customerID:         s.CustomerID,
		managerID:          s.ManagerID,
		interval:           interval,
		guestCount:         guests,
		services:           Services{value: s.Services},
		status:             s.Status,
		cancellationReason: s.CancellationReason,
		ratingEmailSentAt:  s.RatingEmailSentAt,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		deletedAt:          s.DeletedAt,
	}, nil
}

func (r *Reservation) Snapshot() Snapshot {
	return Snapshot{
		ID:                 r.id,
		TableID:            r.tableID,
		CustomerID:         r.customerID,
		ManagerID:          r.managerID,
		StartAt:            r.interval.Start(),
		EndAt:              r.interval.End(),
		GuestCount:         r.guestCount.Int(),
		Services:           r.services.String(),
		Status:             r.status,
		CancellationReason: r.cancellationReason,
		RatingEmailSentAt:  r.ratingEmailSentAt,
		CreatedAt:          r.createdAt,
		UpdatedAt:          r.updatedAt,
		DeletedAt:          r.deletedAt,
	}
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) TableID() uuid.UUID          { return r.tableID }
func (r *Reservation) CustomerID() uuid.UUID       { return r.customerID }
func (r *Reservation) ManagerID() *uuid.UUID       { return r.managerID }
func (r *Reservation) Interval() Interval          { return r.interval }
func (r *Reservation) GuestCount() GuestCount      { return r.guestCount }
func (r *Reservation) Services() Services          { return r.services }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) CancellationReason() *string { return r.cancellationReason }
func (r *Reservation) RatingEmailSentAt() *time.Time {
	return r.ratingEmailSentAt
}
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
func (r *Reservation) DeletedAt() *time.Time { return r.deletedAt }

func (r *Reservation) IsDeleted() bool {
	return r.deletedAt != nil
}

// IsBlocking reports whether the reservation currently holds its table.
func (r *Reservation) IsBlocking() bool {
	return !r.IsDeleted() && r.status.IsBlocking()
}

// Reschedule is the owner's edit flow. The new interval still has to pass conflict resolution.
func (r *Reservation) Reschedule(a actor.Actor, interval Interval, guests GuestCount, services Services, capacity int, now time.Time) error {
	if err := r.CanReschedule(a); err != nil {
		return err
	}
	if capacity > 0 && guests.Int() > capacity {
		return ErrCapacityExceeded
	}
	r.interval = interval
	r.guestCount = guests
	r.services = services
	r.updatedAt = now
	return nil
}

func (r *Reservation) CanReschedule(a actor.Actor) error {
	if a.IsSystem() || a.ID() != r.customerID {
		return ErrUnauthorized
	}
	if r.IsDeleted() || (r.status != StatusPending && r.status != StatusConfirmed) {
		return ErrNotEditable
	}
	return nil
}

func (r *Reservation) SoftDelete(a actor.Actor, now time.Time) error {
	if !a.IsAdmin() {
		return ErrUnauthorized
	}
	if r.IsDeleted() {
		return ErrAlreadyDeleted
	}
	t := now
	r.deletedAt = &t
	r.updatedAt = now
	return nil
}

func (r *Reservation) Restore(a actor.Actor, now time.Time) error {
	if !a.IsAdmin() {
		return ErrUnauthorized
	}
	if !r.IsDeleted() {
		return ErrNotDeleted
	}
	r.deletedAt = nil
	r.updatedAt = now
	return nil
}

// MarkRatingEmailSent is idempotent; the first timestamp wins.
func (r *Reservation) MarkRatingEmailSent(now time.Time) bool {
	if r.ratingEmailSentAt != nil {
		return false
	}
	t := now
	r.ratingEmailSentAt = &t
	r.updatedAt = now
	return true
}
