package emergency

import (
	"errors"
	"strings"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

const cancellationPrefix = "Emergency closure: "

const MaxNameLength = 200

var (
	ErrInvalidName  = errors.New("emergency name is required")
	ErrNameTooLong  = errors.New("emergency name is too long")
	ErrUnauthorized = errors.New("actor is not allowed to trigger emergencies")
)

// Window is a forced closure period. Every blocking reservation overlapping it is cancelled.
type Window struct {
	id          uuid.UUID
	name        string
	description string
	interval    reservation.Interval
	createdBy   *uuid.UUID
	createdAt   time.Time
}

// Authorize reports whether the actor may declare or trigger closures.
func Authorize(a actor.Actor) error {
	if a.IsSystem() || a.IsAdmin() || a.HasPermission(actor.PermissionTriggerEmergency) {
		return nil
	}
	return ErrUnauthorized
}

func NewWindow(name, description string, start, end time.Time, createdBy actor.Actor, now time.Time) (*Window, error) {
	if err := Authorize(createdBy); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	interval, err := reservation.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	return &Window{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(description),
		interval:    interval,
		createdBy:   createdBy.AuditID(),
		createdAt:   now,
	}, nil
}

func Reconstruct(id uuid.UUID, name, description string, start, end time.Time, createdBy *uuid.UUID, createdAt time.Time) (*Window, error) {
	interval, err := reservation.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	return &Window{
		id:          id,
		name:        name,
		description: description,
		interval:    interval,
		createdBy:   createdBy,
		createdAt:   createdAt,
	}, nil
}

func (w *Window) ID() uuid.UUID                  { return w.id }
func (w *Window) Name() string                   { return w.name }
func (w *Window) Description() string            { return w.description }
func (w *Window) Interval() reservation.Interval { return w.interval }
func (w *Window) CreatedBy() *uuid.UUID          { return w.createdBy }
func (w *Window) CreatedAt() time.Time           { return w.createdAt }

// CancellationReason is stored on every reservation the closure cancels.
func (w *Window) CancellationReason() string {
	return cancellationPrefix + w.name
}

// CancelCommand builds the system-issued event that cancels one affected reservation.
func (w *Window) CancelCommand() reservation.Command {
	return reservation.Command{
		Event:  reservation.EventEmergencyCancel,
		Actor:  actor.System(),
		Reason: w.CancellationReason(),
	}
}
