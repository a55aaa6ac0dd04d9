package reservation

import (
	"strings"
	"time"

	"table-booking/internal/domain/actor"

	"github.com/google/uuid"
)

type Command struct {
	Event  Event
	Actor  actor.Actor
	Reason string
}

// Transition describes an applied status change. It is what the audit log records.
type Transition struct {
	ReservationID uuid.UUID
	Event         Event
	From          Status
	To            Status
	ActorID       *uuid.UUID
	At            time.Time
}

type guardFunc func(r *Reservation, cmd Command) error

type transitionRule struct {
	from  []Status
	to    Status
	guard guardFunc
}

var transitionRules = map[Event]transitionRule{
	EventConfirm: {
		from:  []Status{StatusPending},
		to:    StatusConfirmed,
		guard: departmentManagerGuard,
	},
	EventReject: {
		from:  []Status{StatusPending},
		to:    StatusRejected,
		guard: departmentManagerGuard,
	},
	EventCancel: {
		from:  []Status{StatusPending, StatusConfirmed},
		to:    StatusCancelled,
		guard: ownerCancelGuard,
	},
	EventStartService: {
		from:  []Status{StatusConfirmed},
		to:    StatusInService,
		guard: permissionGuard(actor.PermissionStartService),
	},
	EventCompleteService: {
		from:  []Status{StatusInService},
		to:    StatusCompleted,
		guard: permissionGuard(actor.PermissionCompleteService),
	},
	EventEmergencyCancel: {
		from:  []Status{StatusPending, StatusConfirmed},
		to:    StatusCancelled,
		guard: systemGuard,
	},
}

func departmentManagerGuard(r *Reservation, cmd Command) error {
	a := cmd.Actor
	if a.IsAdmin() {
		return nil
	}
	if a.HasRole(actor.RoleManager) && r.managerID != nil && *r.managerID == a.ID() {
		return nil
	}
	return ErrUnauthorized
}

func ownerCancelGuard(r *Reservation, cmd Command) error {
	if cmd.Actor.IsSystem() || cmd.Actor.ID() != r.customerID {
		return ErrUnauthorized
	}
	if strings.TrimSpace(cmd.Reason) == "" {
		return ErrReasonRequired
	}
	return nil
}

func permissionGuard(p actor.Permission) guardFunc {
	return func(_ *Reservation, cmd Command) error {
		if cmd.Actor.IsAdmin() || cmd.Actor.HasPermission(p) {
			return nil
		}
		return ErrUnauthorized
	}
}

func systemGuard(_ *Reservation, cmd Command) error {
	if !cmd.Actor.IsSystem() {
		return ErrUnauthorized
	}
	return nil
}

// Apply runs one lifecycle event. Source state is checked before the guard,
// and nothing is mutated when either check fails.
func (r *Reservation) Apply(cmd Command, now time.Time) (Transition, error) {
	rule, ok := transitionRules[cmd.Event]
	if !ok {
		return Transition{}, ErrInvalidEvent
	}
	if r.IsDeleted() || !containsStatus(rule.from, r.status) {
		return Transition{}, ErrInvalidTransition
	}
	if err := rule.guard(r, cmd); err != nil {
		return Transition{}, err
	}

	from := r.status
	r.status = rule.to
	r.updatedAt = now
	if rule.to == StatusCancelled {
		reason := strings.TrimSpace(cmd.Reason)
		r.cancellationReason = &reason
	}

	return Transition{
		ReservationID: r.id,
		Event:         cmd.Event,
		From:          from,
		To:            rule.to,
		ActorID:       cmd.Actor.AuditID(),
		At:            now,
	}, nil
}

// AvailableEvents lists events whose source state matches; guards are not evaluated.
func (r *Reservation) AvailableEvents() []Event {
	if r.IsDeleted() {
		return nil
	}
	order := []Event{EventConfirm, EventReject, EventCancel, EventStartService, EventCompleteService}
	var events []Event
	for _, ev := range order {
		if containsStatus(transitionRules[ev].from, r.status) {
			events = append(events, ev)
		}
	}
	return events
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
