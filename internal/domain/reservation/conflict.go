package reservation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Conflict struct {
	ReservationID uuid.UUID
	Interval      Interval
	Status        Status
}

// ConflictError is returned when the requested interval overlaps blocking reservations.
// It matches ErrTableUnavailable.
type ConflictError struct {
	TableID   uuid.UUID
	Requested Interval
	Conflicts []Conflict
}

func NewConflictError(tableID uuid.UUID, requested Interval, overlapping []*Reservation) *ConflictError {
	conflicts := make([]Conflict, 0, len(overlapping))
	for _, r := range overlapping {
		conflicts = append(conflicts, Conflict{
			ReservationID: r.id,
			Interval:      r.interval,
			Status:        r.status,
		})
	}
	return &ConflictError{TableID: tableID, Requested: requested, Conflicts: conflicts}
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, c.Interval.String())
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s: table %s", ErrTableUnavailable.Error(), e.TableID)
	}
	return fmt.Sprintf("%s: table %s busy at %s", ErrTableUnavailable.Error(), e.TableID, strings.Join(parts, ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrTableUnavailable
}
