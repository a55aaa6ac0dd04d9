package reservation

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one row of a reservation's append-only status ledger.
// Sequence numbers start at 1 and have no gaps.
type AuditEntry struct {
	ReservationID uuid.UUID
	Sequence      int
	Status        Status
	ActorID       *uuid.UUID
	RecordedAt    time.Time
}

// AuditRecord is what callers hand to the audit log; the sequence is assigned on append.
type AuditRecord struct {
	ReservationID uuid.UUID
	Status        Status
	ActorID       *uuid.UUID
	RecordedAt    time.Time
}

func RecordCreation(r *Reservation, actorID *uuid.UUID) AuditRecord {
	return AuditRecord{
		ReservationID: r.id,
		Status:        r.status,
		ActorID:       actorID,
		RecordedAt:    r.createdAt,
	}
}

func RecordTransition(t Transition) AuditRecord {
	return AuditRecord{
		ReservationID: t.ReservationID,
		Status:        t.To,
		ActorID:       t.ActorID,
		RecordedAt:    t.At,
	}
}

// RecordCurrent records the current status, used by soft delete and restore.
func RecordCurrent(r *Reservation, actorID *uuid.UUID, at time.Time) AuditRecord {
	return AuditRecord{
		ReservationID: r.id,
		Status:        r.status,
		ActorID:       actorID,
		RecordedAt:    at,
	}
}

func (a AuditRecord) WithSequence(seq int) AuditEntry {
	return AuditEntry{
		ReservationID: a.ReservationID,
		Sequence:      seq,
		Status:        a.Status,
		ActorID:       a.ActorID,
		RecordedAt:    a.RecordedAt,
	}
}

// IsContiguous reports whether entries are numbered 1..N in order.
func IsContiguous(entries []AuditEntry) bool {
	for i, e := range entries {
		if e.Sequence != i+1 {
			return false
		}
	}
	return true
}
