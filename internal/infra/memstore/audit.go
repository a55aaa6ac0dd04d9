package memstore

import (
	"context"
	"slices"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"

	"github.com/google/uuid"
)

type auditRepo struct {
	state *state
}

func (r *auditRepo) Append(_ context.Context, rec reservation.AuditRecord) (reservation.AuditEntry, error) {
	if _, ok := r.state.reservations[rec.ReservationID]; !ok {
		return reservation.AuditEntry{}, infra.NewRepoErr(infra.KindForeignKeyViolated, "reservation does not exist")
	}
	entries := r.state.audit[rec.ReservationID]
	next := 1
	if n := len(entries); n > 0 {
		next = entries[n-1].Sequence + 1
	}
	entry := rec.WithSequence(next)
	r.state.audit[rec.ReservationID] = append(entries, entry)
	return entry, nil
}

func (r *auditRepo) ListByReservation(_ context.Context, reservationID uuid.UUID) ([]reservation.AuditEntry, error) {
	return slices.Clone(r.state.audit[reservationID]), nil
}
