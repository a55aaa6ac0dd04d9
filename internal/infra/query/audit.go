package query

import (
	"context"

	"github.com/google/uuid"
)

// The sequence is computed under the reservation row lock held by the caller;
// the unique (reservation_id, sequence) key rejects any gap-filling race.
const appendAuditEntry = `
INSERT INTO reservation_audit_entries (reservation_id, sequence, status, actor_id, recorded_at)
SELECT $1::uuid, COALESCE(MAX(sequence), 0) + 1, $2::text, $3::uuid, $4::timestamptz
FROM reservation_audit_entries
WHERE reservation_id = $1
RETURNING reservation_id, sequence, status, actor_id, recorded_at`

func (q *Queries) AppendAuditEntry(ctx context.Context, db DBTX, arg ReservationAuditEntry) (ReservationAuditEntry, error) {
	var e ReservationAuditEntry
	err := db.QueryRow(ctx, appendAuditEntry, arg.ReservationID, arg.Status, arg.ActorID, arg.RecordedAt).
		Scan(&e.ReservationID, &e.Sequence, &e.Status, &e.ActorID, &e.RecordedAt)
	return e, err
}

const listAuditEntries = `
SELECT reservation_id, sequence, status, actor_id, recorded_at
FROM reservation_audit_entries
WHERE reservation_id = $1
ORDER BY sequence`

func (q *Queries) ListAuditEntries(ctx context.Context, db DBTX, reservationID uuid.UUID) ([]ReservationAuditEntry, error) {
	rows, err := db.Query(ctx, listAuditEntries, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReservationAuditEntry
	for rows.Next() {
		var e ReservationAuditEntry
		if err := rows.Scan(&e.ReservationID, &e.Sequence, &e.Status, &e.ActorID, &e.RecordedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
