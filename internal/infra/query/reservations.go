package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, table_id, customer_id, manager_id, start_at, end_at, guest_count, services,
       status, cancellation_reason, rating_email_sent_at, created_at, updated_at, deleted_at`

func scanReservation(row pgx.Row) (Reservation, error) {
	var r Reservation
	err := row.Scan(
		&r.ID, &r.TableID, &r.CustomerID, &r.ManagerID, &r.StartAt, &r.EndAt, &r.GuestCount, &r.Services,
		&r.Status, &r.CancellationReason, &r.RatingEmailSentAt, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt,
	)
	return r, err
}

func collectReservations(rows pgx.Rows, err error) ([]Reservation, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const createReservation = `
INSERT INTO reservations (` + reservationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg Reservation) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID, arg.TableID, arg.CustomerID, arg.ManagerID, arg.StartAt, arg.EndAt, arg.GuestCount, arg.Services,
		arg.Status, arg.CancellationReason, arg.RatingEmailSentAt, arg.CreatedAt, arg.UpdatedAt, arg.DeletedAt,
	)
	return err
}

const getReservation = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

func (q *Queries) GetReservation(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservation, id))
}

const lockReservation = getReservation + ` FOR UPDATE`

func (q *Queries) LockReservation(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, lockReservation, id))
}

const updateReservation = `
UPDATE reservations
SET start_at = $2, end_at = $3, guest_count = $4, services = $5, status = $6,
    cancellation_reason = $7, rating_email_sent_at = $8, updated_at = $9, deleted_at = $10
WHERE id = $1`

// UpdateReservation returns the number of rows touched.
func (q *Queries) UpdateReservation(ctx context.Context, db DBTX, arg Reservation) (int64, error) {
	tag, err := db.Exec(ctx, updateReservation,
		arg.ID, arg.StartAt, arg.EndAt, arg.GuestCount, arg.Services, arg.Status,
		arg.CancellationReason, arg.RatingEmailSentAt, arg.UpdatedAt, arg.DeletedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type ListOverlappingParams struct {
	TableID   pgtype.UUID
	StartAt   pgtype.Timestamptz
	EndAt     pgtype.Timestamptz
	ExcludeID pgtype.UUID
}

// Half-open overlap; a null table matches every table.
const listOverlappingReservations = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE ($1::uuid IS NULL OR table_id = $1)
  AND ($4::uuid IS NULL OR id <> $4)
  AND deleted_at IS NULL
  AND status IN ('pending', 'confirmed', 'in_service')
  AND start_at < $3
  AND end_at > $2
ORDER BY start_at, id`

func (q *Queries) ListOverlappingReservations(ctx context.Context, db DBTX, arg ListOverlappingParams) ([]Reservation, error) {
	return collectReservations(db.Query(ctx, listOverlappingReservations, arg.TableID, arg.StartAt, arg.EndAt, arg.ExcludeID))
}

type ListByManagerParams struct {
	ManagerID uuid.UUID
	From      pgtype.Timestamptz
	To        pgtype.Timestamptz
}

const listReservationsByManager = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE manager_id = $1
  AND deleted_at IS NULL
  AND start_at >= $2
  AND start_at < $3
ORDER BY start_at, id`

func (q *Queries) ListReservationsByManager(ctx context.Context, db DBTX, arg ListByManagerParams) ([]Reservation, error) {
	return collectReservations(db.Query(ctx, listReservationsByManager, arg.ManagerID, arg.From, arg.To))
}
