package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const notificationLogColumns = `id, recipient_id, channel, reason, subject_key, description, status, attempts,
       last_error, created_at, updated_at`

func scanNotificationLog(row pgx.Row) (NotificationLog, error) {
	var n NotificationLog
	err := row.Scan(&n.ID, &n.RecipientID, &n.Channel, &n.Reason, &n.SubjectKey, &n.Description, &n.Status,
		&n.Attempts, &n.LastError, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

type BeginNotificationAttemptParams struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Channel     string
	Reason      string
	SubjectKey  string
	Description string
	At          pgtype.Timestamptz
}

// One live row per (recipient, reason, subject key); a retry reopens it.
const beginNotificationAttempt = `
INSERT INTO notification_logs (id, recipient_id, channel, reason, subject_key, description, status, attempts, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, 'attempting', 0, $7, $7)
ON CONFLICT (recipient_id, reason, subject_key) WHERE deleted_at IS NULL
DO UPDATE SET channel = EXCLUDED.channel,
              description = EXCLUDED.description,
              status = 'attempting',
              updated_at = EXCLUDED.updated_at
RETURNING ` + notificationLogColumns

func (q *Queries) BeginNotificationAttempt(ctx context.Context, db DBTX, arg BeginNotificationAttemptParams) (NotificationLog, error) {
	return scanNotificationLog(db.QueryRow(ctx, beginNotificationAttempt,
		arg.ID, arg.RecipientID, arg.Channel, arg.Reason, arg.SubjectKey, arg.Description, arg.At))
}

type RecordNotificationAttemptParams struct {
	ID        uuid.UUID
	Status    string
	Attempts  int32
	LastError pgtype.Text
	At        pgtype.Timestamptz
}

const recordNotificationAttempt = `
UPDATE notification_logs
SET status = $2, attempts = $3, last_error = $4, updated_at = $5
WHERE id = $1
RETURNING ` + notificationLogColumns

func (q *Queries) RecordNotificationAttempt(ctx context.Context, db DBTX, arg RecordNotificationAttemptParams) (NotificationLog, error) {
	return scanNotificationLog(db.QueryRow(ctx, recordNotificationAttempt,
		arg.ID, arg.Status, arg.Attempts, arg.LastError, arg.At))
}

type ListNotificationLogsParams struct {
	RecipientID     pgtype.UUID
	Status          pgtype.Text
	BeforeCreatedAt pgtype.Timestamptz
	BeforeID        pgtype.UUID
	Limit           int32
}

const listNotificationLogs = `
SELECT ` + notificationLogColumns + `
FROM notification_logs
WHERE deleted_at IS NULL
  AND ($1::uuid IS NULL OR recipient_id = $1)
  AND ($2::text IS NULL OR status = $2)
  AND ($3::timestamptz IS NULL OR (created_at, id) < ($3, $4::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $5`

func (q *Queries) ListNotificationLogs(ctx context.Context, db DBTX, arg ListNotificationLogsParams) ([]NotificationLog, error) {
	rows, err := db.Query(ctx, listNotificationLogs, arg.RecipientID, arg.Status, arg.BeforeCreatedAt, arg.BeforeID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []NotificationLog
	for rows.Next() {
		n, err := scanNotificationLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
