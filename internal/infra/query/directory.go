package query

import (
	"context"

	"github.com/google/uuid"
)

const getTable = `
SELECT t.id, t.capacity, d.manager_id
FROM restaurant_tables t
JOIN departments d ON d.id = t.department_id
WHERE t.id = $1`

func (q *Queries) GetTable(ctx context.Context, db DBTX, id uuid.UUID) (TableRow, error) {
	var t TableRow
	err := db.QueryRow(ctx, getTable, id).Scan(&t.ID, &t.Capacity, &t.ManagerID)
	return t, err
}

const lockTable = getTable + ` FOR UPDATE OF t`

func (q *Queries) LockTable(ctx context.Context, db DBTX, id uuid.UUID) (TableRow, error) {
	var t TableRow
	err := db.QueryRow(ctx, lockTable, id).Scan(&t.ID, &t.Capacity, &t.ManagerID)
	return t, err
}

const recipientColumns = `u.id, u.name, u.email, u.telegram_chat_id, u.notification_channel, u.department_id`

const getRecipient = `SELECT ` + recipientColumns + ` FROM users u WHERE u.id = $1`

func (q *Queries) GetRecipient(ctx context.Context, db DBTX, id uuid.UUID) (RecipientRow, error) {
	var r RecipientRow
	err := db.QueryRow(ctx, getRecipient, id).
		Scan(&r.ID, &r.Name, &r.Email, &r.TelegramChatID, &r.NotificationChannel, &r.DepartmentID)
	return r, err
}

const listManagers = `
SELECT DISTINCT ` + recipientColumns + `
FROM users u
JOIN departments d ON d.manager_id = u.id
ORDER BY u.id`

func (q *Queries) ListManagers(ctx context.Context, db DBTX) ([]RecipientRow, error) {
	rows, err := db.Query(ctx, listManagers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RecipientRow
	for rows.Next() {
		var r RecipientRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.TelegramChatID, &r.NotificationChannel, &r.DepartmentID); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
