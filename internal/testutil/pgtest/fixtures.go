//go:build e2e

package pgtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Directory struct {
	DepartmentID uuid.UUID
	ManagerID    uuid.UUID
	CustomerID   uuid.UUID
	TableID      uuid.UUID
}

// SeedDirectory inserts one department with a manager, a customer and a table of the given capacity.
func SeedDirectory(t *testing.T, db DBLike, capacity int) Directory {
	t.Helper()
	ctx := context.Background()
	d := Directory{
		DepartmentID: uuid.New(),
		ManagerID:    uuid.New(),
		CustomerID:   uuid.New(),
		TableID:      uuid.New(),
	}

	_, err := db.Exec(ctx, `INSERT INTO departments (id, name) VALUES ($1, 'Main hall')`, d.DepartmentID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO users (id, name, email, notification_channel, department_id)
		VALUES ($1, 'Mia Manager', 'mia@example.com', 'mail', $2)`, d.ManagerID, d.DepartmentID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `UPDATE departments SET manager_id = $1 WHERE id = $2`, d.ManagerID, d.DepartmentID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO users (id, name, telegram_chat_id, notification_channel)
		VALUES ($1, 'Carl Customer', '1001', 'telegram')`, d.CustomerID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO restaurant_tables (id, department_id, label, capacity) VALUES ($1, $2, 'T1', $3)`,
		d.TableID, d.DepartmentID, capacity)
	require.NoError(t, err)
	return d
}

// AddTable adds another table to the seeded department.
func (d Directory) AddTable(t *testing.T, db DBLike, capacity int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO restaurant_tables (id, department_id, label, capacity) VALUES ($1, $2, 'T2', $3)`,
		id, d.DepartmentID, capacity)
	require.NoError(t, err)
	return id
}
