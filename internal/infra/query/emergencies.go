package query

import (
	"context"

	"github.com/google/uuid"
)

const createEmergency = `
INSERT INTO emergencies (id, name, description, start_at, end_at, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (q *Queries) CreateEmergency(ctx context.Context, db DBTX, arg Emergency) error {
	_, err := db.Exec(ctx, createEmergency,
		arg.ID, arg.Name, arg.Description, arg.StartAt, arg.EndAt, arg.CreatedBy, arg.CreatedAt)
	return err
}

const getEmergency = `
SELECT id, name, description, start_at, end_at, created_by, created_at
FROM emergencies
WHERE id = $1`

func (q *Queries) GetEmergency(ctx context.Context, db DBTX, id uuid.UUID) (Emergency, error) {
	var e Emergency
	err := db.QueryRow(ctx, getEmergency, id).
		Scan(&e.ID, &e.Name, &e.Description, &e.StartAt, &e.EndAt, &e.CreatedBy, &e.CreatedAt)
	return e, err
}
