package repository

import (
	"context"

	"table-booking/internal/domain/emergency"
	"table-booking/internal/infra"
	"table-booking/internal/infra/query"
	"table-booking/internal/infra/repository/converter"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type EmergencyQueries interface {
	CreateEmergency(ctx context.Context, db query.DBTX, arg query.Emergency) error
	GetEmergency(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Emergency, error)
}

type EmergencyRepository struct {
	queries EmergencyQueries
	db      query.DBTX
}

var _ shared.EmergencyRepository = (*EmergencyRepository)(nil)

func NewEmergencyRepository(queries EmergencyQueries, db query.DBTX) *EmergencyRepository {
	return &EmergencyRepository{queries: queries, db: db}
}

func (r *EmergencyRepository) Create(ctx context.Context, w *emergency.Window) error {
	if err := r.queries.CreateEmergency(ctx, r.db, converter.EmergencyToRow(w)); err != nil {
		return infra.WrapRepoErr("failed to create emergency", err)
	}
	return nil
}

func (r *EmergencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*emergency.Window, error) {
	row, err := r.queries.GetEmergency(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find emergency", err)
	}
	w, err := converter.EmergencyFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode emergency", err)
	}
	return w, nil
}
