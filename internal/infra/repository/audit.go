package repository

import (
	"context"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/infra/query"
	"table-booking/internal/infra/repository/converter"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AuditQueries interface {
	AppendAuditEntry(ctx context.Context, db query.DBTX, arg query.ReservationAuditEntry) (query.ReservationAuditEntry, error)
	ListAuditEntries(ctx context.Context, db query.DBTX, reservationID uuid.UUID) ([]query.ReservationAuditEntry, error)
}

type AuditRepository struct {
	queries AuditQueries
	db      query.DBTX
}

var _ shared.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(queries AuditQueries, db query.DBTX) *AuditRepository {
	return &AuditRepository{queries: queries, db: db}
}

func (r *AuditRepository) Append(ctx context.Context, rec reservation.AuditRecord) (reservation.AuditEntry, error) {
	row, err := r.queries.AppendAuditEntry(ctx, r.db, converter.AuditRecordToRow(rec))
	if err != nil {
		return reservation.AuditEntry{}, infra.WrapRepoErr("failed to append audit entry", err)
	}
	entry, err := converter.AuditEntryFromRow(row)
	if err != nil {
		return reservation.AuditEntry{}, infra.WrapRepoErr("failed to decode audit entry", err)
	}
	return entry, nil
}

func (r *AuditRepository) ListByReservation(ctx context.Context, reservationID uuid.UUID) ([]reservation.AuditEntry, error) {
	rows, err := r.queries.ListAuditEntries(ctx, r.db, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list audit entries", err)
	}
	entries := make([]reservation.AuditEntry, 0, len(rows))
	for _, row := range rows {
		e, err := converter.AuditEntryFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode audit entry", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
