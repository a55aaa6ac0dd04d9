package repository

//go:generate mockgen -source=reservation.go -destination=mocks/reservation_mock.go -package=mocks

import (
	"context"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/infra/query"
	"table-booking/internal/infra/repository/converter"
	"table-booking/internal/pkg/pgconv"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationQueries interface {
	CreateReservation(ctx context.Context, db query.DBTX, arg query.Reservation) error
	GetReservation(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservation, error)
	LockReservation(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Reservation, error)
	UpdateReservation(ctx context.Context, db query.DBTX, arg query.Reservation) (int64, error)
	ListOverlappingReservations(ctx context.Context, db query.DBTX, arg query.ListOverlappingParams) ([]query.Reservation, error)
	ListReservationsByManager(ctx context.Context, db query.DBTX, arg query.ListByManagerParams) ([]query.Reservation, error)
}

type ReservationRepository struct {
	queries ReservationQueries
	db      query.DBTX
}

var _ shared.ReservationRepository = (*ReservationRepository)(nil)

func NewReservationRepository(queries ReservationQueries, db query.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToRow(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservation(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return r.toDomain(row)
}

func (r *ReservationRepository) LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.LockReservation(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return r.toDomain(row)
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservation(ctx, r.db, converter.ReservationToRow(res))
	if err != nil {
		return infra.WrapRepoErr("failed to save reservation", err)
	}
	if affected == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return nil
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, tableID uuid.UUID, interval reservation.Interval, excludeID *uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListOverlappingReservations(ctx, r.db, query.ListOverlappingParams{
		TableID:   pgtype.UUID{Bytes: tableID, Valid: true},
		StartAt:   pgconv.TimeToPgtype(interval.Start()),
		EndAt:     pgconv.TimeToPgtype(interval.End()),
		ExcludeID: pgconv.UUIDPtrToPgtype(excludeID),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping reservations", err)
	}
	return r.toDomainList(rows)
}

func (r *ReservationRepository) FindOverlappingAcrossWindow(ctx context.Context, interval reservation.Interval) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListOverlappingReservations(ctx, r.db, query.ListOverlappingParams{
		StartAt: pgconv.TimeToPgtype(interval.Start()),
		EndAt:   pgconv.TimeToPgtype(interval.End()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations in window", err)
	}
	return r.toDomainList(rows)
}

func (r *ReservationRepository) ListByManager(ctx context.Context, managerID uuid.UUID, interval reservation.Interval) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListReservationsByManager(ctx, r.db, query.ListByManagerParams{
		ManagerID: managerID,
		From:      pgconv.TimeToPgtype(interval.Start()),
		To:        pgconv.TimeToPgtype(interval.End()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by manager", err)
	}
	return r.toDomainList(rows)
}

func (r *ReservationRepository) toDomain(row query.Reservation) (*reservation.Reservation, error) {
	res, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation row", err)
	}
	return res, nil
}

func (r *ReservationRepository) toDomainList(rows []query.Reservation) ([]*reservation.Reservation, error) {
	list, err := converter.ReservationsFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation rows", err)
	}
	return list, nil
}
