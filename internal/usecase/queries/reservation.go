package queries

import (
	"context"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=mocks/reservation_mock.go -package=mocks

type ReservationQueries interface {
	GetByID(ctx context.Context, a actor.Actor, id uuid.UUID) (*ReservationView, error)
	AuditTrail(ctx context.Context, a actor.Actor, id uuid.UUID) (*AuditTrailView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, a actor.Actor, id uuid.UUID) (*ReservationView, error) {
	var view *ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := q.load(ctx, tx, a, id)
		if err != nil {
			return err
		}
		view = NewReservationView(res)
		return nil
	})
	return view, err
}

func (q *reservationQueriesImpl) AuditTrail(ctx context.Context, a actor.Actor, id uuid.UUID) (*AuditTrailView, error) {
	trail := &AuditTrailView{ReservationID: id, Entries: []AuditEntryView{}}
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := q.load(ctx, tx, a, id); err != nil {
			return err
		}
		entries, err := tx.Audit().ListByReservation(ctx, id)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		for _, e := range entries {
			trail.Entries = append(trail.Entries, AuditEntryView{
				Sequence:   e.Sequence,
				Status:     e.Status.String(),
				ActorID:    e.ActorID,
				RecordedAt: e.RecordedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trail, nil
}

func (q *reservationQueriesImpl) load(ctx context.Context, tx shared.Tx, a actor.Actor, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !CanView(a, res) {
		return nil, reservation.ErrUnauthorized
	}
	return res, nil
}

// CanView: admins, the owner, the department manager and service staff.
func CanView(a actor.Actor, res *reservation.Reservation) bool {
	switch {
	case a.IsSystem(), a.IsAdmin():
		return true
	case a.ID() == res.CustomerID():
		return true
	case res.ManagerID() != nil && *res.ManagerID() == a.ID():
		return true
	default:
		return a.HasPermission(actor.PermissionStartService) || a.HasPermission(actor.PermissionCompleteService)
	}
}
