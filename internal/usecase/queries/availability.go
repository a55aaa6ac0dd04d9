package queries

import (
	"context"
	"log/slog"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=mocks/availability_mock.go -package=mocks

type AvailabilityQueries interface {
	TableAvailability(ctx context.Context, tableID uuid.UUID, day time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	uow   shared.UnitOfWork
	cache shared.AvailabilityCache
	loc   *time.Location
}

func NewAvailabilityQueries(uow shared.UnitOfWork, cache shared.AvailabilityCache, loc *time.Location) AvailabilityQueries {
	if cache == nil {
		cache = shared.NoopAvailabilityCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &availabilityQueriesImpl{uow: uow, cache: cache, loc: loc}
}

// TableAvailability lists the blocking intervals of one calendar day.
// Results are cached per (table, day) and invalidated by reservation writes.
func (q *availabilityQueriesImpl) TableAvailability(ctx context.Context, tableID uuid.UUID, day time.Time) (*AvailabilityView, error) {
	from, to := clock.DayBounds(day, q.loc)
	view := &AvailabilityView{
		TableID: tableID,
		Date:    from.Format(time.DateOnly),
		From:    from,
		To:      to,
	}

	busy, ok, err := q.cache.Get(ctx, tableID, from)
	if err != nil {
		slog.Warn("availability cache read failed", "table_id", tableID.String(), "error", err.Error())
	}
	if err == nil && ok {
		view.Busy = toBusyViews(busy)
		view.Cached = true
		return view, nil
	}

	interval, err := reservation.NewInterval(from, to)
	if err != nil {
		return nil, err
	}
	busy = []shared.BusyInterval{}
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, terr := tx.Tables().FindByID(ctx, tableID); terr != nil {
			if infra.IsKind(terr, infra.KindNotFound) {
				return errs.ErrTableNotFound
			}
			return errs.Mark(terr, errs.ErrDatabaseOperationFailed)
		}
		list, ferr := tx.Reservations().FindOverlapping(ctx, tableID, interval, nil)
		if ferr != nil {
			return errs.Mark(ferr, errs.ErrDatabaseOperationFailed)
		}
		for _, r := range list {
			busy = append(busy, shared.BusyInterval{
				ReservationID: r.ID(),
				Start:         r.Interval().Start(),
				End:           r.Interval().End(),
				Status:        r.Status(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := q.cache.Set(ctx, tableID, from, busy); err != nil {
		slog.Warn("availability cache write failed", "table_id", tableID.String(), "error", err.Error())
	}
	view.Busy = toBusyViews(busy)
	return view, nil
}

func toBusyViews(busy []shared.BusyInterval) []BusyIntervalView {
	out := make([]BusyIntervalView, 0, len(busy))
	for _, b := range busy {
		out = append(out, BusyIntervalView{
			ReservationID: b.ReservationID,
			Start:         b.Start,
			End:           b.End,
			Status:        b.Status.String(),
		})
	}
	return out
}
