package commands

import (
	"context"
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ConflictCheck struct {
	TableID   uuid.UUID
	Start     time.Time
	End       time.Time
	ExcludeID *uuid.UUID
	// RequireFuture additionally rejects intervals starting in the past.
	RequireFuture bool
}

// ConflictResolver decides whether an interval can be admitted on a table.
// It never mutates; callers hold the table lock for the surrounding transaction.
type ConflictResolver struct {
	clock clock.Clock
}

func NewConflictResolver(clk clock.Clock) *ConflictResolver {
	return &ConflictResolver{clock: clk}
}

func (c *ConflictResolver) Resolve(ctx context.Context, repo shared.ReservationRepository, check ConflictCheck) (reservation.Interval, error) {
	interval, err := reservation.NewInterval(check.Start, check.End)
	if err != nil {
		return reservation.Interval{}, err
	}
	if check.RequireFuture {
		if err := interval.ValidateForBooking(c.clock.Now()); err != nil {
			return reservation.Interval{}, err
		}
	}

	overlapping, err := repo.FindOverlapping(ctx, check.TableID, interval, check.ExcludeID)
	if err != nil {
		return reservation.Interval{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(overlapping) > 0 {
		return reservation.Interval{}, reservation.NewConflictError(check.TableID, interval, overlapping)
	}
	return interval, nil
}
