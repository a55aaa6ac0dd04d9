package commands

import (
	"table-booking/internal/domain/reservation"
	"table-booking/internal/infra"
	"table-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// repoErr maps classified store errors to usecase sentinels. Anything already
// carrying domain meaning passes through.
func repoErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return notFound
	case infra.IsKind(err, infra.KindDBFailure):
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	default:
		return err
	}
}

// writeErr maps reservation writes. The exclusion constraint only fires when
// two transactions raced past the overlap check.
func writeErr(err error, tableID uuid.UUID, interval reservation.Interval) error {
	switch {
	case infra.IsKind(err, infra.KindConflict):
		return reservation.NewConflictError(tableID, interval, nil)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.ErrTableNotFound
	default:
		return repoErr(err, errs.ErrReservationNotFound)
	}
}
