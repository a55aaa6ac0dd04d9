package commands

import (
	"context"
	"log/slog"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=mocks/reservation_mock.go -package=mocks

type CreateReservationInput struct {
	TableID    uuid.UUID
	Start      time.Time
	End        time.Time
	GuestCount int
	Services   string
}

type UpdateReservationInput struct {
	Start      time.Time
	End        time.Time
	GuestCount int
	Services   string
}

type TransitionInput struct {
	Event  reservation.Event
	Reason string
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, a actor.Actor, in CreateReservationInput) (*reservation.Reservation, error)
	UpdateReservation(ctx context.Context, a actor.Actor, id uuid.UUID, in UpdateReservationInput) (*reservation.Reservation, error)
	Transition(ctx context.Context, a actor.Actor, id uuid.UUID, in TransitionInput) (*reservation.Reservation, error)
	SoftDelete(ctx context.Context, a actor.Actor, id uuid.UUID) error
	Restore(ctx context.Context, a actor.Actor, id uuid.UUID) (*reservation.Reservation, error)
}

type reservationUseCaseImpl struct {
	uow      shared.UnitOfWork
	resolver *ConflictResolver
	queue    TaskQueue
	cache    shared.AvailabilityCache
	clock    clock.Clock
	loc      *time.Location
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	resolver *ConflictResolver,
	queue TaskQueue,
	cache shared.AvailabilityCache,
	clk clock.Clock,
	loc *time.Location,
) ReservationCommands {
	if cache == nil {
		cache = shared.NoopAvailabilityCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &reservationUseCaseImpl{
		uow:      uow,
		resolver: resolver,
		queue:    queue,
		cache:    cache,
		clock:    clk,
		loc:      loc,
	}
}

func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, a actor.Actor, in CreateReservationInput) (*reservation.Reservation, error) {
	if a.IsSystem() || !a.HasPermission(actor.PermissionBookTable) {
		return nil, reservation.ErrUnauthorized
	}
	guests, err := reservation.NewGuestCount(in.GuestCount)
	if err != nil {
		return nil, err
	}
	services, err := reservation.NewServices(in.Services)
	if err != nil {
		return nil, err
	}

	var created *reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		table, terr := tx.Tables().LockForBooking(ctx, in.TableID)
		if terr != nil {
			return repoErr(terr, errs.ErrTableNotFound)
		}

		interval, rerr := uc.resolver.Resolve(ctx, tx.Reservations(), ConflictCheck{
			TableID:       table.ID,
			Start:         in.Start,
			End:           in.End,
			RequireFuture: true,
		})
		if rerr != nil {
			return rerr
		}

		res, derr := reservation.NewReservation(table, a, interval, guests, services, uc.clock.Now())
		if derr != nil {
			return derr
		}
		if werr := tx.Reservations().Create(ctx, res); werr != nil {
			return writeErr(werr, table.ID, interval)
		}
		if _, aerr := tx.Audit().Append(ctx, reservation.RecordCreation(res, a.AuditID())); aerr != nil {
			return repoErr(aerr, errs.ErrReservationNotFound)
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, created.TableID(), created.Interval())
	return created, nil
}

func (uc *reservationUseCaseImpl) UpdateReservation(ctx context.Context, a actor.Actor, id uuid.UUID, in UpdateReservationInput) (*reservation.Reservation, error) {
	guests, err := reservation.NewGuestCount(in.GuestCount)
	if err != nil {
		return nil, err
	}
	services, err := reservation.NewServices(in.Services)
	if err != nil {
		return nil, err
	}

	var (
		updated  *reservation.Reservation
		previous reservation.Interval
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, lerr := tx.Reservations().LockByID(ctx, id)
		if lerr != nil {
			return repoErr(lerr, errs.ErrReservationNotFound)
		}
		if gerr := res.CanReschedule(a); gerr != nil {
			return gerr
		}
		table, terr := tx.Tables().LockForBooking(ctx, res.TableID())
		if terr != nil {
			return repoErr(terr, errs.ErrTableNotFound)
		}

		self := res.ID()
		interval, rerr := uc.resolver.Resolve(ctx, tx.Reservations(), ConflictCheck{
			TableID:       table.ID,
			Start:         in.Start,
			End:           in.End,
			ExcludeID:     &self,
			RequireFuture: true,
		})
		if rerr != nil {
			return rerr
		}

		previous = res.Interval()
		if derr := res.Reschedule(a, interval, guests, services, table.Capacity, uc.clock.Now()); derr != nil {
			return derr
		}
		if werr := tx.Reservations().Save(ctx, res); werr != nil {
			return writeErr(werr, table.ID, interval)
		}
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, updated.TableID(), previous, updated.Interval())
	return updated, nil
}

func (uc *reservationUseCaseImpl) Transition(ctx context.Context, a actor.Actor, id uuid.UUID, in TransitionInput) (*reservation.Reservation, error) {
	var (
		res *reservation.Reservation
		tr  reservation.Transition
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var terr error
		res, tr, terr = applyTransition(ctx, tx, id, reservation.Command{
			Event:  in.Event,
			Actor:  a,
			Reason: in.Reason,
		}, uc.clock.Now())
		return terr
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, res.TableID(), res.Interval())
	if tr.To == reservation.StatusCompleted {
		uc.requestRating(ctx, res)
	}
	return res, nil
}

func (uc *reservationUseCaseImpl) SoftDelete(ctx context.Context, a actor.Actor, id uuid.UUID) error {
	var res *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var lerr error
		res, lerr = tx.Reservations().LockByID(ctx, id)
		if lerr != nil {
			return repoErr(lerr, errs.ErrReservationNotFound)
		}
		now := uc.clock.Now()
		if derr := res.SoftDelete(a, now); derr != nil {
			return derr
		}
		if werr := tx.Reservations().Save(ctx, res); werr != nil {
			return repoErr(werr, errs.ErrReservationNotFound)
		}
		_, aerr := tx.Audit().Append(ctx, reservation.RecordCurrent(res, a.AuditID(), now))
		return repoErr(aerr, errs.ErrReservationNotFound)
	})
	if err != nil {
		return err
	}

	uc.invalidate(ctx, res.TableID(), res.Interval())
	return nil
}

func (uc *reservationUseCaseImpl) Restore(ctx context.Context, a actor.Actor, id uuid.UUID) (*reservation.Reservation, error) {
	var res *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var lerr error
		res, lerr = tx.Reservations().LockByID(ctx, id)
		if lerr != nil {
			return repoErr(lerr, errs.ErrReservationNotFound)
		}
		now := uc.clock.Now()
		if derr := res.Restore(a, now); derr != nil {
			return derr
		}

		// a restored booking may not overlap live ones
		if res.IsBlocking() {
			if _, terr := tx.Tables().LockForBooking(ctx, res.TableID()); terr != nil {
				return repoErr(terr, errs.ErrTableNotFound)
			}
			self := res.ID()
			if _, rerr := uc.resolver.Resolve(ctx, tx.Reservations(), ConflictCheck{
				TableID:   res.TableID(),
				Start:     res.Interval().Start(),
				End:       res.Interval().End(),
				ExcludeID: &self,
			}); rerr != nil {
				return rerr
			}
		}

		if werr := tx.Reservations().Save(ctx, res); werr != nil {
			return writeErr(werr, res.TableID(), res.Interval())
		}
		_, aerr := tx.Audit().Append(ctx, reservation.RecordCurrent(res, a.AuditID(), now))
		return repoErr(aerr, errs.ErrReservationNotFound)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, res.TableID(), res.Interval())
	return res, nil
}

// applyTransition locks the reservation, runs the state machine and appends the
// audit entry, all inside the caller's transaction.
func applyTransition(ctx context.Context, tx shared.Tx, id uuid.UUID, cmd reservation.Command, now time.Time) (*reservation.Reservation, reservation.Transition, error) {
	res, err := tx.Reservations().LockByID(ctx, id)
	if err != nil {
		return nil, reservation.Transition{}, repoErr(err, errs.ErrReservationNotFound)
	}
	tr, err := res.Apply(cmd, now)
	if err != nil {
		return nil, reservation.Transition{}, err
	}
	if err := tx.Reservations().Save(ctx, res); err != nil {
		return nil, reservation.Transition{}, repoErr(err, errs.ErrReservationNotFound)
	}
	if _, err := tx.Audit().Append(ctx, reservation.RecordTransition(tr)); err != nil {
		return nil, reservation.Transition{}, repoErr(err, errs.ErrReservationNotFound)
	}
	return res, tr, nil
}

func (uc *reservationUseCaseImpl) requestRating(ctx context.Context, res *reservation.Reservation) {
	task := shared.NotificationTask{
		ID:          uuid.New(),
		RecipientID: res.CustomerID(),
		Reason:      notification.ReasonRatingRequest,
		SubjectKey:  res.ID().String(),
		Description: "Rating request for reservation " + res.ID().String(),
		Data: map[string]string{
			"reservation_id":   res.ID().String(),
			"reservation_date": res.Interval().Start().In(uc.loc).Format(time.DateOnly),
		},
		EnqueuedAt: uc.clock.Now(),
	}
	if err := uc.queue.Enqueue(ctx, task); err != nil {
		slog.Warn("failed to enqueue rating request",
			"reservation_id", res.ID().String(),
			"error", err.Error())
	}
}

func (uc *reservationUseCaseImpl) invalidate(ctx context.Context, tableID uuid.UUID, intervals ...reservation.Interval) {
	invalidateAvailability(ctx, uc.cache, uc.loc, tableID, intervals...)
}

// invalidateAvailability drops every cached day the intervals touch. Cache
// errors are logged; the next read repopulates.
func invalidateAvailability(ctx context.Context, cache shared.AvailabilityCache, loc *time.Location, tableID uuid.UUID, intervals ...reservation.Interval) {
	var days []time.Time
	seen := map[time.Time]struct{}{}
	for _, iv := range intervals {
		if iv.Start().IsZero() {
			continue
		}
		day, _ := clock.DayBounds(iv.Start(), loc)
		for day.Before(iv.End()) {
			if _, ok := seen[day]; !ok {
				seen[day] = struct{}{}
				days = append(days, day)
			}
			day = day.AddDate(0, 0, 1)
		}
	}
	if len(days) == 0 {
		return
	}
	if err := cache.Invalidate(ctx, tableID, days...); err != nil {
		slog.Warn("failed to invalidate availability cache",
			"table_id", tableID.String(),
			"error", err.Error())
	}
}
