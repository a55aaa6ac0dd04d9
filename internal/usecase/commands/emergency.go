package commands

import (
	"context"
	"log/slog"
	"time"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/emergency"
	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=emergency.go -destination=mocks/emergency_mock.go -package=mocks

type CreateEmergencyInput struct {
	Name        string
	Description string
	Start       time.Time
	End         time.Time
}

type CascadeFailure struct {
	ReservationID uuid.UUID
	Error         string
}

type CascadeResult struct {
	EmergencyID uuid.UUID
	Affected    int
	Cancelled   []uuid.UUID
	Notified    int
	Skipped     int
	Failed      []CascadeFailure
}

type EmergencyCommands interface {
	CreateEmergency(ctx context.Context, a actor.Actor, in CreateEmergencyInput) (*emergency.Window, error)
	TriggerEmergencyClosure(ctx context.Context, w *emergency.Window, a actor.Actor) (CascadeResult, error)
	TriggerEmergencyByID(ctx context.Context, id uuid.UUID, a actor.Actor) (*emergency.Window, CascadeResult, error)
	DeclareEmergency(ctx context.Context, a actor.Actor, in CreateEmergencyInput) (*emergency.Window, CascadeResult, error)
}

type emergencyUseCaseImpl struct {
	uow   shared.UnitOfWork
	queue TaskQueue
	cache shared.AvailabilityCache
	clock clock.Clock
	loc   *time.Location
}

func NewEmergencyUseCase(
	uow shared.UnitOfWork,
	queue TaskQueue,
	cache shared.AvailabilityCache,
	clk clock.Clock,
	loc *time.Location,
) EmergencyCommands {
	if cache == nil {
		cache = shared.NoopAvailabilityCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &emergencyUseCaseImpl{uow: uow, queue: queue, cache: cache, clock: clk, loc: loc}
}

func (uc *emergencyUseCaseImpl) CreateEmergency(ctx context.Context, a actor.Actor, in CreateEmergencyInput) (*emergency.Window, error) {
	w, err := emergency.NewWindow(in.Name, in.Description, in.Start, in.End, a, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return repoErr(tx.Emergencies().Create(ctx, w), errs.ErrEmergencyNotFound)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *emergencyUseCaseImpl) DeclareEmergency(ctx context.Context, a actor.Actor, in CreateEmergencyInput) (*emergency.Window, CascadeResult, error) {
	w, err := uc.CreateEmergency(ctx, a, in)
	if err != nil {
		return nil, CascadeResult{}, err
	}
	result, err := uc.TriggerEmergencyClosure(ctx, w, a)
	return w, result, err
}

func (uc *emergencyUseCaseImpl) TriggerEmergencyByID(ctx context.Context, id uuid.UUID, a actor.Actor) (*emergency.Window, CascadeResult, error) {
	if err := emergency.Authorize(a); err != nil {
		return nil, CascadeResult{}, err
	}
	var w *emergency.Window
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		w, ferr = tx.Emergencies().FindByID(ctx, id)
		return repoErr(ferr, errs.ErrEmergencyNotFound)
	})
	if err != nil {
		return nil, CascadeResult{}, err
	}
	result, err := uc.TriggerEmergencyClosure(ctx, w, a)
	return w, result, err
}

// TriggerEmergencyClosure cancels every blocking reservation overlapping the
// window, one transaction per reservation, and enqueues a notification for
// each cancelled customer. Per-reservation failures are logged and skipped.
// Cancellation of ctx stops the iteration; work already committed stays.
func (uc *emergencyUseCaseImpl) TriggerEmergencyClosure(ctx context.Context, w *emergency.Window, a actor.Actor) (CascadeResult, error) {
	if err := emergency.Authorize(a); err != nil {
		return CascadeResult{}, err
	}
	result := CascadeResult{EmergencyID: w.ID()}

	var affected []*reservation.Reservation
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		affected, ferr = tx.Reservations().FindOverlappingAcrossWindow(ctx, w.Interval())
		return repoErr(ferr, errs.ErrReservationNotFound)
	})
	if err != nil {
		return result, err
	}
	result.Affected = len(affected)

	slog.Info("emergency cascade started",
		"emergency_id", w.ID().String(),
		"name", w.Name(),
		"affected", len(affected))

	for _, candidate := range affected {
		if err := ctx.Err(); err != nil {
			slog.Warn("emergency cascade interrupted",
				"emergency_id", w.ID().String(),
				"cancelled", len(result.Cancelled),
				"error", err.Error())
			return result, err
		}

		cancelled, cerr := uc.cancelOne(ctx, w, candidate.ID())
		if cerr != nil {
			slog.Warn("emergency cancel skipped",
				"emergency_id", w.ID().String(),
				"reservation_id", candidate.ID().String(),
				"table_id", candidate.TableID().String(),
				"error", cerr.Error())
			result.Failed = append(result.Failed, CascadeFailure{ReservationID: candidate.ID(), Error: cerr.Error()})
			continue
		}
		result.Cancelled = append(result.Cancelled, cancelled.ID())
		invalidateAvailability(ctx, uc.cache, uc.loc, cancelled.TableID(), cancelled.Interval())

		if uc.notifyCustomer(ctx, w, cancelled) {
			result.Notified++
		} else {
			result.Skipped++
		}
	}

	slog.Info("emergency cascade finished",
		"emergency_id", w.ID().String(),
		"cancelled", len(result.Cancelled),
		"notified", result.Notified,
		"skipped", result.Skipped,
		"failed", len(result.Failed))
	return result, nil
}

func (uc *emergencyUseCaseImpl) cancelOne(ctx context.Context, w *emergency.Window, id uuid.UUID) (*reservation.Reservation, error) {
	var res *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var terr error
		res, _, terr = applyTransition(ctx, tx, id, w.CancelCommand(), uc.clock.Now())
		return terr
	})
	return res, err
}

func (uc *emergencyUseCaseImpl) notifyCustomer(ctx context.Context, w *emergency.Window, res *reservation.Reservation) bool {
	var recipient notification.Recipient
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		recipient, ferr = tx.Recipients().FindByID(ctx, res.CustomerID())
		return repoErr(ferr, errs.ErrRecipientNotFound)
	})
	if err != nil {
		slog.Warn("emergency notification skipped: recipient lookup failed",
			"reservation_id", res.ID().String(),
			"customer_id", res.CustomerID().String(),
			"error", err.Error())
		return false
	}

	channel, ok := recipient.ResolveChannel("")
	if !ok {
		return false
	}

	start := res.Interval().Start().In(uc.loc)
	task := shared.NotificationTask{
		ID:          uuid.New(),
		RecipientID: recipient.ID,
		Channel:     channel,
		Reason:      notification.ReasonEmergencyClosure,
		SubjectKey:  res.ID().String(),
		Description: w.CancellationReason(),
		Data: map[string]string{
			"emergency_name":   w.Name(),
			"window_start":     w.Interval().Start().In(uc.loc).Format(time.RFC3339),
			"window_end":       w.Interval().End().In(uc.loc).Format(time.RFC3339),
			"reservation_id":   res.ID().String(),
			"reservation_date": start.Format(time.DateOnly),
			"reservation_time": start.Format("15:04"),
		},
		EnqueuedAt: uc.clock.Now(),
	}
	if err := uc.queue.Enqueue(ctx, task); err != nil {
		slog.Warn("emergency notification not enqueued",
			"reservation_id", res.ID().String(),
			"customer_id", res.CustomerID().String(),
			"error", err.Error())
		return false
	}
	return true
}
