package commands

import (
	"context"
	"log/slog"
	"time"

	"table-booking/internal/domain/notification"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notification.go -destination=mocks/notification_mock.go -package=mocks

var errNoSender = errs.New("no sender configured for channel")

const (
	defaultAttemptTimeout = 10 * time.Second
	maxRetryBackoff       = time.Minute
)

type DispatchPolicy struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
	RetryBackoff   time.Duration
}

type NotificationCommands interface {
	// Dispatch delivers one message. Delivery failures come back as a failed
	// Outcome; only store errors are returned as errors.
	Dispatch(ctx context.Context, recipient notification.Recipient, channel notification.Channel, reason notification.Reason, payload notification.Payload) (notification.Outcome, error)
	DispatchTo(ctx context.Context, recipientID uuid.UUID, channel notification.Channel, reason notification.Reason, payload notification.Payload) (notification.Outcome, error)
	HandleTask(ctx context.Context, task shared.NotificationTask) error
}

type dispatcherImpl struct {
	uow      shared.UnitOfWork
	renderer Renderer
	senders  map[notification.Channel]Sender
	policy   DispatchPolicy
	clock    clock.Clock
}

func NewNotificationDispatcher(
	uow shared.UnitOfWork,
	renderer Renderer,
	policy DispatchPolicy,
	clk clock.Clock,
	senders ...Sender,
) NotificationCommands {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.AttemptTimeout <= 0 {
		policy.AttemptTimeout = defaultAttemptTimeout
	}
	m := make(map[notification.Channel]Sender, len(senders))
	for _, s := range senders {
		if s != nil {
			m[s.Channel()] = s
		}
	}
	return &dispatcherImpl{uow: uow, renderer: renderer, senders: m, policy: policy, clock: clk}
}

func (d *dispatcherImpl) DispatchTo(ctx context.Context, recipientID uuid.UUID, channel notification.Channel, reason notification.Reason, payload notification.Payload) (notification.Outcome, error) {
	recipient, err := d.loadRecipient(ctx, recipientID)
	if err != nil {
		return notification.Outcome{}, err
	}
	return d.Dispatch(ctx, recipient, channel, reason, payload)
}

func (d *dispatcherImpl) HandleTask(ctx context.Context, task shared.NotificationTask) error {
	recipient, err := d.loadRecipient(ctx, task.RecipientID)
	if err != nil {
		if errs.Is(err, errs.ErrRecipientNotFound) {
			slog.Warn("notification task dropped: unknown recipient",
				"task_id", task.ID.String(),
				"recipient_id", task.RecipientID.String())
			return nil
		}
		return err
	}
	outcome, err := d.Dispatch(ctx, recipient, task.Channel, task.Reason, task.Payload())
	if err != nil {
		return err
	}
	slog.Info("notification task handled",
		"task_id", task.ID.String(),
		"reason", task.Reason.String(),
		"result", string(outcome.Result),
		"attempts", outcome.Attempts)
	return nil
}

func (d *dispatcherImpl) Dispatch(
	ctx context.Context,
	recipient notification.Recipient,
	channel notification.Channel,
	reason notification.Reason,
	payload notification.Payload,
) (notification.Outcome, error) {
	if err := payload.Validate(); err != nil {
		return notification.Outcome{}, err
	}
	ch, ok := recipient.ResolveChannel(channel)
	if !ok {
		slog.Debug("notification skipped: no usable channel",
			"recipient_id", recipient.ID.String(),
			"reason", reason.String())
		return notification.Skipped(), nil
	}

	subject, body, err := d.renderer.Render(reason, recipient, payload)
	if err != nil {
		return notification.Outcome{}, errs.Wrap(err, "failed to render notification")
	}
	msg := notification.Message{Channel: ch, To: recipient.Address(ch), Subject: subject, Body: body}

	var entry notification.LogEntry
	err = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var berr error
		entry, berr = tx.Notifications().BeginAttempt(ctx, shared.BeginAttemptParams{
			RecipientID: recipient.ID,
			Channel:     ch,
			Reason:      reason,
			SubjectKey:  payload.SubjectKey,
			Description: payload.Description,
			At:          d.clock.Now(),
		})
		return repoErr(berr, errs.ErrRecipientNotFound)
	})
	if err != nil {
		return notification.Outcome{}, err
	}

	// bookkeeping must land even when the caller gives up mid-retry
	storeCtx := context.WithoutCancel(ctx)
	attempts := entry.Attempts
	var sendErr error
	for i := 1; i <= d.policy.MaxAttempts; i++ {
		attempts++
		sendErr = d.send(ctx, msg)
		if sendErr == nil {
			break
		}
		slog.Warn("notification attempt failed",
			"log_id", entry.ID.String(),
			"recipient_id", recipient.ID.String(),
			"channel", ch.String(),
			"attempt", i,
			"error", sendErr.Error())
		if i == d.policy.MaxAttempts || ctx.Err() != nil {
			break
		}
		if err := d.record(storeCtx, entry.ID, notification.StatusAttempting, attempts, sendErr); err != nil {
			return notification.Outcome{}, err
		}
		if !d.wait(ctx, i) {
			break
		}
	}

	status := notification.StatusSent
	if sendErr != nil {
		status = notification.StatusFailed
	}
	if err := d.record(storeCtx, entry.ID, status, attempts, sendErr); err != nil {
		return notification.Outcome{}, err
	}

	id := entry.ID
	outcome := notification.Outcome{Channel: ch, LogID: &id, Attempts: attempts}
	if sendErr != nil {
		outcome.Result = notification.ResultFailed
		outcome.LastError = sendErr.Error()
		return outcome, nil
	}
	outcome.Result = notification.ResultSent

	if reason == notification.ReasonRatingRequest {
		d.markRatingSent(storeCtx, payload.SubjectKey)
	}
	return outcome, nil
}

func (d *dispatcherImpl) send(ctx context.Context, msg notification.Message) error {
	sender, ok := d.senders[msg.Channel]
	if !ok {
		return errNoSender
	}
	attemptCtx, cancel := context.WithTimeout(ctx, d.policy.AttemptTimeout)
	defer cancel()
	return sender.Send(attemptCtx, msg)
}

func (d *dispatcherImpl) wait(ctx context.Context, attempt int) bool {
	backoff := retryDelay(d.policy.RetryBackoff, attempt)
	if backoff <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryDelay doubles base per attempt, capped at maxRetryBackoff.
func retryDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= maxRetryBackoff/2 {
			return maxRetryBackoff
		}
		delay *= 2
	}
	return min(delay, maxRetryBackoff)
}

func (d *dispatcherImpl) record(ctx context.Context, id uuid.UUID, status notification.Status, attempts int, sendErr error) error {
	var lastErr *string
	if sendErr != nil {
		msg := sendErr.Error()
		lastErr = &msg
	}
	return d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, rerr := tx.Notifications().RecordAttempt(ctx, shared.RecordAttemptParams{
			ID:        id,
			Status:    status,
			Attempts:  attempts,
			LastError: lastErr,
			At:        d.clock.Now(),
		})
		return repoErr(rerr, errs.ErrDatabaseOperationFailed)
	})
}

func (d *dispatcherImpl) markRatingSent(ctx context.Context, subjectKey string) {
	id, err := uuid.Parse(subjectKey)
	if err != nil {
		return
	}
	err = d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, lerr := tx.Reservations().LockByID(ctx, id)
		if lerr != nil {
			return repoErr(lerr, errs.ErrReservationNotFound)
		}
		if !res.MarkRatingEmailSent(d.clock.Now()) {
			return nil
		}
		return repoErr(tx.Reservations().Save(ctx, res), errs.ErrReservationNotFound)
	})
	if err != nil {
		slog.Warn("failed to mark rating request sent",
			"reservation_id", subjectKey,
			"error", err.Error())
	}
}

func (d *dispatcherImpl) loadRecipient(ctx context.Context, id uuid.UUID) (notification.Recipient, error) {
	var recipient notification.Recipient
	err := d.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		recipient, ferr = tx.Recipients().FindByID(ctx, id)
		return repoErr(ferr, errs.ErrRecipientNotFound)
	})
	return recipient, err
}
