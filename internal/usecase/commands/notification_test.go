package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/commands/mocks"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testPolicy = commands.DispatchPolicy{
	MaxAttempts:    3,
	AttemptTimeout: time.Second,
	RetryBackoff:   time.Millisecond,
}

type dispatchDeps struct {
	telegram *mocks.MockSender
	mail     *mocks.MockSender
	renderer *mocks.MockRenderer
}

func (f *fixture) dispatcher(t *testing.T) (commands.NotificationCommands, dispatchDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := dispatchDeps{
		telegram: mocks.NewMockSender(ctrl),
		mail:     mocks.NewMockSender(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
	}
	deps.telegram.EXPECT().Channel().Return(notification.ChannelTelegram).AnyTimes()
	deps.mail.EXPECT().Channel().Return(notification.ChannelMail).AnyTimes()
	deps.renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return("subject", "body", nil).AnyTimes()
	return commands.NewNotificationDispatcher(f.store, deps.renderer, testPolicy, f.clock, deps.telegram, deps.mail), deps
}

func closurePayload(id uuid.UUID) notification.Payload {
	return notification.Payload{SubjectKey: id.String(), Description: "Emergency closure: Flood"}
}

func TestDispatch_TelegramFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d, deps := f.dispatcher(t)
	recipient := notification.Recipient{ID: f.customer.ID(), TelegramChatID: "1001", PreferredChannel: notification.ChannelTelegram}

	deps.telegram.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notification.Message) error {
		assert.Equal(t, "1001", msg.To)
		return errors.New("telegram: 403 bot was blocked by the user")
	}).Times(3)

	outcome, err := d.Dispatch(ctx, recipient, "", notification.ReasonEmergencyClosure, closurePayload(uuid.New()))
	require.NoError(t, err)

	assert.Equal(t, notification.ResultFailed, outcome.Result)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Contains(t, outcome.LastError, "bot was blocked")
	require.ErrorIs(t, outcome.Err(), notification.ErrDeliveryFailed)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, notification.StatusFailed, logs[0].Status)
	assert.Equal(t, notification.ChannelTelegram, logs[0].Channel)
	assert.Equal(t, notification.ReasonEmergencyClosure, logs[0].Reason)
	assert.Equal(t, 3, logs[0].Attempts)
	require.NotNil(t, logs[0].LastError)
	assert.Equal(t, *outcome.LogID, logs[0].ID)
}

func TestDispatch_RetryThenSuccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d, deps := f.dispatcher(t)
	recipient := notification.Recipient{ID: uuid.New(), Email: "guest@example.com", PreferredChannel: notification.ChannelMail}

	gomock.InOrder(
		deps.mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp: 421 try again")),
		deps.mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil),
	)

	outcome, err := d.Dispatch(ctx, recipient, "", notification.ReasonEmergencyClosure, closurePayload(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, notification.ResultSent, outcome.Result)
	assert.Equal(t, 2, outcome.Attempts)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, notification.StatusSent, logs[0].Status)
	assert.Nil(t, logs[0].LastError)
}

func TestDispatch_Skipped(t *testing.T) {
	f := newFixture(t)
	d, _ := f.dispatcher(t)

	outcome, err := d.Dispatch(context.Background(), notification.Recipient{ID: uuid.New()}, "", notification.ReasonEmergencyClosure, closurePayload(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, notification.ResultSkipped, outcome.Result)
	assert.Empty(t, f.logs(t))
}

func TestDispatch_SameSubjectReusesRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d, deps := f.dispatcher(t)
	recipient := notification.Recipient{ID: uuid.New(), Email: "guest@example.com", PreferredChannel: notification.ChannelMail}
	payload := closurePayload(uuid.New())

	deps.mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	_, err := d.Dispatch(ctx, recipient, "", notification.ReasonEmergencyClosure, payload)
	require.NoError(t, err)
	_, err = d.Dispatch(ctx, recipient, "", notification.ReasonEmergencyClosure, payload)
	require.NoError(t, err)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, 2, logs[0].Attempts)
}

func TestDispatch_MissingSender(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return("s", "b", nil)
	d := commands.NewNotificationDispatcher(f.store, renderer, testPolicy, f.clock)

	recipient := notification.Recipient{ID: uuid.New(), TelegramChatID: "7", PreferredChannel: notification.ChannelTelegram}
	outcome, err := d.Dispatch(context.Background(), recipient, "", notification.ReasonEmergencyClosure, closurePayload(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, notification.ResultFailed, outcome.Result)
	require.Len(t, f.logs(t), 1)
}

func TestDispatch_RatingRequestMarksReservation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d, deps := f.dispatcher(t)
	res := f.book(t, f.customer, f.tableA, at(10, 0), at(12, 0))

	deps.telegram.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	err := d.HandleTask(ctx, shared.NotificationTask{
		ID:          uuid.New(),
		RecipientID: f.customer.ID(),
		Reason:      notification.ReasonRatingRequest,
		SubjectKey:  res.ID().String(),
	})
	require.NoError(t, err)

	got := f.load(t, res.ID())
	require.NotNil(t, got.RatingEmailSentAt())
	assert.Equal(t, now, *got.RatingEmailSentAt())
	assert.Equal(t, reservation.StatusPending, got.Status())
}

func TestHandleTask_UnknownRecipient(t *testing.T) {
	f := newFixture(t)
	d, _ := f.dispatcher(t)

	err := d.HandleTask(context.Background(), shared.NotificationTask{
		ID:          uuid.New(),
		RecipientID: uuid.New(),
		Reason:      notification.ReasonEmergencyClosure,
		SubjectKey:  uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Empty(t, f.logs(t))
}

func TestDispatch_RequiresSubjectKey(t *testing.T) {
	f := newFixture(t)
	d, _ := f.dispatcher(t)

	_, err := d.Dispatch(context.Background(), notification.Recipient{ID: uuid.New(), Email: "a@b.c", PreferredChannel: notification.ChannelMail},
		"", notification.ReasonEmergencyClosure, notification.Payload{})
	require.ErrorIs(t, err, notification.ErrMissingSubjectKey)
}

func TestDispatch_ZeroAttemptTimeoutUsesDefault(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	mail := mocks.NewMockSender(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)
	mail.EXPECT().Channel().Return(notification.ChannelMail).AnyTimes()
	renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return("s", "b", nil)
	mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ notification.Message) error {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.Greater(t, time.Until(deadline), time.Second)
		return ctx.Err()
	})

	d := commands.NewNotificationDispatcher(f.store, renderer, commands.DispatchPolicy{MaxAttempts: 1}, f.clock, mail)
	recipient := notification.Recipient{ID: uuid.New(), Email: "guest@example.com", PreferredChannel: notification.ChannelMail}
	outcome, err := d.Dispatch(context.Background(), recipient, "", notification.ReasonEmergencyClosure, closurePayload(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, notification.ResultSent, outcome.Result)
}

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		name    string
		base    time.Duration
		attempt int
		want    time.Duration
	}{
		{"first retry uses base", 100 * time.Millisecond, 1, 100 * time.Millisecond},
		{"doubles per attempt", 100 * time.Millisecond, 4, 800 * time.Millisecond},
		{"capped", time.Second, 10, time.Minute},
		{"large attempt does not overflow", time.Second, 100, time.Minute},
		{"base above cap", 2 * time.Minute, 1, time.Minute},
		{"no backoff", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commands.RetryDelay(tt.base, tt.attempt))
		})
	}
}
