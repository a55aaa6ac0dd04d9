package commands_test

import (
	"context"
	"errors"
	"testing"

	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"
	"table-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSendDailyReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d, deps := f.dispatcher(t)

	first := f.book(t, f.customer, f.tableA, at(10, 0), at(12, 0))
	f.book(t, f.customer2, f.tableB, at(18, 0), at(20, 0))
	_, err := f.reservations().Transition(ctx, f.manager, first.ID(), commands.TransitionInput{Event: reservation.EventConfirm})
	require.NoError(t, err)

	deps.mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notification.Message) error {
		assert.Equal(t, "mia@example.com", msg.To)
		return nil
	})

	summary, err := commands.NewReportUseCase(f.store, d, nil).SendDailyReports(ctx, at(15, 0))
	require.NoError(t, err)
	assert.Equal(t, "2030-06-01", summary.Day)
	assert.Equal(t, 1, summary.Managers)
	assert.Equal(t, 1, summary.Sent)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, notification.ReasonManagerDailyReport, logs[0].Reason)
	assert.Equal(t, "report:2030-06-01", logs[0].SubjectKey)
	assert.Contains(t, logs[0].Description, "2 reservations")
}

func TestSendDailyReports_FailureIsAbsorbed(t *testing.T) {
	f := newFixture(t)
	second := uuid.New()
	f.store.AddRecipient(notification.Recipient{ID: second, Email: "max@example.com", PreferredChannel: notification.ChannelMail}, true)
	f.store.AddRecipient(notification.Recipient{ID: uuid.New(), Name: "no channel"}, true)
	d, deps := f.dispatcher(t)

	deps.mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg notification.Message) error {
		if msg.To == "max@example.com" {
			return errors.New("mailbox full")
		}
		return nil
	}).AnyTimes()

	summary, err := commands.NewReportUseCase(f.store, d, nil).SendDailyReports(context.Background(), at(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Managers)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
}
