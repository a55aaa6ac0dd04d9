package notification_test

import (
	"testing"

	"table-booking/internal/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipient_ResolveChannel(t *testing.T) {
	tests := []struct {
		name      string
		recipient notification.Recipient
		requested notification.Channel
		want      notification.Channel
		ok        bool
	}{
		{
			name:      "preferred telegram",
			recipient: notification.Recipient{TelegramChatID: "42", PreferredChannel: notification.ChannelTelegram},
			want:      notification.ChannelTelegram, ok: true,
		},
		{
			name:      "preferred mail",
			recipient: notification.Recipient{Email: "a@example.com", PreferredChannel: notification.ChannelMail},
			want:      notification.ChannelMail, ok: true,
		},
		{
			name:      "explicit channel overrides preference",
			recipient: notification.Recipient{Email: "a@example.com", TelegramChatID: "42", PreferredChannel: notification.ChannelTelegram},
			requested: notification.ChannelMail,
			want:      notification.ChannelMail, ok: true,
		},
		{
			name:      "no preference",
			recipient: notification.Recipient{Email: "a@example.com"},
			ok:        false,
		},
		{
			name:      "telegram without chat id",
			recipient: notification.Recipient{PreferredChannel: notification.ChannelTelegram},
			want:      notification.ChannelTelegram, ok: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.recipient.ResolveChannel(tt.requested)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	c, err := notification.ParseChannel("")
	require.NoError(t, err)
	assert.Empty(t, c)

	_, err = notification.ParseChannel("sms")
	require.ErrorIs(t, err, notification.ErrInvalidChannel)

	r, err := notification.ParseReason("Rating Request")
	require.NoError(t, err)
	assert.Equal(t, notification.ReasonRatingRequest, r)

	_, err = notification.ParseReason("rating")
	require.ErrorIs(t, err, notification.ErrInvalidReason)
}

func TestPayload_Validate(t *testing.T) {
	require.ErrorIs(t, notification.Payload{}.Validate(), notification.ErrMissingSubjectKey)
	require.NoError(t, notification.Payload{SubjectKey: "report:2030-06-01"}.Validate())
}

func TestOutcome_Err(t *testing.T) {
	assert.NoError(t, notification.Outcome{Result: notification.ResultSent}.Err())
	assert.NoError(t, notification.Skipped().Err())

	err := notification.Outcome{Result: notification.ResultFailed, LastError: "bot blocked"}.Err()
	require.ErrorIs(t, err, notification.ErrDeliveryFailed)
	assert.Contains(t, err.Error(), "bot blocked")
}
