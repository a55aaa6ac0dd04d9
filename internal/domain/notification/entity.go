package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipient is read from the user directory; this service never writes it.
type Recipient struct {
	ID               uuid.UUID
	Name             string
	Email            string
	TelegramChatID   string
	PreferredChannel Channel
	DepartmentID     *uuid.UUID
}

// ResolveChannel picks the requested channel, falling back to the preferred one,
// and only returns it when the recipient has an address for it.
func (r Recipient) ResolveChannel(requested Channel) (Channel, bool) {
	c := requested
	if c == "" {
		c = r.PreferredChannel
	}
	switch c {
	case ChannelMail:
		return c, strings.TrimSpace(r.Email) != ""
	case ChannelTelegram:
		return c, strings.TrimSpace(r.TelegramChatID) != ""
	default:
		return "", false
	}
}

// Address is the channel-specific destination.
func (r Recipient) Address(c Channel) string {
	if c == ChannelTelegram {
		return r.TelegramChatID
	}
	return r.Email
}

// Payload carries what a message is about. SubjectKey identifies the entity
// (reservation id, report date) and is part of the log row's identity.
type Payload struct {
	SubjectKey  string
	Description string
	Data        map[string]string
}

func (p Payload) Validate() error {
	if strings.TrimSpace(p.SubjectKey) == "" {
		return ErrMissingSubjectKey
	}
	return nil
}

// Message is a rendered notification ready for a sender.
type Message struct {
	Channel Channel
	To      string
	Subject string
	Body    string
}

type LogEntry struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Channel     Channel
	Reason      Reason
	SubjectKey  string
	Description string
	Status      Status
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Outcome is what Dispatch reports back. Delivery failures are an outcome, not an error.
type Outcome struct {
	Result    Result
	Channel   Channel
	LogID     *uuid.UUID
	Attempts  int
	LastError string
}

func Skipped() Outcome {
	return Outcome{Result: ResultSkipped}
}

func (o Outcome) Delivered() bool {
	return o.Result == ResultSent
}

// Err is non-nil for failed deliveries and matches ErrDeliveryFailed.
func (o Outcome) Err() error {
	if o.Result != ResultFailed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrDeliveryFailed, o.LastError)
}
