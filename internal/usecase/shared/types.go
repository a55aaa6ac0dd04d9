package shared

import (
	"context"
	"time"

	"table-booking/internal/domain/notification"
	"table-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// NotificationTask is one unit of fan-out work. It is serialized onto the broker as JSON.
type NotificationTask struct {
	ID          uuid.UUID            `json:"id"`
	RecipientID uuid.UUID            `json:"recipient_id"`
	Channel     notification.Channel `json:"channel,omitempty"`
	Reason      notification.Reason  `json:"reason"`
	SubjectKey  string               `json:"subject_key"`
	Description string               `json:"description"`
	Data        map[string]string    `json:"data,omitempty"`
	EnqueuedAt  time.Time            `json:"enqueued_at"`
}

func (t NotificationTask) Payload() notification.Payload {
	return notification.Payload{
		SubjectKey:  t.SubjectKey,
		Description: t.Description,
		Data:        t.Data,
	}
}

// BusyInterval is a blocking reservation as the availability view exposes it.
type BusyInterval struct {
	ReservationID uuid.UUID          `json:"reservation_id"`
	Start         time.Time          `json:"start"`
	End           time.Time          `json:"end"`
	Status        reservation.Status `json:"status"`
}

// AvailabilityCache stores busy intervals per (table, day). A miss returns ok=false.
type AvailabilityCache interface {
	Get(ctx context.Context, tableID uuid.UUID, day time.Time) ([]BusyInterval, bool, error)
	Set(ctx context.Context, tableID uuid.UUID, day time.Time, busy []BusyInterval) error
	Invalidate(ctx context.Context, tableID uuid.UUID, days ...time.Time) error
}

// NoopAvailabilityCache is used when no Redis address is configured.
type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) Get(context.Context, uuid.UUID, time.Time) ([]BusyInterval, bool, error) {
	return nil, false, nil
}

func (NoopAvailabilityCache) Set(context.Context, uuid.UUID, time.Time, []BusyInterval) error {
	return nil
}

func (NoopAvailabilityCache) Invalidate(context.Context, uuid.UUID, ...time.Time) error {
	return nil
}
