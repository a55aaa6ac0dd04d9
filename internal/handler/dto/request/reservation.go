package request

import (
	"time"

	"table-booking/internal/domain/reservation"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	TableID    uuid.UUID `json:"table_id" binding:"required"`
	StartAt    time.Time `json:"start_at" binding:"required"`
	EndAt      time.Time `json:"end_at" binding:"required"`
	GuestCount int       `json:"guest_count" binding:"required,min=1"`
	Services   string    `json:"services" binding:"max=2000"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		TableID:    r.TableID,
		Start:      r.StartAt,
		End:        r.EndAt,
		GuestCount: r.GuestCount,
		Services:   r.Services,
	}
}

// UpdateReservationRequest is a partial update; absent fields keep their value.
type UpdateReservationRequest struct {
	StartAt    *time.Time `json:"start_at,omitempty"`
	EndAt      *time.Time `json:"end_at,omitempty"`
	GuestCount *int       `json:"guest_count,omitempty" binding:"omitempty,min=1"`
	Services   *string    `json:"services,omitempty" binding:"omitempty,max=2000"`
}

func (r UpdateReservationRequest) IsEmpty() bool {
	return r.StartAt == nil && r.EndAt == nil && r.GuestCount == nil && r.Services == nil
}

func (r UpdateReservationRequest) Merge(current *queries.ReservationView) commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		Start:      valueOr(r.StartAt, current.StartAt),
		End:        valueOr(r.EndAt, current.EndAt),
		GuestCount: valueOr(r.GuestCount, current.GuestCount),
		Services:   valueOr(r.Services, current.Services),
	}
}

type TransitionRequest struct {
	Event  string `json:"event" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

func (r TransitionRequest) ToInput() (commands.TransitionInput, error) {
	ev, err := reservation.ParseEvent(r.Event)
	if err != nil {
		return commands.TransitionInput{}, err
	}
	return commands.TransitionInput{Event: ev, Reason: r.Reason}, nil
}

func valueOr[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}
