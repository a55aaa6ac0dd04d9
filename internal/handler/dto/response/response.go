package response

import (
	"time"

	"table-booking/internal/domain/emergency"
	"table-booking/internal/domain/notification"
	"table-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type EmergencyResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       time.Time  `json:"end_at"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CascadeFailureResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Error         string    `json:"error"`
}

type CascadeResponse struct {
	Emergency EmergencyResponse        `json:"emergency"`
	Affected  int                      `json:"affected"`
	Cancelled []uuid.UUID              `json:"cancelled"`
	Notified  int                      `json:"notified"`
	Skipped   int                      `json:"skipped"`
	Failed    []CascadeFailureResponse `json:"failed"`
}

func FromCascade(w *emergency.Window, r commands.CascadeResult) *CascadeResponse {
	resp := &CascadeResponse{
		Emergency: EmergencyResponse{
			ID:          w.ID(),
			Name:        w.Name(),
			Description: w.Description(),
			StartAt:     w.Interval().Start(),
			EndAt:       w.Interval().End(),
			CreatedBy:   w.CreatedBy(),
			CreatedAt:   w.CreatedAt(),
		},
		Affected:  r.Affected,
		Cancelled: r.Cancelled,
		Notified:  r.Notified,
		Skipped:   r.Skipped,
		Failed:    make([]CascadeFailureResponse, 0, len(r.Failed)),
	}
	if resp.Cancelled == nil {
		resp.Cancelled = []uuid.UUID{}
	}
	for _, f := range r.Failed {
		resp.Failed = append(resp.Failed, CascadeFailureResponse(f))
	}
	return resp
}

type DispatchResponse struct {
	Result    string     `json:"result"`
	Channel   string     `json:"channel,omitempty"`
	LogID     *uuid.UUID `json:"log_id,omitempty"`
	Attempts  int        `json:"attempts"`
	LastError string     `json:"last_error,omitempty"`
}

func FromOutcome(o notification.Outcome) *DispatchResponse {
	return &DispatchResponse{
		Result:    string(o.Result),
		Channel:   o.Channel.String(),
		LogID:     o.LogID,
		Attempts:  o.Attempts,
		LastError: o.LastError,
	}
}
