package queries

import (
	"time"

	"table-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// ReservationView is the read shape of a reservation.
type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	TableID            uuid.UUID  `json:"table_id"`
	CustomerID         uuid.UUID  `json:"customer_id"`
	ManagerID          *uuid.UUID `json:"manager_id,omitempty"`
	StartAt            time.Time  `json:"start_at"`
	EndAt              time.Time  `json:"end_at"`
	GuestCount         int        `json:"guest_count"`
	Services           string     `json:"services"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	RatingEmailSentAt  *time.Time `json:"rating_email_sent_at,omitempty"`
	AvailableEvents    []string   `json:"available_events"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
}

func NewReservationView(r *reservation.Reservation) *ReservationView {
	events := make([]string, 0)
	for _, ev := range r.AvailableEvents() {
		events = append(events, ev.String())
	}
	return &ReservationView{
		ID:                 r.ID(),
		TableID:            r.TableID(),
		CustomerID:         r.CustomerID(),
		ManagerID:          r.ManagerID(),
		StartAt:            r.Interval().Start(),
		EndAt:              r.Interval().End(),
		GuestCount:         r.GuestCount().Int(),
		Services:           r.Services().String(),
		Status:             r.Status().String(),
		CancellationReason: r.CancellationReason(),
		RatingEmailSentAt:  r.RatingEmailSentAt(),
		AvailableEvents:    events,
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
		DeletedAt:          r.DeletedAt(),
	}
}

type AuditEntryView struct {
	Sequence   int        `json:"sequence"`
	Status     string     `json:"status"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	RecordedAt time.Time  `json:"recorded_at"`
}

type AuditTrailView struct {
	ReservationID uuid.UUID        `json:"reservation_id"`
	Entries       []AuditEntryView `json:"entries"`
}

type BusyIntervalView struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
}

type AvailabilityView struct {
	TableID uuid.UUID          `json:"table_id"`
	Date    string             `json:"date"`
	From    time.Time          `json:"from"`
	To      time.Time          `json:"to"`
	Busy    []BusyIntervalView `json:"busy"`
	Cached  bool               `json:"cached"`
}

type NotificationLogView struct {
	ID          uuid.UUID `json:"id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Channel     string    `json:"channel"`
	Reason      string    `json:"reason"`
	SubjectKey  string    `json:"subject_key"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	LastError   *string   `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NotificationLogPage struct {
	Items      []NotificationLogView `json:"items"`
	NextCursor *string               `json:"next_cursor,omitempty"`
}
