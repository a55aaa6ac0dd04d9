package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservation struct {
	ID                 uuid.UUID
	TableID            uuid.UUID
	CustomerID         uuid.UUID
	ManagerID          pgtype.UUID
	StartAt            pgtype.Timestamptz
	EndAt              pgtype.Timestamptz
	GuestCount         int32
	Services           string
	Status             string
	CancellationReason pgtype.Text
	RatingEmailSentAt  pgtype.Timestamptz
	CreatedAt          pgtype.Timestamptz
	UpdatedAt          pgtype.Timestamptz
	DeletedAt          pgtype.Timestamptz
}

type ReservationAuditEntry struct {
	ReservationID uuid.UUID
	Sequence      int32
	Status        string
	ActorID       pgtype.UUID
	RecordedAt    pgtype.Timestamptz
}

type Emergency struct {
	ID          uuid.UUID
	Name        string
	Description string
	StartAt     pgtype.Timestamptz
	EndAt       pgtype.Timestamptz
	CreatedBy   pgtype.UUID
	CreatedAt   pgtype.Timestamptz
}

type NotificationLog struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Channel     string
	Reason      string
	SubjectKey  string
	Description string
	Status      string
	Attempts    int32
	LastError   pgtype.Text
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type TableRow struct {
	ID        uuid.UUID
	Capacity  int32
	ManagerID pgtype.UUID
}

type RecipientRow struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	TelegramChatID      string
	NotificationChannel pgtype.Text
	DepartmentID        pgtype.UUID
}
