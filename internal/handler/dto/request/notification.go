package request

import (
	"table-booking/internal/domain/notification"
	"table-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type DispatchNotificationRequest struct {
	RecipientID uuid.UUID         `json:"recipient_id" binding:"required"`
	Channel     string            `json:"channel" binding:"omitempty,oneof=mail telegram"`
	Reason      string            `json:"reason" binding:"required"`
	SubjectKey  string            `json:"subject_key" binding:"required,max=200"`
	Description string            `json:"description"`
	Data        map[string]string `json:"data,omitempty"`
}

func (r DispatchNotificationRequest) Parse() (notification.Channel, notification.Reason, notification.Payload, error) {
	channel, err := notification.ParseChannel(r.Channel)
	if err != nil {
		return "", "", notification.Payload{}, err
	}
	reason, err := notification.ParseReason(r.Reason)
	if err != nil {
		return "", "", notification.Payload{}, err
	}
	payload := notification.Payload{
		SubjectKey:  r.SubjectKey,
		Description: r.Description,
		Data:        r.Data,
	}
	return channel, reason, payload, payload.Validate()
}

type ListNotificationsQuery struct {
	RecipientID string `form:"recipient_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=attempting sent failed"`
	Cursor      string `form:"cursor"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q ListNotificationsQuery) ToQuery() (queries.NotificationLogQuery, error) {
	out := queries.NotificationLogQuery{Cursor: q.Cursor, Limit: q.Limit}
	if q.RecipientID != "" {
		id, err := uuid.Parse(q.RecipientID)
		if err != nil {
			return queries.NotificationLogQuery{}, err
		}
		out.RecipientID = &id
	}
	if q.Status != "" {
		st, err := notification.ParseStatus(q.Status)
		if err != nil {
			return queries.NotificationLogQuery{}, err
		}
		out.Status = &st
	}
	return out, nil
}
