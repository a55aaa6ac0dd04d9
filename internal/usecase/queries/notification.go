package queries

import (
	"context"

	"table-booking/internal/domain/actor"
	"table-booking/internal/domain/notification"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

//go:generate mockgen -source=notification.go -destination=mocks/notification_mock.go -package=mocks

type NotificationLogQuery struct {
	RecipientID *uuid.UUID
	Status      *notification.Status
	Cursor      string
	Limit       int
}

type NotificationQueries interface {
	ListLogs(ctx context.Context, a actor.Actor, q NotificationLogQuery) (*NotificationLogPage, error)
}

type notificationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationQueries(uow shared.UnitOfWork) NotificationQueries {
	return &notificationQueriesImpl{uow: uow}
}

var ErrInvalidCursor = errs.New("invalid cursor")

// ListLogs: admins see every row, everyone else only their own.
func (n *notificationQueriesImpl) ListLogs(ctx context.Context, a actor.Actor, q NotificationLogQuery) (*NotificationLogPage, error) {
	limit := clampLimit(q.Limit)
	filter := shared.NotificationLogFilter{
		RecipientID: q.RecipientID,
		Status:      q.Status,
		Limit:       limit + 1,
	}
	if !a.IsAdmin() && !a.IsSystem() {
		self := a.ID()
		filter.RecipientID = &self
	}
	if q.Cursor != "" {
		createdAt, id, err := DecodeCursor(q.Cursor)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidCursor)
		}
		filter.BeforeCreatedAt = &createdAt
		filter.BeforeID = &id
	}

	var entries []notification.LogEntry
	err := n.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var lerr error
		entries, lerr = tx.Notifications().List(ctx, filter)
		if lerr != nil {
			return errs.Mark(lerr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	page := &NotificationLogPage{Items: []NotificationLogView{}}
	if len(entries) > limit {
		last := entries[limit-1]
		next := EncodeCursor(last.CreatedAt, last.ID)
		page.NextCursor = &next
		entries = entries[:limit]
	}
	if err := copier.Copy(&page.Items, &entries); err != nil {
		return nil, errs.Wrap(err, "failed to map notification logs")
	}
	return page, nil
}
