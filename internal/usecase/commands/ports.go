package commands

import (
	"context"

	"table-booking/internal/domain/notification"
	"table-booking/internal/usecase/shared"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

// Sender delivers a rendered message over one channel.
type Sender interface {
	Channel() notification.Channel
	Send(ctx context.Context, msg notification.Message) error
}

type Renderer interface {
	Render(reason notification.Reason, recipient notification.Recipient, payload notification.Payload) (subject, body string, err error)
}

// TaskQueue accepts notification work for asynchronous dispatch.
type TaskQueue interface {
	Enqueue(ctx context.Context, task shared.NotificationTask) error
}
