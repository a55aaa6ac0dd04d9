package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

type TaskHandler interface {
	HandleTask(ctx context.Context, task shared.NotificationTask) error
}

// Consumer drains the notification queue until its context is cancelled,
// reconnecting with exponential backoff when the broker goes away.
type Consumer struct {
	url      string
	queue    string
	prefetch int
	workers  int
	handler  TaskHandler
}

func NewConsumer(cfg config.QueueConfig, handler TaskHandler) *Consumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Consumer{
		url:      cfg.URL,
		queue:    cfg.QueueName,
		prefetch: cfg.Prefetch,
		workers:  workers,
		handler:  handler,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			slog.Warn("broker dial failed", "error", err.Error(), "retry_in", backoff.String())
			if !sleep(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = minBackoff

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("broker consume loop ended, reconnecting", "error", err.Error())
		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		slog.Warn("broker qos failed", "error", err.Error())
	}
	if err := declareQueue(ch, c.queue); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	slog.Info("notification consumer started", "queue", c.queue, "workers", c.workers)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-msgs:
					if !ok {
						return
					}
					c.handle(ctx, d)
				}
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.New("deliveries channel closed")
}

// handle acks processed tasks, drops undecodable ones and requeues a failed
// task once.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	task, err := decodeTask(d.Body)
	if err != nil {
		slog.Error("notification task rejected", "message_id", d.MessageId, "error", err.Error())
		_ = d.Nack(false, false)
		return
	}
	if err := c.handler.HandleTask(ctx, task); err != nil {
		slog.Error("notification task failed",
			"task_id", task.ID.String(),
			"recipient_id", task.RecipientID.String(),
			"redelivered", d.Redelivered,
			"error", err.Error())
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
