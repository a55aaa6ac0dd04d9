package broker

import (
	"context"
	"sync"
	"time"

	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/pkg/tracing"
	"table-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

const otelScopeName = "broker"

// Publisher keeps one connection and channel open and redials after a failure.
type Publisher struct {
	url    string
	queue  string
	tracer tracing.Tracer

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg config.QueueConfig, tracer tracing.Tracer) *Publisher {
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	return &Publisher{url: cfg.URL, queue: cfg.QueueName, tracer: tracer}
}

func (p *Publisher) Enqueue(ctx context.Context, task shared.NotificationTask) (err error) {
	ctx, scope := p.tracer.NewScope(ctx, otelScopeName, otelScopeName+".Enqueue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	scope.SetAttribute("messaging.destination", p.queue)
	scope.SetAttribute("messaging.message_id", task.ID)

	msg, err := encodeTask(task, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to open broker channel"), errs.ErrQueueUnavailable)
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.reset()
		return errs.Mark(errs.Wrap(err, "failed to publish notification task"), errs.ErrQueueUnavailable)
	}
	return nil
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := declareQueue(ch, p.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

func declareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	return err
}
