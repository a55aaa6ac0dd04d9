package components

import (
	"context"
	"fmt"

	"table-booking/internal/infra/broker"
	"table-booking/internal/infra/worker"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/tracing"
	"table-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var QueueModule = fx.Module("queue",
	fx.Provide(
		NewTaskQueue,
	),
)

// NewTaskQueue returns the in-process pool for QUEUE_DRIVER=memory and a
// RabbitMQ publisher for QUEUE_DRIVER=amqp; the latter is drained by the
// worker command.
func NewTaskQueue(lc fx.Lifecycle, cfg config.Config, dispatcher commands.NotificationCommands, tracer tracing.Tracer) (commands.TaskQueue, error) {
	switch cfg.Queue.Driver {
	case "memory", "":
		pool := worker.NewPool(dispatcher, cfg.Queue.Workers, cfg.Queue.Buffer)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				pool.Start(ctx)
				return nil
			},
			OnStop: pool.Stop,
		})
		return pool, nil
	case "amqp":
		pub := broker.NewPublisher(cfg.Queue, tracer)
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return pub.Close()
			},
		})
		return pub, nil
	default:
		return nil, fmt.Errorf("unknown QUEUE_DRIVER %q", cfg.Queue.Driver)
	}
}
