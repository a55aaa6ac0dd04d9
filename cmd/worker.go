package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"table-booking/internal/infra/broker"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/commands"

	"github.com/spf13/cobra"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume notification tasks from RabbitMQ",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var (
				cfg        config.Config
				dispatcher commands.NotificationCommands
			)
			app, err := startCore(ctx, &cfg, &dispatcher)
			if err != nil {
				return err
			}
			defer stopApp(app)

			if cfg.Queue.Driver != "amqp" {
				return errors.New("worker requires QUEUE_DRIVER=amqp; the memory queue runs inside the server")
			}
			slog.Info("worker started", "queue", cfg.Queue.QueueName)
			return broker.NewConsumer(cfg.Queue, dispatcher).Run(ctx)
		},
	}
}
