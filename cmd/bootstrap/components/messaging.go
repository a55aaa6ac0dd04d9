package components

import (
	"log/slog"
	"net/http"
	"time"

	"table-booking/internal/infra/messaging"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/tracing"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		fx.Annotate(
			messaging.NewTemplateRenderer,
			fx.As(new(commands.Renderer)),
		),
		NewSenders,
		NewNotificationDispatcher,
	),
)

// NewSenders registers mail always and telegram only when a bot token is set.
func NewSenders(cfg config.Config, tracer tracing.Tracer) []commands.Sender {
	senders := []commands.Sender{messaging.NewMailSender(cfg.Notify.Mail, tracer)}
	if cfg.Notify.Telegram.BotToken == "" {
		slog.Warn("TELEGRAM_BOT_TOKEN is empty; telegram deliveries will fail")
		return senders
	}
	client := &http.Client{Timeout: cfg.Notify.AttemptTimeout + time.Second}
	return append(senders, messaging.NewTelegramSender(cfg.Notify.Telegram, client, tracer))
}

func NewNotificationDispatcher(
	uow shared.UnitOfWork,
	renderer commands.Renderer,
	cfg config.Config,
	clk clock.Clock,
	senders []commands.Sender,
) commands.NotificationCommands {
	policy := commands.DispatchPolicy{
		MaxAttempts:    cfg.Notify.MaxAttempts,
		AttemptTimeout: cfg.Notify.AttemptTimeout,
		RetryBackoff:   cfg.Notify.RetryBackoff,
	}
	return commands.NewNotificationDispatcher(uow, renderer, policy, clk, senders...)
}
