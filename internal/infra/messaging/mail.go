package messaging

import (
	"context"
	"fmt"
	"strings"

	"table-booking/internal/domain/notification"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/tracing"

	"github.com/wneessen/go-mail"
)

type MailSender struct {
	cfg    config.MailConfig
	tracer tracing.Tracer
}

func NewMailSender(cfg config.MailConfig, tracer tracing.Tracer) *MailSender {
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	return &MailSender{cfg: cfg, tracer: tracer}
}

func (s *MailSender) Channel() notification.Channel {
	return notification.ChannelMail
}

func (s *MailSender) Send(ctx context.Context, msg notification.Message) (err error) {
	ctx, scope := s.tracer.NewScope(ctx, otelScopeName, otelScopeName+".Mail.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	m, err := s.buildMessage(msg)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}

func (s *MailSender) buildMessage(msg notification.Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

func (s *MailSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(tlsPolicy(s.cfg.TLSPolicy)),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

func tlsPolicy(name string) mail.TLSPolicy {
	switch strings.ToLower(name) {
	case "mandatory":
		return mail.TLSMandatory
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSOpportunistic
	}
}
