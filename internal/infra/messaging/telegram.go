// Package messaging holds the channel senders and the message renderer used
// by the notification dispatcher.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"table-booking/internal/domain/notification"
	"table-booking/internal/pkg/config"
	"table-booking/internal/pkg/tracing"
)

const otelScopeName = "messaging"

// TelegramSender posts to the Bot API sendMessage method.
type TelegramSender struct {
	endpoint string
	client   *http.Client
	tracer   tracing.Tracer
}

func NewTelegramSender(cfg config.TelegramConfig, client *http.Client, tracer tracing.Tracer) *TelegramSender {
	if client == nil {
		client = http.DefaultClient
	}
	if tracer == nil {
		tracer = tracing.NewNoop()
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &TelegramSender{
		endpoint: fmt.Sprintf("%s/bot%s/sendMessage", base, cfg.BotToken),
		client:   client,
		tracer:   tracer,
	}
}

func (s *TelegramSender) Channel() notification.Channel {
	return notification.ChannelTelegram
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type botResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Send fails on transport errors, non-2xx statuses and ok=false replies.
// The caller bounds the attempt with ctx.
func (s *TelegramSender) Send(ctx context.Context, msg notification.Message) (err error) {
	ctx, scope := s.tracer.NewScope(ctx, otelScopeName, otelScopeName+".Telegram.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	text := msg.Body
	if msg.Subject != "" {
		text = msg.Subject + "\n\n" + msg.Body
	}
	payload, err := json.Marshal(sendMessageRequest{ChatID: msg.To, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()
	scope.SetAttribute("http.status_code", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var out botResponse
	_ = json.Unmarshal(body, &out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !out.OK {
		desc := out.Description
		if desc == "" {
			desc = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("telegram sendMessage failed (status %d): %s", resp.StatusCode, desc)
	}
	return nil
}
