package sms

import (
	"context"
	"log/slog"
)

// Sender delivers a text message to a phone number via an external gateway.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// LoggerSender is a dry-run sender that writes messages to the structured
// logger instead of a real provider. Used in environments without an SMS
// gateway.
type LoggerSender struct {
	logger *slog.Logger
}

// NewLoggerSender constructs a logging dry-run sender.
func NewLoggerSender(logger *slog.Logger) *LoggerSender {
	return &LoggerSender{logger: logger}
}

// Send writes the message to the structured logger.
func (s *LoggerSender) Send(_ context.Context, to, body string) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Info("sms dry run", "to", to, "body", body)
	return nil
}
