package email

import (
	"context"

	"marketplace_backend/internal/logger"
)

// LogProvider is used when outgoing email is disabled.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "Email delivery disabled, message logged only",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) Close() error {
	return nil
}
