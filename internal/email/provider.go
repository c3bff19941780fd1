package email

import "context"

// Provider delivers a rendered message.
type Provider interface {
	Send(ctx context.Context, email *Email) error
	Close() error
}

// TemplateRenderer renders a named HTML template.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
