package email

import "marketplace_backend/internal/config"

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func SMTPConfigFrom(cfg *config.Config) *SMTPConfig {
	return &SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}
}

// NewProvider returns an SMTP provider when email is enabled, otherwise a
// provider that only logs.
func NewProvider(cfg *config.Config) (Provider, error) {
	if !cfg.Email.Enabled {
		return NewLogProvider(), nil
	}
	p := NewSMTPProvider(SMTPConfigFrom(cfg))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
