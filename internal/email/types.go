package email

// Email is one outgoing message. HTMLBody wins over Body when both are set;
// Body is then attached as the plain-text alternative.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the data passed to a template.
type TemplateData map[string]interface{}

const (
	TemplateProposalNotification = "proposal_notification"
	TemplateEmailVerification    = "email_verification"
	TemplatePasswordReset        = "password_reset"
)
