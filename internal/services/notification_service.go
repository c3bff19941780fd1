package services

import (
	"context"
	"strings"

	"marketplace_backend/internal/email"
	"marketplace_backend/internal/logger"
)

// NotificationQueue accepts messages for asynchronous delivery.
type NotificationQueue interface {
	Enqueue(msg *email.Email) bool
}

// NotificationService renders emails and hands them to the queue. Nothing here
// returns an error: a failed notification never fails the triggering request.
type NotificationService interface {
	NotifyProposalSubmitted(ctx context.Context, to, campaignTitle, influencerName string)
	SendEmailVerification(ctx context.Context, to, name, token string)
	SendPasswordReset(ctx context.Context, to, token string)
}

type NotificationServiceImpl struct {
	renderer  email.TemplateRenderer
	queue     NotificationQueue
	clientURL string
}

func NewNotificationService(renderer email.TemplateRenderer, queue NotificationQueue, clientURL string) NotificationService {
	return &NotificationServiceImpl{
		renderer:  renderer,
		queue:     queue,
		clientURL: strings.TrimSuffix(clientURL, "/"),
	}
}

func (s *NotificationServiceImpl) NotifyProposalSubmitted(ctx context.Context, to, campaignTitle, influencerName string) {
	s.send(ctx, to, "New Proposal Received - "+campaignTitle, email.TemplateProposalNotification, email.TemplateData{
		"CampaignTitle":  campaignTitle,
		"InfluencerName": influencerName,
		"Link":           s.clientURL + "/proposals",
	})
}

func (s *NotificationServiceImpl) SendEmailVerification(ctx context.Context, to, name, token string) {
	s.send(ctx, to, "Verify Your Email - Influencer Brand Marketplace", email.TemplateEmailVerification, email.TemplateData{
		"Name": name,
		"Link": s.clientURL + "/verify-email/" + token,
	})
}

func (s *NotificationServiceImpl) SendPasswordReset(ctx context.Context, to, token string) {
	s.send(ctx, to, "Password Reset - Influencer Brand Marketplace", email.TemplatePasswordReset, email.TemplateData{
		"Link": s.clientURL + "/reset-password/" + token,
	})
}

func (s *NotificationServiceImpl) send(ctx context.Context, to, subject, template string, data email.TemplateData) {
	if to == "" {
		logger.CtxWarn(ctx, "Notification skipped: no recipient", "template", template)
		return
	}

	body, err := s.renderer.Render(template, data)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to render notification", err, "template", template)
		return
	}

	if !s.queue.Enqueue(&email.Email{To: []string{to}, Subject: subject, HTMLBody: body}) {
		logger.CtxWarn(ctx, "Notification dropped", "template", template, "to", to)
	}
}
