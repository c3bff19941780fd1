package dto

import (
	"time"

	"marketplace_backend/internal/models"
)

type SubmitProposalRequest struct {
	CampaignID   string   `json:"campaignId" validate:"required,max=36"`
	Message      string   `json:"message" validate:"required,max=5000"`
	ProposedRate float64  `json:"proposedRate" validate:"required,gt=0"`
	Deliverables []string `json:"deliverables" validate:"max=50,dive,required,max=500"`
	Timeline     string   `json:"timeline" validate:"required,max=500"`
}

type UpdateProposalStatusRequest struct {
	Status  models.ProposalStatus `json:"status" validate:"required,is-proposal-status"`
	Message string                `json:"message" validate:"max=5000"`
}

type NegotiateRequest struct {
	Message      string   `json:"message" validate:"required,max=5000"`
	ProposedRate *float64 `json:"proposedRate" validate:"omitempty,gt=0"`
}

type AcceptTermsRequest struct {
	FinalRate         *float64 `json:"finalRate" validate:"required,gte=0"`
	FinalDeliverables []string `json:"finalDeliverables" validate:"max=50,dive,max=500"`
	FinalTimeline     string   `json:"finalTimeline" validate:"max=500"`
}

// ProposalSummary is the slim view returned right after submit.
type ProposalSummary struct {
	ID           string                `json:"id"`
	CampaignID   string                `json:"campaignId"`
	Message      string                `json:"message"`
	ProposedRate float64               `json:"proposedRate"`
	Deliverables []string              `json:"deliverables"`
	Timeline     string                `json:"timeline"`
	Status       models.ProposalStatus `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
}

type SubmitProposalResponse struct {
	Message  string          `json:"message"`
	Proposal ProposalSummary `json:"proposal"`
}

type ProposalHistoryView struct {
	ID                 string                       `json:"id"`
	Status             models.ProposalStatus        `json:"status"`
	NegotiationHistory []models.ProposalNegotiation `json:"negotiationHistory"`
}

type ProposalHistoryResponse struct {
	Message  string              `json:"message"`
	Proposal ProposalHistoryView `json:"proposal"`
}

type ProposalTermsView struct {
	ID                string                `json:"id"`
	Status            models.ProposalStatus `json:"status"`
	FinalRate         *float64              `json:"finalRate"`
	FinalDeliverables []string              `json:"finalDeliverables"`
	FinalTimeline     string                `json:"finalTimeline"`
}

type AcceptTermsResponse struct {
	Message  string            `json:"message"`
	Proposal ProposalTermsView `json:"proposal"`
}

type ProposalListResponse struct {
	Proposals []models.Proposal `json:"proposals"`
}

type ProposalResponse struct {
	Proposal *models.Proposal `json:"proposal"`
}

type AttachmentResponse struct {
	Message    string                    `json:"message"`
	Attachment models.ProposalAttachment `json:"attachment"`
}
