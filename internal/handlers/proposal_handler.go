package handlers

import (
	"net/http"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/services"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	*BaseHandler
	proposalService services.ProposalService
}

func NewProposalHandler(base *BaseHandler, proposalService services.ProposalService) *ProposalHandler {
	return &ProposalHandler{
		BaseHandler:     base,
		proposalService: proposalService,
	}
}

func (h *ProposalHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	proposals := rg.Group("/proposals")
	proposals.Use(authMW)
	{
		proposals.POST("/submit", h.Submit)
		proposals.GET("/campaign/:campaignId", h.ListForCampaign)
		proposals.GET("/my-proposals", h.ListMine)
		proposals.PUT("/:id/status", h.UpdateStatus)
		proposals.PUT("/:id/negotiate", h.Negotiate)
		proposals.PUT("/:id/accept", h.AcceptTerms)
		proposals.GET("/:id", h.Get)
		proposals.POST("/:id/attachments", h.AddAttachment)
	}
}

func (h *ProposalHandler) Submit(c *gin.Context) {
	userID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.SubmitProposalRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.Submit(h.GetDB(c), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitProposalResponse{
		Message: "Proposal submitted successfully",
		Proposal: dto.ProposalSummary{
			ID:           proposal.ID,
			CampaignID:   proposal.CampaignID,
			Message:      proposal.Message,
			ProposedRate: proposal.ProposedRate,
			Deliverables: proposal.Deliverables,
			Timeline:     proposal.Timeline,
			Status:       proposal.Status,
			CreatedAt:    proposal.CreatedAt,
		},
	})
}

func (h *ProposalHandler) ListForCampaign(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposals, err := h.proposalService.ListForCampaign(h.GetDB(c), userID, c.Param("campaignId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProposalListResponse{Proposals: proposals})
}

func (h *ProposalHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposals, err := h.proposalService.ListMine(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProposalListResponse{Proposals: proposals})
}

func (h *ProposalHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProposalStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.UpdateStatus(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, historyResponse("Proposal status updated successfully", proposal))
}

func (h *ProposalHandler) Negotiate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.NegotiateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.Negotiate(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, historyResponse("Negotiation message sent successfully", proposal))
}

func (h *ProposalHandler) AcceptTerms(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AcceptTermsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.AcceptTerms(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AcceptTermsResponse{
		Message: "Proposal terms accepted successfully",
		Proposal: dto.ProposalTermsView{
			ID:                proposal.ID,
			Status:            proposal.Status,
			FinalRate:         proposal.FinalRate,
			FinalDeliverables: proposal.FinalDeliverables,
			FinalTimeline:     proposal.FinalTimeline,
		},
	})
}

func (h *ProposalHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposal, err := h.proposalService.Get(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProposalResponse{Proposal: proposal})
}

// AddAttachment accepts a multipart "file" field.
func (h *ProposalHandler) AddAttachment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to open uploaded attachment", err)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	attachment, err := h.proposalService.AddAttachment(h.GetDB(c), userID, c.Param("id"), services.AttachmentUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AttachmentResponse{
		Message:    "Attachment uploaded successfully",
		Attachment: *attachment,
	})
}

func historyResponse(message string, proposal *models.Proposal) dto.ProposalHistoryResponse {
	history := proposal.NegotiationHistory
	if history == nil {
		history = []models.ProposalNegotiation{}
	}
	return dto.ProposalHistoryResponse{
		Message: message,
		Proposal: dto.ProposalHistoryView{
			ID:                 proposal.ID,
			Status:             proposal.Status,
			NegotiationHistory: history,
		},
	}
}
