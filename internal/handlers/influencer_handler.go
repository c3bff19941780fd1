package handlers

import (
	"net/http"

	"marketplace_backend/internal/middleware"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/services"
	"marketplace_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InfluencerHandler struct {
	*BaseHandler
	influencerService services.InfluencerService
}

func NewInfluencerHandler(base *BaseHandler, influencerService services.InfluencerService) *InfluencerHandler {
	return &InfluencerHandler{
		BaseHandler:       base,
		influencerService: influencerService,
	}
}

func (h *InfluencerHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	influencer := rg.Group("/influencer")
	influencer.Use(authMW)
	{
		influencer.POST("/onboard", middleware.RequireRoles(models.UserRoleInfluencer), h.Onboard)
		influencer.GET("/profile/:id", h.GetProfile)
		influencer.PUT("/update/:id", h.UpdateProfile)
		influencer.GET("/:id/instagram-stats", h.GetInstagramStats)
		influencer.POST("/:id/refresh-instagram-stats", h.RefreshInstagramStats)
	}
}

func (h *InfluencerHandler) Onboard(c *gin.Context) {
	userID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.InfluencerOnboardRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	influencer, err := h.influencerService.Onboard(h.GetDB(c), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, influencer)
}

func (h *InfluencerHandler) GetProfile(c *gin.Context) {
	influencer, err := h.influencerService.GetProfile(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, influencer)
}

func (h *InfluencerHandler) UpdateProfile(c *gin.Context) {
	userID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateInfluencerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	influencer, err := h.influencerService.UpdateProfile(h.GetDB(c), userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, influencer)
}

// GetInstagramStats answers {} for influencers that were never refreshed.
func (h *InfluencerHandler) GetInstagramStats(c *gin.Context) {
	stats, err := h.influencerService.GetInstagramStats(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if stats == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *InfluencerHandler) RefreshInstagramStats(c *gin.Context) {
	userID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	stats, err := h.influencerService.RefreshInstagramStats(h.GetDB(c), userID, role, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshStatsResponse{
		Message: "Instagram stats refreshed successfully",
		Stats:   *stats,
	})
}
