package handlers

import (
	"net/http"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/middleware"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/services"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BrandHandler struct {
	*BaseHandler
	brandService services.BrandService
}

func NewBrandHandler(base *BaseHandler, brandService services.BrandService) *BrandHandler {
	return &BrandHandler{
		BaseHandler:  base,
		brandService: brandService,
	}
}

func (h *BrandHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	brand := rg.Group("/brand")
	brand.Use(authMW)
	{
		brand.GET("/profile/:id", h.GetProfile)
		brand.PUT("/profile/:id", h.UpdateProfile)

		brandOnly := brand.Group("")
		brandOnly.Use(middleware.RequireRoles(models.UserRoleBrand))
		{
			brandOnly.POST("/onboard", h.Onboard)
			brandOnly.POST("/logo", h.UploadLogo)
		}
	}
}

func (h *BrandHandler) Onboard(c *gin.Context) {
	userID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.BrandOnboardRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	brand, err := h.brandService.Onboard(h.GetDB(c), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, brand)
}

// GetProfile looks the brand up by its owner's user id.
func (h *BrandHandler) GetProfile(c *gin.Context) {
	brand, err := h.brandService.GetProfile(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) UpdateProfile(c *gin.Context) {
	userID, role, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateBrandRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	brand, err := h.brandService.UpdateProfile(h.GetDB(c), userID, role, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) UploadLogo(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("logo")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Logo file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to open uploaded logo", err)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	brand, err := h.brandService.UploadLogo(h.GetDB(c), userID, file, header.Size)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, brand)
}
