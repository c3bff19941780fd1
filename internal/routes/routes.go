package routes

import (
	"net/http"

	"marketplace_backend/internal/handlers"
	"marketplace_backend/internal/logger"
	"marketplace_backend/ws"

	"github.com/gin-gonic/gin"
)

// Options holds the endpoints that live outside /api/v1.
type Options struct {
	Metrics http.Handler
	// FilesURL and FilesDir serve local uploads; both empty disables it.
	FilesURL string
	FilesDir string
}

// RegisterRoutes registers every HTTP and WebSocket route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	authMW gin.HandlerFunc,
	opts Options,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		ginRouter.GET("/metrics", gin.WrapH(opts.Metrics))
	}
	if opts.FilesURL != "" && opts.FilesDir != "" {
		ginRouter.Static(opts.FilesURL, opts.FilesDir)
	}

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.BrandHandler.RegisterRoutes(api, authMW)
		appHandlers.InfluencerHandler.RegisterRoutes(api, authMW)
		appHandlers.CampaignHandler.RegisterRoutes(api, authMW)
		appHandlers.ProposalHandler.RegisterRoutes(api, authMW)
		appHandlers.ChatHandler.RegisterRoutes(api, authMW)
	}

	ginRouter.GET("/ws", authMW, wsHandler.ServeWS)
	logger.Debug("Routes registered")
}
