package ws

import (
	"net/http"
	"strings"

	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/middleware"
	"marketplace_backend/internal/services"
	"marketplace_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

type WebSocketHandler struct {
	Manager     *WebSocketManager
	chatService services.ChatService
	db          *gorm.DB
	upgrader    websocket.Upgrader
}

// NewWebSocketHandler uses db, not the request-scoped handle, because the
// connection outlives the upgrade request.
func NewWebSocketHandler(manager *WebSocketManager, chatService services.ChatService, db *gorm.DB, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		Manager:     manager,
		chatService: chatService,
		db:          db,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// ServeWS upgrades an authenticated request. AuthMiddleware accepts the token
// from the query string for browser clients.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "WebSocket upgrade error", err)
		return
	}

	requestID := logger.GetRequestID(c.Request.Context())
	client := newClient(conn, userID, requestID, h.Manager, h.chatService, h.db)
	if !h.Manager.Register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	logger.CtxInfo(c.Request.Context(), "WebSocket client connected", "conn_id", client.ID)

	go client.writePump()
	go client.readPump()
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimSpace(o)] = true
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed["*"] || allowed[origin]
	}
}
