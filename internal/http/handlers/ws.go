package handlers

import (
	"net/http"
	"os"

	"tapcoin_webapp/internal/logger"
	"tapcoin_webapp/internal/service"
	"tapcoin_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades the connection and subscribes the account to live
// balance/state pushes. JWT comes in the query string because browser
// WebSocket clients cannot set headers.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		accountID, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "err", err)
			return
		}

		client := ws.NewClient(accountID, conn, hub)
		go client.Run()
	}
}
