package chat

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"skilllink/internal/domain/auth"
	"skilllink/internal/pkg/response"
	"skilllink/internal/pkg/utils"
)

// SessionReader validates the access token passed on the upgrade URL.
type SessionReader interface {
	GetSession(ctx context.Context, token string) (*auth.Session, error)
}

type WSHandler struct {
	hub      *Hub
	sessions SessionReader
	chat     *Service
	upgrader websocket.Upgrader
}

// NewWSHandler builds the live channel handler. An empty origins list
// accepts any origin.
func NewWSHandler(hub *Hub, sessions SessionReader, chat *Service, origins []string) *WSHandler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return &WSHandler{
		hub:      hub,
		sessions: sessions,
		chat:     chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

// Connect handles GET /api/v1/requests/:id/ws?token=JWT
//
// Browsers cannot set headers on the upgrade request, so the token travels
// in the query string.
func (h *WSHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}
	session, err := h.sessions.GetSession(c.Request.Context(), token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}
	requestID, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if _, err := h.chat.Authorize(c.Request.Context(), session.PersonID, requestID); err != nil {
		response.FromError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("chat: ws upgrade failed: %v", err)
		return
	}
	log.Printf("chat: person_id=%d joined request_id=%d", session.PersonID, requestID)
	h.hub.Serve(conn, session.PersonID, requestID)
}
