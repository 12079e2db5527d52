package chat

import "github.com/gin-gonic/gin"

func RegisterRoutes(protected *gin.RouterGroup, h *Handler) {
	protected.GET("/requests/:id/messages", h.List)
	protected.POST("/requests/:id/messages", h.Send)
}

// RegisterWSRoutes mounts the live channel. It authenticates on its own.
func RegisterWSRoutes(public *gin.RouterGroup, ws *WSHandler) {
	public.GET("/requests/:id/ws", ws.Connect)
}
