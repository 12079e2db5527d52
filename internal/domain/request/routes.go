package request

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the request workflow on the authenticated group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	requests := protected.Group("/requests")
	{
		requests.GET("", h.List)
		requests.POST("", h.Create)
		requests.GET("/check", h.Check)
		requests.GET("/notifications", h.Notifications)
		requests.GET("/:id", h.Get)
		requests.POST("/:id/cancel", h.Cancel)
		requests.POST("/:id/accept", h.Accept)
		requests.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) RegisterWorkerRoutes(me *gin.RouterGroup) {
	me.GET("/dashboard", h.Dashboard)
}
