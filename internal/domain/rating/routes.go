package rating

import "github.com/gin-gonic/gin"

func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	public.GET("/workers/:id/ratings", h.ListForWorker)
	protected.POST("/requests/:id/rating", h.Rate)
}
