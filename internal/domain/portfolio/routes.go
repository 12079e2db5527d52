package portfolio

import "github.com/gin-gonic/gin"

func RegisterRoutes(public, worker *gin.RouterGroup, h *Handler) {
	public.GET("/workers/:id/portfolio", h.List)

	worker.POST("/portfolio", h.Add)
	worker.DELETE("/portfolio/:id", h.Delete)
}
