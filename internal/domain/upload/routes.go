package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts upload routes on the protected group.
func RegisterRoutes(protected *gin.RouterGroup, h *Handler) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("", h.Upload)
		uploads.GET("", h.ListMine)
		uploads.GET("/:id", h.GetByID)
		uploads.DELETE("/:id", h.Delete)
	}
}
