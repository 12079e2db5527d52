package catalog

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	categories := r.Group("/categories")
	{
		categories.GET("", h.GetCategories)                  // GET /api/v1/categories
		categories.GET("/featured", h.GetFeaturedCategories) // GET /api/v1/categories/featured
	}

	services := r.Group("/services")
	{
		services.GET("", h.GetServices)    // GET /api/v1/services?category_id=&q=
		services.GET("/:id", h.GetService) // GET /api/v1/services/:id
	}
}

// RegisterWorkerRoutes mounts listing management on the worker-only /me group.
func (h *Handler) RegisterWorkerRoutes(me *gin.RouterGroup) {
	me.GET("/services", h.GetMyServices)
	me.POST("/services", h.CreateService)
	me.PATCH("/services/:id", h.UpdateService)
	me.DELETE("/services/:id", h.DeleteService)
}
