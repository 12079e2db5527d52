package profile

import "github.com/gin-gonic/gin"

// RegisterRoutes wires profile endpoints. worker is the /me group restricted
// to workers.
func RegisterRoutes(public, protected, worker *gin.RouterGroup, h *Handler) {
	workers := public.Group("/workers")
	{
		workers.GET("/featured", h.Featured)
		workers.GET("/verified", h.Verified)
		workers.GET("/search", h.Search)
		workers.GET("/:id", h.GetWorker)
	}

	protected.GET("/me", h.Me)
	protected.PATCH("/me", h.UpdateMe)

	worker.PATCH("/theme", h.UpdateTheme)
	worker.POST("/certifications", h.AddCertification)
	worker.POST("/experience", h.AddExperience)
}
