package subscription

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the pricing endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/plans", h.GetPlans)
}

// RegisterWorkerRoutes registers routes on the worker-only /me group.
func RegisterWorkerRoutes(me *gin.RouterGroup, h *Handler) {
	me.GET("/membership", h.GetMembership)
	me.POST("/membership", h.Subscribe)
	me.GET("/can-publish", h.CanPublish)
	me.GET("/can-add-portfolio", h.CanAddPortfolioItem)
}
