package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/internal/pkg/response"
)

// Handler handles HTTP requests for plans and the worker's membership.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetPlans handles GET /api/v1/plans
func (h *Handler) GetPlans(c *gin.Context) {
	plans, err := h.service.ListPlans(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, plans)
}

// GetMembership handles GET /api/v1/me/membership
func (h *Handler) GetMembership(c *gin.Context) {
	m, err := h.service.CurrentMembership(c.Request.Context(), c.GetInt64("person_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toMembershipResponse(m, h.service.now()))
}

// Subscribe handles POST /api/v1/me/membership
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if !response.BindJSON(c, &req) {
		return
	}
	m, err := h.service.Subscribe(c.Request.Context(), c.GetInt64("person_id"), req.PlanID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toMembershipResponse(m, h.service.now()))
}

// CanPublish handles GET /api/v1/me/can-publish
func (h *Handler) CanPublish(c *gin.Context) {
	d, err := h.service.CanPublish(c.Request.Context(), c.GetInt64("person_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

// CanAddPortfolioItem handles GET /api/v1/me/can-add-portfolio
func (h *Handler) CanAddPortfolioItem(c *gin.Context) {
	d, err := h.service.CanAddPortfolioItem(c.Request.Context(), c.GetInt64("person_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}
