package portfolio

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/internal/pkg/response"
	"skilllink/internal/pkg/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/v1/workers/:id/portfolio
func (h *Handler) List(c *gin.Context) {
	workerID, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	items, err := h.service.List(c.Request.Context(), workerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Add handles POST /api/v1/me/portfolio
func (h *Handler) Add(c *gin.Context) {
	var req AddItemRequest
	if !response.BindJSON(c, &req) {
		return
	}
	item, err := h.service.Add(c.Request.Context(), c.GetInt64("person_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// Delete handles DELETE /api/v1/me/portfolio/:id
func (h *Handler) Delete(c *gin.Context) {
	itemID, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.GetInt64("person_id"), itemID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": itemID})
}
