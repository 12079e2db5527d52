package chat

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

// List handles GET /api/v1/requests/:id/messages
func (h *Handler) List(c *gin.Context) {
	requestID, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	thread, err := h.service.ListMessages(c.Request.Context(), c.GetInt64("person_id"), requestID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, thread)
}

// Send handles POST /api/v1/requests/:id/messages
func (h *Handler) Send(c *gin.Context) {
	requestID, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req SendMessageRequest
	if !response.BindJSON(c, &req) {
		return
	}
	entry, err := h.service.SendMessage(c.Request.Context(), requestID, c.GetInt64("person_id"), req.Content)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry)
}
