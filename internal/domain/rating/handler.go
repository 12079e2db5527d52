package rating

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

// Rate handles POST /api/v1/requests/:id/rating
func (h *Handler) Rate(c *gin.Context) {
	requestID, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req RateRequest
	if !response.BindJSON(c, &req) {
		return
	}
	res, err := h.service.RateAndFinalize(c.Request.Context(), c.GetInt64("person_id"), requestID, req.Score, req.Comment)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// ListForWorker handles GET /api/v1/workers/:id/ratings
func (h *Handler) ListForWorker(c *gin.Context) {
	workerID, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	list, err := h.service.ListWorkerRatings(c.Request.Context(), workerID, utils.QueryInt(c, "limit", 0))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}
