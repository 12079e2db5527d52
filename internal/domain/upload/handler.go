package upload

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/internal/pkg/response"
)

// Handler serves image uploads for any signed-in person.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /api/v1/uploads (multipart field "file")
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.FromError(c, ErrNoFile)
		return
	}
	u, err := h.service.Upload(c.Request.Context(), c.GetInt64("person_id"), fh)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// GetByID handles GET /api/v1/uploads/:id
func (h *Handler) GetByID(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Delete handles DELETE /api/v1/uploads/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.GetInt64("person_id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ListMine handles GET /api/v1/uploads
func (h *Handler) ListMine(c *gin.Context) {
	uploads, err := h.service.ListByPerson(c.Request.Context(), c.GetInt64("person_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, uploads)
}
