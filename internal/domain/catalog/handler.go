package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/internal/pkg/response"
	"skilllink/internal/pkg/utils"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// GetCategories handles GET /api/v1/categories
func (h *Handler) GetCategories(c *gin.Context) {
	cats, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats)
}

// GetFeaturedCategories handles GET /api/v1/categories/featured?limit=
func (h *Handler) GetFeaturedCategories(c *gin.Context) {
	limit := utils.ClampLimit(utils.QueryInt(c, "limit", 8), 8, 50)
	cats, err := h.catalog.FeaturedCategories(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cats)
}

// GetServices handles GET /api/v1/services?category_id=&q=&limit=&offset=
func (h *Handler) GetServices(c *gin.Context) {
	categoryID, err := utils.QueryID(c, "category_id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	offset := utils.QueryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	f := ServiceFilter{
		CategoryID: categoryID,
		Query:      c.Query("q"),
		Limit:      utils.ClampLimit(utils.QueryInt(c, "limit", 20), 20, 100),
		Offset:     offset,
	}
	list, err := h.catalog.ListServices(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// GetService handles GET /api/v1/services/:id
func (h *Handler) GetService(c *gin.Context) {
	id, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	l, err := h.catalog.GetService(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

// GetMyServices handles GET /api/v1/me/services
func (h *Handler) GetMyServices(c *gin.Context) {
	list, err := h.catalog.ListByWorker(c.Request.Context(), c.GetInt64("person_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// CreateService handles POST /api/v1/me/services
func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	l, err := h.catalog.CreateService(c.Request.Context(), c.GetInt64("person_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l)
}

// UpdateService handles PATCH /api/v1/me/services/:id
func (h *Handler) UpdateService(c *gin.Context) {
	id, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req UpdateServiceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	l, err := h.catalog.UpdateService(c.Request.Context(), c.GetInt64("person_id"), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

// DeleteService handles DELETE /api/v1/me/services/:id
func (h *Handler) DeleteService(c *gin.Context) {
	id, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if err := h.catalog.DeleteService(c.Request.Context(), c.GetInt64("person_id"), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
