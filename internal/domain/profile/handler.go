package profile

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skilllink/internal/pkg/response"
	"skilllink/internal/pkg/utils"
)

// Handler serves person and worker page endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Me handles GET /api/v1/me. The profile is resolved from the session email.
func (h *Handler) Me(c *gin.Context) {
	p, err := h.service.Resolve(c.Request.Context(), c.GetString("email"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// UpdateMe handles PATCH /api/v1/me
func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdatePersonRequest
	if !response.BindJSON(c, &req) {
		return
	}
	person, err := h.service.UpdatePerson(c.Request.Context(), c.GetInt64("person_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, person)
}

// UpdateTheme handles PATCH /api/v1/me/theme
func (h *Handler) UpdateTheme(c *gin.Context) {
	var req UpdateThemeRequest
	if !response.BindJSON(c, &req) {
		return
	}
	page, err := h.service.UpdateTheme(c.Request.Context(), c.GetInt64("person_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// AddCertification handles POST /api/v1/me/certifications
func (h *Handler) AddCertification(c *gin.Context) {
	var req AddCertificationRequest
	if !response.BindJSON(c, &req) {
		return
	}
	cert, err := h.service.AddCertification(c.Request.Context(), c.GetInt64("person_id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cert)
}

// AddExperience handles POST /api/v1/me/experience
func (h *Handler) AddExperience(c *gin.Context) {
	var req AddExperienceRequest
	if !response.BindJSON(c, &req) {
		return
	}
	cv, err := h.service.AddExperience(c.Request.Context(), c.GetInt64("person_id"), req.Entries)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cv)
}

// GetWorker handles GET /api/v1/workers/:id
func (h *Handler) GetWorker(c *gin.Context) {
	id, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	page, err := h.service.PublicProfile(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Featured handles GET /api/v1/workers/featured?limit=
func (h *Handler) Featured(c *gin.Context) {
	limit := utils.ClampLimit(utils.QueryInt(c, "limit", 6), 6, 50)
	cards, err := h.service.FeaturedWorkers(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cards)
}

// Verified handles GET /api/v1/workers/verified?limit=
func (h *Handler) Verified(c *gin.Context) {
	limit := utils.ClampLimit(utils.QueryInt(c, "limit", 6), 6, 50)
	cards, err := h.service.VerifiedWorkers(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cards)
}

// Search handles GET /api/v1/workers/search?q=&category_id=
func (h *Handler) Search(c *gin.Context) {
	categoryID, err := utils.QueryID(c, "category_id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	cards, err := h.service.SearchProfessionals(c.Request.Context(), strings.TrimSpace(c.Query("q")), categoryID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cards)
}
