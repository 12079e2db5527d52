package request

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/internal/domain/profile"
	"skilllink/internal/pkg/errs"
	"skilllink/internal/pkg/response"
	"skilllink/internal/pkg/utils"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// List handles GET /api/v1/requests?as=client
func (h *Handler) List(c *gin.Context) {
	personID := c.GetInt64("person_id")
	var (
		list []View
		err  error
	)
	if c.Query("as") == "client" {
		list, err = h.engine.ListClientRequests(c.Request.Context(), personID)
	} else {
		list, err = h.engine.ListRequestsFor(c.Request.Context(), personID)
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Create handles POST /api/v1/requests
func (h *Handler) Create(c *gin.Context) {
	var in CreateRequestInput
	if !response.BindJSON(c, &in) {
		return
	}
	sr, err := h.engine.CreateRequest(c.Request.Context(), c.GetInt64("person_id"), &in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sr)
}

// Check handles GET /api/v1/requests/check?service_id=
func (h *Handler) Check(c *gin.Context) {
	serviceID, err := utils.QueryID(c, "service_id")
	if err == nil && serviceID == 0 {
		err = errs.Validation("service_id is required")
	}
	if err != nil {
		response.FromError(c, err)
		return
	}
	open, err := h.engine.HasClientRequestedService(c.Request.Context(), c.GetInt64("person_id"), serviceID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requested": open})
}

// Notifications handles GET /api/v1/requests/notifications
func (h *Handler) Notifications(c *gin.Context) {
	role := profile.Role(c.GetString("role"))
	n, err := h.engine.UnreadNotifications(c.Request.Context(), c.GetInt64("person_id"), role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": n})
}

// Get handles GET /api/v1/requests/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	v, err := h.engine.GetRequest(c.Request.Context(), c.GetInt64("person_id"), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) Cancel(c *gin.Context) { h.transition(c, h.engine.CancelRequest) }
func (h *Handler) Accept(c *gin.Context) { h.transition(c, h.engine.AcceptRequest) }
func (h *Handler) Reject(c *gin.Context) { h.transition(c, h.engine.RejectRequest) }

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, actorID, requestID int64) (*ServiceRequest, error)) {
	id, err := utils.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	sr, err := fn(c.Request.Context(), c.GetInt64("person_id"), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sr)
}

// Dashboard handles GET /api/v1/me/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.engine.WorkerDashboard(c.Request.Context(), c.GetInt64("person_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}
