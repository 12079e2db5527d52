package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/internal/pkg/response"
)

// SessionKey is the gin context key under which the auth middleware stores *Session.
const SessionKey = "session"

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SignUp handles POST /api/v1/auth/signup
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if !response.BindJSON(c, &req) {
		return
	}
	session, err := h.service.SignUp(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, session)
}

// SignIn handles POST /api/v1/auth/signin
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if !response.BindJSON(c, &req) {
		return
	}
	session, err := h.service.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// SignOut handles POST /api/v1/auth/signout
func (h *Handler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), CurrentSession(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"signed_out": true})
}

// Session handles GET /api/v1/auth/session
func (h *Handler) Session(c *gin.Context) {
	session := CurrentSession(c)
	if session == nil {
		response.FromError(c, ErrInvalidSession)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// CurrentSession returns the session attached by the auth middleware, if any.
func CurrentSession(c *gin.Context) *Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
