package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(setupService(t))
	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	return r
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHandlerSignUpThenSignIn(t *testing.T) {
	r := setupRouter(t)

	rr := postJSON(r, "/api/v1/auth/signup", map[string]any{
		"email": "ana@example.cl", "password": "secret1", "first_name": "Ana",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Success bool    `json:"success"`
		Data    Session `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "client", string(resp.Data.Role))

	rr = postJSON(r, "/api/v1/auth/signup", map[string]any{
		"email": "ana@example.cl", "password": "secret1", "first_name": "Ana",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = postJSON(r, "/api/v1/auth/signin", map[string]any{"email": "ana@example.cl", "password": "nope"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = postJSON(r, "/api/v1/auth/signin", map[string]any{"email": "ana@example.cl", "password": "secret1"})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandlerSignUpRejectsInvalidBody(t *testing.T) {
	r := setupRouter(t)
	rr := postJSON(r, "/api/v1/auth/signup", map[string]any{"email": "x", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
