package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/middleware"
)

func adminRouter(secret, password string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/login", AdminLogin(secret, password, time.Minute))
	r.GET("/admin/api/me", middleware.AdminAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r := adminRouter("secret", "hunter2")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewBufferString(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginDisabledWithoutPassword(t *testing.T) {
	r := adminRouter("secret", "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewBufferString(`{"password":"anything"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminLoginIssuesUsableToken(t *testing.T) {
	r := adminRouter("secret", "hunter2")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/login", bytes.NewBufferString(`{"password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminGuardRejectsMissingAndBogusTokens(t *testing.T) {
	r := adminRouter("secret", "hunter2")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/api/me", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin/api/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
