package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func guardedRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGuardMissingHeader(t *testing.T) {
	r := guardedRouter(AuthGuard(testSecret))
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
}

func TestAuthGuardMalformedHeader(t *testing.T) {
	r := guardedRouter(AuthGuard(testSecret))
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer").Code)
}

func TestAuthGuardExpiredToken(t *testing.T) {
	r := guardedRouter(AuthGuard(testSecret))
	token := signToken(t, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

func TestAuthGuardWrongRole(t *testing.T) {
	r := guardedRouter(AdminAuth(testSecret))
	token := signToken(t, jwt.MapClaims{
		"role": "customer",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+token).Code)
}

func TestAuthGuardAcceptsMatchingRole(t *testing.T) {
	r := guardedRouter(AdminAuth(testSecret))
	token := signToken(t, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+token).Code)
}

func TestCustomerAuthInjectsCustomerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := primitive.NewObjectID()

	var got primitive.ObjectID
	r := gin.New()
	r.GET("/protected", CustomerAuth(testSecret), func(c *gin.Context) {
		got = c.MustGet("customerId").(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	token := signToken(t, jwt.MapClaims{
		"customerId": id.Hex(),
		"role":       "customer",
		"exp":        time.Now().Add(time.Minute).Unix(),
	})
	w := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, got)
}

func TestCustomerAuthRejectsBadCustomerID(t *testing.T) {
	r := guardedRouter(CustomerAuth(testSecret))

	token := signToken(t, jwt.MapClaims{
		"customerId": "not-an-object-id",
		"exp":        time.Now().Add(time.Minute).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)

	token = signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}
