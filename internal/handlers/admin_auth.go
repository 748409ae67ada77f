package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminLogin exchanges the panel password for a role=admin token. There is
// no admin account document; the password comes from the environment.
func AdminLogin(jwtSecret, adminPassword string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password required"})
			return
		}

		if adminPassword == "" {
			log.Error().Msg("admin login attempted with no ADMIN_PASSWORD configured")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin login disabled"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(adminPassword)) != 1 {
			log.Warn().Str("ip", c.ClientIP()).Msg("admin login rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		claims := jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(accessTTL).Unix(),
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Info().Str("ip", c.ClientIP()).Msg("admin login succeeded")
		c.JSON(http.StatusOK, gin.H{
			"token":     signed,
			"expiresIn": int64(accessTTL.Seconds()),
		})
	}
}

// AdminLogout is a formality for the panel; the token simply expires.
func AdminLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
