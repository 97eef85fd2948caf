package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduvia/elearning-service/internal/auth"
	"github.com/eduvia/elearning-service/internal/utils"
)

const contextClaimsKey = "auth_claims"

// RequestID assigns every request a uuid, echoed in the X-Request-ID
// response header and attached to the request-scoped logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// SecurityHeaders sets the standard hardening headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	}
}

// CORS allows the configured web-client origin.
func CORS(origin string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Request-ID")
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return cors.New(cfg)
}

// Authenticated verifies the bearer token and stores its claims in the
// context. Requests without a valid token get 401.
func Authenticated(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "authorization required"})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid token"})
			return
		}

		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin gates a route group to admin accounts. Must run after
// Authenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAdmin(claimsFrom(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "admin access required"})
			return
		}
		c.Next()
	}
}

// SetupMiddleware installs the global middleware chain.
func SetupMiddleware(router *gin.Engine, logger utils.Logger, corsOrigin string) {
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(utils.ContextLogger(logger))
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(SecurityHeaders())
	router.Use(CORS(corsOrigin))
}
