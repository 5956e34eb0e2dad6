package middleware

import (
	"net/http"
	"strings"

	"cargo-inspection-dashboard/internal/config"
	"cargo-inspection-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware parses the demo session token. It guards only the
// profile route; dashboard routes stay open.
func SessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.Session.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("sessionID", claims.SessionID)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)

		c.Next()
	}
}
