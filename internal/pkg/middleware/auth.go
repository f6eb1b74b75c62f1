package middleware

import (
	"net/http"
	"strings"

	userModel "github.com/Bange254/Bttshoes/internal/domain/user/model"
	"github.com/Bange254/Bttshoes/pkg/response"
	"github.com/Bange254/Bttshoes/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the user
// identity in the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(secret, parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user when a token is present but
// lets anonymous requests through. Used for guest checkout.
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := utils.ParseToken(secret, parts[1]); err == nil {
					c.Set("userID", claims.UserID)
					c.Set("role", claims.Role)
				}
			}
		}
		c.Next()
	}
}

// AdminMiddleware requires the admin role set by AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, response.ErrNoPermission, "Unauthorized")
			c.Abort()
			return
		}

		// JSON-decoded numbers may arrive as float64
		var roleInt int
		switch v := role.(type) {
		case float64:
			roleInt = int(v)
		case int:
			roleInt = v
		default:
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Invalid role format")
			c.Abort()
			return
		}

		if roleInt != userModel.RoleAdmin {
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Admin permission required")
			c.Abort()
			return
		}

		c.Next()
	}
}
