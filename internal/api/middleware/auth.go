package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the moderation credential. The remote
// backend owns validation; this middleware only refuses requests that
// carry no credential at all.
const AdminTokenHeader = "x-admin-token"

// TokenKey is the gin context key the admin token is stored under.
const TokenKey = "admin_token"

// AdminAuth extracts the admin credential and rejects requests without
// one. Actual verification happens at the backend; a 401 from there is
// mapped by the handlers.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(TokenKey, token)
		c.Next()
	}
}
