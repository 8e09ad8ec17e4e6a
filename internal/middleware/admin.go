package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RoleChecker reports the current role of a user
type RoleChecker interface {
	IsAdmin(id uint) (bool, error)
}

// AdminOnlyMiddleware checks the user's current role on each request, so a role
// change takes effect before the token expires
func AdminOnlyMiddleware(users RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := UserID(c) // Get userID from context
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		isAdmin, err := users.IsAdmin(userID) // Read under the registry lock
		if err != nil || !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
