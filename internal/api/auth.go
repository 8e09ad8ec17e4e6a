package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"ml_billing/internal/registry" // Users
	"ml_billing/internal/utils"    // JWT helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries an issued token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// IndexHandler is the placeholder root endpoint
func IndexHandler(appName, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"app": appName, "version": version})
	}
}

// RegisterHandler creates a user with an empty wallet
func RegisterHandler(users *registry.Registry, store UserSaver, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Create(req.Email, req.Password)
		if errors.Is(err, registry.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		if err != nil {
			writeError(c, err)
			return
		}
		// Mirror to the database; the in-memory registry stays authoritative
		if store != nil {
			_ = store.SaveUser(c.Request.Context(), user)
		}
		log.WithFields(logrus.Fields{
			"user_id": user.ID, // User ID
			"email":   user.Email,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_id": user.ID})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users *registry.Registry, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Authenticate(req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		role, err := users.Role(user.ID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, role, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
