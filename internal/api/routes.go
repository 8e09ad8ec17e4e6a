package api

import (
	"context"     // Persistence calls
	"sync/atomic" // Event id sequence
	"time"        // Cache TTL

	"ml_billing/internal/billing"    // Billing service
	"ml_billing/internal/domain"     // Domain models
	"ml_billing/internal/history"    // Audit log
	"ml_billing/internal/middleware" // Auth middleware
	"ml_billing/internal/registry"   // Users
	"ml_billing/internal/utils"      // Balance cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging
)

// BalanceCacheTTL is how long GET /wallet may serve a cached balance
const BalanceCacheTTL = 60 * time.Second

// UserSaver mirrors newly registered users to storage
type UserSaver interface {
	SaveUser(ctx context.Context, u *domain.User) error
}

// Deps carries everything the routes need. Store, Redis and Model may be nil.
type Deps struct {
	AppName    string
	APIVersion string
	JWTSecret  string
	Users      *registry.Registry
	Billing    *billing.Service
	History    *history.Manager
	Model      billing.Predictor
	Store      UserSaver
	Redis      *redis.Client
	Log        logrus.FieldLogger
}

// NewRouter registers every route on r
func NewRouter(r *gin.Engine, d Deps) {
	cache := utils.NewBalanceCache(d.Redis, BalanceCacheTTL)
	var eventSeq atomic.Uint64
	nextEventID := func() uint { return uint(eventSeq.Add(1)) }

	r.GET("/", IndexHandler(d.AppName, d.APIVersion)) // Placeholder index

	// Auth routes
	r.POST("/user", RegisterHandler(d.Users, d.Store, d.Log)) // Registration endpoint
	r.POST("/user/login", LoginHandler(d.Users, d.JWTSecret)) // Login endpoint

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/wallet")
	walletGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret))
	walletGroup.GET("", GetWalletHandler(d.Users, d.Billing, cache, d.Log))                       // Balance
	walletGroup.POST("/deposit", DepositHandler(d.Users, d.Billing, cache, nextEventID))          // Top-up
	walletGroup.POST("/predict", PredictHandler(d.Users, d.Billing, d.Model, cache, nextEventID)) // Paid model call
	walletGroup.GET("/transactions", GetTransactionHistoryHandler(d.History))                     // Own transactions
	walletGroup.GET("/predictions", GetPredictionHistoryHandler(d.History))                       // Own predictions

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.Users))
	adminGroup.GET("/users", ListUsersHandler(d.Users, d.Billing))      // List users endpoint
	adminGroup.GET("/transactions", ListTransactionsHandler(d.History)) // List transactions endpoint
}
