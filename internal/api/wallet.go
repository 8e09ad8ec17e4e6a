package api

import (
	"context"  // Cache calls
	"net/http" // HTTP status codes
	"time"     // Event timestamps

	"ml_billing/internal/billing"    // Billing service
	"ml_billing/internal/domain"     // Domain models
	"ml_billing/internal/history"    // Audit log
	"ml_billing/internal/middleware" // Authenticated user id
	"ml_billing/internal/registry"   // Users
	"ml_billing/internal/utils"      // Balance cache

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Amounts
	"github.com/sirupsen/logrus"    // Logging
)

// DepositRequest represents a deposit request. Amount accepts a JSON number or string.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PredictRequest represents a paid model call
type PredictRequest struct {
	Image string `json:"image" binding:"required"` // Model input
}

// currentUser resolves the authenticated user or writes the error response
func currentUser(c *gin.Context, users *registry.Registry) (*domain.User, bool) {
	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	user, err := users.Get(userID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return user, true
}

// GetWalletHandler returns the balance, served from Redis when cached
func GetWalletHandler(users *registry.Registry, svc *billing.Service, cache *utils.BalanceCache, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		balance, found, err := cache.Get(ctx, user.ID) // Try to get from cache
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"balance": balance, "cached": true})
			return
		}
		if err != nil {
			log.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Warn("Balance cache read failed")
		}
		snap, err := svc.Snapshot(user)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := cacheBalance(ctx, svc, cache, user, snap); err != nil {
			log.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Warn("Balance cache write failed")
		}
		c.JSON(http.StatusOK, gin.H{"balance": snap.Balance, "cached": false})
	}
}

// cacheBalance stores snap's balance, then drops it again if a transaction landed
// since snap was taken. Writers invalidate after committing, so whichever side runs
// last removes a stale entry.
func cacheBalance(ctx context.Context, svc *billing.Service, cache *utils.BalanceCache, user *domain.User, snap billing.WalletSnapshot) error {
	if err := cache.Set(ctx, user.ID, snap.Balance); err != nil { // Cache for BalanceCacheTTL
		return err
	}
	current, err := svc.Snapshot(user)
	if err != nil {
		return err
	}
	if current.Transactions != snap.Transactions {
		return cache.Invalidate(ctx, user.ID)
	}
	return nil
}

// DepositHandler tops up the authenticated user's wallet
func DepositHandler(users *registry.Registry, svc *billing.Service, cache *utils.BalanceCache, nextEventID func() uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		var req DepositRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		ev, err := domain.NewTopUpEvent(nextEventID(), user, req.Amount, time.Now())
		if err != nil {
			writeError(c, err)
			return
		}
		if err := svc.ProcessEvent(c.Request.Context(), ev, nil); err != nil {
			writeError(c, err)
			return
		}
		_ = cache.Invalidate(c.Request.Context(), user.ID) // Invalidate wallet cache
		c.JSON(http.StatusOK, gin.H{"message": "Deposit successful", "event_id": ev.ID})
	}
}

// PredictHandler runs a paid model call for the authenticated user
func PredictHandler(users *registry.Registry, svc *billing.Service, predictor billing.Predictor, cache *utils.BalanceCache, nextEventID func() uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, users)
		if !ok {
			return
		}
		var req PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ev, err := domain.NewModelCallEvent(nextEventID(), user, req.Image, time.Now())
		if err != nil {
			writeError(c, err)
			return
		}
		if err := svc.ProcessEvent(c.Request.Context(), ev, predictor); err != nil {
			writeError(c, err)
			return
		}
		_ = cache.Invalidate(c.Request.Context(), user.ID) // Invalidate wallet cache
		c.JSON(http.StatusOK, gin.H{
			"event_id": ev.ID,     // Event id
			"input":    ev.Image,  // Model input
			"output":   ev.Result, // Model output
			"cost":     ev.Amount, // Amount charged
		})
	}
}

// GetTransactionHistoryHandler returns the authenticated user's transaction records
func GetTransactionHistoryHandler(h *history.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page, pageSize := pageParams(c)
		c.JSON(http.StatusOK, paginate(h.TransactionsFor(userID), page, pageSize))
	}
}

// GetPredictionHistoryHandler returns the authenticated user's prediction records
func GetPredictionHistoryHandler(h *history.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page, pageSize := pageParams(c)
		c.JSON(http.StatusOK, paginate(h.PredictionsFor(userID), page, pageSize))
	}
}
