package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"ml_billing/internal/billing"  // Billing service
	"ml_billing/internal/domain"   // Domain models
	"ml_billing/internal/history"  // Audit log
	"ml_billing/internal/registry" // Users

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Balances
)

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID      uint            `json:"id"`      // User ID
	Email   string          `json:"email"`   // Email
	Role    string          `json:"role"`    // User role
	Balance decimal.Decimal `json:"balance"` // Wallet balance
	Events  int             `json:"events"`  // Number of processed events
}

// ListUsersHandler returns all users with their balances
func ListUsersHandler(users *registry.Registry, svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		all := users.List()
		resp := make([]UserAdminResponse, 0, len(all))
		for _, u := range all {
			snap, err := svc.Snapshot(u) // Balance and events under the user's lock
			if err != nil {
				continue // Users without a wallet are skipped
			}
			role, err := users.Role(u.ID) // Role under the registry lock
			if err != nil {
				continue
			}
			resp = append(resp, UserAdminResponse{
				ID:      u.ID,
				Email:   u.Email,
				Role:    role,
				Balance: snap.Balance,
				Events:  snap.Events,
			})
		}
		page, pageSize := pageParams(c)
		// List is ordered by id; paginate returns the newest registrations first
		c.JSON(http.StatusOK, paginate(resp, page, pageSize))
	}
}

// ListTransactionsHandler returns the global transaction log, optionally filtered by user or type
func ListTransactionsHandler(h *history.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		records := h.Transactions()
		if userID := c.Query("user_id"); userID != "" {
			id, err := strconv.ParseUint(userID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
				return
			}
			records = filter(records, func(r domain.TransactionRecord) bool { return r.UserID == uint(id) })
		}
		if txType := c.Query("type"); txType != "" {
			kind, err := domain.ParseKind(txType)
			if err != nil {
				writeError(c, err)
				return
			}
			records = filter(records, func(r domain.TransactionRecord) bool { return r.Kind == kind })
		}
		page, pageSize := pageParams(c)
		c.JSON(http.StatusOK, paginate(records, page, pageSize))
	}
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
