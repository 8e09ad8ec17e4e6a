package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"ml_billing/internal/billing"  // Billing errors
	"ml_billing/internal/domain"   // Domain errors
	"ml_billing/internal/registry" // Registry errors

	"github.com/gin-gonic/gin" // Gin web framework
)

// writeError maps a service error onto a status code and JSON body
func writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
	case errors.Is(err, domain.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction type"})
	case errors.Is(err, domain.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Insufficient funds"})
	case errors.Is(err, registry.ErrUserNotFound), errors.Is(err, billing.ErrNoWallet):
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
	case errors.Is(err, billing.ErrPredictor):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// pageParams reads page and page_size, defaulting to 1 and 20 with a cap of 100
func pageParams(c *gin.Context) (page, pageSize int) {
	page = 1      // Default page number
	pageSize = 20 // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}

// paginate returns items newest first, sliced to the requested page
func paginate[T any](items []T, page, pageSize int) gin.H {
	total := len(items)
	newestFirst := make([]T, total)
	for i, it := range items {
		newestFirst[total-1-i] = it
	}
	totalPages := (total + pageSize - 1) / pageSize
	start := total // Pages past the end are empty
	if page-1 < totalPages {
		start = (page - 1) * pageSize
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return gin.H{
		"items":       newestFirst[start:end], // Requested page
		"page":        page,                   // Current page
		"page_size":   pageSize,               // Page size
		"total":       total,                  // Total number of records
		"total_pages": totalPages,             // Total pages
	}
}
