package db

import (
	"testing"
	"time"

	"ml_billing/internal/config"
	"ml_billing/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRecordRoundTrip(t *testing.T) {
	rec := domain.TransactionRecord{
		TransactionID: 3,
		UserID:        7,
		Kind:          domain.KindServiceCharge,
		Amount:        decimal.RequireFromString("0.01"),
		Timestamp:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Status:        domain.StatusSuccess,
	}

	row := fromTransactionRecord(rec)
	assert.Equal(t, "service_charge", row.Kind)
	assert.Equal(t, "success", row.Status)
	assert.Equal(t, rec, row.ToDomain())
}

func TestFromPredictionRecord(t *testing.T) {
	rec := domain.NewPredictionRecord(2, "image.jpg", "cat", time.Now())

	row := fromPredictionRecord(rec)

	assert.Equal(t, rec.PredictionID, row.PredictionID)
	assert.Equal(t, "image.jpg", row.InputImage)
	assert.Equal(t, "cat", row.OutputResult)
}

func TestFromUser(t *testing.T) {
	u, err := domain.NewUser(4, "a@b.io", "password123", 8, decimal.NewFromInt(5))
	require.NoError(t, err)

	row := fromUser(u)

	assert.Equal(t, uint(4), row.ID)
	assert.Equal(t, u.PasswordHash, row.PasswordHash)
	assert.Equal(t, domain.RoleUser, row.Role)
	assert.True(t, decimal.NewFromInt(5).Equal(row.Balance))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "sqlite"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestModels(t *testing.T) {
	assert.Len(t, Models(), 3)
}
