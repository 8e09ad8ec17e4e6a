package db

import (
	"time" // Timestamps

	"ml_billing/internal/domain" // Domain records mirrored into tables

	"github.com/google/uuid"        // Prediction ids
	"github.com/shopspring/decimal" // Fixed-point amounts
)

// User Model
type User struct {
	ID           uint            `gorm:"primaryKey"`                            // Primary key, same as the in-memory id
	Email        string          `gorm:"unique;not null"`                       // Unique email
	PasswordHash string          `gorm:"not null"`                              // bcrypt hash
	Role         string          `gorm:"default:user"`                          // Role: user or admin
	Balance      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"` // Balance at registration
	CreatedAt    time.Time       // Row creation time
}

// TransactionRecord Model
type TransactionRecord struct {
	ID            uint            `gorm:"primaryKey"`                  // Surrogate key
	TransactionID int             `gorm:"not null;index:idx_user_tx"`  // Per-wallet sequence id
	UserID        uint            `gorm:"not null;index:idx_user_tx"`  // Owner
	Kind          string          `gorm:"size:32;not null"`            // deposit or service_charge
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null"` // Transaction amount
	Status        string          `gorm:"size:16;not null"`            // Always success
	Timestamp     time.Time       `gorm:"not null"`                    // Execution time
}

// PredictionRecord Model
type PredictionRecord struct {
	PredictionID uuid.UUID `gorm:"type:char(36);primaryKey"` // Random id
	UserID       uint      `gorm:"not null;index"`           // Owner
	InputImage   string    `gorm:"not null"`                 // Model input
	OutputResult string    `gorm:"not null"`                 // Model output
	Timestamp    time.Time `gorm:"not null"`                 // Prediction time
}

// Models lists every table managed by Migrate
func Models() []any {
	return []any{&User{}, &TransactionRecord{}, &PredictionRecord{}}
}

func fromUser(u *domain.User) User {
	return User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Balance:      u.Wallet.Balance(),
	}
}

func fromTransactionRecord(rec domain.TransactionRecord) TransactionRecord {
	return TransactionRecord{
		TransactionID: rec.TransactionID,
		UserID:        rec.UserID,
		Kind:          string(rec.Kind),
		Amount:        rec.Amount,
		Status:        string(rec.Status),
		Timestamp:     rec.Timestamp,
	}
}

func fromPredictionRecord(rec domain.PredictionRecord) PredictionRecord {
	return PredictionRecord{
		PredictionID: rec.PredictionID,
		UserID:       rec.UserID,
		InputImage:   rec.InputImage,
		OutputResult: rec.OutputResult,
		Timestamp:    rec.Timestamp,
	}
}

// ToDomain converts a stored row back into an audit record
func (t TransactionRecord) ToDomain() domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		Kind:          domain.Kind(t.Kind),
		Amount:        t.Amount,
		Timestamp:     t.Timestamp,
		Status:        domain.Status(t.Status),
	}
}
