package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of an executed transaction as written to the audit log
type Status string

// StatusSuccess is the only status recorded; rejected transactions leave no record
const StatusSuccess Status = "success"

// TransactionRecord is the immutable audit entry for an executed transaction
type TransactionRecord struct {
	TransactionID int             `json:"transaction_id"`
	UserID        uint            `json:"user_id"`
	Kind          Kind            `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     time.Time       `json:"timestamp"`
	Status        Status          `json:"status"`
}

// NewTransactionRecord records a successful execution of tx for userID
func NewTransactionRecord(userID uint, tx Transaction) TransactionRecord {
	return TransactionRecord{
		TransactionID: tx.ID,
		UserID:        userID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		Timestamp:     tx.Timestamp,
		Status:        StatusSuccess,
	}
}

// PredictionRecord is the immutable audit entry for a model call
type PredictionRecord struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	UserID       uint      `json:"user_id"`
	InputImage   string    `json:"input_image"`
	OutputResult string    `json:"output_result"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewPredictionRecord stamps a prediction with a fresh random id
func NewPredictionRecord(userID uint, input, output string, ts time.Time) PredictionRecord {
	return PredictionRecord{
		PredictionID: uuid.New(),
		UserID:       userID,
		InputImage:   input,
		OutputResult: output,
		Timestamp:    ts,
	}
}
