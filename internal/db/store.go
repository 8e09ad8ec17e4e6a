package db

import (
	"context" // Request scoped queries

	"ml_billing/internal/domain" // Domain records

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// Store mirrors users and audit records into the database. The in-memory history log
// stays authoritative; a failed write is logged and dropped.
type Store struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewStore wraps an open connection
func NewStore(db *gorm.DB, log logrus.FieldLogger) *Store {
	return &Store{db: db, log: log}
}

// SaveUser writes a freshly registered user
func (s *Store) SaveUser(ctx context.Context, u *domain.User) error {
	row := fromUser(u)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": u.ID,        // User ID
			"error":   err.Error(), // Error message
		}).Error("Failed to persist user")
		return err
	}
	return nil
}

// OnTransaction persists a transaction record
func (s *Store) OnTransaction(rec domain.TransactionRecord) {
	row := fromTransactionRecord(rec)
	if err := s.db.Create(&row).Error; err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id":        rec.UserID,        // Owner
			"transaction_id": rec.TransactionID, // Sequence id
			"error":          err.Error(),       // Error message
		}).Error("Failed to persist transaction record")
	}
}

// OnPrediction persists a prediction record
func (s *Store) OnPrediction(rec domain.PredictionRecord) {
	row := fromPredictionRecord(rec)
	if err := s.db.Create(&row).Error; err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id":       rec.UserID,                // Owner
			"prediction_id": rec.PredictionID.String(), // Prediction id
			"error":         err.Error(),               // Error message
		}).Error("Failed to persist prediction record")
	}
}
