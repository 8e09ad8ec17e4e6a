// Package history keeps the process-wide, append-only audit log of executed
// transactions and model predictions.
package history

import (
	"sync"

	"ml_billing/internal/domain"
)

// Listener is notified after every append. Calls happen outside the log's lock,
// in append order for a single writer.
type Listener interface {
	OnTransaction(rec domain.TransactionRecord)
	OnPrediction(rec domain.PredictionRecord)
}

// Manager is an append-only log. Create one at startup and pass it to its writers.
type Manager struct {
	mu           sync.RWMutex
	transactions []domain.TransactionRecord
	predictions  []domain.PredictionRecord
	listeners    []Listener
}

// New returns an empty log
func New() *Manager {
	return &Manager{}
}

// Subscribe registers l for all future appends
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

// AddTransaction appends rec. No deduplication is performed.
func (m *Manager) AddTransaction(rec domain.TransactionRecord) {
	m.mu.Lock()
	m.transactions = append(m.transactions, rec)
	listeners := m.listeners
	m.mu.Unlock()

	for _, l := range listeners {
		l.OnTransaction(rec)
	}
}

// AddPrediction appends rec. No deduplication is performed.
func (m *Manager) AddPrediction(rec domain.PredictionRecord) {
	m.mu.Lock()
	m.predictions = append(m.predictions, rec)
	listeners := m.listeners
	m.mu.Unlock()

	for _, l := range listeners {
		l.OnPrediction(rec)
	}
}

// Transactions returns a snapshot of every transaction record
func (m *Manager) Transactions() []domain.TransactionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.TransactionRecord, len(m.transactions))
	copy(out, m.transactions)
	return out
}

// Predictions returns a snapshot of every prediction record
func (m *Manager) Predictions() []domain.PredictionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.PredictionRecord, len(m.predictions))
	copy(out, m.predictions)
	return out
}

// TransactionsFor returns the records of a single user
func (m *Manager) TransactionsFor(userID uint) []domain.TransactionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.TransactionRecord
	for _, r := range m.transactions {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// PredictionsFor returns the predictions of a single user
func (m *Manager) PredictionsFor(userID uint) []domain.PredictionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.PredictionRecord
	for _, r := range m.predictions {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of transaction and prediction records
func (m *Manager) Len() (transactions, predictions int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions), len(m.predictions)
}
