// Package billing executes wallet transactions and records them in the audit log.
package billing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ml_billing/internal/domain"
	"ml_billing/internal/history"
	"ml_billing/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultInferenceCost is charged per model call unless overridden
var DefaultInferenceCost = decimal.RequireFromString("0.01")

var (
	ErrNoWallet  = errors.New("user has no wallet")
	ErrNoEvent   = errors.New("event has no creator")
	ErrPredictor = errors.New("prediction failed")
)

// Predictor is the model backend consulted by paid model calls
type Predictor interface {
	Predict(image string) (model.Prediction, error)
}

// Service builds transactions, applies them to wallets and appends the audit records.
// Operations on the same user are serialized; different users proceed in parallel.
type Service struct {
	history       *history.Manager
	log           logrus.FieldLogger
	inferenceCost decimal.Decimal
	now           func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// Option customizes a Service
type Option func(*Service)

// WithInferenceCost sets the price of one model call
func WithInferenceCost(cost decimal.Decimal) Option {
	return func(s *Service) { s.inferenceCost = cost }
}

// WithClock replaces time.Now for transaction timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires a Service to the shared history log
func NewService(h *history.Manager, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		history:       h,
		log:           log,
		inferenceCost: DefaultInferenceCost,
		now:           time.Now,
		locks:         make(map[uint]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InferenceCost returns the price of one model call
func (s *Service) InferenceCost() decimal.Decimal {
	return s.inferenceCost
}

// ExecuteTransaction applies a transaction of kind to the user's wallet and appends its
// record to the history log. The id is the wallet's history length plus one. When the
// transaction is rejected neither the wallet nor the log changes.
func (s *Service) ExecuteTransaction(ctx context.Context, user *domain.User, amount decimal.Decimal, kind domain.Kind) (domain.TransactionRecord, error) {
	if user == nil || user.Wallet == nil {
		return domain.TransactionRecord{}, ErrNoWallet
	}
	if !kind.Valid() {
		return domain.TransactionRecord{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	if !amount.IsPositive() {
		s.logRejected(ctx, user, amount, kind, domain.ErrInvalidAmount)
		return domain.TransactionRecord{}, fmt.Errorf("%w: %s must be positive", domain.ErrInvalidAmount, amount)
	}

	unlock := s.lock(user.ID)
	defer unlock()
	return s.execute(ctx, user, amount, kind)
}

// Deposit credits amount to the user's wallet
func (s *Service) Deposit(ctx context.Context, user *domain.User, amount decimal.Decimal) (domain.TransactionRecord, error) {
	return s.ExecuteTransaction(ctx, user, amount, domain.KindDeposit)
}

// Charge debits amount from the user's wallet, failing with ErrInsufficientFunds
// rather than going below zero
func (s *Service) Charge(ctx context.Context, user *domain.User, amount decimal.Decimal) (domain.TransactionRecord, error) {
	return s.ExecuteTransaction(ctx, user, amount, domain.KindServiceCharge)
}

// Balance reads the wallet balance inside the user's critical section
func (s *Service) Balance(user *domain.User) (decimal.Decimal, error) {
	if user == nil || user.Wallet == nil {
		return decimal.Zero, ErrNoWallet
	}
	unlock := s.lock(user.ID)
	defer unlock()
	return user.Wallet.Balance(), nil
}

// WalletSnapshot is a consistent view of a user's wallet and events
type WalletSnapshot struct {
	Balance      decimal.Decimal
	Transactions int // Applied transactions; grows with every balance change
	Events       int // Processed events
}

// Snapshot reads balance, transaction count and event count inside the user's
// critical section
func (s *Service) Snapshot(user *domain.User) (WalletSnapshot, error) {
	if user == nil || user.Wallet == nil {
		return WalletSnapshot{}, ErrNoWallet
	}
	unlock := s.lock(user.ID)
	defer unlock()
	return WalletSnapshot{
		Balance:      user.Wallet.Balance(),
		Transactions: user.Wallet.Len(),
		Events:       len(user.Events),
	}, nil
}

// execute must be called with the user's lock held
func (s *Service) execute(ctx context.Context, user *domain.User, amount decimal.Decimal, kind domain.Kind) (domain.TransactionRecord, error) {
	tx, err := domain.NewTransaction(user.Wallet.Len()+1, kind, amount, s.now())
	if err != nil {
		s.logRejected(ctx, user, amount, kind, err)
		return domain.TransactionRecord{}, err
	}
	if err := tx.Execute(user.Wallet); err != nil {
		s.logRejected(ctx, user, amount, kind, err)
		return domain.TransactionRecord{}, err
	}

	rec := domain.NewTransactionRecord(user.ID, tx)
	s.history.AddTransaction(rec)

	s.logger(ctx).WithFields(logrus.Fields{
		"user_id":        user.ID,
		"transaction_id": tx.ID,
		"type":           string(kind),
		"amount":         amount.String(),
		"balance":        user.Wallet.Balance().String(),
	}).Info("Transaction executed")
	return rec, nil
}

func (s *Service) logRejected(ctx context.Context, user *domain.User, amount decimal.Decimal, kind domain.Kind, err error) {
	s.logger(ctx).WithFields(logrus.Fields{
		"user_id": user.ID,
		"type":    string(kind),
		"amount":  amount.String(),
		"error":   err.Error(),
	}).Warn("Transaction rejected")
}

// lock acquires the mutex guarding userID's wallet and returns its release
func (s *Service) lock(userID uint) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// logger attaches ctx to the service's log entries
func (s *Service) logger(ctx context.Context) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{}).WithContext(ctx)
}
