package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects the variant of a Transaction
type Kind string

const (
	KindDeposit       Kind = "deposit"        // Adds funds to the wallet
	KindServiceCharge Kind = "service_charge" // Removes funds, never below zero
)

// Valid reports whether k names a known variant
func (k Kind) Valid() bool {
	return k == KindDeposit || k == KindServiceCharge
}

// ParseKind converts a wire value into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Transaction is a single balance-affecting operation. Values are immutable once built.
type Transaction struct {
	ID        int             `json:"id"`
	Kind      Kind            `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewTransaction validates and builds a transaction. The amount must be strictly positive.
func NewTransaction(id int, kind Kind, amount decimal.Decimal, ts time.Time) (Transaction, error) {
	if !kind.Valid() {
		return Transaction{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, amount)
	}
	return Transaction{ID: id, Kind: kind, Amount: amount, Timestamp: ts}, nil
}

// Execute applies the transaction to w. A failed service charge leaves w untouched.
func (t Transaction) Execute(w *Wallet) error {
	switch t.Kind {
	case KindDeposit:
		w.credit(t)
		return nil
	case KindServiceCharge:
		return w.debit(t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, t.Kind)
	}
}
