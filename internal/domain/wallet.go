package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Wallet is a user's balance together with the transactions applied to it.
// The zero value is an empty wallet with a zero balance.
type Wallet struct {
	balance decimal.Decimal
	history []Transaction
}

// NewWallet opens a wallet with the given balance. A negative opening balance is rejected.
func NewWallet(initial decimal.Decimal) (*Wallet, error) {
	if initial.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance %s is negative", ErrInvalidAmount, initial)
	}
	return &Wallet{balance: initial}, nil
}

// Balance returns the current balance
func (w *Wallet) Balance() decimal.Decimal {
	return w.balance
}

// History returns a copy of the applied transactions, oldest first
func (w *Wallet) History() []Transaction {
	out := make([]Transaction, len(w.history))
	copy(out, w.history)
	return out
}

// Len returns the number of applied transactions
func (w *Wallet) Len() int {
	return len(w.history)
}

func (w *Wallet) credit(tx Transaction) {
	w.balance = w.balance.Add(tx.Amount)
	w.history = append(w.history, tx)
}

func (w *Wallet) debit(tx Transaction) error {
	if w.balance.LessThan(tx.Amount) {
		return fmt.Errorf("%w: balance %s, charge %s", ErrInsufficientFunds, w.balance.StringFixed(2), tx.Amount.StringFixed(2))
	}
	w.balance = w.balance.Sub(tx.Amount)
	w.history = append(w.history, tx)
	return nil
}
