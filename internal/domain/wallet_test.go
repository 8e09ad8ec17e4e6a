package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewWallet(t *testing.T) {
	w, err := NewWallet(dec("100.00"))
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(w.Balance()))
	assert.Equal(t, 0, w.Len())

	_, err = NewWallet(dec("-1"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTransaction_Execute(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		opening     string
		kind        Kind
		amount      string
		wantBalance string
		wantErr     error
	}{
		{name: "deposit", opening: "0.00", kind: KindDeposit, amount: "25.50", wantBalance: "25.50"},
		{name: "charge one cent", opening: "100.00", kind: KindServiceCharge, amount: "0.01", wantBalance: "99.99"},
		{name: "charge whole balance", opening: "5.00", kind: KindServiceCharge, amount: "5.00", wantBalance: "0"},
		{name: "charge over balance", opening: "5.00", kind: KindServiceCharge, amount: "10.00", wantBalance: "5.00", wantErr: ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWallet(dec(tt.opening))
			require.NoError(t, err)
			tx, err := NewTransaction(1, tt.kind, dec(tt.amount), now)
			require.NoError(t, err)

			err = tx.Execute(w)

			assert.True(t, dec(tt.wantBalance).Equal(w.Balance()), "balance %s", w.Balance())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, w.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []Transaction{tx}, w.History())
		})
	}
}

func TestNewTransaction_Rejects(t *testing.T) {
	_, err := NewTransaction(1, KindDeposit, dec("-5"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewTransaction(1, KindServiceCharge, decimal.Zero, time.Now())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewTransaction(1, Kind("refund"), dec("1"), time.Now())
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestTransaction_ExecuteUnknownKind(t *testing.T) {
	w := &Wallet{}
	err := Transaction{ID: 1, Kind: "refund", Amount: dec("1")}.Execute(w)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.True(t, w.Balance().IsZero())
}

func TestWallet_HistoryIsACopy(t *testing.T) {
	w := &Wallet{}
	tx, err := NewTransaction(1, KindDeposit, dec("1"), time.Now())
	require.NoError(t, err)
	require.NoError(t, tx.Execute(w))

	h := w.History()
	h[0].Amount = dec("1000")

	assert.True(t, dec("1").Equal(w.History()[0].Amount))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("deposit")
	require.NoError(t, err)
	assert.Equal(t, KindDeposit, k)

	_, err = ParseKind("withdrawal")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
