package history

import (
	"sync"
	"testing"
	"time"

	"ml_billing/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	mu           sync.Mutex
	transactions []domain.TransactionRecord
	predictions  []domain.PredictionRecord
}

func (l *recordingListener) OnTransaction(rec domain.TransactionRecord) {
	l.mu.Lock()
	l.transactions = append(l.transactions, rec)
	l.mu.Unlock()
}

func (l *recordingListener) OnPrediction(rec domain.PredictionRecord) {
	l.mu.Lock()
	l.predictions = append(l.predictions, rec)
	l.mu.Unlock()
}

func txRecord(userID uint, id int) domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionID: id,
		UserID:        userID,
		Kind:          domain.KindDeposit,
		Amount:        decimal.NewFromInt(1),
		Timestamp:     time.Now(),
		Status:        domain.StatusSuccess,
	}
}

func TestManager_AppendAndSnapshot(t *testing.T) {
	m := New()

	m.AddTransaction(txRecord(1, 1))
	m.AddTransaction(txRecord(1, 1)) // duplicates are kept
	m.AddTransaction(txRecord(2, 1))
	m.AddPrediction(domain.NewPredictionRecord(2, "in.jpg", "out", time.Now()))

	assert.Len(t, m.Transactions(), 3)
	assert.Len(t, m.TransactionsFor(1), 2)
	assert.Len(t, m.TransactionsFor(3), 0)
	assert.Len(t, m.Predictions(), 1)
	assert.Len(t, m.PredictionsFor(2), 1)
	assert.Empty(t, m.PredictionsFor(1))

	txs, preds := m.Len()
	assert.Equal(t, 3, txs)
	assert.Equal(t, 1, preds)
}

func TestManager_SnapshotIsIsolated(t *testing.T) {
	m := New()
	m.AddTransaction(txRecord(1, 1))

	snap := m.Transactions()
	snap[0].UserID = 99

	assert.Equal(t, uint(1), m.Transactions()[0].UserID)
}

func TestManager_NotifiesListeners(t *testing.T) {
	m := New()
	l := &recordingListener{}
	m.Subscribe(l)

	m.AddTransaction(txRecord(1, 1))
	m.AddPrediction(domain.NewPredictionRecord(1, "in.jpg", "out", time.Now()))

	require.Len(t, l.transactions, 1)
	require.Len(t, l.predictions, 1)
	assert.Equal(t, 1, l.transactions[0].TransactionID)
	assert.Equal(t, "in.jpg", l.predictions[0].InputImage)
}

func TestManager_ConcurrentAppends(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.AddTransaction(txRecord(uint(i%5), i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.Transactions(), 50)
}
