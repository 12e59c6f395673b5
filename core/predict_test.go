package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retainly/churnscope/schema"
)

func txOn(dates ...string) []schema.Transaction {
	txs := make([]schema.Transaction, 0, len(dates))
	for _, d := range dates {
		txs = append(txs, schema.Transaction{Date: d})
	}
	return txs
}

// TestPredictChurnRegularCycle tests prediction on an even purchase cadence.
func TestPredictChurnRegularCycle(t *testing.T) {
	now := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	txs := txOn("2024-01-01", "2024-01-11", "2024-01-21", "2024-01-31")

	p := predictChurn(txs, now)
	require.NotNil(t, p)

	assert.Equal(t, 10, p.CycleDays)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), p.LastPurchase)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), p.PredictedDate)
	assert.Equal(t, 5, p.DaysUntil)
}

// TestPredictChurnOverdue confirms that a customer already past the
// predicted date reports zero days, never a negative count.
func TestPredictChurnOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	txs := txOn("2024-01-01", "2024-01-11", "2024-01-21")

	p := predictChurn(txs, now)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.DaysUntil)
}

// TestPredictChurnMedianCycle checks that uneven gaps use the median,
// truncated toward zero.
func TestPredictChurnMedianCycle(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Gaps of 10 and 20 days give a median of 15.
	p := predictChurn(txOn("2024-01-01", "2024-01-11", "2024-01-31"), now)
	require.NotNil(t, p)
	assert.Equal(t, 15, p.CycleDays)

	// Gaps of 10, 21 and 50 days give a median of 21.
	p = predictChurn(txOn("2024-01-01", "2024-01-11", "2024-02-01", "2024-03-22"), now)
	require.NotNil(t, p)
	assert.Equal(t, 21, p.CycleDays)
}

// TestPredictChurnNoPrediction covers the inputs that legitimately
// produce no prediction.
func TestPredictChurnNoPrediction(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		txs  []schema.Transaction
	}{
		{"no transactions", nil},
		{"single transaction", txOn("2024-01-01")},
		{"same-day purchases have no positive gaps", txOn("2024-01-01", "2024-01-01", "2024-01-01")},
		{"unparseable dates leave fewer than two", txOn("not-a-date", "01/02/2024", "2024-01-15")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, predictChurn(tt.txs, now))
		})
	}
}

// TestParseTransactionDates checks the accepted layouts and the silent
// drop of anything else.
func TestParseTransactionDates(t *testing.T) {
	txs := txOn(
		"2024-03-15",
		"2024-03-15 10:30:00",
		"2024-03-15T10:30:00Z",
		"03/15/2024",
		"",
	)

	dates := parseTransactionDates(txs)
	assert.Len(t, dates, 3)
}
