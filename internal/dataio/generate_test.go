package dataio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retainly/churnscope/internal/contract"
)

func sampleConfig(seed int64, customers, months int, churnRate float64) *contract.Config {
	return &contract.Config{
		Seed:            seed,
		SampleCustomers: customers,
		SampleMonths:    months,
		SampleChurnRate: churnRate,
	}
}

// TestGenerateSampleTransactionsShape checks the generated volume and
// basic row validity.
func TestGenerateSampleTransactionsShape(t *testing.T) {
	cfg := sampleConfig(42, 10, 6, 0.3)
	transactions := GenerateSampleTransactions(cfg)

	// One row per customer per product per month.
	require.Len(t, transactions, 10*len(sampleProducts)*6)

	for _, tx := range transactions {
		assert.NotEmpty(t, tx.CustomerID)
		assert.GreaterOrEqual(t, tx.Quantity, 0)
		assert.GreaterOrEqual(t, tx.Amount, 0.0)
		_, err := time.Parse("2006-01-02", tx.Date)
		assert.NoError(t, err, "date %q", tx.Date)
	}
}

// TestGenerateSampleTransactionsDeterministic checks that the same seed
// reproduces the exact same dataset and a different seed does not.
func TestGenerateSampleTransactionsDeterministic(t *testing.T) {
	first := GenerateSampleTransactions(sampleConfig(7, 5, 4, 0.5))
	second := GenerateSampleTransactions(sampleConfig(7, 5, 4, 0.5))
	assert.Equal(t, first, second)

	other := GenerateSampleTransactions(sampleConfig(8, 5, 4, 0.5))
	assert.NotEqual(t, first, other)
}

// TestGenerateSampleTransactionsChurnDecline checks that with every
// customer flagged as churning, portfolio spending in the final month
// falls well below the first month.
func TestGenerateSampleTransactionsChurnDecline(t *testing.T) {
	cfg := sampleConfig(42, 20, 12, 1.0)
	transactions := GenerateSampleTransactions(cfg)

	firstDate := sampleStartDate.Format("2006-01-02")
	lastDate := sampleStartDate.AddDate(0, 0, 30*(cfg.SampleMonths-1)).Format("2006-01-02")

	var firstTotal, lastTotal float64
	for _, tx := range transactions {
		switch tx.Date {
		case firstDate:
			firstTotal += tx.Amount
		case lastDate:
			lastTotal += tx.Amount
		}
	}

	require.Greater(t, firstTotal, 0.0)
	assert.Less(t, lastTotal, firstTotal*0.9)
}

// TestGenerateSampleHistories checks that generated transactions
// aggregate into one scoreable history per customer.
func TestGenerateSampleHistories(t *testing.T) {
	cfg := sampleConfig(42, 8, 6, 0.25)
	histories := GenerateSampleHistories(cfg)

	require.Len(t, histories, 8)
	for _, h := range histories {
		assert.GreaterOrEqual(t, len(h.MonthlySpending), 2, "customer %s", h.CustomerID)
		assert.Greater(t, h.AnnualSpending, 0.0, "customer %s", h.CustomerID)
		assert.NotEmpty(t, h.Transactions)
	}
}

// TestWriteSampleJSON checks the JSON round trip through the loader.
func TestWriteSampleJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.json")
	cfg := sampleConfig(42, 6, 4, 0.5)

	count, err := WriteSampleJSON(cfg, path)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	histories, err := LoadCustomerHistories(path)
	require.NoError(t, err)
	assert.Equal(t, GenerateSampleHistories(cfg), histories)
}

// TestWriteSampleCSV checks the raw transaction CSV round trip.
func TestWriteSampleCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	cfg := sampleConfig(42, 6, 4, 0.5)

	count, err := WriteSampleCSV(cfg, path)
	require.NoError(t, err)
	assert.Equal(t, 6*len(sampleProducts)*4, count)

	histories, err := LoadCustomerHistories(path)
	require.NoError(t, err)
	require.Len(t, histories, 6)
	for _, h := range histories {
		assert.Greater(t, h.AnnualSpending, 0.0)
	}
}
