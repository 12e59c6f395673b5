package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		ResultLimit:     10,
		Workers:         4,
		Precision:       1,
		Output:          schema.TextOut,
		AsOf:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		HighThreshold:   schema.DefaultHighThreshold,
		MediumThreshold: schema.DefaultMediumThreshold,
	}
}

// TestAssessCustomerChurningAccount walks a clearly churning account
// through the full pipeline and checks every derived figure.
func TestAssessCustomerChurningAccount(t *testing.T) {
	history := schema.CustomerHistory{
		CustomerID:      "ACME-001",
		MonthlySpending: []float64{1000, 1000, 1000, 1000, 1000, 0, 0},
		AnnualSpending:  5000,
		Transactions: []schema.Transaction{
			{Date: "2023-11-01"}, {Date: "2023-12-01"}, {Date: "2024-01-01"},
		},
	}

	a, ok := AssessCustomer(history, testConfig())
	require.True(t, ok)

	assert.Equal(t, "ACME-001", a.CustomerID)
	assert.InDelta(t, 75.0, a.TrendRisk, 0.001)
	assert.InDelta(t, 100.0, a.DeclineRisk, 0.001)
	assert.InDelta(t, 85.714, a.InactivityRisk, 0.001)
	assert.InDelta(t, 63.246, a.VolatilityRisk, 0.001)
	assert.InDelta(t, 84.717, a.Score, 0.001)
	assert.Equal(t, schema.HighRisk, a.Level)
	assert.Equal(t, schema.HighPriority, a.Priority)
	assert.Equal(t, 12, a.DiscountPct)
	assert.Greater(t, a.CLV, 0.0)

	require.NotNil(t, a.Prediction)
	assert.Equal(t, 30, a.Prediction.CycleDays)
	assert.Equal(t, 0, a.Prediction.DaysUntil, "prediction long past is reported as zero days")
}

// TestAssessCustomerHealthyAccount confirms a steady account lands in
// the low risk band with a standard engagement action.
func TestAssessCustomerHealthyAccount(t *testing.T) {
	history := schema.CustomerHistory{
		CustomerID:      "STEADY-001",
		MonthlySpending: []float64{1000, 1000, 1000, 1000, 1000, 1000},
		AnnualSpending:  12000,
	}

	a, ok := AssessCustomer(history, testConfig())
	require.True(t, ok)

	assert.InDelta(t, 35.0, a.Score, 0.001)
	assert.Equal(t, schema.LowRisk, a.Level)
	assert.Equal(t, schema.LowPriority, a.Priority)
	assert.Equal(t, "Continue standard engagement.", a.Action)
	assert.Nil(t, a.Prediction)
}

// TestAssessCustomerTooShort confirms the skip rule for customers with
// fewer than two spend months.
func TestAssessCustomerTooShort(t *testing.T) {
	for _, spending := range [][]float64{nil, {}, {1000}} {
		_, ok := AssessCustomer(schema.CustomerHistory{
			CustomerID:      "NEW-001",
			MonthlySpending: spending,
		}, testConfig())
		assert.False(t, ok, "spending %v should be skipped", spending)
	}
}

// TestAnalyzeCustomers exercises the worker pool over a mixed portfolio.
func TestAnalyzeCustomers(t *testing.T) {
	histories := make([]schema.CustomerHistory, 0, 21)
	for i := range 20 {
		histories = append(histories, schema.CustomerHistory{
			CustomerID:      fmt.Sprintf("CUST-%03d", i),
			MonthlySpending: []float64{1000, 900, 800, 700},
			AnnualSpending:  3400,
		})
	}
	// One customer too new to score.
	histories = append(histories, schema.CustomerHistory{
		CustomerID:      "CUST-NEW",
		MonthlySpending: []float64{500},
	})

	results := AnalyzeCustomers(testConfig(), histories)
	assert.Len(t, results, 20)

	seen := make(map[string]bool)
	for _, r := range results {
		assert.NotEqual(t, "CUST-NEW", r.CustomerID)
		assert.False(t, seen[r.CustomerID], "customer %s assessed twice", r.CustomerID)
		seen[r.CustomerID] = true
	}
}

// TestAnalyzeCustomersEmpty confirms an empty portfolio yields an empty
// result instead of hanging or panicking.
func TestAnalyzeCustomersEmpty(t *testing.T) {
	results := AnalyzeCustomers(testConfig(), nil)
	assert.Empty(t, results)
}
