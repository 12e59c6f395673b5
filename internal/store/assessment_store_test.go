package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retainly/churnscope/schema"
)

func storeAssessments() []schema.RiskAssessment {
	return []schema.RiskAssessment{
		{
			CustomerID:     "Acme Foods",
			TrendRisk:      80.0,
			DeclineRisk:    90.0,
			InactivityRisk: 70.0,
			VolatilityRisk: 60.0,
			Score:          80.5,
			Level:          schema.HighRisk,
			Prediction: &schema.ChurnPrediction{
				PredictedDate: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
				DaysUntil:     5,
				CycleDays:     30,
				LastPurchase:  time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC),
			},
			CLV:          150000.0,
			DiscountPct:  12,
			DiscountCost: 1800.0,
			RetentionROI: 8233.33,
			Priority:     schema.HighPriority,
			Action:       "Call within 48 hours. Offer 12% retention discount.",
		},
		{
			CustomerID:     "Globex Catering",
			TrendRisk:      40.0,
			DeclineRisk:    35.0,
			InactivityRisk: 0.0,
			VolatilityRisk: 20.0,
			Score:          30.25,
			Level:          schema.LowRisk,
			CLV:            42000.0,
			DiscountPct:    5,
			DiscountCost:   210.0,
			RetentionROI:   19900.0,
			Priority:       schema.LowPriority,
			Action:         "Continue standard engagement.",
		},
	}
}

func TestAssessmentStore_NoneBackend(t *testing.T) {
	store, err := NewAssessmentStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	err = store.RecordAssessments(1, storeAssessments())
	assert.NoError(t, err)

	err = store.EndRun(1, time.Now(), 2)
	assert.NoError(t, err)

	err = store.Close()
	assert.NoError(t, err)
}

func TestAssessmentStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewAssessmentStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	startTime := time.Now()
	configParams := map[string]any{
		"input_path": "/test/customers.json",
		"workers":    4,
	}
	runID, err := store.BeginRun(startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	err = store.RecordAssessments(runID, storeAssessments())
	require.NoError(t, err)

	err = store.EndRun(runID, time.Now(), 2)
	require.NoError(t, err)
}

func TestAssessmentStore_Status(t *testing.T) {
	store, err := NewAssessmentStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordAssessments(runID, storeAssessments()))
	require.NoError(t, store.EndRun(runID, time.Now(), 2))

	status, err := store.GetStatus()
	require.NoError(t, err)

	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(1), status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, int64(2), status.TotalCustomers)
	assert.Equal(t, int64(1), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[customerMetricsTable])
	// Only the first assessment has a prediction.
	assert.Equal(t, int64(1), status.TableSizes[churnPredictionsTable])
	// Retention actions are only created for high-risk accounts.
	assert.Equal(t, int64(1), status.TableSizes[retentionActionsTable])
}

func TestAssessmentStore_GetAllRuns(t *testing.T) {
	store, err := NewAssessmentStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	firstID, err := store.BeginRun(start, map[string]any{"workers": 2})
	require.NoError(t, err)
	require.NoError(t, store.EndRun(firstID, start.Add(500*time.Millisecond), 2))

	secondID, err := store.BeginRun(start.Add(time.Hour), nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	first := runs[0]
	assert.Equal(t, firstID, first.RunID)
	assert.True(t, first.StartTime.Equal(start))
	require.NotNil(t, first.EndTime)
	assert.True(t, first.EndTime.Equal(start.Add(500*time.Millisecond)))
	require.NotNil(t, first.RunDurationMs)
	assert.Equal(t, int32(500), *first.RunDurationMs)
	assert.Equal(t, int32(2), first.TotalCustomers)
	require.NotNil(t, first.ConfigParams)
	assert.Contains(t, *first.ConfigParams, `"workers":2`)

	// The second run is still open.
	second := runs[1]
	assert.Equal(t, secondID, second.RunID)
	assert.Nil(t, second.EndTime)
	assert.Nil(t, second.RunDurationMs)
}

func TestAssessmentStore_GetAllAssessments(t *testing.T) {
	store, err := NewAssessmentStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordAssessments(runID, storeAssessments()))

	records, err := store.GetAllAssessments()
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, runID, first.RunID)
	assert.Equal(t, "Acme Foods", first.CustomerID)
	assert.Equal(t, 80.5, first.Score)
	assert.Equal(t, string(schema.HighRisk), first.Level)
	assert.Equal(t, 150000.0, first.CLV)
	assert.Equal(t, int32(12), first.DiscountPct)
	assert.Equal(t, string(schema.HighPriority), first.Priority)
	require.NotNil(t, first.PredictedDate)
	assert.True(t, first.PredictedDate.Equal(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, first.DaysUntil)
	assert.Equal(t, int32(5), *first.DaysUntil)
	require.NotNil(t, first.CycleDays)
	assert.Equal(t, int32(30), *first.CycleDays)

	second := records[1]
	assert.Equal(t, "Globex Catering", second.CustomerID)
	assert.Nil(t, second.PredictedDate)
	assert.Nil(t, second.DaysUntil)
	assert.Nil(t, second.CycleDays)
}

func TestAssessmentStore_MultipleRuns(t *testing.T) {
	store, err := NewAssessmentStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var runIDs []int64
	for i := range 3 {
		id, err := store.BeginRun(time.Now(), map[string]any{"run": i})
		require.NoError(t, err)
		runIDs = append(runIDs, id)

		require.NoError(t, store.RecordAssessments(id, storeAssessments()))
		require.NoError(t, store.EndRun(id, time.Now(), 2))
	}

	// Run IDs are unique and increasing.
	assert.Less(t, runIDs[0], runIDs[1])
	assert.Less(t, runIDs[1], runIDs[2])

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(3), status.TotalRuns)
	assert.Equal(t, int64(6), status.TableSizes[customerMetricsTable])
	// Distinct customers across all runs.
	assert.Equal(t, int64(2), status.TotalCustomers)
}

func TestAssessmentStore_UnsupportedBackend(t *testing.T) {
	_, err := NewAssessmentStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
