package schema

import "time"

// AnalysisRunRecord represents a row from the churnscope_analysis_runs table.
type AnalysisRunRecord struct {
	RunID          int64
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TotalCustomers int32
	ConfigParams   *string
}

// AssessmentRecord represents a row from the churnscope_customer_metrics table,
// flattened with its optional churn prediction for export.
type AssessmentRecord struct {
	RunID          int64
	CustomerID     string
	AssessmentTime time.Time
	TrendRisk      float64
	DeclineRisk    float64
	InactivityRisk float64
	VolatilityRisk float64
	Score          float64
	Level          string
	CLV            float64
	DiscountPct    int32
	DiscountCost   float64
	RetentionROI   float64
	Priority       string
	Action         string
	PredictedDate  *time.Time
	DaysUntil      *int32
	CycleDays      *int32
}

// StoreStatus reports connectivity and row counts for the run store.
type StoreStatus struct {
	Backend        DatabaseBackend
	Connected      bool
	TotalRuns      int64
	LastRunID      int64
	LastRunTime    time.Time
	OldestRunTime  time.Time
	TotalCustomers int64
	TableSizes     map[string]int64
}
