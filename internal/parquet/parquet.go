// Package parquet provides data structures and functions for exporting churn
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/retainly/churnscope/schema"
)

// AnalysisRun represents a single churn analysis run with metadata.
// This struct maps to the churnscope_analysis_runs database table.
type AnalysisRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalCustomers is the number of customers assessed in this run
	TotalCustomers int32 `parquet:"total_customers,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CustomerAssessment represents the scores and valuation for a single customer
// in an analysis run. This struct maps to the churnscope_customer_metrics table
// joined with churnscope_churn_predictions.
type CustomerAssessment struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// CustomerID identifies the assessed account
	CustomerID string `parquet:"customer_id,snappy"`

	// AssessmentTime is when this customer was assessed
	AssessmentTime time.Time `parquet:"assessment_time,snappy"`

	// TrendRisk scores the long-run spending trajectory (0-100)
	TrendRisk float64 `parquet:"trend_risk,snappy"`

	// DeclineRisk scores the recent drop against historical spending (0-100)
	DeclineRisk float64 `parquet:"decline_risk,snappy"`

	// InactivityRisk scores zero and low-spend months (0-100)
	InactivityRisk float64 `parquet:"inactivity_risk,snappy"`

	// VolatilityRisk scores spending variability (0-100)
	VolatilityRisk float64 `parquet:"volatility_risk,snappy"`

	// Score is the weighted composite churn risk score (0-100)
	Score float64 `parquet:"churn_risk_score,snappy"`

	// Level is the assigned risk band label
	Level string `parquet:"risk_level,snappy"`

	// CLV is the projected five-year customer lifetime value
	CLV float64 `parquet:"clv,snappy"`

	// DiscountPct is the recommended retention discount percentage
	DiscountPct int32 `parquet:"discount_pct,snappy"`

	// DiscountCost is the first-year cost of the recommended discount
	DiscountCost float64 `parquet:"discount_cost,snappy"`

	// RetentionROI is the expected return on the retention spend, in percent
	RetentionROI float64 `parquet:"retention_roi,snappy"`

	// Priority is the outreach priority label
	Priority string `parquet:"priority,snappy"`

	// Action is the recommended retention action text
	Action string `parquet:"action,snappy"`

	// PredictedDate is the projected churn date (nullable)
	PredictedDate *time.Time `parquet:"predicted_date,optional,snappy"`

	// DaysUntil is the number of days until the projected churn date (nullable)
	DaysUntil *int32 `parquet:"days_until,optional,snappy"`

	// CycleDays is the customer's median purchase cycle in days (nullable)
	CycleDays *int32 `parquet:"cycle_days,optional,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCustomerAssessmentsParquet writes a slice of CustomerAssessment structs to a Parquet file.
func WriteCustomerAssessmentsParquet(data []CustomerAssessment, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the CustomerAssessment struct tags
	writer := parquet.NewGenericWriter[CustomerAssessment](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchAnalysisRuns returns sample analysis run data for demos and tests.
func MockFetchAnalysisRuns() []AnalysisRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 55*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"input_path":"data/q2_transactions.csv","workers":8,"limit":100}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23*time.Hour - 58*time.Minute)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"input_path":"data/q1_transactions.csv","workers":4,"limit":50}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []AnalysisRun{
		{
			RunID:          1,
			StartTime:      startTime1,
			EndTime:        &endTime1,
			RunDurationMs:  &durationMs1,
			TotalCustomers: 320,
			ConfigParams:   &configParams1,
		},
		{
			RunID:          2,
			StartTime:      startTime2,
			EndTime:        &endTime2,
			RunDurationMs:  &durationMs2,
			TotalCustomers: 310,
			ConfigParams:   &configParams2,
		},
		{
			RunID:          3,
			StartTime:      startTime3,
			EndTime:        nil, // Still running - nullable field
			RunDurationMs:  nil, // Not yet calculated - nullable field
			TotalCustomers: 0,
			ConfigParams:   nil, // No config stored - nullable field
		},
	}
}

// MockFetchCustomerAssessments returns sample assessment data for demos and tests.
func MockFetchCustomerAssessments() []CustomerAssessment {
	now := time.Now()
	predicted1 := now.AddDate(0, 0, 5)
	daysUntil1 := int32(5)
	cycleDays1 := int32(30)

	return []CustomerAssessment{
		{
			RunID:          1,
			CustomerID:     "Acme Foods",
			AssessmentTime: now.Add(-2 * time.Hour),
			TrendRisk:      80.0,
			DeclineRisk:    90.0,
			InactivityRisk: 70.0,
			VolatilityRisk: 60.0,
			Score:          80.5,
			Level:          "High Risk",
			CLV:            150000.0,
			DiscountPct:    12,
			DiscountCost:   1800.0,
			RetentionROI:   8233.33,
			Priority:       "HIGH",
			Action:         "Call within 48 hours. Offer 12% retention discount.",
			PredictedDate:  &predicted1,
			DaysUntil:      &daysUntil1,
			CycleDays:      &cycleDays1,
		},
		{
			RunID:          1,
			CustomerID:     "Globex Catering",
			AssessmentTime: now.Add(-2 * time.Hour),
			TrendRisk:      40.0,
			DeclineRisk:    35.0,
			InactivityRisk: 0.0,
			VolatilityRisk: 20.0,
			Score:          30.25,
			Level:          "Low Risk",
			CLV:            42000.0,
			DiscountPct:    5,
			DiscountCost:   210.0,
			RetentionROI:   19900.0,
			Priority:       "LOW",
			Action:         "Continue standard engagement.",
			PredictedDate:  nil, // Not enough transaction history - nullable field
			DaysUntil:      nil,
			CycleDays:      nil,
		},
	}
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			RunID:          record.RunID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalCustomers: record.TotalCustomers,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertAssessmentRecords converts schema.AssessmentRecord to CustomerAssessment for Parquet export.
func ConvertAssessmentRecords(records []schema.AssessmentRecord) []CustomerAssessment {
	result := make([]CustomerAssessment, len(records))
	for i, record := range records {
		result[i] = CustomerAssessment{
			RunID:          record.RunID,
			CustomerID:     record.CustomerID,
			AssessmentTime: record.AssessmentTime,
			TrendRisk:      record.TrendRisk,
			DeclineRisk:    record.DeclineRisk,
			InactivityRisk: record.InactivityRisk,
			VolatilityRisk: record.VolatilityRisk,
			Score:          record.Score,
			Level:          record.Level,
			CLV:            record.CLV,
			DiscountPct:    record.DiscountPct,
			DiscountCost:   record.DiscountCost,
			RetentionROI:   record.RetentionROI,
			Priority:       record.Priority,
			Action:         record.Action,
			PredictedDate:  record.PredictedDate,
			DaysUntil:      record.DaysUntil,
			CycleDays:      record.CycleDays,
		}
	}
	return result
}
