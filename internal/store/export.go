package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/retainly/churnscope/internal/parquet"
	"github.com/retainly/churnscope/schema"
)

// GetAllRuns returns every analysis run in the store, oldest first.
func (as *AssessmentStoreImpl) GetAllRuns() ([]schema.AnalysisRunRecord, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf(`
		SELECT run_id, start_time, end_time, run_duration_ms, total_customers, config_params
		FROM %s ORDER BY run_id ASC`, quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.AnalysisRunRecord
	for rows.Next() {
		var rec schema.AnalysisRunRecord
		var durationMs, totalCustomers *int32
		var configParams *string

		if as.backend == schema.SQLiteBackend {
			var startStr string
			var endStr *string
			if err := rows.Scan(&rec.RunID, &startStr, &endStr, &durationMs, &totalCustomers, &configParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
			rec.StartTime, err = time.Parse(time.RFC3339Nano, startStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				rec.EndTime = &endTime
			}
		} else {
			if err := rows.Scan(&rec.RunID, &rec.StartTime, &rec.EndTime, &durationMs, &totalCustomers, &configParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
		}

		rec.RunDurationMs = durationMs
		if totalCustomers != nil {
			rec.TotalCustomers = *totalCustomers
		}
		rec.ConfigParams = configParams
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analysis runs: %w", err)
	}

	return records, nil
}

// GetAllAssessments returns every stored assessment row joined with its
// churn prediction, ordered by run then customer.
func (as *AssessmentStoreImpl) GetAllAssessments() ([]schema.AssessmentRecord, error) {
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedMetricsTable := quoteTableName(customerMetricsTable, as.backend)
	quotedPredictionsTable := quoteTableName(churnPredictionsTable, as.backend)
	query := fmt.Sprintf(`
		SELECT m.run_id, m.customer_id, m.assessment_time,
			m.trend_risk, m.decline_risk, m.inactivity_risk, m.volatility_risk,
			m.churn_risk_score, m.risk_level, m.clv, m.discount_pct, m.discount_cost,
			m.retention_roi, m.priority, m.action,
			p.predicted_date, p.days_until, p.cycle_days
		FROM %s m
		LEFT JOIN %s p ON p.run_id = m.run_id AND p.customer_id = m.customer_id
		ORDER BY m.run_id ASC, m.customer_id ASC`, quotedMetricsTable, quotedPredictionsTable)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.AssessmentRecord
	for rows.Next() {
		var rec schema.AssessmentRecord

		if as.backend == schema.SQLiteBackend {
			var assessedStr string
			var predictedStr *string
			if err := rows.Scan(&rec.RunID, &rec.CustomerID, &assessedStr,
				&rec.TrendRisk, &rec.DeclineRisk, &rec.InactivityRisk, &rec.VolatilityRisk,
				&rec.Score, &rec.Level, &rec.CLV, &rec.DiscountPct, &rec.DiscountCost,
				&rec.RetentionROI, &rec.Priority, &rec.Action,
				&predictedStr, &rec.DaysUntil, &rec.CycleDays); err != nil {
				return nil, fmt.Errorf("failed to scan assessment: %w", err)
			}
			rec.AssessmentTime, err = time.Parse(time.RFC3339Nano, assessedStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse assessment_time: %w", err)
			}
			if predictedStr != nil {
				predicted, err := time.Parse(time.RFC3339Nano, *predictedStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse predicted_date: %w", err)
				}
				rec.PredictedDate = &predicted
			}
		} else {
			if err := rows.Scan(&rec.RunID, &rec.CustomerID, &rec.AssessmentTime,
				&rec.TrendRisk, &rec.DeclineRisk, &rec.InactivityRisk, &rec.VolatilityRisk,
				&rec.Score, &rec.Level, &rec.CLV, &rec.DiscountPct, &rec.DiscountCost,
				&rec.RetentionROI, &rec.Priority, &rec.Action,
				&rec.PredictedDate, &rec.DaysUntil, &rec.CycleDays); err != nil {
				return nil, fmt.Errorf("failed to scan assessment: %w", err)
			}
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	return records, nil
}

// ExecuteRunsExport performs the actual export of run data to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	assessmentStore := Manager.GetAssessmentStore()
	if assessmentStore == nil {
		return errors.New("run tracking is disabled, nothing to export")
	}

	// Check if there's any data to export
	status, err := assessmentStore.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total assessment rows: %d\n", status.TableSizes[customerMetricsTable])

	runs, err := assessmentStore.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	assessments, err := assessmentStore.GetAllAssessments()
	if err != nil {
		return fmt.Errorf("failed to retrieve assessments: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertAnalysisRunRecords(runs)
	parquetAssessments := parquet.ConvertAssessmentRecords(assessments)

	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	assessmentsFile := outputFile + ".customer_assessments.parquet"
	if err := parquet.WriteCustomerAssessmentsParquet(parquetAssessments, assessmentsFile); err != nil {
		return fmt.Errorf("failed to write customer assessments: %w", err)
	}
	fmt.Printf("Exported %d assessment rows to: %s\n", len(parquetAssessments), assessmentsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
