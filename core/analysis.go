package core

import (
	"sync"
	"time"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"
)

// AssessCustomer runs the full engine pipeline for a single customer.
// It returns false when the customer has fewer than two spend months,
// which excludes the customer from the output instead of erroring.
func AssessCustomer(history schema.CustomerHistory, cfg *contract.Config) (schema.RiskAssessment, bool) {
	spending := history.MonthlySpending
	if len(spending) < 2 {
		return schema.RiskAssessment{}, false
	}

	trend := trendRisk(spending)
	decline := declineRisk(spending)
	inactivity := inactivityRisk(spending)
	volatility := volatilityRisk(spending)
	score := computeRiskScore(trend, decline, inactivity, volatility)

	prediction := predictChurn(history.Transactions, cfg.AsOf)
	clv := projectCLV(history.AnnualSpending, trend)
	discountPct := recommendedDiscount(score)
	cost := discountCost(history.AnnualSpending, discountPct)

	return schema.RiskAssessment{
		CustomerID:     history.CustomerID,
		TrendRisk:      trend,
		DeclineRisk:    decline,
		InactivityRisk: inactivity,
		VolatilityRisk: volatility,
		Score:          score,
		Level:          schema.LevelFor(score, cfg.HighThreshold, cfg.MediumThreshold),
		Prediction:     prediction,
		CLV:            clv,
		DiscountPct:    discountPct,
		DiscountCost:   cost,
		RetentionROI:   retentionROI(clv, cost),
		Priority:       priorityFor(score, clv),
		Action:         actionFor(score, discountPct, prediction),
	}, true
}

// AnalyzeCustomers processes all customers in parallel using a worker pool.
// It spawns cfg.Workers goroutines and aggregates their results into a
// single assessment slice. Customers are independent, so no coordination
// beyond fan-out/fan-in is needed.
func AnalyzeCustomers(cfg *contract.Config, histories []schema.CustomerHistory) []schema.RiskAssessment {
	customerCh := make(chan schema.CustomerHistory, len(histories))
	resultCh := make(chan schema.RiskAssessment, len(histories))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for h := range customerCh {
				if assessment, ok := AssessCustomer(h, cfg); ok {
					resultCh <- assessment
				}
			}
		})
	}

	for _, h := range histories {
		customerCh <- h
	}
	close(customerCh)

	wg.Wait()
	close(resultCh)

	results := make([]schema.RiskAssessment, 0, len(histories))
	for r := range resultCh {
		results = append(results, r)
	}

	return results
}

// recordRun persists a completed analysis run. Store failures are
// warnings only; a broken database never blocks the report.
func recordRun(store contract.AssessmentStore, cfg *contract.Config, startTime time.Time, assessments []schema.RiskAssessment) {
	if store == nil {
		return
	}

	configParams := map[string]any{
		"input_path":       cfg.InputPath,
		"workers":          cfg.Workers,
		"result_limit":     cfg.ResultLimit,
		"high_threshold":   cfg.HighThreshold,
		"medium_threshold": cfg.MediumThreshold,
		"as_of":            cfg.AsOf.Format(time.RFC3339),
	}

	runID, err := store.BeginRun(startTime, configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}
	if runID == 0 {
		return
	}

	if err := store.RecordAssessments(runID, assessments); err != nil {
		contract.LogWarn("Failed to record assessments", err)
	}
	if err := store.EndRun(runID, time.Now(), len(assessments)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
