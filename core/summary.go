package core

import "github.com/retainly/churnscope/schema"

// Summarize aggregates a full assessment collection into portfolio
// figures: per-level counts, mean score, and the lifetime value tied up
// in high-risk accounts.
func Summarize(assessments []schema.RiskAssessment) schema.PortfolioSummary {
	summary := schema.PortfolioSummary{TotalCustomers: len(assessments)}

	var scoreSum float64
	for _, a := range assessments {
		scoreSum += a.Score
		switch a.Level {
		case schema.HighRisk:
			summary.HighRiskCount++
			summary.HighRiskCLV += a.CLV
		case schema.MediumRisk:
			summary.MediumRiskCount++
		default:
			summary.LowRiskCount++
		}
	}

	if summary.TotalCustomers > 0 {
		summary.MeanScore = scoreSum / float64(summary.TotalCustomers)
	}
	return summary
}
