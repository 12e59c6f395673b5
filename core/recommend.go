package core

import (
	"fmt"

	"github.com/retainly/churnscope/schema"
)

// priorityFor maps the risk score and lifetime value to a retention
// priority tier. CRITICAL is reserved for very risky, very valuable
// accounts.
func priorityFor(score, clv float64) schema.Priority {
	switch {
	case score >= 85 && clv > criticalCLVFloor:
		return schema.CriticalPriority
	case score >= 70:
		return schema.HighPriority
	case score >= 55:
		return schema.MediumPriority
	default:
		return schema.LowPriority
	}
}

// actionFor produces the recommended retention action text. Rules are
// evaluated in order and the first match wins.
func actionFor(score float64, discountPct int, prediction *schema.ChurnPrediction) string {
	switch {
	case score >= 85 && prediction != nil && prediction.DaysUntil < 7:
		return fmt.Sprintf(
			"URGENT: Call today. Expected churn in %d days. Offer %d%% retention discount.",
			prediction.DaysUntil, discountPct)
	case score >= 85:
		return fmt.Sprintf(
			"Proactive outreach this week with a %d%% retention discount.", discountPct)
	case score >= 70:
		return fmt.Sprintf(
			"Send a personalized offer with a %d%% discount.", discountPct)
	case score >= 55:
		return fmt.Sprintf(
			"Monitor closely. Consider a %d%% loyalty discount.", discountPct)
	default:
		return "Continue standard engagement."
	}
}
