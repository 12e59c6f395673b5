package core

import "github.com/retainly/churnscope/schema"

// computeRiskScore combines the four sub-scores into the composite
// churn risk score using the fixed model weights.
func computeRiskScore(trend, decline, inactivity, volatility float64) float64 {
	raw := schema.WeightTrend*trend +
		schema.WeightDecline*decline +
		schema.WeightInactivity*inactivity +
		schema.WeightVolatility*volatility
	return clamp(raw, 0, 100)
}
