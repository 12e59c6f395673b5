package core

import (
	"sort"

	"github.com/retainly/churnscope/schema"
)

// rankAssessments sorts assessments by risk score in descending order,
// breaking ties by customer ID, and returns the top 'limit' entries.
func rankAssessments(assessments []schema.RiskAssessment, limit int) []schema.RiskAssessment {
	sort.Slice(assessments, func(i, j int) bool {
		if assessments[i].Score != assessments[j].Score {
			return assessments[i].Score > assessments[j].Score
		}
		return assessments[i].CustomerID < assessments[j].CustomerID
	})
	if len(assessments) > limit {
		return assessments[:limit]
	}
	return assessments
}

// HighRiskAssessments filters the assessments down to the High Risk level.
func HighRiskAssessments(assessments []schema.RiskAssessment) []schema.RiskAssessment {
	var high []schema.RiskAssessment
	for _, a := range assessments {
		if a.Level == schema.HighRisk {
			high = append(high, a)
		}
	}
	return high
}

// TopByCLV returns the n high-risk assessments with the largest lifetime
// value, for alerting on the accounts with the most revenue at stake.
func TopByCLV(assessments []schema.RiskAssessment, n int) []schema.RiskAssessment {
	high := HighRiskAssessments(assessments)
	sort.Slice(high, func(i, j int) bool {
		if high[i].CLV != high[j].CLV {
			return high[i].CLV > high[j].CLV
		}
		return high[i].CustomerID < high[j].CustomerID
	})
	if len(high) > n {
		return high[:n]
	}
	return high
}
