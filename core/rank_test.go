package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retainly/churnscope/schema"
)

// TestRankAssessments tests ordering, tie-breaking and the result limit.
func TestRankAssessments(t *testing.T) {
	assessments := []schema.RiskAssessment{
		{CustomerID: "B", Score: 80},
		{CustomerID: "A", Score: 80},
		{CustomerID: "C", Score: 95},
		{CustomerID: "D", Score: 40},
	}

	ranked := rankAssessments(assessments, 3)
	assert.Len(t, ranked, 3)
	assert.Equal(t, "C", ranked[0].CustomerID)
	assert.Equal(t, "A", ranked[1].CustomerID, "ties break on customer ID ascending")
	assert.Equal(t, "B", ranked[2].CustomerID)
}

// TestRankAssessmentsBelowLimit confirms short inputs pass through whole.
func TestRankAssessmentsBelowLimit(t *testing.T) {
	assessments := []schema.RiskAssessment{
		{CustomerID: "A", Score: 10},
		{CustomerID: "B", Score: 20},
	}
	ranked := rankAssessments(assessments, 10)
	assert.Len(t, ranked, 2)
	assert.Equal(t, "B", ranked[0].CustomerID)
}

// TestHighRiskAssessments tests the risk band filter.
func TestHighRiskAssessments(t *testing.T) {
	assessments := []schema.RiskAssessment{
		{CustomerID: "A", Level: schema.HighRisk},
		{CustomerID: "B", Level: schema.MediumRisk},
		{CustomerID: "C", Level: schema.LowRisk},
		{CustomerID: "D", Level: schema.HighRisk},
	}

	high := HighRiskAssessments(assessments)
	assert.Len(t, high, 2)
	for _, a := range high {
		assert.Equal(t, schema.HighRisk, a.Level)
	}
}

// TestTopByCLV tests the value-ranked high-risk slice used by alerts.
func TestTopByCLV(t *testing.T) {
	assessments := []schema.RiskAssessment{
		{CustomerID: "A", Level: schema.HighRisk, CLV: 50000},
		{CustomerID: "B", Level: schema.HighRisk, CLV: 250000},
		{CustomerID: "C", Level: schema.MediumRisk, CLV: 900000},
		{CustomerID: "D", Level: schema.HighRisk, CLV: 120000},
	}

	top := TopByCLV(assessments, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, "B", top[0].CustomerID)
	assert.Equal(t, "D", top[1].CustomerID)
}

// TestTopByCLVEmpty confirms no high-risk accounts yields an empty slice.
func TestTopByCLVEmpty(t *testing.T) {
	assessments := []schema.RiskAssessment{
		{CustomerID: "A", Level: schema.LowRisk, CLV: 900000},
	}
	assert.Empty(t, TopByCLV(assessments, 5))
}
