//go:build integration

// Package integration contains integration tests for churnscope.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyzeJSONVerification generates a synthetic dataset, runs an
// analysis in JSON mode, and checks the totals line up with the input.
func TestAnalyzeJSONVerification(t *testing.T) {
	tmpDir := t.TempDir()
	samplePath := filepath.Join(tmpDir, "sample.json")

	const customers = 25

	genCmd := exec.Command("./churnscope", "generate", samplePath,
		"--customers", "25", "--months", "10", "--churn-rate", "0.4")
	genCmd.Dir = ".."
	output, err := genCmd.CombinedOutput()
	require.NoError(t, err, "generate failed: %s", string(output))

	analyzeCmd := exec.Command("./churnscope", "analyze", samplePath,
		"--output", "json", "--limit", "100", "--db-backend", "none")
	analyzeCmd.Dir = ".."
	var stdout bytes.Buffer
	analyzeCmd.Stdout = &stdout
	err = analyzeCmd.Run()
	require.NoError(t, err)

	var payload struct {
		Customers []struct {
			Rank       int     `json:"rank"`
			CustomerID string  `json:"customer_id"`
			Score      float64 `json:"churn_risk_score"`
		} `json:"customers"`
		Summary struct {
			TotalCustomers  int `json:"total_customers"`
			HighRiskCount   int `json:"high_risk_count"`
			MediumRiskCount int `json:"medium_risk_count"`
			LowRiskCount    int `json:"low_risk_count"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &payload))

	// Every generated customer has enough history to be scored.
	assert.Equal(t, customers, payload.Summary.TotalCustomers)
	assert.Equal(t, customers,
		payload.Summary.HighRiskCount+payload.Summary.MediumRiskCount+payload.Summary.LowRiskCount)

	require.Len(t, payload.Customers, customers)
	for i, c := range payload.Customers {
		assert.Equal(t, i+1, c.Rank)
		assert.GreaterOrEqual(t, c.Score, 0.0)
		assert.LessOrEqual(t, c.Score, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, payload.Customers[i-1].Score, c.Score,
				"results should be ordered by descending score")
		}
	}
}
