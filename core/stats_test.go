package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMean tests the arithmetic mean helper.
func TestMean(t *testing.T) {
	assert.InDelta(t, 0.0, mean(nil), 0.001)
	assert.InDelta(t, 2.0, mean([]float64{1, 2, 3}), 0.001)
	assert.InDelta(t, -1.0, mean([]float64{-2, 0}), 0.001)
}

// TestPopStdDev tests the population standard deviation helper.
func TestPopStdDev(t *testing.T) {
	assert.InDelta(t, 0.0, popStdDev(nil), 0.001)
	assert.InDelta(t, 0.0, popStdDev([]float64{5, 5, 5}), 0.001)
	assert.InDelta(t, 500.0, popStdDev([]float64{0, 1000}), 0.001)
	assert.InDelta(t, 2.0, popStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 0.001)
}

// TestMedian tests the median helper and confirms the input stays untouched.
func TestMedian(t *testing.T) {
	assert.InDelta(t, 0.0, median(nil), 0.001)
	assert.InDelta(t, 3.0, median([]float64{3}), 0.001)
	assert.InDelta(t, 15.0, median([]float64{10, 20}), 0.001)
	assert.InDelta(t, 10.0, median([]float64{30, 10, 5}), 0.001)

	values := []float64{9, 1, 5}
	_ = median(values)
	assert.Equal(t, []float64{9, 1, 5}, values, "median must not reorder its input")
}

// TestOlsSlope tests the least-squares slope helper.
func TestOlsSlope(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"too short", []float64{42}, 0.0},
		{"flat", []float64{7, 7, 7, 7}, 0.0},
		{"unit slope", []float64{0, 1, 2, 3}, 1.0},
		{"negative slope", []float64{600, 500, 400, 300, 200, 100}, -100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, olsSlope(tt.values), 0.001)
		})
	}
}

// TestClamp tests the range clamp helper.
func TestClamp(t *testing.T) {
	assert.InDelta(t, 0.0, clamp(-5, 0, 100), 0.001)
	assert.InDelta(t, 100.0, clamp(250, 0, 100), 0.001)
	assert.InDelta(t, 42.0, clamp(42, 0, 100), 0.001)
}
