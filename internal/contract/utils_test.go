package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retainly/churnscope/schema"
)

// TestTruncateID tests the customer ID truncation for narrow terminals.
func TestTruncateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		maxWidth int
		expected string
	}{
		{"short id passes through", "ACME-001", 20, "ACME-001"},
		{"long id gets suffix ellipsis", "VERY-LONG-CUSTOMER-IDENTIFIER", 12, "VERY-LONG..."},
		{"exact width passes through", "ABCDEFGH", 8, "ABCDEFGH"},
		{"tiny width passes through", "ABCDEFGH", 3, "ABCDEFGH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateID(tt.id, tt.maxWidth))
		})
	}
}

// TestParseBoolString tests accepted and rejected boolean spellings.
func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "YES", "true", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// TestGetColorLevelLabel ensures every level renders its text regardless
// of color handling.
func TestGetColorLevelLabel(t *testing.T) {
	for _, level := range []schema.RiskLevel{schema.HighRisk, schema.MediumRisk, schema.LowRisk} {
		label := GetColorLevelLabel(level)
		assert.True(t, strings.Contains(label, string(level)), "label %q should contain %q", label, level)
	}
}

// TestGetColorPriorityLabel ensures every priority renders its text.
func TestGetColorPriorityLabel(t *testing.T) {
	for _, p := range []schema.Priority{schema.CriticalPriority, schema.HighPriority, schema.MediumPriority, schema.LowPriority} {
		label := GetColorPriorityLabel(p)
		assert.True(t, strings.Contains(label, string(p)), "label %q should contain %q", label, p)
	}
}

// TestGetAssessmentDBFilePath confirms the default store path lands in
// the home directory.
func TestGetAssessmentDBFilePath(t *testing.T) {
	path := GetAssessmentDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".churnscope.db"))
}
