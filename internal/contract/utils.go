package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/retainly/churnscope/schema"
)

// DateFormat is the display format for dates in tables and CSV output.
const DateFormat = "2006-01-02"

// Color variables for console output.
var (
	HighRiskColor   = color.New(color.FgRed, color.Bold) // highRiskColor represents standard danger.
	MediumRiskColor = color.New(color.FgYellow)          // mediumRiskColor represents standard caution, not bold.
	LowRiskColor    = color.New(color.FgCyan)            // lowRiskColor represents informational signal.

	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor flags accounts needing same-day attention.
	PriorityColor = color.New(color.FgMagenta, color.Bold) // priorityColor represents strong, distinct warning.
)

// GetColorLevelLabel returns a colored risk level label for console
// output. Plain string output paths use the level value directly.
func GetColorLevelLabel(level schema.RiskLevel) string {
	switch level {
	case schema.HighRisk:
		return HighRiskColor.Sprint(string(level))
	case schema.MediumRisk:
		return MediumRiskColor.Sprint(string(level))
	default:
		return LowRiskColor.Sprint(string(level))
	}
}

// GetColorPriorityLabel returns a colored priority label for console output.
func GetColorPriorityLabel(priority schema.Priority) string {
	switch priority {
	case schema.CriticalPriority:
		return CriticalColor.Sprint(string(priority))
	case schema.HighPriority:
		return PriorityColor.Sprint(string(priority))
	case schema.MediumPriority:
		return MediumRiskColor.Sprint(string(priority))
	default:
		return LowRiskColor.Sprint(string(priority))
	}
}

// SelectOutputFile returns the appropriate file handle for output,
// based on the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetAssessmentDBFilePath returns the path to the SQLite DB file for run storage.
func GetAssessmentDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".churnscope.db"
	}
	return filepath.Join(homeDir, ".churnscope.db")
}

// TruncateID truncates a customer ID to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and content.
func TruncateID(id string, maxWidth int) string {
	runes := []rune(id)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return id
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
