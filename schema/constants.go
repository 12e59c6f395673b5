package schema

// Custom string types for type safety.
type (
	// RiskLevel represents the categorical churn risk bucket for a customer.
	RiskLevel string

	// Priority represents the retention priority tier for a customer.
	Priority string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// ActionStatus represents the lifecycle state of a retention action.
	ActionStatus string
)

// All risk levels supported.
const (
	LowRisk    RiskLevel = "Low Risk"
	MediumRisk RiskLevel = "Medium Risk"
	HighRisk   RiskLevel = "High Risk"
)

// All retention priorities supported.
const (
	CriticalPriority Priority = "CRITICAL"
	HighPriority     Priority = "HIGH"
	MediumPriority   Priority = "MEDIUM"
	LowPriority      Priority = "LOW"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All retention action statuses supported.
const (
	PendingStatus   ActionStatus = "pending"
	CompletedStatus ActionStatus = "completed"
)

// Sub-score weights for the composite churn risk score.
// These are fixed model constants, not user-tunable knobs.
const (
	WeightTrend      = 0.35
	WeightDecline    = 0.35
	WeightInactivity = 0.20
	WeightVolatility = 0.10
)

// Default risk level thresholds. Scores at or above a threshold
// fall into that level.
const (
	DefaultHighThreshold   = 70.0
	DefaultMediumThreshold = 45.0
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// LevelFor maps a churn risk score to its categorical level given
// the configured thresholds. Boundary scores belong to the higher level.
func LevelFor(score, highThreshold, mediumThreshold float64) RiskLevel {
	switch {
	case score >= highThreshold:
		return HighRisk
	case score >= mediumThreshold:
		return MediumRisk
	default:
		return LowRisk
	}
}
