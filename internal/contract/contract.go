// Package contract has interfaces and configs shared across churnscope.
package contract

import (
	"time"

	"github.com/retainly/churnscope/schema"
)

// AssessmentStore tracks analysis runs and their per-customer results.
type AssessmentStore interface {
	// BeginRun creates a new analysis run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the analysis run with completion data.
	EndRun(runID int64, endTime time.Time, totalCustomers int) error

	// RecordAssessments stores the assessments produced by a run, including
	// churn predictions and pending retention actions.
	RecordAssessments(runID int64, assessments []schema.RiskAssessment) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns retrieves all analysis runs from the store.
	GetAllRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllAssessments retrieves all recorded assessments from the store.
	GetAllAssessments() ([]schema.AssessmentRecord, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager provides access to the configured persistence stores.
type StoreManager interface {
	GetAssessmentStore() AssessmentStore
}

// AlertSender delivers a rendered risk alert to its recipients.
type AlertSender interface {
	Send(to []string, subject, htmlBody string) error
}
