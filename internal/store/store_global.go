package store

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"
)

// StoreManagerImpl holds the process-wide assessment store.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointer during initialization
	assessment   contract.AssessmentStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetAssessmentStore returns the AssessmentStore.
func (mgr *StoreManagerImpl) GetAssessmentStore() contract.AssessmentStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.assessment
}

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global store manager.
// backend can be empty to disable run tracking.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}

		assessmentStore, err := NewAssessmentStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize assessment store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.assessment = assessmentStore
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.assessment != nil {
			_ = Manager.assessment.Close()
		}
	})
}

// ClearAssessments removes all stored run data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the run tables.
// For NoneBackend, it does nothing.
func ClearAssessments(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearRunTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return clearRunTables("pgx", connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported database backend for clearing: %s", backend)
	}
}

// clearRunTables drops each run tracking table in turn.
func clearRunTables(driverName, connStr string) error {
	tables := []string{retentionActionsTable, churnPredictionsTable, customerMetricsTable, analysisRunsTable}
	for _, table := range tables {
		if err := clearSQLTable(driverName, connStr, table); err != nil {
			return err
		}
	}
	return nil
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
