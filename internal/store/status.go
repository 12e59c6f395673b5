package store

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/retainly/churnscope/schema"
)

// GetStatus returns summary information about the store contents.
func (as *AssessmentStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    as.backend,
		Connected:  false,
		TableSizes: make(map[string]int64),
	}

	if as.backend == schema.NoneBackend || as.db == nil {
		return status, nil
	}

	if err := as.db.Ping(); err != nil {
		return status, fmt.Errorf("database ping failed: %w", err)
	}
	status.Connected = true

	for _, table := range []string{analysisRunsTable, customerMetricsTable, churnPredictionsTable, retentionActionsTable} {
		quotedTableName := quoteTableName(table, as.backend)
		var count int64
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quotedTableName)
		if err := as.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalRuns = status.TableSizes[analysisRunsTable]

	if status.TotalRuns == 0 {
		return status, nil
	}

	quotedRunsTable := quoteTableName(analysisRunsTable, as.backend)

	// Latest run
	row := as.db.QueryRow(fmt.Sprintf(`SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1`, quotedRunsTable))
	lastRunTime, err := scanRunIDAndTime(row, as.backend, &status.LastRunID)
	if err != nil {
		return status, fmt.Errorf("failed to read latest run: %w", err)
	}
	status.LastRunTime = lastRunTime

	// Oldest run
	var oldestRunID int64
	row = as.db.QueryRow(fmt.Sprintf(`SELECT run_id, start_time FROM %s ORDER BY run_id ASC LIMIT 1`, quotedRunsTable))
	oldestRunTime, err := scanRunIDAndTime(row, as.backend, &oldestRunID)
	if err != nil {
		return status, fmt.Errorf("failed to read oldest run: %w", err)
	}
	status.OldestRunTime = oldestRunTime

	// Distinct customers ever assessed
	quotedMetricsTable := quoteTableName(customerMetricsTable, as.backend)
	query := fmt.Sprintf(`SELECT COUNT(DISTINCT customer_id) FROM %s`, quotedMetricsTable)
	if err := as.db.QueryRow(query).Scan(&status.TotalCustomers); err != nil {
		return status, fmt.Errorf("failed to count customers: %w", err)
	}

	return status, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRunIDAndTime scans a (run_id, start_time) pair, decoding the
// time according to the backend's storage format.
func scanRunIDAndTime(row rowScanner, backend schema.DatabaseBackend, runID *int64) (time.Time, error) {
	if backend == schema.SQLiteBackend {
		var timeStr string
		if err := row.Scan(runID, &timeStr); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, timeStr)
	}
	var t time.Time
	if err := row.Scan(runID, &t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// PrintStoreStatus renders the store status as a table on stdout.
func PrintStoreStatus(status schema.StoreStatus) error {
	fmt.Printf("Backend: %s\n", status.Backend)
	if !status.Connected {
		fmt.Println("Status: not connected")
		return nil
	}
	fmt.Println("Status: connected")

	if status.TotalRuns > 0 {
		fmt.Printf("Runs recorded: %d (latest run %d at %s)\n",
			status.TotalRuns, status.LastRunID, status.LastRunTime.Format(time.RFC3339))
		fmt.Printf("Distinct customers assessed: %d\n", status.TotalCustomers)
	} else {
		fmt.Println("Runs recorded: 0")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Table", "Rows"})
	table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.Global = tw.AlignRight
	})
	for _, name := range []string{analysisRunsTable, customerMetricsTable, churnPredictionsTable, retentionActionsTable} {
		if err := table.Append([]string{name, fmt.Sprintf("%d", status.TableSizes[name])}); err != nil {
			return err
		}
	}
	return table.Render()
}
