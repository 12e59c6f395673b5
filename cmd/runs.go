package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/internal/store"
	"github.com/retainly/churnscope/schema"
)

// runsSetup loads minimal configuration needed for run store operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("db-backend")
	connStr := viper.GetString("db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := store.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("db-backend")
	connStr := viper.GetString("db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAssessmentDBFilePath()
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run data management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by analysis commands. This avoids input file
// validation and complex config processing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage historical run tracking and exports",
	Long: `Manage historical analysis run data used for trend tracking and reporting.

When enabled, ChurnScope tracks every analysis run, storing:
- Run metadata (timestamp, configuration, duration)
- Per-customer scores, risk levels and valuations
- Churn predictions and pending retention actions

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  churnscope runs status

  # Export for analysis in pandas/DuckDB
  churnscope runs export --output-file churn-data.parquet`,
}

// runsStatusCmd shows run store status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about historical run tracking.

Displays:
- Backend type and connection status
- Total number of analysis runs stored
- Last and oldest run timestamps
- Distinct customers assessed across all runs
- Database table sizes

Use this to:
- Verify run tracking is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check run tracking status
  churnscope runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.Manager.GetAssessmentStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		if err := store.PrintStoreStatus(status); err != nil {
			contract.LogFatal("Failed to print run status", err)
		}
	},
}

// runsExportCmd exports run data to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical data to Parquet for BI tools and analytics",
	Long: `Export all stored run data to Parquet format for use with analytics tools.

Exports two datasets:
- Analysis runs - metadata about each run execution
- Customer assessments - per-customer scores, valuations and predictions

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  churnscope runs export --output-file churn-data.parquet

  # Use with DuckDB for analysis
  churnscope runs export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.analysis_runs.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ExecuteRunsExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// runsClearCmd clears the run data.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical run tracking data",
	Long: `Delete all stored analysis runs and customer assessment history.

This removes:
- All run metadata
- Historical per-customer scores and valuations
- Churn predictions and retention action queues

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  churnscope runs export --output-file backup.parquet
  churnscope runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearAssessments(cfg.Backend, contract.GetAssessmentDBFilePath(), cfg.DBConnect); err != nil {
			contract.LogFatal("Failed to clear run data", err)
		}
		fmt.Println("Run data cleared successfully.")
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

Migrations allow:
- Upgrading to new schema versions when ChurnScope is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  churnscope runs migrate

  # Migrate to specific version
  churnscope runs migrate --target-version 2

  # Rollback to previous version
  churnscope runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateStore(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
