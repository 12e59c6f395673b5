// Package cmd defines the command-line interface for churnscope.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(alertCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width for table output (0 = auto-detect)")
	rootCmd.PersistentFlags().String("as-of", "", "Reference date for churn-date math (YYYY-MM-DD, defaults to today)")
	rootCmd.PersistentFlags().String("thresholds", "", "Risk level thresholds (format: 'high:70,medium:45')")
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Run store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of alertCmd to Viper
	alertCmd.Flags().String("alert-to", "", "Comma-separated alert recipient addresses")
	alertCmd.Flags().String("alert-from", "", "Alert sender address")
	alertCmd.Flags().String("smtp-host", "", "SMTP server host (console preview when empty)")
	alertCmd.Flags().Int("smtp-port", contract.DefaultSMTPPort, "SMTP server port")
	alertCmd.Flags().String("smtp-user", "", "SMTP username")
	alertCmd.Flags().String("smtp-password", "", "SMTP password")
	alertCmd.Flags().Bool("dry-run", false, "Render the alert to stdout instead of sending it")
	if err := viper.BindPFlags(alertCmd.Flags()); err != nil {
		contract.LogFatal("Error binding alert flags", err)
	}

	// Bind all flags of generateCmd to Viper
	generateCmd.Flags().Int64("seed", contract.DefaultSampleSeed, "Random seed for reproducible datasets")
	generateCmd.Flags().Int("customers", contract.DefaultSampleCustomers, "Number of customers to generate")
	generateCmd.Flags().Int("months", contract.DefaultSampleMonths, "Number of months of history to generate")
	generateCmd.Flags().Float64("churn-rate", contract.DefaultSampleChurnRate, "Fraction of customers that exhibit churn behavior")
	if err := viper.BindPFlags(generateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding generate flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
