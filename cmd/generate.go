package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/internal/dataio"
)

// generateCmd writes a synthetic transaction dataset to disk.
var generateCmd = &cobra.Command{
	Use:   "generate <output-path>",
	Short: "Generate a synthetic transaction dataset for testing.",
	Long: `Write a reproducible synthetic B2B transaction dataset.

A configurable fraction of generated customers exhibit churn behavior:
their spending declines progressively starting midway through the
period. The rest purchase steadily. The same seed always produces the
same dataset, so generated files are safe to use in tests and demos.

The output format follows the file extension (.json or .csv).

Examples:
  # Default dataset: 50 customers, 12 months, 30% churners
  churnscope generate sample.json

  # Larger dataset with a different seed
  churnscope generate sample.csv --customers 200 --months 24 --seed 7

  # Generate, then analyze
  churnscope generate sample.json
  churnscope analyze sample.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		outputPath := args[0]

		var count int
		var err error
		switch strings.ToLower(filepath.Ext(outputPath)) {
		case ".json":
			count, err = dataio.WriteSampleJSON(cfg, outputPath)
		case ".csv":
			count, err = dataio.WriteSampleCSV(cfg, outputPath)
		default:
			contract.LogFatal("Cannot generate dataset", fmt.Errorf("unsupported output extension %q (expected .json or .csv)", filepath.Ext(outputPath)))
		}
		if err != nil {
			contract.LogFatal("Cannot generate dataset", err)
		}

		fmt.Printf("Generated %d transactions for %d customers over %d months to %s\n",
			count, cfg.SampleCustomers, cfg.SampleMonths, outputPath)
	},
}
