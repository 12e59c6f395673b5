package cmd

import (
	"github.com/spf13/cobra"

	"github.com/retainly/churnscope/core"
	"github.com/retainly/churnscope/internal/contract"
)

// analyzeCmd performs the customer-level churn risk analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [input-path]",
	Short: "Show the top customers ranked by churn risk score.",
	Long: `Score every customer on transaction history and rank them by churn risk.

Each customer is scored on four signals, combined into a single
weighted 0-100 churn risk score:
- Trend: is spending trajectory heading down over time?
- Decline: has recent spending dropped against the historical baseline?
- Inactivity: how often are months at zero or near-zero spend?
- Volatility: how erratic is the spending pattern?

High scorers also get a projected churn date (from purchase cadence), a
five-year lifetime value, a recommended retention discount with its
expected ROI, and a concrete next action.

Accepts JSON or CSV transaction files. Without an input path, a
deterministic synthetic dataset is analyzed instead.

Examples:
  # Analyze a transaction export
  churnscope analyze transactions.json --limit 20

  # Pin the reference date for reproducible churn-date math
  churnscope analyze transactions.csv --as-of 2026-01-15

  # Tighten the risk bands
  churnscope analyze transactions.json --thresholds 'high:80,medium:50'

  # Export findings to CSV for tracking
  churnscope analyze transactions.json --output csv --output-file risks.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run churn analysis", err)
		}
	},
}
