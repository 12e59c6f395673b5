package cmd

import (
	"github.com/spf13/cobra"

	"github.com/retainly/churnscope/core"
	"github.com/retainly/churnscope/internal/contract"
)

// summaryCmd prints the executive portfolio dashboard.
var summaryCmd = &cobra.Command{
	Use:   "summary [input-path]",
	Short: "Show portfolio-wide churn risk at a glance.",
	Long: `Summarize churn risk across the whole customer portfolio.

Displays:
- Customer counts per risk band (high, medium, low)
- Mean churn risk score across the portfolio
- Total lifetime value concentrated in high-risk accounts
- The most valuable at-risk accounts with their recommended actions

Use this for the weekly account review rather than scanning the full
per-customer ranking.

Examples:
  # Portfolio dashboard from a transaction export
  churnscope summary transactions.json

  # Feed the numbers into a report
  churnscope summary transactions.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run portfolio summary", err)
		}
	},
}
