package cmd

import (
	"github.com/spf13/cobra"

	"github.com/retainly/churnscope/core"
	"github.com/retainly/churnscope/internal/alert"
	"github.com/retainly/churnscope/internal/contract"
)

// alertCmd delivers the churn risk email alert.
var alertCmd = &cobra.Command{
	Use:   "alert [input-path]",
	Short: "Email an alert for the most valuable at-risk accounts.",
	Long: `Run the analysis and deliver an HTML alert for the highest-value
accounts in the high risk band.

The alert lists each account's churn risk score, projected churn date,
lifetime value at risk, and the recommended retention action.

Delivery:
- With --smtp-host set, the alert is sent over SMTP to --alert-to.
- Without an SMTP host, or with --dry-run, the rendered alert is
  printed to stdout for review.

Examples:
  # Preview the alert without sending anything
  churnscope alert transactions.json --dry-run

  # Send for real
  churnscope alert transactions.json \
    --smtp-host smtp.example.com --smtp-user ops --smtp-password secret \
    --alert-from churnscope@example.com --alert-to am-team@example.com`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		sender := alert.NewSender(cfg)
		if err := core.ExecuteAlert(rootCtx, cfg, sender); err != nil {
			contract.LogFatal("Cannot deliver churn alert", err)
		}
	},
}
