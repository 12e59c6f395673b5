package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDashboard prints the executive summary: portfolio totals plus
// the highest-value at-risk accounts. Dispatches on the output format.
func WriteDashboard(summary schema.PortfolioSummary, topAtRisk []schema.RiskAssessment, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Summary   schema.PortfolioSummary `json:"summary"`
				TopAtRisk []schema.RiskAssessment `json:"top_at_risk"`
			}{summary, topAtRisk})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeSummaryCSV(csvWriter, summary, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardText(w, summary, topAtRisk, cfg, fmtFloat)
		}, "Wrote summary")
	}
}

func writeDashboardText(w io.Writer, summary schema.PortfolioSummary, topAtRisk []schema.RiskAssessment, cfg *contract.Config, fmtFloat func(float64) string) error {
	lines := []string{
		fmt.Sprintf("Total customers analyzed: %d", summary.TotalCustomers),
		fmt.Sprintf("High risk:   %d", summary.HighRiskCount),
		fmt.Sprintf("Medium risk: %d", summary.MediumRiskCount),
		fmt.Sprintf("Low risk:    %d", summary.LowRiskCount),
		fmt.Sprintf("Mean risk score: %s", fmtFloat(summary.MeanScore)),
		fmt.Sprintf("Revenue at risk (high-risk CLV): %s", fmtFloat(summary.HighRiskCLV)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(topAtRisk) == 0 {
		_, err := fmt.Fprintln(w, "\nNo high-risk customers found.")
		return err
	}

	if _, err := fmt.Fprintf(w, "\nTop at-risk accounts by lifetime value:\n"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Customer", "Score", "CLV", "Disc%", "ROI%", "Action"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, a := range topAtRisk {
		data = append(data, []string{
			a.CustomerID,
			fmtFloat(a.Score),
			fmtFloat(a.CLV),
			strconv.Itoa(a.DiscountPct),
			fmtFloat(a.RetentionROI),
			a.Action,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeSummaryCSV(w *csv.Writer, summary schema.PortfolioSummary, fmtFloat func(float64) string) error {
	if err := w.Write([]string{"total_customers", "high_risk", "medium_risk", "low_risk", "mean_risk_score", "high_risk_clv"}); err != nil {
		return err
	}
	return w.Write([]string{
		strconv.Itoa(summary.TotalCustomers),
		strconv.Itoa(summary.HighRiskCount),
		strconv.Itoa(summary.MediumRiskCount),
		strconv.Itoa(summary.LowRiskCount),
		fmtFloat(summary.MeanScore),
		fmtFloat(summary.HighRiskCLV),
	})
}
