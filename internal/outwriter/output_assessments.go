package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAssessments outputs the analysis results, dispatching based on
// the output format configured.
func WriteAssessments(assessments []schema.RiskAssessment, summary schema.PortfolioSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentsJSON(w, assessments, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeAssessmentsCSV(csvWriter, assessments, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssessmentsTable(assessments, summary, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeAssessmentsTable generates and writes the human-readable table.
func writeAssessmentsTable(assessments []schema.RiskAssessment, summary schema.PortfolioSummary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Customer", "Score", "Level", "Trend", "Decline", "Inact", "Vol", "CLV", "Disc%", "Days", "Priority"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := getMaxTableIDWidth(cfg)

	var data [][]string
	for i, a := range assessments {
		level := string(a.Level)
		priority := string(a.Priority)
		if cfg.UseColor {
			level = contract.GetColorLevelLabel(a.Level)
			priority = contract.GetColorPriorityLabel(a.Priority)
		}

		days := "-"
		if a.Prediction != nil {
			days = strconv.Itoa(a.Prediction.DaysUntil)
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateID(a.CustomerID, idWidth),
			fmtFloat(a.Score),
			level,
			fmtFloat(a.TrendRisk),
			fmtFloat(a.DeclineRisk),
			fmtFloat(a.InactivityRisk),
			fmtFloat(a.VolatilityRisk),
			fmtFloat(a.CLV),
			strconv.Itoa(a.DiscountPct),
			days,
			priority,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d of %d customers (high: %d, medium: %d, low: %d)\n",
		len(assessments), summary.TotalCustomers, summary.HighRiskCount, summary.MediumRiskCount, summary.LowRiskCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n",
		duration, cfg.Workers, cfg.Backend); err != nil {
		return err
	}
	return nil
}

// writeAssessmentsCSV writes the analysis results in CSV format.
func writeAssessmentsCSV(w *csv.Writer, assessments []schema.RiskAssessment, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"customer_id",
		"churn_risk_score",
		"risk_level",
		"trend_risk",
		"decline_risk",
		"inactivity_risk",
		"volatility_risk",
		"clv",
		"recommended_discount_pct",
		"discount_cost",
		"retention_roi",
		"predicted_churn_date",
		"days_until_churn",
		"purchase_cycle_days",
		"priority",
		"action",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, a := range assessments {
		predictedDate, daysUntil, cycleDays := "", "", ""
		if a.Prediction != nil {
			predictedDate = a.Prediction.PredictedDate.Format(contract.DateFormat)
			daysUntil = fmt.Sprintf(intFmt, a.Prediction.DaysUntil)
			cycleDays = fmt.Sprintf(intFmt, a.Prediction.CycleDays)
		}

		rec := []string{
			strconv.Itoa(i + 1),
			a.CustomerID,
			fmtFloat(a.Score),
			string(a.Level),
			fmtFloat(a.TrendRisk),
			fmtFloat(a.DeclineRisk),
			fmtFloat(a.InactivityRisk),
			fmtFloat(a.VolatilityRisk),
			fmtFloat(a.CLV),
			fmt.Sprintf(intFmt, a.DiscountPct),
			fmtFloat(a.DiscountCost),
			fmtFloat(a.RetentionROI),
			predictedDate,
			daysUntil,
			cycleDays,
			string(a.Priority),
			a.Action,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeAssessmentsJSON writes the analysis results in JSON format,
// with rank added and the summary attached.
func writeAssessmentsJSON(w io.Writer, assessments []schema.RiskAssessment, summary schema.PortfolioSummary) error {
	type JSONAssessment struct {
		Rank int `json:"rank"`
		schema.RiskAssessment
	}

	ranked := make([]JSONAssessment, len(assessments))
	for i, a := range assessments {
		ranked[i] = JSONAssessment{Rank: i + 1, RiskAssessment: a}
	}

	output := struct {
		Customers []JSONAssessment        `json:"customers"`
		Summary   schema.PortfolioSummary `json:"summary"`
	}{
		Customers: ranked,
		Summary:   summary,
	}

	return writeJSON(w, output)
}
