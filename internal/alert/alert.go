// Package alert renders churn risk alerts and delivers them over SMTP
// or the console.
package alert

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"
)

// TopAccountCount is how many at-risk accounts an alert highlights.
const TopAccountCount = 5

// alertData feeds the HTML template.
type alertData struct {
	Generated       string
	TotalHighRisk   int
	RevenueAtRisk   float64
	TotalActionCost float64
	Accounts        []accountData
}

type accountData struct {
	CustomerID  string
	Score       string
	Level       string
	CLV         string
	DiscountPct int
	DaysUntil   string
	Action      string
}

var alertTemplate = template.Must(template.New("alert").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
<h2>Churn Risk Alert</h2>
<p>Generated {{.Generated}}</p>
<p>
<b>{{.TotalHighRisk}}</b> high-risk customers.
Revenue at risk: <b>${{printf "%.2f" .RevenueAtRisk}}</b>.
Total retention discount cost: <b>${{printf "%.2f" .TotalActionCost}}</b>.
</p>
{{range .Accounts}}
<div style="border: 1px solid #ccc; padding: 8px; margin-bottom: 8px;">
<h3>{{.CustomerID}}</h3>
<ul>
<li>Risk score: {{.Score}} ({{.Level}})</li>
<li>Lifetime value: ${{.CLV}}</li>
<li>Recommended discount: {{.DiscountPct}}%</li>
<li>Days until expected churn: {{.DaysUntil}}</li>
</ul>
<p><b>Action:</b> {{.Action}}</p>
</div>
{{end}}
</body>
</html>
`))

// Build renders the alert subject and HTML body from the top at-risk
// accounts, sorted by lifetime value upstream. Returns ok=false when
// there is nothing worth alerting on.
func Build(topAtRisk []schema.RiskAssessment, summary schema.PortfolioSummary, now time.Time) (subject, htmlBody string, ok bool, err error) {
	if len(topAtRisk) == 0 {
		return "", "", false, nil
	}

	data := alertData{
		Generated:     now.Format("2006-01-02 15:04"),
		TotalHighRisk: summary.HighRiskCount,
		RevenueAtRisk: summary.HighRiskCLV,
	}

	for _, a := range topAtRisk {
		data.TotalActionCost += a.DiscountCost

		days := "unknown"
		if a.Prediction != nil {
			days = fmt.Sprintf("%d", a.Prediction.DaysUntil)
		}
		data.Accounts = append(data.Accounts, accountData{
			CustomerID:  a.CustomerID,
			Score:       fmt.Sprintf("%.1f", a.Score),
			Level:       string(a.Level),
			CLV:         fmt.Sprintf("%.2f", a.CLV),
			DiscountPct: a.DiscountPct,
			DaysUntil:   days,
			Action:      a.Action,
		})
	}

	var body strings.Builder
	if err := alertTemplate.Execute(&body, data); err != nil {
		return "", "", false, fmt.Errorf("failed to render alert template: %w", err)
	}

	subject = fmt.Sprintf("Churn Risk Alert: %d high-risk customers, $%.0f at risk",
		summary.HighRiskCount, summary.HighRiskCLV)
	return subject, body.String(), true, nil
}

// NewSender picks the delivery mechanism from the config. Without an
// SMTP host, or in dry-run mode, alerts go to the console so the command
// stays usable in development.
func NewSender(cfg *contract.Config) contract.AlertSender {
	if cfg.DryRun || cfg.SMTPHost == "" {
		return &ConsoleSender{}
	}
	return &SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.AlertFrom,
	}
}
