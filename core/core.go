// Package core has core logic for assessing, ranking and summarizing
// customer churn risk.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/retainly/churnscope/internal/alert"
	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/internal/dataio"
	"github.com/retainly/churnscope/internal/outwriter"
	"github.com/retainly/churnscope/schema"
)

// loadHistories resolves the customer input. Without an input path the
// deterministic sample dataset is used, so every command works out of
// the box.
func loadHistories(cfg *contract.Config) ([]schema.CustomerHistory, error) {
	if cfg.InputPath == "" {
		return dataio.GenerateSampleHistories(cfg), nil
	}
	return dataio.LoadCustomerHistories(cfg.InputPath)
}

// GetAssessmentResults loads the input, scores every customer, and
// returns the ranked assessments plus the portfolio summary. Shared by
// the CLI commands and the MCP tool handlers.
func GetAssessmentResults(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.RiskAssessment, schema.PortfolioSummary, error) {
	histories, err := loadHistories(cfg)
	if err != nil {
		return nil, schema.PortfolioSummary{}, err
	}

	startTime := time.Now()
	assessments := AnalyzeCustomers(cfg, histories)
	summary := Summarize(assessments)

	if mgr != nil {
		recordRun(mgr.GetAssessmentStore(), cfg, startTime, assessments)
	}

	ranked := rankAssessments(assessments, cfg.ResultLimit)
	return ranked, summary, nil
}

// GetTopValueAtRisk scores every customer and returns the n high-risk
// accounts with the most lifetime value at stake. The CLV ranking runs
// over the full assessment set, so a valuable account whose score
// falls below the result limit cutoff still surfaces.
func GetTopValueAtRisk(_ context.Context, cfg *contract.Config, mgr contract.StoreManager, n int) ([]schema.RiskAssessment, error) {
	histories, err := loadHistories(cfg)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	assessments := AnalyzeCustomers(cfg, histories)

	if mgr != nil {
		recordRun(mgr.GetAssessmentStore(), cfg, startTime, assessments)
	}

	return TopByCLV(assessments, n), nil
}

// ExecuteAnalyze runs the full analysis and prints ranked results.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	ranked, summary, err := GetAssessmentResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteAssessments(ranked, summary, cfg, duration)
}

// ExecuteSummary runs the analysis and prints the executive dashboard.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	histories, err := loadHistories(cfg)
	if err != nil {
		return err
	}

	startTime := time.Now()
	assessments := AnalyzeCustomers(cfg, histories)
	summary := Summarize(assessments)

	if mgr != nil {
		recordRun(mgr.GetAssessmentStore(), cfg, startTime, assessments)
	}

	topAtRisk := TopByCLV(assessments, cfg.ResultLimit)
	return outwriter.WriteDashboard(summary, topAtRisk, cfg)
}

// ExecuteAlert runs the analysis and delivers the churn risk alert for
// the most valuable at-risk accounts.
func ExecuteAlert(_ context.Context, cfg *contract.Config, sender contract.AlertSender) error {
	histories, err := loadHistories(cfg)
	if err != nil {
		return err
	}

	assessments := AnalyzeCustomers(cfg, histories)
	summary := Summarize(assessments)
	topAtRisk := TopByCLV(assessments, alert.TopAccountCount)

	subject, htmlBody, ok, err := alert.Build(topAtRisk, summary, cfg.AsOf)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No high-risk customers to alert on.")
		return nil
	}

	return sender.Send(cfg.AlertTo, subject, htmlBody)
}
