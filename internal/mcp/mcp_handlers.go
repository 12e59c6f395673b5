package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/retainly/churnscope/core"
	"github.com/retainly/churnscope/internal/contract"
	"github.com/retainly/churnscope/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleAnalyzeCustomers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input_path", ""); p != "" {
		cfg.InputPath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if err := contract.RevalidateAsOf(cfg, request.GetString("as_of", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}

	ranked, summary, err := core.GetAssessmentResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	payload := struct {
		Customers []schema.RiskAssessment `json:"customers"`
		Summary   schema.PortfolioSummary `json:"summary"`
	}{Customers: ranked, Summary: summary}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHighRiskCustomers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input_path", ""); p != "" {
		cfg.InputPath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	topAtRisk, err := core.GetTopValueAtRisk(ctx, cfg, h.mgr, cfg.ResultLimit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(topAtRisk, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPortfolioSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input_path", ""); p != "" {
		cfg.InputPath = p
	}

	_, summary, err := core.GetAssessmentResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
