// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/retainly/churnscope/internal/contract"
)

// NewMCPServer initializes and configures the ChurnScope MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"ChurnScope Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_customers ---
	s.AddTool(mcp.NewTool("analyze_customers",
		mcp.WithDescription("Score every customer in a transaction dataset for churn risk and rank them by risk."),
		mcp.WithString("input_path", mcp.Description("Path to a JSON or CSV transaction file (synthetic data is generated if not specified).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
		mcp.WithString("as_of", mcp.Description("Analysis reference date in YYYY-MM-DD format. Defaults to today.")),
	), h.handleAnalyzeCustomers)

	// --- 2. Tool: get_high_risk_customers ---
	s.AddTool(mcp.NewTool("get_high_risk_customers",
		mcp.WithDescription("Return only customers in the high risk band, ranked by customer lifetime value at risk."),
		mcp.WithString("input_path", mcp.Description("Path to a JSON or CSV transaction file.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetHighRiskCustomers)

	// --- 3. Tool: get_portfolio_summary ---
	s.AddTool(mcp.NewTool("get_portfolio_summary",
		mcp.WithDescription("Summarize churn risk across the whole customer portfolio."),
		mcp.WithString("input_path", mcp.Description("Path to a JSON or CSV transaction file.")),
	), h.handleGetPortfolioSummary)

	return s
}

// StartMCPServer starts the ChurnScope MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
