package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retainly/churnscope/internal/contract"
	mcp_internal "github.com/retainly/churnscope/internal/mcp"
)

func TestMCPServerHandlers_Errors(t *testing.T) {
	baseCfg := &contract.Config{
		Workers:     2,
		ResultLimit: 10,
	}

	// Create a nil manager; these tests fail before run tracking happens
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("analyze_customers invalid as_of", func(t *testing.T) {
		tool := s.GetTool("analyze_customers")
		require.NotNil(t, tool, "Tool analyze_customers should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "analyze_customers",
				Arguments: map[string]any{
					"as_of": "June 15, 2024", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid analysis parameters")
	})

	t.Run("get_portfolio_summary missing input file", func(t *testing.T) {
		tool := s.GetTool("get_portfolio_summary")
		require.NotNil(t, tool, "Tool get_portfolio_summary should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_portfolio_summary",
				Arguments: map[string]any{
					"input_path": "/nonexistent/customers.json",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})

	t.Run("get_high_risk_customers missing input file", func(t *testing.T) {
		tool := s.GetTool("get_high_risk_customers")
		require.NotNil(t, tool, "Tool get_high_risk_customers should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_high_risk_customers",
				Arguments: map[string]any{
					"input_path": "/nonexistent/customers.csv",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}
