// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/salespulse/salespulse/internal/contract"
)

// NewMCPServer initializes and configures the SalesPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"SalesPulse Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: segment_customers ---
	s.AddTool(mcp.NewTool("segment_customers",
		mcp.WithDescription("Segment customers by recency, frequency and monetary value (RFM)."),
		mcp.WithString("dataset", mcp.Description("Path to the transaction CSV file (defaults to the configured dataset).")),
		mcp.WithNumber("buckets", mcp.Description("Quantile buckets per RFM dimension (2-10). Defaults to 5.")),
		mcp.WithString("frequency", mcp.Description("Frequency basis (orders, lines). Defaults to 'orders'."), mcp.Enum("orders", "lines")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of customers returned.")),
	), h.handleSegmentCustomers)

	// --- 2. Tool: classify_products ---
	s.AddTool(mcp.NewTool("classify_products",
		mcp.WithDescription("Classify products into ABC revenue tiers by cumulative revenue share."),
		mcp.WithString("dataset", mcp.Description("Path to the transaction CSV file.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of products returned.")),
	), h.handleClassifyProducts)

	// --- 3. Tool: forecast_revenue ---
	s.AddTool(mcp.NewTool("forecast_revenue",
		mcp.WithDescription("Forecast future revenue with an ensemble of trend and seasonal models."),
		mcp.WithString("dataset", mcp.Description("Path to the transaction CSV file.")),
		mcp.WithString("granularity", mcp.Description("Series granularity (day, week, month). Defaults to 'month'."), mcp.Enum("day", "week", "month")),
		mcp.WithNumber("horizon", mcp.Description("Number of future periods to forecast.")),
		mcp.WithNumber("confidence", mcp.Description("Confidence level for forecast bounds, e.g. 0.95.")),
	), h.handleForecastRevenue)

	// --- 4. Tool: get_report ---
	s.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Run the full analysis and return KPIs, segments, tiers, series and forecast."),
		mcp.WithString("dataset", mcp.Description("Path to the transaction CSV file.")),
		mcp.WithString("granularity", mcp.Description("Series granularity (day, week, month)."), mcp.Enum("day", "week", "month")),
	), h.handleGetReport)

	return s
}

// StartMCPServer starts the SalesPulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
