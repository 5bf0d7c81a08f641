package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/salespulse/salespulse/core"
	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// cloneForTool copies the base config and applies the shared tool parameters.
// JSON output keeps the run banner out of the tool transcript.
func (h *toolHandler) cloneForTool(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	cfg.Output = schema.JSONOut
	if d := request.GetString("dataset", ""); d != "" {
		cfg.DataFile = d
		cfg.SourceDSN = ""
	}
	return cfg
}

func (h *toolHandler) handleSegmentCustomers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.cloneForTool(request)
	if b := request.GetInt("buckets", 0); b > 0 {
		cfg.Buckets = b
	}
	if f := request.GetString("frequency", ""); f != "" {
		cfg.FrequencyBasis = schema.FrequencyBasis(f)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	report, err := core.GetAnalyticsReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	customers := report.Customers
	if cfg.ResultLimit > 0 && len(customers) > cfg.ResultLimit {
		customers = customers[:cfg.ResultLimit]
	}
	jsonData, _ := json.MarshalIndent(customers, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.cloneForTool(request)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	report, err := core.GetAnalyticsReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	products := report.Products
	if cfg.ResultLimit > 0 && len(products) > cfg.ResultLimit {
		products = products[:cfg.ResultLimit]
	}
	jsonData, _ := json.MarshalIndent(products, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleForecastRevenue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.cloneForTool(request)
	if g := request.GetString("granularity", ""); g != "" {
		cfg.Granularity = schema.Granularity(g)
		cfg.SeasonalPeriod = schema.SeasonalPeriods[cfg.Granularity]
	}
	if hz := request.GetInt("horizon", 0); hz > 0 {
		cfg.Horizon = hz
	}
	if c := request.GetFloat("confidence", 0); c > 0 && c < 1 {
		cfg.Confidence = c
	}

	report, err := core.GetAnalyticsReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.Forecast, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.cloneForTool(request)
	if g := request.GetString("granularity", ""); g != "" {
		cfg.Granularity = schema.Granularity(g)
		cfg.SeasonalPeriod = schema.SeasonalPeriods[cfg.Granularity]
	}

	report, err := core.GetAnalyticsReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
