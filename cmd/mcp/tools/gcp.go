package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/model"
)

// RegisterGCPTools registers all GCP tools with the MCP server
func RegisterGCPTools(s *server.MCPServer, flags model.Flags, logger *zap.Logger) {
	registerGCPTools(s, flags, liveRunner, logger)
}

func registerGCPTools(s *server.MCPServer, flags model.Flags, run runner, logger *zap.Logger) {
	// Idle report
	s.AddTool(
		mcp.NewTool("gcp_get_idle_report",
			append([]mcp.ToolOption{
				mcp.WithDescription("Classify running Compute Engine instances by CPU utilization and estimate their 24h cost. Never stops anything. Requires GCP_PROJECT; GCP_BILLING_ACCOUNT enables actual billing data."),
			}, decisionOptions()...)...,
		),
		makeIdleHandler(flags, "gcp", false, run, logger),
	)

	// Idle shutdown
	s.AddTool(
		mcp.NewTool("gcp_run_idle_shutdown",
			append([]mcp.ToolOption{
				mcp.WithDescription("Stop idle Compute Engine instances that carry the safety label (auto-shutdown=true by default). Runs as a dry run unless dry_run is false."),
				mcp.WithBoolean("dry_run",
					mcp.Description("Report decisions without stopping instances"),
					mcp.DefaultBool(true),
				),
			}, decisionOptions()...)...,
		),
		makeIdleHandler(flags, "gcp", true, run, logger),
	)
}
