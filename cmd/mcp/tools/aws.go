package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/model"
)

// RegisterAWSTools registers all AWS tools with the MCP server
func RegisterAWSTools(s *server.MCPServer, flags model.Flags, logger *zap.Logger) {
	registerAWSTools(s, flags, liveRunner, logger)
}

func registerAWSTools(s *server.MCPServer, flags model.Flags, run runner, logger *zap.Logger) {
	// Idle report
	s.AddTool(
		mcp.NewTool("aws_get_idle_report",
			append([]mcp.ToolOption{
				mcp.WithDescription("Classify running EC2 instances by CPU utilization and estimate their 24h cost. Never stops anything. Uses AWS_REGION and AWS_PROFILE."),
			}, decisionOptions()...)...,
		),
		makeIdleHandler(flags, "aws", false, run, logger),
	)

	// Idle shutdown
	s.AddTool(
		mcp.NewTool("aws_run_idle_shutdown",
			append([]mcp.ToolOption{
				mcp.WithDescription("Stop idle EC2 instances tagged with the safety label (auto-shutdown=true by default). Runs as a dry run unless dry_run is false."),
				mcp.WithBoolean("dry_run",
					mcp.Description("Report decisions without stopping instances"),
					mcp.DefaultBool(true),
				),
			}, decisionOptions()...)...,
		),
		makeIdleHandler(flags, "aws", true, run, logger),
	)
}
