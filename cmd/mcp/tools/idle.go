package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/cmd/mcp/response"
	"github.com/elC0mpa/vm-doctor/model"
	"github.com/elC0mpa/vm-doctor/service/orchestrator"
)

// runner executes one decision run; tests swap it for a fake
type runner func(ctx context.Context, flags model.Flags, logger *zap.Logger) (*model.Report, error)

func liveRunner(ctx context.Context, flags model.Flags, logger *zap.Logger) (*model.Report, error) {
	return orchestrator.NewService(flags, logger, io.Discard).Run(ctx)
}

func decisionOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("idle_threshold",
			mcp.Description("CPU utilization fraction below which an instance is idle (default 0.05)"),
		),
		mcp.WithNumber("lookback_hours",
			mcp.Description("Metrics window in hours, 1 to 12 (default 1)"),
		),
	}
}

// applyArguments copies the per-call overrides onto flags
func applyArguments(flags model.Flags, request mcp.CallToolRequest, allowStop bool) (model.Flags, error) {
	flags.Run.IdleThreshold = request.GetFloat("idle_threshold", flags.Run.IdleThreshold)
	flags.Run.LookbackHours = request.GetInt("lookback_hours", flags.Run.LookbackHours)

	flags.Run.DryRun = true
	if allowStop {
		flags.Run.DryRun = request.GetBool("dry_run", true)
	}

	if err := flags.Run.Validate(); err != nil {
		return flags, err
	}
	return flags, nil
}

func makeIdleHandler(base model.Flags, providerName string, allowStop bool, run runner, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		flags := base
		flags.Provider = providerName

		flags, err := applyArguments(flags, request, allowStop)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		r, err := run(ctx, flags, logger.With(zap.String("tool", request.Params.Name)))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to run idle scan: %v", err)), nil
		}

		resp := response.ConvertReport(r)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
