package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/cmd/mcp/tools"
	"github.com/elC0mpa/vm-doctor/utils"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	s := server.NewMCPServer(
		"vm-doctor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterGCPTools(s, cfg, logger)
	tools.RegisterAWSTools(s, cfg, logger)

	logger.Info("serving MCP over stdio", zap.String("project", cfg.ProjectID()), zap.String("region", cfg.Region))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
