package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/service/engine"
	"github.com/elC0mpa/vm-doctor/service/flag"
	"github.com/elC0mpa/vm-doctor/service/orchestrator"
	"github.com/elC0mpa/vm-doctor/utils"
)

func main() {
	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := utils.NewLogger(flags.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if flags.Output == "table" {
		utils.DrawBanner()
		utils.StartSpinner()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestratorService := orchestrator.NewService(flags, logger, os.Stdout)

	if err := orchestratorService.Orchestrate(ctx); err != nil {
		if errors.Is(err, engine.ErrFleetEnumeration) {
			logger.Error("run aborted", zap.Error(err))
		} else {
			logger.Error("run failed", zap.Error(err))
		}
		_ = logger.Sync()
		os.Exit(1)
	}
}
