package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/model"
	"github.com/elC0mpa/vm-doctor/service/engine"
	"github.com/elC0mpa/vm-doctor/service/metrics"
	"github.com/elC0mpa/vm-doctor/service/notifier"
	"github.com/elC0mpa/vm-doctor/service/pricing"
	"github.com/elC0mpa/vm-doctor/service/provider"
	"github.com/elC0mpa/vm-doctor/service/report"
	"github.com/elC0mpa/vm-doctor/utils"
)

func NewService(flags model.Flags, logger *zap.Logger, out io.Writer, opts ...Option) *service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		flags:       flags,
		logger:      logger,
		out:         out,
		newProvider: provider.New,
		notifier:    notifier.NewService(notifier.DefaultEndpoint, flags.SendGridAPIKey, flags.FromEmail, flags.AdminEmail, logger),
		metrics:     metrics.NewService(flags.PushgatewayURL, metrics.DefaultJob),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one decision run and returns its report without rendering it
func (s *service) Run(ctx context.Context) (*model.Report, error) {
	prices, err := pricing.LoadFile(s.flags.PriceTableFile)
	if err != nil {
		return nil, err
	}

	bundle, err := s.newProvider(ctx, s.flags, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure %s provider: %w", s.flags.Provider, err)
	}
	defer func() {
		if err := bundle.Close(); err != nil {
			s.logger.Warn("failed to close provider clients", zap.Error(err))
		}
	}()

	engineService, err := engine.NewService(s.flags.Run, bundle.Provider, prices, s.logger)
	if err != nil {
		return nil, err
	}

	return engineService.Run(ctx)
}

// Orchestrate runs, renders the report and delivers it. Delivery failures are
// logged and do not fail the run.
func (s *service) Orchestrate(ctx context.Context) error {
	r, err := s.Run(ctx)
	utils.StopSpinner()
	if err != nil {
		return err
	}

	if err := s.render(r); err != nil {
		return err
	}

	if err := s.notifier.Notify(ctx, r); err != nil {
		s.logger.Error("failed to deliver report", zap.Error(err))
	}

	if err := s.metrics.Push(ctx, r); err != nil {
		s.logger.Error("failed to push run metrics", zap.Error(err))
	}

	return nil
}

func (s *service) render(r *model.Report) error {
	if s.flags.Output == "json" {
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}

	utils.DrawReportTable(s.out, r)
	if s.flags.Chart {
		utils.DrawIdleCostChart(s.out, report.IdleEntries(r))
	}
	return nil
}
