package orchestrator

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/model"
	"github.com/elC0mpa/vm-doctor/service/metrics"
	"github.com/elC0mpa/vm-doctor/service/notifier"
	"github.com/elC0mpa/vm-doctor/service/provider"
)

// ProviderFactory builds the cloud provider for a run
type ProviderFactory func(ctx context.Context, flags model.Flags, logger *zap.Logger) (*provider.Bundle, error)

type service struct {
	flags       model.Flags
	logger      *zap.Logger
	out         io.Writer
	newProvider ProviderFactory
	notifier    notifier.NotifierService
	metrics     metrics.MetricsService
}

type OrchestratorService interface {
	Run(ctx context.Context) (*model.Report, error)
	Orchestrate(ctx context.Context) error
}

type Option func(*service)

// WithProviderFactory replaces the live cloud clients
func WithProviderFactory(f ProviderFactory) Option {
	return func(s *service) {
		s.newProvider = f
	}
}

func WithNotifier(n notifier.NotifierService) Option {
	return func(s *service) {
		s.notifier = n
	}
}

func WithMetrics(m metrics.MetricsService) Option {
	return func(s *service) {
		s.metrics = m
	}
}
