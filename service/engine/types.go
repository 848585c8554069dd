package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/elC0mpa/vm-doctor/model"
	svc "github.com/elC0mpa/vm-doctor/service"
	"github.com/elC0mpa/vm-doctor/service/classifier"
	"github.com/elC0mpa/vm-doctor/service/costestimator"
	"github.com/elC0mpa/vm-doctor/service/report"
	"github.com/elC0mpa/vm-doctor/service/shutdownpolicy"
)

type service struct {
	cfg        model.RunConfig
	provider   svc.Provider
	estimator  costestimator.CostEstimatorService
	classifier classifier.ClassifierService
	policy     shutdownpolicy.ShutdownPolicyService
	reports    report.ReportService
	logger     *zap.Logger
	now        func() time.Time
}

type EngineService interface {
	Run(ctx context.Context) (*model.Report, error)
	Process(ctx context.Context, meta model.RunMetadata, inputs []Input) *model.Report
}

// Input is everything the engine needs to decide on one VM
type Input struct {
	Instance model.Instance
	Sample   model.UtilizationSample
	Cost     model.CostEstimate
	Warnings []model.Warning
}

type Option func(*service)

// WithClock replaces the wall clock used for the run timestamp and billing projection
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}
