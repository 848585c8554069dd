package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/elC0mpa/vm-doctor/model"
	svc "github.com/elC0mpa/vm-doctor/service"
	"github.com/elC0mpa/vm-doctor/service/classifier"
	"github.com/elC0mpa/vm-doctor/service/costestimator"
	"github.com/elC0mpa/vm-doctor/service/report"
	"github.com/elC0mpa/vm-doctor/service/shutdownpolicy"
)

// ErrFleetEnumeration aborts a run: without the fleet there is nothing to report on
var ErrFleetEnumeration = errors.New("failed to enumerate fleet")

var errPanic = errors.New("panic")

func NewService(cfg model.RunConfig, provider svc.Provider, prices svc.PriceTable, logger *zap.Logger, opts ...Option) (*service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run configuration: %w", err)
	}
	if provider.Inventory == nil {
		return nil, fmt.Errorf("provider %q has no inventory service", provider.Name)
	}
	if provider.Metrics == nil {
		return nil, fmt.Errorf("provider %q has no metrics service", provider.Name)
	}
	if prices == nil {
		return nil, fmt.Errorf("a price table is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		cfg:        cfg,
		provider:   provider,
		estimator:  costestimator.NewService(prices),
		classifier: classifier.NewService(cfg),
		policy:     shutdownpolicy.NewService(cfg),
		reports:    report.NewService(),
		logger:     logger.With(zap.String("provider", provider.Name), zap.Bool("dry_run", cfg.DryRun)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Run implements EngineService. Only a failure to list the fleet is returned as an
// error; everything that goes wrong for a single VM ends up annotated in the report.
func (s *service) Run(ctx context.Context) (*model.Report, error) {
	now := s.now().UTC()
	meta := s.metadata(ctx, now)

	instances, err := s.provider.Inventory.ListRunningInstances(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFleetEnumeration, err)
	}

	s.logger.Info("scanning fleet", zap.Int("instances", len(instances)), zap.Int("lookback_hours", s.cfg.LookbackHours))

	entries := make([]model.ReportEntry, len(instances))
	s.forEach(ctx, len(instances), func(ctx context.Context, i int) {
		defer s.recoverEntry(&entries[i], instances[i])
		entries[i] = s.process(ctx, s.collect(ctx, instances[i], now))
	})

	return s.build(meta, entries), nil
}

// Process implements EngineService for inputs that were already collected
func (s *service) Process(ctx context.Context, meta model.RunMetadata, inputs []Input) *model.Report {
	entries := make([]model.ReportEntry, len(inputs))
	s.forEach(ctx, len(inputs), func(ctx context.Context, i int) {
		defer s.recoverEntry(&entries[i], inputs[i].Instance)
		entries[i] = s.process(ctx, inputs[i])
	})

	return s.build(meta, entries)
}

func (s *service) build(meta model.RunMetadata, entries []model.ReportEntry) *model.Report {
	r := s.reports.Build(meta, entries)
	s.logger.Info("run finished",
		zap.Int("scanned", r.Summary.TotalScanned),
		zap.Int("idle", r.Summary.ByStatus[model.StatusIdle]),
		zap.Int("stopped", r.Summary.Stopped),
		zap.Int("stop_failures", r.Summary.StopFailures),
		zap.Float64("potential_savings_24h", r.Summary.PotentialSavings),
	)
	return r
}

// forEach runs fn once per index with at most cfg.Concurrency calls in flight.
// Each call owns slot i of the caller's result slice, so no locking is needed.
func (s *service) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}

	_ = g.Wait()
}

func (s *service) metadata(ctx context.Context, now time.Time) model.RunMetadata {
	meta := model.RunMetadata{
		RunAt:    now,
		Provider: s.provider.Name,
		DryRun:   s.cfg.DryRun,
	}
	if s.provider.Identity == nil {
		return meta
	}

	info, err := s.provider.Identity.GetAccountInfo(ctx)
	if err != nil {
		s.logger.Warn("could not resolve account identity", zap.Error(err))
		return meta
	}
	meta.AccountID = info.AccountID
	meta.AccountName = info.AccountName
	return meta
}

// collect gathers metrics and billing for one VM, degrading to defaults on any failure
func (s *service) collect(ctx context.Context, instance model.Instance, now time.Time) Input {
	id := instance.VmIdentity
	start := now.Add(-s.cfg.Lookback())
	in := Input{Instance: instance}

	sample, err := s.utilization(ctx, id, start, now)

	switch {
	case err != nil:
		sample = model.NewUtilizationSample(id, 0, 0, start, now)
		in.Warnings = append(in.Warnings, dataUnavailable("metrics", timeoutDetail("metrics query", err, s.cfg.MetricsTimeout)))
		s.logFailure("metrics unavailable", err, instanceFields(id, zap.Error(err)))
	case !sample.HasData():
		in.Warnings = append(in.Warnings, dataUnavailable("metrics", "no data points in window"))
	}
	sample.VmIdentity = id
	in.Sample = sample

	var row *model.BillingRow
	if s.provider.Billing != nil {
		row, err = s.billingRow(ctx, id, now)
		if err != nil {
			row = nil
			in.Warnings = append(in.Warnings, dataUnavailable("billing", timeoutDetail("billing lookup", err, s.cfg.BillingTimeout)))
			s.logFailure("billing data unavailable", err, instanceFields(id, zap.Error(err)))
		}
	}

	cost, warnings := s.estimator.Estimate(instance, row, now)
	in.Cost = cost
	in.Warnings = append(in.Warnings, warnings...)

	return in
}

func (s *service) utilization(ctx context.Context, id model.VmIdentity, start, end time.Time) (sample model.UtilizationSample, err error) {
	defer recoverAsError(&err)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.MetricsTimeout)
	defer cancel()
	return s.provider.Metrics.GetUtilization(ctx, id, start, end)
}

func (s *service) billingRow(ctx context.Context, id model.VmIdentity, day time.Time) (row *model.BillingRow, err error) {
	defer recoverAsError(&err)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.BillingTimeout)
	defer cancel()
	return s.provider.Billing.GetInstanceCost(ctx, id, day)
}

func (s *service) stopInstance(ctx context.Context, id model.VmIdentity) (err error) {
	defer recoverAsError(&err)
	return s.provider.Stopper.StopInstance(ctx, id)
}

// recoverAsError turns a panicking collaborator into an ordinary per-VM error
func recoverAsError(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", errPanic, r)
	}
}

// recoverEntry is the last line of defence for a VM: if anything still panics, the
// VM is reported as Active with nothing attempted and the rest of the run goes on.
func (s *service) recoverEntry(entry *model.ReportEntry, instance model.Instance) {
	r := recover()
	if r == nil {
		return
	}

	id := instance.VmIdentity
	detail := fmt.Sprintf("%v: %v", errPanic, r)
	s.logger.Error("instance processing panicked", instanceFields(id, zap.String("panic", detail), zap.Stack("stack"))...)

	*entry = model.ReportEntry{
		Classification: model.VmClassification{
			VmIdentity:  id,
			Status:      model.StatusActive,
			Utilization: model.UtilizationSample{VmIdentity: id},
			Cost:        model.CostEstimate{VmIdentity: id},
		},
		Decision: model.ShutdownDecision{
			VmIdentity: id,
			Verdict:    model.VerdictSkip,
			Reason:     model.ReasonNotIdle,
			Outcome:    model.OutcomeNotAttempted,
		},
		MachineType: instance.MachineType,
		Labels:      instance.Labels,
		Warnings:    []model.Warning{dataUnavailable("engine", detail)},
	}
}

func (s *service) logFailure(msg string, err error, fields []zap.Field) {
	if errors.Is(err, errPanic) {
		s.logger.Error(msg, fields...)
		return
	}
	s.logger.Warn(msg, fields...)
}

// process classifies one VM, applies the shutdown policy and, when eligible, stops it
func (s *service) process(ctx context.Context, in Input) model.ReportEntry {
	id := in.Instance.VmIdentity
	in.Sample.VmIdentity = id
	in.Cost.VmIdentity = id

	classification := s.classifier.Classify(in.Sample, in.Cost)
	decision := s.policy.Decide(classification, in.Instance.Labels)

	fields := instanceFields(id,
		zap.String("status", string(classification.Status)),
		zap.Float64("utilization", classification.Utilization.Utilization),
		zap.Float64("cost_24h", classification.Cost.Cost24h),
	)

	switch decision.Reason {
	case model.ReasonNotIdle:
		s.logger.Debug("instance not idle", fields...)
	case model.ReasonMissingLabel:
		s.logger.Info("idle instance lacks safety label", append(fields, zap.String("label", s.cfg.SafetyLabelKey))...)
	case model.ReasonDryRun:
		s.logger.Info("dry run: would stop instance", fields...)
	}

	if decision.Verdict == model.VerdictStop && !s.cfg.DryRun {
		decision = s.stop(ctx, decision, fields)
	}

	return model.ReportEntry{
		Classification: classification,
		Decision:       decision,
		MachineType:    in.Instance.MachineType,
		Labels:         in.Instance.Labels,
		Warnings:       in.Warnings,
	}
}

func (s *service) stop(ctx context.Context, decision model.ShutdownDecision, fields []zap.Field) model.ShutdownDecision {
	if s.provider.Stopper == nil {
		decision.Outcome = model.OutcomeFailed
		decision.ErrorDetail = "no stop executor configured"
		s.logger.Error("cannot stop instance", fields...)
		return decision
	}

	if err := s.stopInstance(ctx, decision.VmIdentity); err != nil {
		decision.Outcome = model.OutcomeFailed
		decision.ErrorDetail = err.Error()
		s.logger.Error("failed to stop instance", append(fields, zap.Error(err))...)
		return decision
	}

	decision.Outcome = model.OutcomeSucceeded
	s.logger.Info("stopped instance", fields...)
	return decision
}

func dataUnavailable(source, detail string) model.Warning {
	return model.Warning{Kind: model.WarningDataUnavailable, Source: source, Detail: detail}
}

func timeoutDetail(what string, err error, timeout time.Duration) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s timed out after %s", what, timeout)
	case errors.Is(err, svc.ErrNoData):
		return "no data points in window"
	default:
		return err.Error()
	}
}

func instanceFields(id model.VmIdentity, extra ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.String("project", id.Project),
		zap.String("zone", id.Zone),
		zap.String("instance", id.Name),
		zap.String("instance_id", id.InstanceID),
	}, extra...)
}
