package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/elC0mpa/vm-doctor/model"
)

const DefaultJob = "vm_doctor"

// NewService prepares the run gauges. Nothing is pushed when url is empty.
func NewService(url, job string) *service {
	if job == "" {
		job = DefaultJob
	}
	reg := prometheus.NewRegistry()

	s := &service{
		url:      url,
		job:      job,
		registry: reg,
		scanned: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vm_doctor_instances_scanned",
			Help: "Running instances evaluated by the last run",
		}),
		instances: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vm_doctor_instances",
			Help: "Instances per utilization status in the last run",
		}, []string{"status"}),
		potentialSavings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vm_doctor_potential_savings_24h",
			Help: "Summed 24h cost of idle instances",
		}),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vm_doctor_total_cost_24h",
			Help: "Summed 24h cost of all scanned instances",
		}),
		stopOutcomes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vm_doctor_stop_outcomes",
			Help: "Stop attempts per outcome in the last run",
		}, []string{"outcome"}),
		warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vm_doctor_warnings",
			Help: "Data warnings raised by the last run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vm_doctor_last_run_timestamp_seconds",
			Help: "Unix time of the last run",
		}),
	}

	reg.MustRegister(s.scanned, s.instances, s.potentialSavings, s.totalCost, s.stopOutcomes, s.warnings, s.lastRun)
	return s
}

func (s *service) Enabled() bool {
	return s.url != ""
}

// Record copies the report summary into the gauges
func (s *service) Record(report *model.Report) {
	sum := report.Summary

	s.scanned.Set(float64(sum.TotalScanned))
	s.instances.Reset()
	for _, status := range []model.Status{model.StatusActive, model.StatusLowUsage, model.StatusIdle} {
		s.instances.WithLabelValues(string(status)).Set(float64(sum.ByStatus[status]))
	}
	s.potentialSavings.Set(sum.PotentialSavings)
	s.totalCost.Set(sum.TotalCost)
	s.stopOutcomes.Reset()
	s.stopOutcomes.WithLabelValues(string(model.OutcomeSucceeded)).Set(float64(sum.Stopped))
	s.stopOutcomes.WithLabelValues(string(model.OutcomeFailed)).Set(float64(sum.StopFailures))
	s.warnings.Set(float64(sum.WarningCount))
	s.lastRun.Set(float64(sum.RunAt.Unix()))
}

// Push records the report and pushes it to the Pushgateway, grouped by provider and account
func (s *service) Push(ctx context.Context, report *model.Report) error {
	if !s.Enabled() {
		return nil
	}

	s.Record(report)

	pusher := push.New(s.url, s.job).
		Gatherer(s.registry).
		Grouping("provider", report.Summary.Provider)
	if report.Summary.AccountID != "" {
		pusher = pusher.Grouping("account", report.Summary.AccountID)
	}

	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push run metrics: %w", err)
	}
	return nil
}
