package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/elC0mpa/vm-doctor/model"
)

type service struct {
	url      string
	job      string
	registry *prometheus.Registry

	scanned          prometheus.Gauge
	instances        *prometheus.GaugeVec
	potentialSavings prometheus.Gauge
	totalCost        prometheus.Gauge
	stopOutcomes     *prometheus.GaugeVec
	warnings         prometheus.Gauge
	lastRun          prometheus.Gauge
}

type MetricsService interface {
	Record(report *model.Report)
	Push(ctx context.Context, report *model.Report) error
	Enabled() bool
}
