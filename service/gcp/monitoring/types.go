package gcpmonitoring

import (
	"context"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"

	"github.com/elC0mpa/vm-doctor/model"
)

type service struct {
	projectID    string
	metricClient *monitoring.MetricClient
}

type MonitoringService interface {
	GetUtilization(ctx context.Context, vm model.VmIdentity, start, end time.Time) (model.UtilizationSample, error)
	Close() error
}
