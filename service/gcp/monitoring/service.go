package gcpmonitoring

import (
	"context"
	"fmt"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/elC0mpa/vm-doctor/model"
	svc "github.com/elC0mpa/vm-doctor/service"
)

const cpuUtilizationMetric = "compute.googleapis.com/instance/cpu/utilization"

func NewService(ctx context.Context, projectID string, opts ...option.ClientOption) (*service, error) {
	metricClient, err := monitoring.NewMetricClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Monitoring client: %w", err)
	}

	return &service{
		projectID:    projectID,
		metricClient: metricClient,
	}, nil
}

// Close closes the Monitoring client
func (s *service) Close() error {
	return s.metricClient.Close()
}

// GetUtilization implements service.MetricsService.
// The result is the mean of every CPU utilization point reported for the
// instance in [start, end).
func (s *service) GetUtilization(ctx context.Context, vm model.VmIdentity, start, end time.Time) (model.UtilizationSample, error) {
	project := vm.Project
	if project == "" {
		project = s.projectID
	}

	it := s.metricClient.ListTimeSeries(ctx, &monitoringpb.ListTimeSeriesRequest{
		Name:   "projects/" + project,
		Filter: cpuFilter(vm.InstanceID),
		Interval: &monitoringpb.TimeInterval{
			StartTime: timestamppb.New(start),
			EndTime:   timestamppb.New(end),
		},
		View: monitoringpb.ListTimeSeriesRequest_FULL,
	})

	var series []*monitoringpb.TimeSeries
	for {
		ts, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return model.UtilizationSample{}, fmt.Errorf("failed to read time series for %s: %w", vm.Name, err)
		}
		series = append(series, ts)
	}

	mean, count := averageDoublePoints(series)
	if count == 0 {
		return model.UtilizationSample{}, svc.ErrNoData
	}

	return model.NewUtilizationSample(vm, mean, count, start, end), nil
}

func cpuFilter(instanceID string) string {
	return fmt.Sprintf(`metric.type=%q AND resource.labels.instance_id=%q`, cpuUtilizationMetric, instanceID)
}

// averageDoublePoints ignores points that do not carry a double value
func averageDoublePoints(series []*monitoringpb.TimeSeries) (float64, int) {
	var sum float64
	var count int
	for _, ts := range series {
		for _, p := range ts.GetPoints() {
			v, ok := p.GetValue().GetValue().(*monitoringpb.TypedValue_DoubleValue)
			if !ok {
				continue
			}
			sum += v.DoubleValue
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}
