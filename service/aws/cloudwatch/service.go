package awscloudwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/elC0mpa/vm-doctor/model"
	svc "github.com/elC0mpa/vm-doctor/service"
)

// datapointPeriod matches the resolution of basic EC2 monitoring
const datapointPeriod = 5 * time.Minute

func NewService(awsconfig aws.Config) *service {
	return &service{
		client: cloudwatch.NewFromConfig(awsconfig),
	}
}

// GetUtilization implements service.MetricsService. CloudWatch reports CPUUtilization
// in percent; the sample holds the fraction.
func (s *service) GetUtilization(ctx context.Context, vm model.VmIdentity, start, end time.Time) (model.UtilizationSample, error) {
	output, err := s.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/EC2"),
		MetricName: aws.String("CPUUtilization"),
		Dimensions: []types.Dimension{
			{Name: aws.String("InstanceId"), Value: aws.String(vm.InstanceID)},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(int32(datapointPeriod.Seconds())),
		Statistics: []types.Statistic{types.StatisticAverage},
	})
	if err != nil {
		return model.UtilizationSample{}, fmt.Errorf("failed to get CPU statistics for %s: %w", vm.InstanceID, err)
	}

	var sum float64
	var count int
	for _, dp := range output.Datapoints {
		if dp.Average == nil {
			continue
		}
		sum += aws.ToFloat64(dp.Average)
		count++
	}

	if count == 0 {
		return model.UtilizationSample{}, svc.ErrNoData
	}

	return model.NewUtilizationSample(vm, sum/float64(count)/100, count, start, end), nil
}
