package awscloudwatch

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"github.com/elC0mpa/vm-doctor/model"
)

type cloudwatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

type service struct {
	client cloudwatchAPI
}

type CloudWatchService interface {
	GetUtilization(ctx context.Context, vm model.VmIdentity, start, end time.Time) (model.UtilizationSample, error)
}
