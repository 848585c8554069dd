package awscloudwatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/vm-doctor/model"
	svc "github.com/elC0mpa/vm-doctor/service"
)

type fakeCloudWatch struct {
	output *cloudwatch.GetMetricStatisticsOutput
	err    error
	input  *cloudwatch.GetMetricStatisticsInput
}

func (f *fakeCloudWatch) GetMetricStatistics(_ context.Context, params *cloudwatch.GetMetricStatisticsInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	f.input = params
	return f.output, f.err
}

var (
	end   = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	start = end.Add(-12 * time.Hour)
	vm    = model.VmIdentity{Name: "batch", InstanceID: "i-0aaa"}
)

func TestGetUtilizationAveragesDatapoints(t *testing.T) {
	fake := &fakeCloudWatch{output: &cloudwatch.GetMetricStatisticsOutput{
		Datapoints: []types.Datapoint{
			{Average: aws.Float64(2)},
			{Average: aws.Float64(4)},
			{},
		},
	}}
	s := &service{client: fake}

	sample, err := s.GetUtilization(context.Background(), vm, start, end)
	require.NoError(t, err)
	assert.InDelta(t, 0.03, sample.Utilization, 1e-9)
	assert.Equal(t, 2, sample.SampleCount)
	assert.Equal(t, vm, sample.VmIdentity)

	assert.Equal(t, "CPUUtilization", aws.ToString(fake.input.MetricName))
	assert.Equal(t, "i-0aaa", aws.ToString(fake.input.Dimensions[0].Value))
	assert.Equal(t, int32(300), aws.ToInt32(fake.input.Period))
}

func TestGetUtilizationNoDatapoints(t *testing.T) {
	s := &service{client: &fakeCloudWatch{output: &cloudwatch.GetMetricStatisticsOutput{}}}

	_, err := s.GetUtilization(context.Background(), vm, start, end)
	assert.ErrorIs(t, err, svc.ErrNoData)
}

func TestGetUtilizationError(t *testing.T) {
	s := &service{client: &fakeCloudWatch{err: errors.New("AccessDenied")}}

	_, err := s.GetUtilization(context.Background(), vm, start, end)
	assert.ErrorContains(t, err, "AccessDenied")
}
