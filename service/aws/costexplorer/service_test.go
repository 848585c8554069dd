package awscostexplorer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/vm-doctor/model"
)

type fakeCostExplorer struct {
	pages  []*costexplorer.GetCostAndUsageWithResourcesOutput
	err    error
	inputs []costexplorer.GetCostAndUsageWithResourcesInput
}

func (f *fakeCostExplorer) GetCostAndUsageWithResources(_ context.Context, params *costexplorer.GetCostAndUsageWithResourcesInput, _ ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageWithResourcesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, *params)
	return f.pages[len(f.inputs)-1], nil
}

func group(id, amount string) types.Group {
	return types.Group{
		Keys: []string{id},
		Metrics: map[string]types.MetricValue{
			costsAggregation: {Amount: aws.String(amount), Unit: aws.String("USD")},
		},
	}
}

var day = time.Date(2026, 10, 15, 13, 45, 0, 0, time.UTC)

func TestGetInstanceCostQueriesOncePerDay(t *testing.T) {
	fake := &fakeCostExplorer{pages: []*costexplorer.GetCostAndUsageWithResourcesOutput{
		{
			NextPageToken: aws.String("next"),
			ResultsByTime: []types.ResultByTime{{Groups: []types.Group{group("i-0aaa", "0.1250")}}},
		},
		{
			ResultsByTime: []types.ResultByTime{{Groups: []types.Group{group("i-0bbb", "2.5"), group("i-0ccc", "n/a")}}},
		},
	}}
	s := &service{client: fake, days: map[string]*dayCosts{}}

	row, err := s.GetInstanceCost(context.Background(), model.VmIdentity{Project: "acct", Name: "batch", InstanceID: "i-0aaa"}, day)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.InDelta(t, 0.125, row.Cost, 1e-9)
	assert.Equal(t, "USD", row.Currency)
	assert.Equal(t, "batch", row.InstanceName)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), row.Day)

	row, err = s.GetInstanceCost(context.Background(), model.VmIdentity{InstanceID: "i-0bbb"}, day)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.InDelta(t, 2.5, row.Cost, 1e-9)

	row, err = s.GetInstanceCost(context.Background(), model.VmIdentity{InstanceID: "i-0ccc"}, day)
	require.NoError(t, err)
	assert.Nil(t, row)

	require.Len(t, fake.inputs, 2)
	assert.Equal(t, "2026-10-15", aws.ToString(fake.inputs[0].TimePeriod.Start))
	assert.Equal(t, "2026-10-16", aws.ToString(fake.inputs[0].TimePeriod.End))
	assert.Equal(t, "next", aws.ToString(fake.inputs[1].NextPageToken))
}

func TestGetInstanceCostCachesErrors(t *testing.T) {
	fake := &fakeCostExplorer{err: errors.New("DataUnavailableException")}
	s := &service{client: fake, days: map[string]*dayCosts{}}

	_, err := s.GetInstanceCost(context.Background(), model.VmIdentity{InstanceID: "i-0aaa"}, day)
	assert.ErrorContains(t, err, "DataUnavailableException")

	fake.err = nil
	_, err = s.GetInstanceCost(context.Background(), model.VmIdentity{InstanceID: "i-0aaa"}, day)
	assert.ErrorContains(t, err, "DataUnavailableException")
}
