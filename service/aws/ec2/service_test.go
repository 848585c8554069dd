package awsec2

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/vm-doctor/model"
)

type fakeEC2 struct {
	pages   []*ec2.DescribeInstancesOutput
	calls   int
	inputs  []*ec2.DescribeInstancesInput
	stopped []string
	stopErr error
}

func (f *fakeEC2) DescribeInstances(_ context.Context, params *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.inputs = append(f.inputs, params)
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func (f *fakeEC2) StopInstances(_ context.Context, params *ec2.StopInstancesInput, _ ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	if f.stopErr != nil {
		return nil, f.stopErr
	}
	f.stopped = append(f.stopped, params.InstanceIds...)
	return &ec2.StopInstancesOutput{}, nil
}

func TestListRunningInstancesFollowsPages(t *testing.T) {
	fake := &fakeEC2{pages: []*ec2.DescribeInstancesOutput{
		{
			NextToken: aws.String("page-2"),
			Reservations: []types.Reservation{{Instances: []types.Instance{{
				InstanceId:   aws.String("i-0aaa"),
				InstanceType: types.InstanceTypeT3Micro,
				Placement:    &types.Placement{AvailabilityZone: aws.String("us-east-1a")},
				Tags: []types.Tag{
					{Key: aws.String("Name"), Value: aws.String("batch-worker")},
					{Key: aws.String("auto-shutdown"), Value: aws.String("true")},
				},
			}}}},
		},
		{
			Reservations: []types.Reservation{{Instances: []types.Instance{{
				InstanceId:   aws.String("i-0bbb"),
				InstanceType: types.InstanceTypeM5Large,
			}}}},
		},
	}}
	s := &service{accountID: "123456789012", client: fake}

	instances, err := s.ListRunningInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 2)

	assert.Equal(t, model.VmIdentity{Project: "123456789012", Zone: "us-east-1a", Name: "batch-worker", InstanceID: "i-0aaa"}, instances[0].VmIdentity)
	assert.Equal(t, "t3.micro", instances[0].MachineType)
	assert.True(t, instances[0].Labels.Matches("auto-shutdown", "true"))

	assert.Equal(t, "i-0bbb", instances[1].Name)
	assert.Empty(t, instances[1].Zone)

	require.Len(t, fake.inputs, 2)
	assert.Equal(t, "instance-state-name", aws.ToString(fake.inputs[0].Filters[0].Name))
	assert.Equal(t, []string{"running"}, fake.inputs[0].Filters[0].Values)
	assert.Equal(t, "page-2", aws.ToString(fake.inputs[1].NextToken))
}

func TestStopInstance(t *testing.T) {
	fake := &fakeEC2{}
	s := &service{client: fake}

	require.NoError(t, s.StopInstance(context.Background(), model.VmIdentity{Name: "batch", InstanceID: "i-0aaa"}))
	assert.Equal(t, []string{"i-0aaa"}, fake.stopped)
}

func TestStopInstanceAlreadyStopped(t *testing.T) {
	fake := &fakeEC2{stopErr: &smithy.GenericAPIError{Code: "IncorrectInstanceState", Message: "instance is not running"}}
	s := &service{client: fake}

	assert.NoError(t, s.StopInstance(context.Background(), model.VmIdentity{InstanceID: "i-0aaa"}))
}

func TestStopInstanceFailure(t *testing.T) {
	fake := &fakeEC2{stopErr: errors.New("UnauthorizedOperation")}
	s := &service{client: fake}

	err := s.StopInstance(context.Background(), model.VmIdentity{InstanceID: "i-0aaa"})
	assert.ErrorContains(t, err, "failed to stop instance i-0aaa")

	err = s.StopInstance(context.Background(), model.VmIdentity{Name: "no-id"})
	assert.ErrorContains(t, err, "has no instance id")
}
