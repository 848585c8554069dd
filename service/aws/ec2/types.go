package awsec2

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/elC0mpa/vm-doctor/model"
)

// ec2API is the subset of *ec2.Client used here
type ec2API interface {
	ec2.DescribeInstancesAPIClient
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

type service struct {
	accountID string
	client    ec2API
}

type EC2Service interface {
	ListRunningInstances(ctx context.Context) ([]model.Instance, error)
	StopInstance(ctx context.Context, vm model.VmIdentity) error
}
