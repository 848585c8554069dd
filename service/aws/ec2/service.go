package awsec2

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"github.com/elC0mpa/vm-doctor/model"
)

// AccountID is used as the Project of every listed instance
func NewService(awsconfig aws.Config, accountID string) *service {
	return &service{
		accountID: accountID,
		client:    ec2.NewFromConfig(awsconfig),
	}
}

// ListRunningInstances implements service.InventoryService
func (s *service) ListRunningInstances(ctx context.Context) ([]model.Instance, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{string(types.InstanceStateNameRunning)},
			},
		},
	}

	var instances []model.Instance
	paginator := ec2.NewDescribeInstancesPaginator(s.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}

		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				instances = append(instances, s.toInstance(instance))
			}
		}
	}

	return instances, nil
}

// StopInstance implements service.StopExecutor.
// An instance that is already stopping or stopped counts as stopped.
func (s *service) StopInstance(ctx context.Context, vm model.VmIdentity) error {
	if vm.InstanceID == "" {
		return fmt.Errorf("instance %s has no instance id", vm.Name)
	}

	_, err := s.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{vm.InstanceID},
	})
	if err != nil {
		if isAlreadyStopped(err) {
			return nil
		}
		return fmt.Errorf("failed to stop instance %s: %w", vm.InstanceID, err)
	}

	return nil
}

func (s *service) toInstance(instance types.Instance) model.Instance {
	id := aws.ToString(instance.InstanceId)
	labels := make(model.Labels, len(instance.Tags))
	for _, tag := range instance.Tags {
		labels[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}

	name := labels["Name"]
	if name == "" {
		name = id
	}

	zone := ""
	if instance.Placement != nil {
		zone = aws.ToString(instance.Placement.AvailabilityZone)
	}

	return model.Instance{
		VmIdentity: model.VmIdentity{
			Project:    s.accountID,
			Zone:       zone,
			Name:       name,
			InstanceID: id,
		},
		Labels:      labels,
		MachineType: string(instance.InstanceType),
	}
}

func isAlreadyStopped(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "IncorrectInstanceState", "InvalidInstanceID.NotFound":
			return true
		}
	}
	return false
}
