package gcpcompute

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/elC0mpa/vm-doctor/model"
)

func NewService(ctx context.Context, projectID string, logger *zap.Logger, opts ...option.ClientOption) (*service, error) {
	computeClient, err := compute.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Compute client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		projectID:     projectID,
		computeClient: computeClient,
		logger:        logger,
	}, nil
}

// ListRunningInstances implements service.InventoryService
func (s *service) ListRunningInstances(ctx context.Context) ([]model.Instance, error) {
	vms, err := s.GetRunningVMs(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.Instance, 0, len(vms))
	for _, vm := range vms {
		result = append(result, toInstance(s.projectID, vm))
	}
	return result, nil
}

// GetRunningVMs returns all VMs in RUNNING state.
// A zone that cannot be listed is skipped, but if no zone could be listed the
// fleet is unknown and an error is returned.
func (s *service) GetRunningVMs(ctx context.Context) ([]*compute.Instance, error) {
	var runningVMs []*compute.Instance

	// List all zones in the project
	zonesResp, err := s.computeClient.Zones.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	var failed int
	var lastErr error
	for _, zone := range zonesResp.Items {
		err := s.computeClient.Instances.List(s.projectID, zone.Name).
			Filter("status = RUNNING").
			Pages(ctx, func(page *compute.InstanceList) error {
				runningVMs = append(runningVMs, page.Items...)
				return nil
			})
		if err != nil {
			failed++
			lastErr = err
			s.logger.Warn("could not list instances in zone", zap.String("zone", zone.Name), zap.Error(err))
			continue
		}
	}

	if len(zonesResp.Items) > 0 && failed == len(zonesResp.Items) {
		return nil, fmt.Errorf("failed to list instances in all %d zones: %w", failed, lastErr)
	}

	return runningVMs, nil
}

// StopInstance implements service.StopExecutor.
// The operation is accepted asynchronously; an instance that no longer exists
// counts as stopped.
func (s *service) StopInstance(ctx context.Context, vm model.VmIdentity) error {
	project := vm.Project
	if project == "" {
		project = s.projectID
	}

	op, err := s.computeClient.Instances.Stop(project, vm.Zone, vm.Name).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("failed to stop instance %s: %w", vm.Name, err)
	}

	if op.Error != nil && len(op.Error.Errors) > 0 {
		return fmt.Errorf("stop operation for %s failed: %s", vm.Name, op.Error.Errors[0].Message)
	}

	return nil
}

func toInstance(projectID string, vm *compute.Instance) model.Instance {
	zone := extractResourceName(vm.Zone)
	return model.Instance{
		VmIdentity: model.VmIdentity{
			Project:    projectID,
			Zone:       zone,
			Name:       vm.Name,
			InstanceID: strconv.FormatUint(vm.Id, 10),
		},
		Labels:      model.Labels(vm.Labels),
		MachineType: extractResourceName(vm.MachineType),
	}
}

// extractResourceName extracts the resource name from a GCP resource URL
// e.g., "https://www.googleapis.com/compute/v1/projects/my-project/zones/us-central1-a/machineTypes/e2-medium"
// returns "e2-medium"
func extractResourceName(resourceURL string) string {
	// Find the last "/" and return everything after it
	for i := len(resourceURL) - 1; i >= 0; i-- {
		if resourceURL[i] == '/' {
			return resourceURL[i+1:]
		}
	}
	return resourceURL
}
