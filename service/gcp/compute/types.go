package gcpcompute

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/api/compute/v1"

	"github.com/elC0mpa/vm-doctor/model"
)

type service struct {
	projectID     string
	computeClient *compute.Service
	logger        *zap.Logger
}

type ComputeService interface {
	// Generic interface methods (implements service.InventoryService and service.StopExecutor)
	ListRunningInstances(ctx context.Context) ([]model.Instance, error)
	StopInstance(ctx context.Context, vm model.VmIdentity) error

	// GCP-specific methods for detailed information
	GetRunningVMs(ctx context.Context) ([]*compute.Instance, error)
}
