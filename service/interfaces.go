package service

import (
	"context"
	"errors"
	"time"

	"github.com/elC0mpa/vm-doctor/model"
)

// ErrNoData is returned by a MetricsService when the window holds no data points
var ErrNoData = errors.New("no metric data")

// IdentityService provides cloud account/project identity information
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
}

// InventoryService lists the running VMs of the fleet
type InventoryService interface {
	ListRunningInstances(ctx context.Context) ([]model.Instance, error)
}

// MetricsService returns the average CPU utilization of a VM over a window
type MetricsService interface {
	GetUtilization(ctx context.Context, vm model.VmIdentity, start, end time.Time) (model.UtilizationSample, error)
}

// BillingService returns the accumulated cost of a VM for a day, or nil when the
// billing export has no row for it
type BillingService interface {
	GetInstanceCost(ctx context.Context, vm model.VmIdentity, day time.Time) (*model.BillingRow, error)
}

// PriceTable resolves the hourly on-demand rate of a machine type in a zone
type PriceTable interface {
	HourlyRate(machineType, zone string) (float64, bool)
	Currency() string
}

// StopExecutor stops a VM. Stopping an already stopped VM is not an error.
type StopExecutor interface {
	StopInstance(ctx context.Context, vm model.VmIdentity) error
}

// Notifier delivers a finished report
type Notifier interface {
	Notify(ctx context.Context, report *model.Report) error
}

// Provider bundles the collaborators of one cloud
type Provider struct {
	Name      string
	Identity  IdentityService
	Inventory InventoryService
	Metrics   MetricsService
	Billing   BillingService
	Stopper   StopExecutor
}
