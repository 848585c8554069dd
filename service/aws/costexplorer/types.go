package awscostexplorer

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/costexplorer"

	"github.com/elC0mpa/vm-doctor/model"
)

type costExplorerAPI interface {
	GetCostAndUsageWithResources(ctx context.Context, params *costexplorer.GetCostAndUsageWithResourcesInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageWithResourcesOutput, error)
}

type service struct {
	client costExplorerAPI

	mu   sync.Mutex
	days map[string]*dayCosts
}

// dayCosts holds the per-resource cost of one day, keyed by instance id
type dayCosts struct {
	rows map[string]model.BillingRow
	err  error
}

type CostService interface {
	GetInstanceCost(ctx context.Context, vm model.VmIdentity, day time.Time) (*model.BillingRow, error)
	GetDailyInstanceCosts(ctx context.Context, day time.Time) (map[string]model.BillingRow, error)
}
