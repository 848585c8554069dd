package gcpbilling

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/elC0mpa/vm-doctor/model"
)

type service struct {
	projectID      string
	billingAccount string
	dataset        string
	bqClient       *bigquery.Client

	mu   sync.Mutex
	days map[string]*dayCosts
}

// dayCosts caches one billing export query, successful or not
type dayCosts struct {
	rows map[string]model.BillingRow
	err  error
}

type BillingService interface {
	GetInstanceCost(ctx context.Context, vm model.VmIdentity, day time.Time) (*model.BillingRow, error)
	GetDailyInstanceCosts(ctx context.Context, day time.Time) ([]model.BillingRow, error)
	Close() error
}
