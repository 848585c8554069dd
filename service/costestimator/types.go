package costestimator

import (
	"time"

	"github.com/elC0mpa/vm-doctor/model"
	svc "github.com/elC0mpa/vm-doctor/service"
)

type service struct {
	prices svc.PriceTable
}

type CostEstimatorService interface {
	Estimate(instance model.Instance, row *model.BillingRow, now time.Time) (model.CostEstimate, []model.Warning)
}
