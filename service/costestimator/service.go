package costestimator

import (
	"fmt"
	"time"

	"github.com/elC0mpa/vm-doctor/model"
	svc "github.com/elC0mpa/vm-doctor/service"
)

const (
	hoursPerDay = 24

	// Below this much elapsed day the linear projection is too noisy to use.
	minElapsed = time.Minute
)

func NewService(prices svc.PriceTable) *service {
	return &service{prices: prices}
}

// Estimate implements CostEstimatorService.
// A billing row for the current day is projected to 24h by the elapsed fraction of
// the day; without a usable row the machine-type hourly rate is used. The returned
// warnings annotate a best-effort figure, the estimate itself never fails.
func (s *service) Estimate(instance model.Instance, row *model.BillingRow, now time.Time) (model.CostEstimate, []model.Warning) {
	if row != nil {
		if cost, ok := projectDay(row, now); ok {
			currency := row.Currency
			if currency == "" {
				currency = s.prices.Currency()
			}
			return model.CostEstimate{
				VmIdentity: instance.VmIdentity,
				Cost24h:    cost,
				Currency:   currency,
				IsActual:   true,
			}, nil
		}
	}

	estimate := model.CostEstimate{
		VmIdentity: instance.VmIdentity,
		Currency:   s.prices.Currency(),
	}

	rate, ok := s.prices.HourlyRate(instance.MachineType, instance.Zone)
	if !ok {
		return estimate, []model.Warning{{
			Kind:   model.WarningUnknownPricing,
			Source: "pricing",
			Detail: fmt.Sprintf("no hourly rate for machine type %q in %s", instance.MachineType, instance.Zone),
		}}
	}

	estimate.Cost24h = rate * hoursPerDay
	return estimate, nil
}

// projectDay scales the accumulated charge of row.Day up to a full day
func projectDay(row *model.BillingRow, now time.Time) (float64, bool) {
	dayStart := time.Date(row.Day.Year(), row.Day.Month(), row.Day.Day(), 0, 0, 0, 0, time.UTC)
	elapsed := now.Sub(dayStart)
	if elapsed < minElapsed {
		return 0, false
	}

	fraction := elapsed.Hours() / hoursPerDay
	if fraction > 1 {
		fraction = 1
	}

	cost := row.Cost / fraction
	if cost < 0 {
		// credits can push a day's net charge below zero
		cost = 0
	}
	return cost, true
}
