package classifier

import "github.com/elC0mpa/vm-doctor/model"

func NewService(cfg model.RunConfig) *service {
	return &service{
		idleThreshold:     cfg.IdleThreshold,
		lowUsageThreshold: cfg.LowUsageThreshold,
	}
}

// Classify implements ClassifierService
func (s *service) Classify(sample model.UtilizationSample, cost model.CostEstimate) model.VmClassification {
	return model.VmClassification{
		VmIdentity:  sample.VmIdentity,
		Status:      StatusFor(sample, s.idleThreshold, s.lowUsageThreshold),
		Utilization: sample,
		Cost:        cost,
	}
}

// StatusFor maps a sample onto the half-open buckets
// [0, idle) Idle, [idle, low) LowUsage, [low, 1] Active.
// A sample without data points is Active: missing metrics never count as idle evidence.
func StatusFor(sample model.UtilizationSample, idle, low float64) model.Status {
	if !sample.HasData() {
		return model.StatusActive
	}

	switch u := sample.Utilization; {
	case u < idle:
		return model.StatusIdle
	case u < low:
		return model.StatusLowUsage
	default:
		return model.StatusActive
	}
}
