package classifier

import "github.com/elC0mpa/vm-doctor/model"

type service struct {
	idleThreshold     float64
	lowUsageThreshold float64
}

type ClassifierService interface {
	Classify(sample model.UtilizationSample, cost model.CostEstimate) model.VmClassification
}
