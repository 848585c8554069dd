package shutdownpolicy

import "github.com/elC0mpa/vm-doctor/model"

type service struct {
	labelKey   string
	labelValue string
	dryRun     bool
}

type ShutdownPolicyService interface {
	Decide(classification model.VmClassification, labels model.Labels) model.ShutdownDecision
}
