package shutdownpolicy

import "github.com/elC0mpa/vm-doctor/model"

func NewService(cfg model.RunConfig) *service {
	return &service{
		labelKey:   cfg.SafetyLabelKey,
		labelValue: cfg.SafetyLabelValue,
		dryRun:     cfg.DryRun,
	}
}

// Decide implements ShutdownPolicyService.
// Rules are evaluated in order and the first match wins, so a dry-run still
// reports NotIdle and MissingLabel exactly as a live run would.
func (s *service) Decide(classification model.VmClassification, labels model.Labels) model.ShutdownDecision {
	decision := model.ShutdownDecision{
		VmIdentity: classification.VmIdentity,
		Verdict:    model.VerdictSkip,
		Outcome:    model.OutcomeNotAttempted,
	}

	switch {
	case classification.Status != model.StatusIdle:
		decision.Reason = model.ReasonNotIdle
	case !labels.Matches(s.labelKey, s.labelValue):
		decision.Reason = model.ReasonMissingLabel
	case s.dryRun:
		decision.Reason = model.ReasonDryRun
	default:
		decision.Verdict = model.VerdictStop
		decision.Reason = model.ReasonEligible
	}

	return decision
}
