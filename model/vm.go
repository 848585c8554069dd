package model

import (
	"math"
	"time"
)

// UtilizationSample is the average CPU utilization of a VM over [Start, End)
type UtilizationSample struct {
	VmIdentity  `json:"-"`
	Utilization float64   `json:"utilization"`
	SampleCount int       `json:"sample_count"`
	Start       time.Time `json:"window_start"`
	End         time.Time `json:"window_end"`
}

// NewUtilizationSample builds a sample, clamping utilization into [0, 1].
// A NaN average is recorded as a sample without data points.
func NewUtilizationSample(vm VmIdentity, utilization float64, count int, start, end time.Time) UtilizationSample {
	if math.IsNaN(utilization) || count < 0 {
		utilization, count = 0, 0
	}
	return UtilizationSample{
		VmIdentity:  vm,
		Utilization: math.Min(math.Max(utilization, 0), 1),
		SampleCount: count,
		Start:       start,
		End:         end,
	}
}

// HasData reports whether any metric points backed the average
func (s UtilizationSample) HasData() bool {
	return s.SampleCount > 0
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusLowUsage Status = "LowUsage"
	StatusIdle     Status = "Idle"
)

type Verdict string

const (
	VerdictStop Verdict = "Stop"
	VerdictSkip Verdict = "Skip"
)

type Reason string

const (
	ReasonNotIdle      Reason = "NotIdle"
	ReasonMissingLabel Reason = "MissingLabel"
	ReasonDryRun       Reason = "DryRun"
	ReasonEligible     Reason = "Eligible"
)

type Outcome string

const (
	OutcomeNotAttempted Outcome = "NotAttempted"
	OutcomeSucceeded    Outcome = "Succeeded"
	OutcomeFailed       Outcome = "Failed"
)

// VmClassification is the status assigned to a VM together with its inputs
type VmClassification struct {
	VmIdentity
	Status      Status            `json:"status"`
	Utilization UtilizationSample `json:"utilization"`
	Cost        CostEstimate      `json:"cost"`
}

// ShutdownDecision is the verdict for one VM and, once known, the result of the stop call
type ShutdownDecision struct {
	VmIdentity  `json:"-"`
	Verdict     Verdict `json:"verdict"`
	Reason      Reason  `json:"reason"`
	Outcome     Outcome `json:"outcome"`
	ErrorDetail string  `json:"error,omitempty"`
}

type WarningKind string

const (
	WarningDataUnavailable WarningKind = "DataUnavailable"
	WarningUnknownPricing  WarningKind = "UnknownPricing"
)

// Warning annotates a VM whose data was recovered with best-effort defaults
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Source string      `json:"source"` // "metrics", "billing", "pricing"
	Detail string      `json:"detail,omitempty"`
}
