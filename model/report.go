package model

import "time"

// ReportEntry pairs the classification of a VM with its shutdown decision
type ReportEntry struct {
	Classification VmClassification `json:"classification"`
	Decision       ShutdownDecision `json:"decision"`
	MachineType    string           `json:"machine_type"`
	Labels         Labels           `json:"labels,omitempty"`
	Warnings       []Warning        `json:"warnings,omitempty"`
}

// RunSummary holds run-level metadata and aggregates
type RunSummary struct {
	RunAt            time.Time      `json:"run_at"`
	Provider         string         `json:"provider"`
	AccountID        string         `json:"account_id"`
	AccountName      string         `json:"account_name,omitempty"`
	DryRun           bool           `json:"dry_run"`
	TotalScanned     int            `json:"total_scanned"`
	ByStatus         map[Status]int `json:"by_status"`
	PotentialSavings float64        `json:"potential_savings_24h"`
	TotalCost        float64        `json:"total_cost_24h"`
	Currency         string         `json:"currency"`
	Stopped          int            `json:"stopped"`
	StopFailures     int            `json:"stop_failures"`
	WarningCount     int            `json:"warning_count"`
}

// Report is built once per run and handed to the notifier unchanged
type Report struct {
	Summary RunSummary    `json:"summary"`
	Entries []ReportEntry `json:"instances"`
}

// RunMetadata is the run-level information known before any VM is processed
type RunMetadata struct {
	RunAt       time.Time
	Provider    string
	AccountID   string
	AccountName string
	DryRun      bool
}
