package response

// AccountInfo represents cloud account/project identity
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// IdleSummary holds the run aggregates of an idle scan
type IdleSummary struct {
	RunAt            string         `json:"run_at"`
	DryRun           bool           `json:"dry_run"`
	TotalScanned     int            `json:"total_scanned"`
	ByStatus         map[string]int `json:"by_status"`
	PotentialSavings float64        `json:"potential_savings_24h"`
	TotalCost        float64        `json:"total_cost_24h"`
	Currency         string         `json:"currency"`
	Stopped          int            `json:"stopped"`
	StopFailures     int            `json:"stop_failures"`
	WarningCount     int            `json:"warning_count"`
}

// InstanceDecision represents one scanned instance and what was decided for it
type InstanceDecision struct {
	Name        string   `json:"name"`
	Zone        string   `json:"zone"`
	InstanceID  string   `json:"instance_id"`
	MachineType string   `json:"machine_type"`
	Status      string   `json:"status"`
	CPUPercent  *float64 `json:"cpu_percent"`
	Cost24h     float64  `json:"cost_24h"`
	CostActual  bool     `json:"cost_from_billing"`
	Verdict     string   `json:"verdict"`
	Reason      string   `json:"reason"`
	Outcome     string   `json:"outcome"`
	Error       string   `json:"error,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// IdleReport is the tool result of an idle scan
type IdleReport struct {
	Account   AccountInfo        `json:"account"`
	Summary   IdleSummary        `json:"summary"`
	Instances []InstanceDecision `json:"instances"`
}
