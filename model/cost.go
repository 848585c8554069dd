package model

import "time"

// BillingRow is the accumulated charge of one instance for a single day
type BillingRow struct {
	Project      string
	InstanceName string
	Day          time.Time
	Cost         float64
	Currency     string
}

// CostEstimate is the projected 24h cost of a VM.
// IsActual is true when the figure comes from the billing export and false
// when it was derived from machine-type pricing.
type CostEstimate struct {
	VmIdentity `json:"-"`
	Cost24h    float64 `json:"cost_24h"`
	Currency   string  `json:"currency"`
	IsActual   bool    `json:"is_actual"`
}
