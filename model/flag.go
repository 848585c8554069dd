package model

import (
	"fmt"
	"time"
)

const (
	DefaultIdleThreshold     = 0.05
	DefaultLowUsageThreshold = 0.20
	DefaultLookbackHours     = 1
	MinLookbackHours         = 1
	MaxLookbackHours         = 12
	DefaultSafetyLabelKey    = "auto-shutdown"
	DefaultSafetyLabelValue  = "true"
)

// RunConfig is the immutable configuration of a single decision run
type RunConfig struct {
	DryRun            bool          `env:"DRY_RUN"             envDefault:"false"`
	IdleThreshold     float64       `env:"IDLE_THRESHOLD"      envDefault:"0.05"`
	LowUsageThreshold float64       `env:"LOW_USAGE_THRESHOLD" envDefault:"0.20"`
	LookbackHours     int           `env:"LOOKBACK_HOURS"      envDefault:"1"`
	SafetyLabelKey    string        `env:"SAFETY_LABEL_KEY"    envDefault:"auto-shutdown"`
	SafetyLabelValue  string        `env:"SAFETY_LABEL_VALUE"  envDefault:"true"`
	Concurrency       int           `env:"CONCURRENCY"         envDefault:"8"`
	MetricsTimeout    time.Duration `env:"METRICS_TIMEOUT"     envDefault:"30s"`
	BillingTimeout    time.Duration `env:"BILLING_TIMEOUT"     envDefault:"60s"`
}

// DefaultRunConfig returns the documented defaults
func DefaultRunConfig() RunConfig {
	return RunConfig{
		IdleThreshold:     DefaultIdleThreshold,
		LowUsageThreshold: DefaultLowUsageThreshold,
		LookbackHours:     DefaultLookbackHours,
		SafetyLabelKey:    DefaultSafetyLabelKey,
		SafetyLabelValue:  DefaultSafetyLabelValue,
		Concurrency:       8,
		MetricsTimeout:    30 * time.Second,
		BillingTimeout:    60 * time.Second,
	}
}

// Lookback returns the metrics window length
func (c RunConfig) Lookback() time.Duration {
	return time.Duration(c.LookbackHours) * time.Hour
}

// Validate rejects thresholds and windows that would make classification ambiguous
func (c RunConfig) Validate() error {
	if c.IdleThreshold < 0 || c.LowUsageThreshold > 1 || c.IdleThreshold >= c.LowUsageThreshold {
		return fmt.Errorf("invalid thresholds: need 0 <= idle (%v) < low usage (%v) <= 1", c.IdleThreshold, c.LowUsageThreshold)
	}
	if c.LookbackHours < MinLookbackHours || c.LookbackHours > MaxLookbackHours {
		return fmt.Errorf("lookback hours must be between %d and %d, got %d", MinLookbackHours, MaxLookbackHours, c.LookbackHours)
	}
	if c.SafetyLabelKey == "" {
		return fmt.Errorf("safety label key must not be empty")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.MetricsTimeout <= 0 {
		return fmt.Errorf("metrics timeout must be positive, got %s", c.MetricsTimeout)
	}
	if c.BillingTimeout <= 0 {
		return fmt.Errorf("billing timeout must be positive, got %s", c.BillingTimeout)
	}
	return nil
}

type Flags struct {
	Run RunConfig

	// Common flags
	Provider       string `env:"PROVIDER"         envDefault:"gcp"`
	Output         string `env:"OUTPUT"           envDefault:"table"`
	Chart          bool   `env:"CHART"`
	Debug          bool   `env:"DEBUG"`
	PriceTableFile string `env:"PRICE_TABLE_FILE"`
	PushgatewayURL string `env:"PUSHGATEWAY_URL"`

	// AWS-specific flags
	Region  string `env:"AWS_REGION"  envDefault:"us-east-1"`
	Profile string `env:"AWS_PROFILE"`

	// GCP-specific flags
	Project         string `env:"GCP_PROJECT"`
	FallbackProject string `env:"GOOGLE_CLOUD_PROJECT"`
	BillingAccount  string `env:"GCP_BILLING_ACCOUNT"`
	BillingDataset  string `env:"BQ_DATASET" envDefault:"billing_export"`

	// Notification
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	AdminEmail     string `env:"ADMIN_EMAIL"`
	FromEmail      string `env:"FROM_EMAIL"`
}

// ProjectID returns the configured GCP project, falling back to GOOGLE_CLOUD_PROJECT
func (f Flags) ProjectID() string {
	if f.Project != "" {
		return f.Project
	}
	return f.FallbackProject
}
