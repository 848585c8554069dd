package flag

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"

	"github.com/elC0mpa/vm-doctor/model"
)

func NewService() *service {
	return &service{environ: env.ToMap(os.Environ())}
}

// GetParsedFlags resolves the run configuration: documented defaults, overridden by
// environment variables, overridden by command-line flags
func (s *service) GetParsedFlags(args []string) (model.Flags, error) {
	flags, err := env.ParseAsWithOptions[model.Flags](env.Options{Environment: s.environ})
	if err != nil {
		return model.Flags{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := s.applyLegacyThreshold(&flags.Run); err != nil {
		return model.Flags{}, err
	}

	fs := flag.NewFlagSet("vm-doctor", flag.ContinueOnError)

	// Common flags
	fs.StringVar(&flags.Provider, "provider", flags.Provider, "Cloud provider to scan (gcp, aws)")
	fs.StringVar(&flags.Output, "output", flags.Output, "Report format (table, json)")
	fs.BoolVar(&flags.Chart, "chart", flags.Chart, "Draw a bar chart of the 24h cost of idle instances")
	fs.BoolVar(&flags.Debug, "debug", flags.Debug, "Enable debug logging")
	fs.StringVar(&flags.PriceTableFile, "price-table", flags.PriceTableFile, "YAML file overriding the built-in hourly prices")
	fs.StringVar(&flags.PushgatewayURL, "pushgateway", flags.PushgatewayURL, "Prometheus Pushgateway URL for run metrics")

	// Decision flags
	fs.BoolVar(&flags.Run.DryRun, "dry-run", flags.Run.DryRun, "Report decisions without stopping any instance")
	fs.Float64Var(&flags.Run.IdleThreshold, "idle-threshold", flags.Run.IdleThreshold, "CPU utilization fraction below which an instance is idle")
	fs.Float64Var(&flags.Run.LowUsageThreshold, "low-usage-threshold", flags.Run.LowUsageThreshold, "CPU utilization fraction below which an instance has low usage")
	fs.IntVar(&flags.Run.LookbackHours, "lookback", flags.Run.LookbackHours, "Metrics window in hours (1-12)")
	fs.StringVar(&flags.Run.SafetyLabelKey, "label-key", flags.Run.SafetyLabelKey, "Label that must be set before an instance is stopped")
	fs.StringVar(&flags.Run.SafetyLabelValue, "label-value", flags.Run.SafetyLabelValue, "Required value of the safety label")
	fs.IntVar(&flags.Run.Concurrency, "concurrency", flags.Run.Concurrency, "Instances processed in parallel")
	fs.DurationVar(&flags.Run.MetricsTimeout, "metrics-timeout", flags.Run.MetricsTimeout, "Timeout of a single metrics query")
	fs.DurationVar(&flags.Run.BillingTimeout, "billing-timeout", flags.Run.BillingTimeout, "Timeout of a single billing export lookup")

	// AWS-specific flags
	fs.StringVar(&flags.Region, "region", flags.Region, "AWS region")
	fs.StringVar(&flags.Profile, "profile", flags.Profile, "AWS profile configuration")

	// GCP-specific flags
	fs.StringVar(&flags.Project, "project", flags.Project, "GCP project ID")
	fs.StringVar(&flags.BillingAccount, "billing-account", flags.BillingAccount, "GCP billing account ID of the billing export")
	fs.StringVar(&flags.BillingDataset, "billing-dataset", flags.BillingDataset, "BigQuery dataset holding the billing export")

	if err := fs.Parse(args); err != nil {
		return model.Flags{}, err
	}

	if err := validate(flags); err != nil {
		return model.Flags{}, err
	}

	return flags, nil
}

// applyLegacyThreshold honours CPU_THRESHOLD, a percentage, when IDLE_THRESHOLD is unset
func (s *service) applyLegacyThreshold(run *model.RunConfig) error {
	if _, ok := s.environ["IDLE_THRESHOLD"]; ok {
		return nil
	}
	raw, ok := s.environ["CPU_THRESHOLD"]
	if !ok || raw == "" {
		return nil
	}

	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("failed to parse environment: CPU_THRESHOLD %q: %w", raw, err)
	}
	run.IdleThreshold = pct / 100
	return nil
}

func validate(flags model.Flags) error {
	switch flags.Provider {
	case "gcp", "aws":
	default:
		return fmt.Errorf("unsupported provider %q (want gcp or aws)", flags.Provider)
	}

	switch flags.Output {
	case "table", "json":
	default:
		return fmt.Errorf("unsupported output %q (want table or json)", flags.Output)
	}

	if err := flags.Run.Validate(); err != nil {
		return fmt.Errorf("invalid run configuration: %w", err)
	}
	return nil
}
