package classifier

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/elC0mpa/vm-doctor/model"
)

func sample(u float64, count int) model.UtilizationSample {
	end := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	return model.NewUtilizationSample(model.VmIdentity{Name: "vm-1"}, u, count, end.Add(-time.Hour), end)
}

func TestStatusForBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		utilization float64
		want        model.Status
	}{
		{name: "zero", utilization: 0, want: model.StatusIdle},
		{name: "just below idle", utilization: 0.049999, want: model.StatusIdle},
		{name: "exactly idle threshold", utilization: 0.05, want: model.StatusLowUsage},
		{name: "just below low usage", utilization: 0.199999, want: model.StatusLowUsage},
		{name: "exactly low usage threshold", utilization: 0.20, want: model.StatusActive},
		{name: "busy", utilization: 0.93, want: model.StatusActive},
		{name: "saturated", utilization: 1, want: model.StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusFor(sample(tt.utilization, 12), model.DefaultIdleThreshold, model.DefaultLowUsageThreshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusForWithoutSamplesIsActive(t *testing.T) {
	assert.Equal(t, model.StatusActive, StatusFor(sample(0, 0), 0.05, 0.20))
	assert.Equal(t, model.StatusActive, StatusFor(sample(math.NaN(), 4), 0.05, 0.20))
}

func TestStatusForIsMonotonic(t *testing.T) {
	rank := map[model.Status]int{model.StatusIdle: 0, model.StatusLowUsage: 1, model.StatusActive: 2}

	prev := rank[model.StatusIdle]
	for u := 0.0; u <= 1.0; u += 0.001 {
		got := rank[StatusFor(sample(u, 1), 0.05, 0.20)]
		assert.GreaterOrEqual(t, got, prev, "utilization %v", u)
		prev = got
	}
}

func TestClassifyUsesConfiguredThresholds(t *testing.T) {
	cfg := model.DefaultRunConfig()
	cfg.IdleThreshold = 0.10
	cfg.LowUsageThreshold = 0.50

	cost := model.CostEstimate{Cost24h: 1.2, Currency: "USD"}
	s := sample(0.08, 3)

	got := NewService(cfg).Classify(s, cost)

	assert.Equal(t, model.StatusIdle, got.Status)
	assert.Equal(t, "vm-1", got.Name)
	assert.Equal(t, s, got.Utilization)
	assert.Equal(t, cost, got.Cost)
}
