package costestimator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/vm-doctor/model"
)

type fakePrices map[string]float64

func (f fakePrices) HourlyRate(machineType, _ string) (float64, bool) {
	rate, ok := f[machineType]
	return rate, ok
}

func (f fakePrices) Currency() string { return "USD" }

var (
	today    = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	instance = model.Instance{
		VmIdentity:  model.VmIdentity{Project: "p", Zone: "us-central1-a", Name: "vm-1", InstanceID: "1"},
		MachineType: "e2-medium",
	}
)

func TestEstimateProjectsPartialDay(t *testing.T) {
	s := NewService(fakePrices{"e2-medium": 0.0332})
	row := &model.BillingRow{InstanceName: "vm-1", Day: today, Cost: 0.5, Currency: "USD"}

	got, warnings := s.Estimate(instance, row, today.Add(6*time.Hour))

	assert.Empty(t, warnings)
	assert.True(t, got.IsActual)
	assert.InDelta(t, 2.0, got.Cost24h, 1e-9)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, instance.VmIdentity, got.VmIdentity)
}

func TestEstimateFullDayIsNotExtrapolated(t *testing.T) {
	s := NewService(fakePrices{})
	row := &model.BillingRow{Day: today.AddDate(0, 0, -1), Cost: 1.75}

	got, warnings := s.Estimate(instance, row, today.Add(3*time.Hour))

	assert.Empty(t, warnings)
	assert.True(t, got.IsActual)
	assert.InDelta(t, 1.75, got.Cost24h, 1e-9)
	assert.Equal(t, "USD", got.Currency)
}

func TestEstimateFallsBackWhenDayJustStarted(t *testing.T) {
	s := NewService(fakePrices{"e2-medium": 0.0332})
	row := &model.BillingRow{Day: today, Cost: 0.01}

	got, warnings := s.Estimate(instance, row, today.Add(30*time.Second))

	assert.Empty(t, warnings)
	assert.False(t, got.IsActual)
	assert.InDelta(t, 0.0332*24, got.Cost24h, 1e-9)
}

func TestEstimateWithoutBillingRowUsesPriceTable(t *testing.T) {
	s := NewService(fakePrices{"e2-medium": 0.0332})

	got, warnings := s.Estimate(instance, nil, today.Add(12*time.Hour))

	assert.Empty(t, warnings)
	assert.False(t, got.IsActual)
	assert.InDelta(t, 0.7968, got.Cost24h, 1e-9)
}

func TestEstimateUnknownMachineTypeIsFlagged(t *testing.T) {
	s := NewService(fakePrices{})

	got, warnings := s.Estimate(instance, nil, today.Add(12*time.Hour))

	assert.False(t, got.IsActual)
	assert.Zero(t, got.Cost24h)
	require.Len(t, warnings, 1)
	assert.Equal(t, model.WarningUnknownPricing, warnings[0].Kind)
	assert.Contains(t, warnings[0].Detail, "e2-medium")
}

func TestEstimateClampsCredits(t *testing.T) {
	s := NewService(fakePrices{})
	row := &model.BillingRow{Day: today, Cost: -0.3}

	got, _ := s.Estimate(instance, row, today.Add(12*time.Hour))

	assert.True(t, got.IsActual)
	assert.Zero(t, got.Cost24h)
}
