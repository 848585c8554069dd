package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/vm-doctor/model"
)

func idleEntry(name string, cost float64) model.ReportEntry {
	id := model.VmIdentity{Project: "proj", Zone: "us-central1-a", Name: name}
	return model.ReportEntry{
		Classification: model.VmClassification{
			VmIdentity: id,
			Status:     model.StatusIdle,
			Cost:       model.CostEstimate{Cost24h: cost, Currency: "USD"},
		},
	}
}

func TestRankByCost(t *testing.T) {
	ranked := rankByCost([]model.ReportEntry{
		idleEntry("b", 1),
		idleEntry("a", 1),
		idleEntry("c", 5),
	})

	var names []string
	for _, e := range ranked {
		names = append(names, e.Classification.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestRankColor(t *testing.T) {
	assert.Equal(t, ColorRank1, rankColor(0))
	assert.Equal(t, ColorRank6, rankColor(5))
	assert.Equal(t, ColorRank6, rankColor(11))
}

func TestNotesJoinsErrorsAndWarnings(t *testing.T) {
	e := idleEntry("a", 1)
	e.Decision.ErrorDetail = "quota exceeded"
	e.Warnings = []model.Warning{{Kind: model.WarningDataUnavailable, Source: "metrics", Detail: "no data points in window"}}

	assert.Equal(t, "quota exceeded; metrics: no data points in window", notes(e))
}

func TestFormatters(t *testing.T) {
	end := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	sample := model.NewUtilizationSample(model.VmIdentity{}, 0.034, 12, end.Add(-time.Hour), end)

	assert.Equal(t, "3.4%", formatUtilization(sample))
	assert.Equal(t, "n/a", formatUtilization(model.UtilizationSample{}))
	assert.Equal(t, "1.50 USD (est)", formatCost(model.CostEstimate{Cost24h: 1.5, Currency: "USD"}))
	assert.Equal(t, "1.50 USD", formatCost(model.CostEstimate{Cost24h: 1.5, Currency: "USD", IsActual: true}))
	assert.Equal(t, "unknown", accountLabel(model.RunSummary{}))
	assert.Equal(t, "123 (prod)", accountLabel(model.RunSummary{AccountID: "123", AccountName: "prod"}))
}

func TestDrawReportTable(t *testing.T) {
	r := &model.Report{
		Summary: model.RunSummary{Provider: "gcp", AccountID: "proj", DryRun: true, Currency: "USD"},
		Entries: []model.ReportEntry{idleEntry("batch-worker", 2.4)},
	}

	var buf bytes.Buffer
	DrawReportTable(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "batch-worker")
	assert.Contains(t, out, "DRY RUN")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}
