package report

import (
	"sort"

	"github.com/elC0mpa/vm-doctor/model"
)

const defaultCurrency = "USD"

func NewService() *service {
	return &service{}
}

// Build implements ReportService. The entries are copied and sorted by instance
// name, then zone, project and id, so identical inputs always produce the same report.
func (s *service) Build(meta model.RunMetadata, entries []model.ReportEntry) *model.Report {
	sorted := make([]model.ReportEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i].Classification.VmIdentity, sorted[j].Classification.VmIdentity)
	})

	summary := model.RunSummary{
		RunAt:        meta.RunAt,
		Provider:     meta.Provider,
		AccountID:    meta.AccountID,
		AccountName:  meta.AccountName,
		DryRun:       meta.DryRun,
		TotalScanned: len(sorted),
		ByStatus: map[model.Status]int{
			model.StatusActive:   0,
			model.StatusLowUsage: 0,
			model.StatusIdle:     0,
		},
	}

	for _, entry := range sorted {
		cost := entry.Classification.Cost
		summary.ByStatus[entry.Classification.Status]++
		summary.TotalCost += cost.Cost24h
		summary.WarningCount += len(entry.Warnings)

		if entry.Classification.Status == model.StatusIdle {
			summary.PotentialSavings += cost.Cost24h
		}
		if summary.Currency == "" && cost.Currency != "" {
			summary.Currency = cost.Currency
		}

		switch entry.Decision.Outcome {
		case model.OutcomeSucceeded:
			summary.Stopped++
		case model.OutcomeFailed:
			summary.StopFailures++
		}
	}

	if summary.Currency == "" {
		summary.Currency = defaultCurrency
	}

	return &model.Report{
		Summary: summary,
		Entries: sorted,
	}
}

func less(a, b model.VmIdentity) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.Zone != b.Zone {
		return a.Zone < b.Zone
	}
	if a.Project != b.Project {
		return a.Project < b.Project
	}
	return a.InstanceID < b.InstanceID
}

// IdleEntries returns the entries classified Idle, in report order
func IdleEntries(r *model.Report) []model.ReportEntry {
	var idle []model.ReportEntry
	for _, entry := range r.Entries {
		if entry.Classification.Status == model.StatusIdle {
			idle = append(idle, entry)
		}
	}
	return idle
}
