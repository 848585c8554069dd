package response

import (
	"fmt"
	"time"

	"github.com/elC0mpa/vm-doctor/model"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

// ConvertReport converts model.Report to response.IdleReport
func ConvertReport(r *model.Report) *IdleReport {
	if r == nil {
		return nil
	}
	s := r.Summary

	byStatus := make(map[string]int, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[string(status)] = n
	}

	instances := make([]InstanceDecision, 0, len(r.Entries))
	for _, e := range r.Entries {
		instances = append(instances, convertEntry(e))
	}

	return &IdleReport{
		Account: *ConvertAccountInfo(&model.AccountInfo{
			Provider:    s.Provider,
			AccountID:   s.AccountID,
			AccountName: s.AccountName,
		}),
		Summary: IdleSummary{
			RunAt:            s.RunAt.Format(time.RFC3339),
			DryRun:           s.DryRun,
			TotalScanned:     s.TotalScanned,
			ByStatus:         byStatus,
			PotentialSavings: s.PotentialSavings,
			TotalCost:        s.TotalCost,
			Currency:         s.Currency,
			Stopped:          s.Stopped,
			StopFailures:     s.StopFailures,
			WarningCount:     s.WarningCount,
		},
		Instances: instances,
	}
}

func convertEntry(e model.ReportEntry) InstanceDecision {
	c := e.Classification

	var cpu *float64
	if c.Utilization.HasData() {
		pct := c.Utilization.Utilization * 100
		cpu = &pct
	}

	var warnings []string
	for _, w := range e.Warnings {
		warnings = append(warnings, fmt.Sprintf("%s %s: %s", w.Kind, w.Source, w.Detail))
	}

	return InstanceDecision{
		Name:        c.Name,
		Zone:        c.Zone,
		InstanceID:  c.InstanceID,
		MachineType: e.MachineType,
		Status:      string(c.Status),
		CPUPercent:  cpu,
		Cost24h:     c.Cost.Cost24h,
		CostActual:  c.Cost.IsActual,
		Verdict:     string(e.Decision.Verdict),
		Reason:      string(e.Decision.Reason),
		Outcome:     string(e.Decision.Outcome),
		Error:       e.Decision.ErrorDetail,
		Warnings:    warnings,
	}
}
