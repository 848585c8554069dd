package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/elC0mpa/vm-doctor/model"
)

// DrawReportTable writes the summary header and one row per instance
func DrawReportTable(w io.Writer, r *model.Report) {
	s := r.Summary

	mode := text.FgRed.Sprint("LIVE")
	if s.DryRun {
		mode = text.FgYellow.Sprint("DRY RUN")
	}

	fmt.Fprintf(w, "\n%s\n", text.FgHiWhite.Sprint(" 🏥  VM DOCTOR IDLE REPORT"))
	fmt.Fprintf(w, " Provider: %s  Account: %s  Mode: %s\n", text.FgBlue.Sprint(s.Provider), text.FgBlue.Sprint(accountLabel(s)), mode)
	fmt.Fprintf(w, " Run at: %s\n", s.RunAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(w, text.FgHiBlue.Sprint(" ------------------------------------------------"))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Instance", "Zone", "Type", "CPU", "Status", "Cost 24h", "Decision", "Outcome", "Notes"})

	for _, e := range r.Entries {
		tw.AppendRow(table.Row{
			e.Classification.Name,
			e.Classification.Zone,
			e.MachineType,
			formatUtilization(e.Classification.Utilization),
			colorStatus(e.Classification.Status),
			formatCost(e.Classification.Cost),
			fmt.Sprintf("%s (%s)", e.Decision.Verdict, e.Decision.Reason),
			colorOutcome(e.Decision),
			notes(e),
		})
	}

	tw.AppendFooter(table.Row{
		"Total", "", "", "",
		fmt.Sprintf("%d idle", s.ByStatus[model.StatusIdle]),
		fmt.Sprintf("%.2f %s", s.TotalCost, s.Currency),
		fmt.Sprintf("save %.2f %s", s.PotentialSavings, s.Currency),
		fmt.Sprintf("%d stopped / %d failed", s.Stopped, s.StopFailures),
		fmt.Sprintf("%d warnings", s.WarningCount),
	})

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 9, WidthMax: 48},
	})
	tw.Render()
}

func accountLabel(s model.RunSummary) string {
	switch {
	case s.AccountName != "" && s.AccountName != s.AccountID:
		return fmt.Sprintf("%s (%s)", s.AccountID, s.AccountName)
	case s.AccountID != "":
		return s.AccountID
	default:
		return "unknown"
	}
}

func formatUtilization(u model.UtilizationSample) string {
	if !u.HasData() {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", u.Utilization*100)
}

func formatCost(c model.CostEstimate) string {
	value := fmt.Sprintf("%.2f %s", c.Cost24h, c.Currency)
	if !c.IsActual {
		value += " (est)"
	}
	return value
}

func colorStatus(status model.Status) string {
	switch status {
	case model.StatusIdle:
		return text.FgRed.Sprint(status)
	case model.StatusLowUsage:
		return text.FgYellow.Sprint(status)
	default:
		return text.FgGreen.Sprint(status)
	}
}

func colorOutcome(d model.ShutdownDecision) string {
	switch d.Outcome {
	case model.OutcomeSucceeded:
		return text.FgGreen.Sprint(d.Outcome)
	case model.OutcomeFailed:
		return text.FgRed.Sprint(d.Outcome)
	default:
		return string(d.Outcome)
	}
}

func notes(e model.ReportEntry) string {
	var parts []string
	if e.Decision.ErrorDetail != "" {
		parts = append(parts, e.Decision.ErrorDetail)
	}
	for _, w := range e.Warnings {
		parts = append(parts, fmt.Sprintf("%s: %s", w.Source, w.Detail))
	}
	return strings.Join(parts, "; ")
}
