package report

import (
	"fmt"
	"strings"
	"time"
)

const rule = "================================================================================"

// Render formats the summary as the text block emitted to the log sink.
func Render(s *Summary) string {
	var sb strings.Builder

	title := "SUMMARY: " + s.Operation
	if s.DryRun {
		title += " (dry run)"
	}
	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("Generated:  %s\n", s.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Total rows: %d\n", s.TotalRows))
	sb.WriteString(fmt.Sprintf("Success:    %d\n", s.Totals.Success))
	sb.WriteString(fmt.Sprintf("Failed:     %d\n", s.Totals.Failed))
	sb.WriteString(fmt.Sprintf("Not found:  %d\n", s.Totals.NotFound))
	sb.WriteString(fmt.Sprintf("Skipped:    %d\n", s.Totals.Skipped))

	if len(s.ByChain) > 1 {
		sb.WriteString("\nBY CHAIN\n")
		sb.WriteString(fmt.Sprintf("%-16s %8s %8s %10s %8s\n",
			"chain", "success", "failed", "not_found", "skipped"))
		for _, c := range s.ByChain {
			sb.WriteString(fmt.Sprintf("%-16s %8d %8d %10d %8d\n",
				c.Chain, c.Success, c.Failed, c.NotFound, c.Skipped))
		}
	}

	return sb.String()
}
