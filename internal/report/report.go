// Package report renders the end-of-run summary from final batch counters.
package report

import (
	"time"

	"github.com/hvbr1s/assetctl/internal/batch"
	"github.com/hvbr1s/assetctl/internal/fordefi"
)

// Summary is the final run report.
type Summary struct {
	GeneratedAt time.Time
	Operation   string
	DryRun      bool
	TotalRows   int
	Totals      batch.ChainStats
	ByChain     []ChainBreakdown
}

// ChainBreakdown is one chain's counters, in configured chain order.
type ChainBreakdown struct {
	Chain fordefi.Chain
	batch.ChainStats
}

// New builds a summary from final run stats. Stats must not be mutated
// afterwards.
func New(stats *batch.RunStats, operation string, dryRun bool) *Summary {
	s := &Summary{
		GeneratedAt: time.Now().UTC(),
		Operation:   operation,
		DryRun:      dryRun,
		TotalRows:   stats.TotalRows,
		Totals:      stats.Totals(),
	}
	for _, chain := range stats.Chains() {
		s.ByChain = append(s.ByChain, ChainBreakdown{
			Chain:      chain,
			ChainStats: stats.Chain(chain),
		})
	}
	return s
}
