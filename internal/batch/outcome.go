package batch

import "github.com/hvbr1s/assetctl/internal/fordefi"

// Outcome classifies one (row, chain) attempt. Exactly one outcome is
// recorded per attempted pair.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailed
	OutcomeNotFound
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ChainStats counts outcomes for one chain.
type ChainStats struct {
	Success  int
	Failed   int
	NotFound int
	Skipped  int
}

// Attempts is the number of (row, chain) pairs recorded.
func (s ChainStats) Attempts() int {
	return s.Success + s.Failed + s.NotFound + s.Skipped
}

func (s *ChainStats) add(o Outcome) {
	switch o {
	case OutcomeSuccess:
		s.Success++
	case OutcomeFailed:
		s.Failed++
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeSkipped:
		s.Skipped++
	}
}

// RunStats aggregates outcomes for one run, keyed by chain. Owned by the
// processor while the run is live; read by the reporter afterwards.
type RunStats struct {
	TotalRows int

	chains  []fordefi.Chain
	byChain map[fordefi.Chain]*ChainStats
}

// NewRunStats creates stats buckets for the configured chain set,
// preserving chain order for deterministic reporting.
func NewRunStats(chains []fordefi.Chain) *RunStats {
	byChain := make(map[fordefi.Chain]*ChainStats, len(chains))
	for _, c := range chains {
		byChain[c] = &ChainStats{}
	}
	return &RunStats{
		chains:  append([]fordefi.Chain(nil), chains...),
		byChain: byChain,
	}
}

// Record increments the counter for one (row, chain) outcome.
func (s *RunStats) Record(chain fordefi.Chain, o Outcome) {
	cs, ok := s.byChain[chain]
	if !ok {
		cs = &ChainStats{}
		s.byChain[chain] = cs
		s.chains = append(s.chains, chain)
	}
	cs.add(o)
}

// Chains returns the chain set in configured order.
func (s *RunStats) Chains() []fordefi.Chain {
	return s.chains
}

// Chain returns the counters for one chain.
func (s *RunStats) Chain(c fordefi.Chain) ChainStats {
	if cs, ok := s.byChain[c]; ok {
		return *cs
	}
	return ChainStats{}
}

// Totals sums counters across chains. Run-wide totals are always derived
// from the per-chain buckets, never tracked separately.
func (s *RunStats) Totals() ChainStats {
	var total ChainStats
	for _, cs := range s.byChain {
		total.Success += cs.Success
		total.Failed += cs.Failed
		total.NotFound += cs.NotFound
		total.Skipped += cs.Skipped
	}
	return total
}
