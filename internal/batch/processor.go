// Package batch runs the resolve-then-mutate workflow over a row source,
// one network call at a time. Failures are isolated per (row, chain):
// nothing a row does can abort the run.
package batch

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hvbr1s/assetctl/internal/fordefi"
	"github.com/hvbr1s/assetctl/internal/rows"
)

// Options configures a Processor.
type Options struct {
	Client   AssetClient
	Mutation Mutation
	// Chains to attempt per row, in order. Defaults to evm_56 only.
	Chains   []fordefi.Chain
	Throttle Throttle
	// DryRun records Success without issuing the mutation call.
	DryRun bool
	Logger zerolog.Logger
}

// Processor drives one batch run.
type Processor struct {
	client   AssetClient
	mutation Mutation
	chains   []fordefi.Chain
	throttle Throttle
	dryRun   bool
	log      zerolog.Logger
}

// New creates a processor. Client and Mutation are required.
func New(opts Options) *Processor {
	chains := opts.Chains
	if len(chains) == 0 {
		chains = []fordefi.Chain{fordefi.ChainBSC}
	}
	return &Processor{
		client:   opts.Client,
		mutation: opts.Mutation,
		chains:   chains,
		throttle: opts.Throttle,
		dryRun:   opts.DryRun,
		log:      opts.Logger,
	}
}

// Run processes every row from the source sequentially and returns the
// aggregated counters. The only errors returned are pre-run (source read
// failure) or context cancellation; per-row failures are logged and
// counted instead.
func (p *Processor) Run(ctx context.Context, src rows.Source) (*RunStats, error) {
	input, err := src.Rows(ctx)
	if err != nil {
		return nil, err
	}

	stats := NewRunStats(p.chains)
	p.log.Info().
		Int("rows", len(input)).
		Str("mutation", p.mutation.Name()).
		Bool("dry_run", p.dryRun).
		Msg("starting batch run")

	for _, row := range input {
		stats.TotalRows++

		if err := p.validate(row); err != nil {
			for _, chain := range p.chains {
				stats.Record(chain, OutcomeSkipped)
			}
			p.log.Warn().
				Int("line", row.Line).
				Str("name", row.Name).
				Err(err).
				Msg("skipping row")
			continue
		}

		p.log.Info().
			Int("line", row.Line).
			Str("name", row.Name).
			Str("symbol", row.Symbol).
			Str("address", row.Address).
			Msg("processing row")

		rowFailed := false
		for _, chain := range p.chains {
			outcome, mutated := p.processChain(ctx, row, chain)
			stats.Record(chain, outcome)
			if outcome == OutcomeFailed || outcome == OutcomeNotFound {
				rowFailed = true
			}
			if mutated {
				if err := sleep(ctx, p.throttle.BetweenChains); err != nil {
					return stats, err
				}
			} else if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		if err := sleep(ctx, p.throttle.rowPause(rowFailed)); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

var (
	errMissingName    = errors.New("missing product name")
	errMissingAddress = errors.New("missing address")
)

func (p *Processor) validate(row rows.Row) error {
	if row.Address == "" {
		return errMissingAddress
	}
	if row.Name == "" {
		return errMissingName
	}
	return p.mutation.Required(row)
}

// processChain runs the resolve → mutate state machine for one (row, chain)
// pair. The second return reports whether the mutation stage was reached,
// which is what the between-chain throttle keys on.
func (p *Processor) processChain(ctx context.Context, row rows.Row, chain fordefi.Chain) (Outcome, bool) {
	log := p.log.With().
		Int("line", row.Line).
		Str("chain", chain.String()).
		Str("address", row.Address).
		Logger()

	info, err := p.client.ResolveAsset(ctx, chain, row.Address)
	switch {
	case errors.Is(err, fordefi.ErrAssetNotFound):
		log.Warn().Msg("asset not found")
		return OutcomeNotFound, false
	case errors.Is(err, fordefi.ErrMalformedResponse):
		log.Error().Err(err).Msg("asset resolution returned no id")
		return OutcomeFailed, false
	case err != nil:
		log.Error().Err(err).Msg("asset resolution failed")
		return OutcomeFailed, false
	}

	log = log.With().Str("asset_id", info.ID).Logger()
	log.Info().
		Str("asset_name", info.Name).
		Str("asset_symbol", info.Symbol).
		Msg("resolved asset")

	if p.dryRun {
		log.Info().Str("mutation", p.mutation.Name()).Msg("dry run: mutation not issued")
		return OutcomeSuccess, true
	}

	if err := p.mutation.Apply(ctx, p.client, info.ID, row); err != nil {
		if errors.Is(err, fordefi.ErrMalformedResponse) {
			log.Warn().Err(err).Msg("mutation returned no diagnostic output")
		} else {
			log.Error().Err(err).Msg("mutation failed")
		}
		return OutcomeFailed, true
	}

	log.Info().Str("mutation", p.mutation.Name()).Msg("mutation applied")
	return OutcomeSuccess, true
}
