package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hvbr1s/assetctl/internal/batch"
	"github.com/hvbr1s/assetctl/internal/fordefi"
	"github.com/hvbr1s/assetctl/internal/logging"
	"github.com/hvbr1s/assetctl/internal/report"
	"github.com/hvbr1s/assetctl/internal/rows"
)

// runBatch is the shared body of every subcommand: validate config, set up
// the log sink, build the source and client, run the processor, render the
// summary. Per-row failures never surface here; only pre-run problems and
// cancellation produce a non-zero exit.
func runBatch(cmd *cobra.Command, mutation batch.Mutation) error {
	f := cmd.Flags()
	cfg.Chains, _ = f.GetStringSlice("chains")
	cfg.PauseBetweenChains, _ = f.GetDuration("pause-between-chains")
	cfg.PauseBetweenRows, _ = f.GetDuration("pause-between-rows")
	cfg.PauseAfterFailure, _ = f.GetDuration("pause-after-failure")

	if err := cfg.Validate(); err != nil {
		return err
	}

	chains, err := fordefi.ParseChains(cfg.Chains)
	if err != nil {
		return err
	}

	logger, logPath, closeLog, err := logging.New(cfg.LogDir, cfg.LogLevel, uuid.NewString())
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info().
		Str("log_file", logPath).
		Str("mutation", mutation.Name()).
		Strs("chains", cfg.Chains).
		Bool("dry_run", cfg.DryRun).
		Msg("assetctl starting")

	ctx := cmd.Context()
	src, cleanup, err := newSource(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("input source unavailable")
		return err
	}
	defer cleanup()

	client := fordefi.New(
		fordefi.Credentials{
			AssetInfoToken: cfg.AssetInfoToken,
			PricingToken:   cfg.PricingToken,
		},
		fordefi.WithBaseURL(cfg.BaseURL),
	)

	processor := batch.New(batch.Options{
		Client:   client,
		Mutation: mutation,
		Chains:   chains,
		Throttle: batch.Throttle{
			BetweenChains:   cfg.PauseBetweenChains,
			BetweenRows:     cfg.PauseBetweenRows,
			AfterRowFailure: cfg.PauseAfterFailure,
		},
		DryRun: cfg.DryRun,
		Logger: logger,
	})

	stats, err := processor.Run(ctx, src)
	if err != nil {
		if stats != nil {
			logger.Info().Msg(report.Render(report.New(stats, mutation.Name(), cfg.DryRun)))
		}
		logger.Error().Err(err).Msg("run aborted")
		return err
	}

	logger.Info().Msg(report.Render(report.New(stats, mutation.Name(), cfg.DryRun)))
	logger.Info().Str("log_file", logPath).Msg("run complete")
	return nil
}

// newSource builds the configured row source. Validate has already ensured
// exactly one of CSVFile or PostgresDSN is set.
func newSource(ctx context.Context) (rows.Source, func(), error) {
	if cfg.CSVFile != "" {
		return rows.NewCSVSource(cfg.CSVFile), func() {}, nil
	}
	source, err := rows.NewPostgresSource(ctx, cfg.PostgresDSN, cfg.PostgresTable)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres source: %w", err)
	}
	return source, source.Close, nil
}
