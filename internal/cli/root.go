// Package cli wires the assetctl commands. Each subcommand is one batch
// variant: the chain set, mutation strategy, and throttle schedule are the
// only things that differ between them.
package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hvbr1s/assetctl/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "assetctl",
	Short: "Batch operations against the Fordefi asset catalog",
	Long: `assetctl reads a sheet of token addresses (CSV file or Postgres table),
resolves each address to a Fordefi asset id, and applies one mutation per
(row, chain): clearing the spam flag or pushing a CoinGecko price-source
mapping.

Rows are processed one at a time with configurable pauses between calls.
A row that fails is logged and counted; it never aborts the run. Both
mutations are idempotent, so re-running a whole sheet is safe.

Credentials come from the environment (or a .env file):
  BEARER_TOKEN_ASSET_INFO   token for asset resolution
  BEARER_TOKEN_PRICING      token for the CSM mutation endpoints`,
	SilenceUsage: true,
}

// flagOverrides carries persistent flag values until PersistentPreRun
// merges them over the env-derived config. Per-command flags (chain set,
// pause schedule) live on each subcommand's own flag set because their
// defaults differ.
type flagOverrides struct {
	csvFile  string
	pgDSN    string
	pgTable  string
	baseURL  string
	dryRun   bool
	logDir   string
	logLevel string
}

var flags flagOverrides

// cfg is resolved once per invocation in PersistentPreRun.
var cfg *config.Config

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.csvFile, "csv", "", "CSV file to read rows from")
	pf.StringVar(&flags.pgDSN, "pg-dsn", "", "Postgres DSN to read rows from instead of a CSV")
	pf.StringVar(&flags.pgTable, "pg-table", "", "Postgres table holding the asset sheet (default asset_sheet)")
	pf.StringVar(&flags.baseURL, "base-url", "", "Fordefi API base URL (default https://api.fordefi.com)")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "resolve assets but never issue mutation calls")
	pf.StringVar(&flags.logDir, "log-dir", "", "directory for run log files (default logs)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (default info)")

	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		cfg = config.Load()
		if flags.csvFile != "" {
			cfg.CSVFile = flags.csvFile
		}
		if flags.pgDSN != "" {
			cfg.PostgresDSN = flags.pgDSN
		}
		if flags.pgTable != "" {
			cfg.PostgresTable = flags.pgTable
		}
		if flags.baseURL != "" {
			cfg.BaseURL = flags.baseURL
		}
		if flags.logDir != "" {
			cfg.LogDir = flags.logDir
		}
		if flags.logLevel != "" {
			cfg.LogLevel = flags.logLevel
		}
		cfg.DryRun = flags.dryRun
	}
}

// addBatchFlags registers the per-variant flags with that variant's
// defaults.
func addBatchFlags(cmd *cobra.Command, betweenChains, betweenRows time.Duration) {
	f := cmd.Flags()
	f.StringSlice("chains", []string{"evm_56"},
		"chains to attempt per row (evm_1, evm_42161, evm_56, solana_mainnet)")
	f.Duration("pause-between-chains", betweenChains,
		"pause after each chain's mutation attempt")
	f.Duration("pause-between-rows", betweenRows,
		"pause after each row")
	f.Duration("pause-after-failure", 0,
		"pause after a row whose resolution failed (defaults to --pause-between-rows)")
}

// Execute runs the root command with a signal-cancelled context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
