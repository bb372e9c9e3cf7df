// Package config resolves run configuration from the environment, an
// optional .env file, and command-line flags (flags win).
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig marks fatal pre-run configuration problems.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the process-wide configuration handed to the batch processor
// at construction. No module-level mutable state.
type Config struct {
	BaseURL        string
	AssetInfoToken string
	PricingToken   string

	// Input source: exactly one of CSVFile or PostgresDSN must be set.
	CSVFile       string
	PostgresDSN   string
	PostgresTable string

	Chains []string
	DryRun bool

	LogDir   string
	LogLevel string

	PauseBetweenChains time.Duration
	PauseBetweenRows   time.Duration
	PauseAfterFailure  time.Duration
}

// Load reads configuration from a .env file (best effort) and environment
// variables, applying defaults. Flag overrides are applied by the CLI on
// top of the returned struct.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("base_url", "https://api.fordefi.com")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("log_level", "info")
	v.SetDefault("pg_table", "asset_sheet")

	// Token names predate this tool; kept for compatibility with existing
	// operator .env files.
	must(v.BindEnv("asset_info_token", "BEARER_TOKEN_ASSET_INFO"))
	must(v.BindEnv("pricing_token", "BEARER_TOKEN_PRICING"))
	must(v.BindEnv("base_url", "FORDEFI_BASE_URL"))
	must(v.BindEnv("log_dir", "ASSETCTL_LOG_DIR"))
	must(v.BindEnv("log_level", "ASSETCTL_LOG_LEVEL"))
	must(v.BindEnv("csv_file", "ASSETCTL_CSV_FILE"))
	must(v.BindEnv("pg_dsn", "ASSETCTL_PG_DSN"))
	must(v.BindEnv("pg_table", "ASSETCTL_PG_TABLE"))

	return &Config{
		BaseURL:        v.GetString("base_url"),
		AssetInfoToken: v.GetString("asset_info_token"),
		PricingToken:   v.GetString("pricing_token"),
		CSVFile:        v.GetString("csv_file"),
		PostgresDSN:    v.GetString("pg_dsn"),
		PostgresTable:  v.GetString("pg_table"),
		LogDir:         v.GetString("log_dir"),
		LogLevel:       v.GetString("log_level"),
	}
}

// Validate checks the fatal pre-run conditions: both bearer tokens and
// exactly one input source.
func (c *Config) Validate() error {
	if c.AssetInfoToken == "" {
		return fmt.Errorf("%w: BEARER_TOKEN_ASSET_INFO is not set", ErrInvalidConfig)
	}
	if c.PricingToken == "" {
		return fmt.Errorf("%w: BEARER_TOKEN_PRICING is not set", ErrInvalidConfig)
	}
	if c.CSVFile == "" && c.PostgresDSN == "" {
		return fmt.Errorf("%w: no input source (set --csv or --pg-dsn)", ErrInvalidConfig)
	}
	if c.CSVFile != "" && c.PostgresDSN != "" {
		return fmt.Errorf("%w: --csv and --pg-dsn are mutually exclusive", ErrInvalidConfig)
	}
	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
