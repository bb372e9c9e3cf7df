package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hvbr1s/assetctl/internal/batch"
)

var markNotSpamCmd = &cobra.Command{
	Use:   "mark-not-spam",
	Short: "Clear the spam flag on every asset in the sheet",
	Long: `Resolves each row's address on every configured chain and clears the
spam classification on the resolved asset. Re-applying to an already-clear
asset is a server-side no-op, so sheets can be re-run blindly.

Historical pause schedules, should you want to reproduce them:
  EVM sweep:    --pause-between-chains 1s
  Solana sheet: --chains solana_mainnet --pause-between-rows 3s --pause-after-failure 2s`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBatch(cmd, batch.ClearSpam{})
	},
}

func init() {
	addBatchFlags(markNotSpamCmd, time.Second, 0)
	rootCmd.AddCommand(markNotSpamCmd)
}
