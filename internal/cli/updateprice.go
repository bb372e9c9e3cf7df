package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hvbr1s/assetctl/internal/batch"
)

var updatePriceCmd = &cobra.Command{
	Use:   "update-price",
	Short: "Map each asset in the sheet to its CoinGecko price source",
	Long: `Resolves each row's address and pushes its CoinGecko id to the pricing
endpoint with a blank price, so the server derives prices from the mapped
source. Rows without a CoinGecko id are skipped.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBatch(cmd, batch.UpdatePrice{})
	},
}

func init() {
	addBatchFlags(updatePriceCmd, 0, 5*time.Second)
	rootCmd.AddCommand(updatePriceCmd)
}
