package batch

import (
	"context"
	"errors"

	"github.com/hvbr1s/assetctl/internal/fordefi"
	"github.com/hvbr1s/assetctl/internal/rows"
)

// AssetClient is the slice of the Fordefi client the processor needs.
type AssetClient interface {
	ResolveAsset(ctx context.Context, chain fordefi.Chain, address string) (*fordefi.AssetInfo, error)
	MarkNotSpam(ctx context.Context, assetID string) error
	UpdatePrice(ctx context.Context, assetID, coingeckoID string, dryRun bool) (*fordefi.PriceUpdate, error)
}

// Mutation is the per-variant step applied to a resolved asset. Required
// reports variant-specific row fields beyond name and address; a row
// failing it is skipped for every configured chain.
type Mutation interface {
	Name() string
	Required(row rows.Row) error
	Apply(ctx context.Context, client AssetClient, assetID string, row rows.Row) error
}

// ClearSpam marks a resolved asset as not spam.
type ClearSpam struct{}

func (ClearSpam) Name() string { return "mark-not-spam" }

func (ClearSpam) Required(rows.Row) error { return nil }

func (ClearSpam) Apply(ctx context.Context, client AssetClient, assetID string, _ rows.Row) error {
	return client.MarkNotSpam(ctx, assetID)
}

var errMissingCoingeckoID = errors.New("missing CoinGecko id")

// UpdatePrice maps a resolved asset to its CoinGecko price source.
type UpdatePrice struct{}

func (UpdatePrice) Name() string { return "update-price" }

func (UpdatePrice) Required(row rows.Row) error {
	if row.CoingeckoID == "" {
		return errMissingCoingeckoID
	}
	return nil
}

func (UpdatePrice) Apply(ctx context.Context, client AssetClient, assetID string, row rows.Row) error {
	_, err := client.UpdatePrice(ctx, assetID, row.CoingeckoID, false)
	return err
}
