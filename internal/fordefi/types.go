package fordefi

import "encoding/json"

// AssetInfo is the subset of the asset-infos response this tool consumes.
type AssetInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// PriceUpdate is the result of an update_price call. Stdout carries the
// pricing job's captured output; Raw holds the full response body for
// diagnostics.
type PriceUpdate struct {
	Stdout string          `json:"stdout"`
	Raw    json.RawMessage `json:"-"`
}

// assetIdentifier mirrors the asset-infos request body. The details shape
// depends on the chain family: erc20/hex_repr for EVM chains,
// spl_token/base58_repr for Solana.
type assetIdentifier struct {
	Type    string            `json:"type"`
	Details identifierDetails `json:"details"`
}

type identifierDetails struct {
	Type  string   `json:"type"`
	Token tokenRef `json:"token"`
}

type tokenRef struct {
	Chain      string `json:"chain"`
	HexRepr    string `json:"hex_repr,omitempty"`
	Base58Repr string `json:"base58_repr,omitempty"`
}

// newAssetIdentifier builds the chain-appropriate identifier for an address.
// Addresses are passed through opaquely; format validation is the server's
// concern.
func newAssetIdentifier(chain Chain, address string) assetIdentifier {
	if chain.IsSolana() {
		return assetIdentifier{
			Type: "solana",
			Details: identifierDetails{
				Type: "spl_token",
				Token: tokenRef{
					Chain:      chain.String(),
					Base58Repr: address,
				},
			},
		}
	}
	return assetIdentifier{
		Type: "evm",
		Details: identifierDetails{
			Type: "erc20",
			Token: tokenRef{
				Chain:   chain.String(),
				HexRepr: address,
			},
		},
	}
}
