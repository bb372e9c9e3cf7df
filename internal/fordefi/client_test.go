package fordefi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAsset_EVM(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/assets/asset-infos", r.URL.Path)
		require.Equal(t, "Bearer resolve-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			AssetIdentifier struct {
				Type    string `json:"type"`
				Details struct {
					Type  string `json:"type"`
					Token struct {
						Chain      string `json:"chain"`
						HexRepr    string `json:"hex_repr"`
						Base58Repr string `json:"base58_repr"`
					} `json:"token"`
				} `json:"details"`
			} `json:"asset_identifier"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "evm", req.AssetIdentifier.Type)
		assert.Equal(t, "erc20", req.AssetIdentifier.Details.Type)
		assert.Equal(t, "evm_56", req.AssetIdentifier.Details.Token.Chain)
		assert.Equal(t, "0xabc123", req.AssetIdentifier.Details.Token.HexRepr)
		assert.Empty(t, req.AssetIdentifier.Details.Token.Base58Repr)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id": "A1", "name": "TokenX", "symbol": "TKX",
		})
	}))
	defer server.Close()

	client := New(Credentials{AssetInfoToken: "resolve-token"}, WithBaseURL(server.URL))

	info, err := client.ResolveAsset(context.Background(), ChainBSC, "0xabc123")
	require.NoError(t, err)
	assert.Equal(t, "A1", info.ID)
	assert.Equal(t, "TokenX", info.Name)
	assert.Equal(t, "TKX", info.Symbol)
}

func TestResolveAsset_SolanaIdentifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AssetIdentifier struct {
				Type    string `json:"type"`
				Details struct {
					Type  string `json:"type"`
					Token struct {
						Chain      string `json:"chain"`
						HexRepr    string `json:"hex_repr"`
						Base58Repr string `json:"base58_repr"`
					} `json:"token"`
				} `json:"details"`
			} `json:"asset_identifier"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "solana", req.AssetIdentifier.Type)
		assert.Equal(t, "spl_token", req.AssetIdentifier.Details.Type)
		assert.Equal(t, "solana_mainnet", req.AssetIdentifier.Details.Token.Chain)
		assert.Equal(t, "So11111111111111111111111111111111111111112", req.AssetIdentifier.Details.Token.Base58Repr)
		assert.Empty(t, req.AssetIdentifier.Details.Token.HexRepr)

		json.NewEncoder(w).Encode(map[string]string{"id": "A2"})
	}))
	defer server.Close()

	client := New(Credentials{}, WithBaseURL(server.URL))

	info, err := client.ResolveAsset(context.Background(), ChainSolana, "So11111111111111111111111111111111111111112")
	require.NoError(t, err)
	assert.Equal(t, "A2", info.ID)
}

func TestResolveAsset_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := New(Credentials{}, WithBaseURL(server.URL))

	_, err := client.ResolveAsset(context.Background(), ChainBSC, "0xdead")
	require.ErrorIs(t, err, ErrAssetNotFound)
}

func TestResolveAsset_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(Credentials{}, WithBaseURL(server.URL))

	_, err := client.ResolveAsset(context.Background(), ChainBSC, "0xdead")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAssetNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestResolveAsset_MissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"name": "TokenX"})
	}))
	defer server.Close()

	client := New(Credentials{}, WithBaseURL(server.URL))

	_, err := client.ResolveAsset(context.Background(), ChainBSC, "0xabc")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestResolveAsset_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := New(Credentials{}, WithBaseURL(server.URL))

	_, err := client.ResolveAsset(context.Background(), ChainBSC, "0xabc")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
}

func TestMarkNotSpam(t *testing.T) {
	got := map[string]string{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/csm/assets/assets_mark_as_spam", r.URL.Path)
		require.Equal(t, "Bearer csm-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		got["asset_id"] = r.PostForm.Get("asset_id")
		got["spam"] = r.PostForm.Get("spam")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Credentials{PricingToken: "csm-token"}, WithBaseURL(server.URL))

	require.NoError(t, client.MarkNotSpam(context.Background(), "A1"))
	assert.Equal(t, "A1", got["asset_id"])
	assert.Equal(t, "false", got["spam"])
}

func TestMarkNotSpam_Idempotent(t *testing.T) {
	// The server treats re-clearing a clear flag as a no-op 200; two calls
	// in a row must both succeed.
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Credentials{}, WithBaseURL(server.URL))

	require.NoError(t, client.MarkNotSpam(context.Background(), "A1"))
	require.NoError(t, client.MarkNotSpam(context.Background(), "A1"))
	assert.Equal(t, 2, calls)
}

func TestMarkNotSpam_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := New(Credentials{}, WithBaseURL(server.URL))

	err := client.MarkNotSpam(context.Background(), "A1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestUpdatePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/csm/pricing/update_price", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "A1", r.PostForm.Get("asset_id"))
		assert.Equal(t, "", r.PostForm.Get("price"))
		assert.Equal(t, "tokenx", r.PostForm.Get("coingecko_id"))
		assert.Equal(t, "false", r.PostForm.Get("dry_run"))

		json.NewEncoder(w).Encode(map[string]string{"stdout": "updated 1 price"})
	}))
	defer server.Close()

	client := New(Credentials{}, WithBaseURL(server.URL))

	result, err := client.UpdatePrice(context.Background(), "A1", "tokenx", false)
	require.NoError(t, err)
	assert.Equal(t, "updated 1 price", result.Stdout)
}

func TestUpdatePrice_NoStdout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "queued"})
	}))
	defer server.Close()

	client := New(Credentials{}, WithBaseURL(server.URL))

	result, err := client.UpdatePrice(context.Background(), "A1", "tokenx", false)
	require.ErrorIs(t, err, ErrMalformedResponse)
	// The body is still returned so the caller can log it.
	require.NotNil(t, result)
	assert.Contains(t, string(result.Raw), "queued")
}

func TestParseChains(t *testing.T) {
	chains, err := ParseChains([]string{"evm_1", "evm_56", "solana_mainnet"})
	require.NoError(t, err)
	assert.Equal(t, []Chain{ChainEthereum, ChainBSC, ChainSolana}, chains)

	_, err = ParseChains([]string{"evm_1", "dogecoin"})
	require.Error(t, err)
}
