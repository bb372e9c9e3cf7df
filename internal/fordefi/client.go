// Package fordefi is a minimal client for the two Fordefi endpoints this
// tool drives: asset resolution and CSM mutations (spam flag, price source).
// Calls are single-attempt; retry policy belongs to the caller, and blind
// re-runs are safe because the mutations are idempotent.
package fordefi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production Fordefi API host.
	DefaultBaseURL = "https://api.fordefi.com"

	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second

	assetInfosPath  = "/api/v1/assets/asset-infos"
	markSpamPath    = "/csm/assets/assets_mark_as_spam"
	updatePricePath = "/csm/pricing/update_price"

	// Error bodies are truncated to keep log lines readable.
	maxErrorBody = 512
)

// Credentials carries the two bearer tokens: one scoped to asset
// resolution, one scoped to the CSM mutation endpoints.
type Credentials struct {
	AssetInfoToken string
	PricingToken   string
}

// Client talks to the Fordefi API.
type Client struct {
	baseURL string
	creds   Credentials
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// New creates a Fordefi API client.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveAsset looks up the internal asset id for an address on a chain.
// Returns an error wrapping ErrAssetNotFound on 404, an *APIError on any
// other failure, and an error wrapping ErrMalformedResponse when a 2xx
// body lacks the asset id.
func (c *Client) ResolveAsset(ctx context.Context, chain Chain, address string) (*AssetInfo, error) {
	payload := struct {
		AssetIdentifier assetIdentifier `json:"asset_identifier"`
	}{newAssetIdentifier(chain, address)}

	status, body, err := c.postJSON(ctx, assetInfosPath, c.creds.AssetInfoToken, payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%s on %s: %w", address, chain, ErrAssetNotFound)
	}
	if status < 200 || status > 299 {
		return nil, &APIError{Endpoint: assetInfosPath, Status: status, Body: truncate(body)}
	}

	var info AssetInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("%w: no asset id in body %s", ErrMalformedResponse, truncate(body))
	}
	return &info, nil
}

// MarkNotSpam clears the spam classification on an asset. The operation is
// idempotent server-side; clearing an already-clear flag is a no-op.
func (c *Client) MarkNotSpam(ctx context.Context, assetID string) error {
	form := url.Values{
		"asset_id": {assetID},
		"spam":     {"false"},
	}

	status, body, err := c.postForm(ctx, markSpamPath, c.creds.PricingToken, form)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{Endpoint: markSpamPath, Status: status, Body: truncate(body)}
	}
	return nil
}

// UpdatePrice maps an asset to a CoinGecko price source. The price field is
// sent blank so the server derives it from the supplied id. A 200 response
// whose body carries no captured output is reported as an error wrapping
// ErrMalformedResponse; the caller decides how hard to treat it.
func (c *Client) UpdatePrice(ctx context.Context, assetID, coingeckoID string, dryRun bool) (*PriceUpdate, error) {
	form := url.Values{
		"asset_id":     {assetID},
		"price":        {""},
		"coingecko_id": {coingeckoID},
		"dry_run":      {strconv.FormatBool(dryRun)},
	}

	status, body, err := c.postForm(ctx, updatePricePath, c.creds.PricingToken, form)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{Endpoint: updatePricePath, Status: status, Body: truncate(body)}
	}

	var result PriceUpdate
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	result.Raw = json.RawMessage(body)
	if result.Stdout == "" {
		return &result, fmt.Errorf("%w: no stdout in body %s", ErrMalformedResponse, truncate(body))
	}
	return &result, nil
}

func (c *Client) postJSON(ctx context.Context, path, token string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.post(ctx, path, token, "application/json", bytes.NewReader(body))
}

func (c *Client) postForm(ctx context.Context, path, token string, form url.Values) (int, []byte, error) {
	return c.post(ctx, path, token, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (c *Client) post(ctx context.Context, path, token, contentType string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &APIError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &APIError{Endpoint: path, Err: fmt.Errorf("read response: %w", err)}
	}
	return resp.StatusCode, respBody, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
