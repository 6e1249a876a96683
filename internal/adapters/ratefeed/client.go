// Package ratefeed is the HTTP adapter for the external rate provider: one
// GET per refresh returning every rate relative to a base currency.
package ratefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL points at the open exchange-rate API; any provider returning
// the same {code: rate} shape works.
const DefaultBaseURL = "https://open.er-api.com/v6/latest"

// Client fetches base-relative rates over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a provider client. timeout bounds the whole request so a
// hung provider cannot hold the refresh guard indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchRates calls the provider for the given base currency and returns the
// decoded rate map. Rates are decoded through json.Number into decimals so no
// binary-float precision is lost.
func (c *Client) FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	type response struct {
		Result   string                 `json:"result"`
		BaseCode string                 `json:"base_code"`
		Rates    map[string]json.Number `json:"rates"`
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, baseCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("rate provider request: %w", err)
	}

	httpResponse, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate provider: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", httpResponse.StatusCode)
	}

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("reading provider response: %w", err)
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding provider response: %w", err)
	}
	if resp.Result != "" && resp.Result != "success" {
		return nil, fmt.Errorf("rate provider result %q", resp.Result)
	}

	rates := make(map[string]decimal.Decimal, len(resp.Rates))
	for code, raw := range resp.Rates {
		rate, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil, fmt.Errorf("bad rate value for %s: %w", code, err)
		}
		rates[code] = rate
	}
	return rates, nil
}
