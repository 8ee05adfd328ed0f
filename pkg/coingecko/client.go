// Package coingecko is a minimal client for the CoinGecko markets API.
package coingecko

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrFetchFailed is wrapped by every error returned from Markets.
var ErrFetchFailed = errors.New("market data fetch failed")

// Coin is one entry of a /coins/markets response. The percentage-change
// fields are pointers because the API returns null for coins younger than
// the look-back window.
type Coin struct {
	ID             string           `json:"id"`
	Symbol         string           `json:"symbol"`
	Name           string           `json:"name"`
	CurrentPrice   decimal.Decimal  `json:"current_price"`
	PriceChange24h *decimal.Decimal `json:"price_change_percentage_24h_in_currency"`
	PriceChange7d  *decimal.Decimal `json:"price_change_percentage_7d_in_currency"`
	PriceChange30d *decimal.Decimal `json:"price_change_percentage_30d_in_currency"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL
// (e.g. "https://api.coingecko.com/api/v3").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Markets fetches current USD price plus 24h/7d/30d percentage changes for
// all requested coin ids in one batch call. Ids unknown to the API are
// simply absent from the result. No retries are attempted.
func (c *Client) Markets(ctx context.Context, ids []string) ([]Coin, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("ids", strings.Join(ids, ","))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(len(ids)))
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "24h,7d,30d")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/coins/markets?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status %d: %s",
			ErrFetchFailed, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var coins []Coin
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrFetchFailed, err)
	}
	return coins, nil
}
