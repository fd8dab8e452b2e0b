package price

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"callscan/pkg/ticker"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"
	maxAttempts    = 3
	maxChartPoints = 50
)

// ErrUnknownTicker marks a ticker with no CoinGecko id. Retrying
// cannot help, so callers see it immediately.
var ErrUnknownTicker = errors.New("no price source for ticker")

// StatusError preserves the provider's HTTP status for diagnostics.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("coingecko status %d", e.Status)
}

// Quote is a historical price for a (ticker, date) pair, optionally
// augmented with the asset's current price.
type Quote struct {
	CoinID       string
	Date         string
	Price        float64
	CurrentPrice *float64
}

// Client resolves tickers to USD prices against the CoinGecko API.
// Historical quotes go through the injected Cache; current prices are
// always fetched fresh. The client does not pace its own requests,
// callers own the spacing between calls.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      Cache
	sleep      func(time.Duration)
}

func NewClient(apiKey string, cache Cache) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
		sleep:      time.Sleep,
	}
}

func (c *Client) get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}
	return c.httpClient.Do(req)
}

// CurrentPrice returns the asset's current USD price. Any failure
// yields (0, false), never an error: a missing current price is a
// valid terminal state for a call record.
func (c *Client) CurrentPrice(raw string) (float64, bool) {
	coinID, ok := CoinID(raw)
	if !ok {
		return 0, false
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, coinID)
	resp, err := c.get(url)
	if err != nil {
		slog.Error("coingecko current price fetch failed", "coin_id", coinID, "error", err)
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		slog.Error("coingecko current price decode failed", "coin_id", coinID, "error", err)
		return 0, false
	}

	price, ok := data[coinID]["usd"]
	if !ok || price == 0 {
		return 0, false
	}
	return price, true
}

// HistoricalPrice returns the asset's USD price at the given calendar
// date. Cached pairs are served without a network call; on a miss the
// provider is queried with up to 3 attempts, backing off exponentially
// (2s, 4s, 8s) on 429. A successful fetch is flushed to the cache
// before returning.
func (c *Client) HistoricalPrice(raw string, date time.Time) (*Quote, error) {
	coinID, ok := CoinID(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker.Normalize(raw))
	}

	dateStr := date.Format("02-01-2006")
	cacheKey := coinID + "-" + dateStr

	if cached, ok := c.cache.Get(cacheKey); ok {
		return &Quote{CoinID: coinID, Date: dateStr, Price: cached}, nil
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		quote, retry, err := c.fetchHistorical(coinID, dateStr, attempt)
		if err == nil {
			if cerr := c.cache.Put(cacheKey, quote.Price); cerr != nil {
				slog.Error("price cache flush failed", "key", cacheKey, "error", cerr)
			}
			return quote, nil
		}
		if !retry || attempt == maxAttempts {
			return nil, err
		}
	}
	return nil, fmt.Errorf("coingecko history %s: max attempts exceeded", coinID)
}

// fetchHistorical performs one provider request. The retry return
// tells HistoricalPrice whether another attempt may succeed; the wait
// before that attempt has already been slept here.
func (c *Client) fetchHistorical(coinID, dateStr string, attempt int) (*Quote, bool, error) {
	url := fmt.Sprintf("%s/coins/%s/history?date=%s", c.baseURL, coinID, dateStr)
	resp, err := c.get(url)
	if err != nil {
		slog.Error("coingecko history fetch failed", "coin_id", coinID, "attempt", attempt, "error", err)
		c.sleep(time.Duration(attempt) * time.Second)
		return nil, true, fmt.Errorf("coingecko history %s: %w", coinID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		wait := time.Duration(1<<attempt) * time.Second
		slog.Warn("coingecko rate limited", "coin_id", coinID, "attempt", attempt, "wait", wait)
		c.sleep(wait)
		return nil, true, fmt.Errorf("coingecko history %s: %w", coinID, &StatusError{Status: resp.StatusCode})
	}

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("coingecko history %s: %w", coinID, &StatusError{Status: resp.StatusCode})
	}

	var data struct {
		MarketData struct {
			CurrentPrice struct {
				USD *float64 `json:"usd"`
			} `json:"current_price"`
		} `json:"market_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, false, fmt.Errorf("coingecko history decode %s: %w", coinID, err)
	}

	if data.MarketData.CurrentPrice.USD == nil {
		return nil, false, fmt.Errorf("coingecko history %s: no price data for %s", coinID, dateStr)
	}

	return &Quote{CoinID: coinID, Date: dateStr, Price: *data.MarketData.CurrentPrice.USD}, false, nil
}

// PriceComparison resolves the historical price and, only if that
// succeeded, the current price. The current price staying nil is not
// an error.
func (c *Client) PriceComparison(raw string, date time.Time) (*Quote, error) {
	quote, err := c.HistoricalPrice(raw, date)
	if err != nil {
		return nil, err
	}

	if current, ok := c.CurrentPrice(raw); ok {
		quote.CurrentPrice = &current
	}
	return quote, nil
}

// HistoricalSeries fetches USD prices over [from, to], downsampled to
// at most 50 points for charting.
func (c *Client) HistoricalSeries(raw string, from, to time.Time) ([]float64, error) {
	coinID, ok := CoinID(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker.Normalize(raw))
	}

	url := fmt.Sprintf("%s/coins/%s/market_chart/range?vs_currency=usd&from=%d&to=%d",
		c.baseURL, coinID, from.Unix(), to.Unix())

	resp, err := c.get(url)
	if err != nil {
		return nil, fmt.Errorf("coingecko chart %s: %w", coinID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko chart %s: %w", coinID, &StatusError{Status: resp.StatusCode})
	}

	var data struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("coingecko chart decode %s: %w", coinID, err)
	}

	prices := make([]float64, 0, len(data.Prices))
	for _, p := range data.Prices {
		if len(p) == 2 {
			prices = append(prices, p[1])
		}
	}

	return downsample(prices), nil
}

// downsample keeps every stride-th sample, stride = ceil(n/50). The
// result is a coarse sketch for sparklines, not a faithful resampling;
// stored artifacts depend on this exact stride rule.
func downsample(prices []float64) []float64 {
	if len(prices) <= maxChartPoints {
		return prices
	}

	stride := (len(prices) + maxChartPoints - 1) / maxChartPoints
	var out []float64
	for i := 0; i < len(prices); i += stride {
		out = append(out, prices[i])
	}
	return out
}
