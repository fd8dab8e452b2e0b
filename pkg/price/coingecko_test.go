package price

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type fakeProvider struct {
	historyCalls int
	currentCalls int
	chartCalls   int
	historyCodes []int
	historyPrice float64
	currentPrice float64
	chartPrices  [][]float64
}

func (p *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/coins/", func(w http.ResponseWriter, r *http.Request) {
		if filepath.Base(r.URL.Path) == "range" {
			p.chartCalls++
			json.NewEncoder(w).Encode(map[string]interface{}{"prices": p.chartPrices})
			return
		}

		p.historyCalls++
		code := http.StatusOK
		if len(p.historyCodes) > 0 {
			code = p.historyCodes[0]
			p.historyCodes = p.historyCodes[1:]
		}
		if code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		fmt.Fprintf(w, `{"market_data":{"current_price":{"usd":%f}}}`, p.historyPrice)
	})

	mux.HandleFunc("/simple/price", func(w http.ResponseWriter, r *http.Request) {
		p.currentCalls++
		fmt.Fprintf(w, `{"solana":{"usd":%f},"jupiter-exchange-solana":{"usd":%f}}`, p.currentPrice, p.currentPrice)
	})

	return mux
}

func newTestClient(t *testing.T, p *fakeProvider) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(p.handler())
	t.Cleanup(srv.Close)

	var sleeps []time.Duration
	c := &Client{
		baseURL:    srv.URL,
		httpClient: srv.Client(),
		cache:      MemoryCache{},
		sleep:      func(d time.Duration) { sleeps = append(sleeps, d) },
	}
	return c, &sleeps
}

func TestHistoricalPriceCachesResult(t *testing.T) {
	p := &fakeProvider{historyPrice: 142.5}
	c, _ := newTestClient(t, p)

	date := time.Date(2025, time.October, 22, 12, 19, 30, 0, time.UTC)

	first, err := c.HistoricalPrice("SOL", date)
	assert.Equal(t, nil, err)
	assert.Equal(t, 142.5, first.Price)
	assert.Equal(t, "22-10-2025", first.Date)
	assert.Equal(t, "solana", first.CoinID)
	assert.Equal(t, 1, p.historyCalls)

	second, err := c.HistoricalPrice("SOL", date)
	assert.Equal(t, nil, err)
	assert.Equal(t, 142.5, second.Price)
	// served from cache, no second network request
	assert.Equal(t, 1, p.historyCalls)
}

func TestHistoricalPriceRateLimitBackoff(t *testing.T) {
	p := &fakeProvider{
		historyPrice: 2.5,
		historyCodes: []int{http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusOK},
	}
	c, sleeps := newTestClient(t, p)

	quote, err := c.HistoricalPrice("JUP", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, nil, err)
	assert.Equal(t, 2.5, quote.Price)
	assert.Equal(t, 3, p.historyCalls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *sleeps)
}

func TestHistoricalPriceRateLimitExhausted(t *testing.T) {
	p := &fakeProvider{
		historyCodes: []int{http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests},
	}
	c, _ := newTestClient(t, p)

	_, err := c.HistoricalPrice("SOL", time.Now())

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 3, p.historyCalls)

	var statusErr *StatusError
	assert.Equal(t, true, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Status)
}

func TestHistoricalPriceServerErrorNoRetry(t *testing.T) {
	p := &fakeProvider{historyCodes: []int{http.StatusInternalServerError}}
	c, _ := newTestClient(t, p)

	_, err := c.HistoricalPrice("SOL", time.Now())

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 1, p.historyCalls)

	var statusErr *StatusError
	assert.Equal(t, true, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
}

func TestHistoricalPriceUnknownTicker(t *testing.T) {
	p := &fakeProvider{}
	c, _ := newTestClient(t, p)

	_, err := c.HistoricalPrice("SOMEMICROCAP", time.Now())

	assert.Equal(t, true, errors.Is(err, ErrUnknownTicker))
	assert.Equal(t, 0, p.historyCalls)
}

func TestJupiterAliasHitsSameCacheEntry(t *testing.T) {
	p := &fakeProvider{historyPrice: 1.25}
	c, _ := newTestClient(t, p)

	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	first, err := c.HistoricalPrice("JUPITER", date)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, p.historyCalls)

	second, err := c.HistoricalPrice("$JUP", date)
	assert.Equal(t, nil, err)
	assert.Equal(t, first.CoinID, second.CoinID)
	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, 1, p.historyCalls)
}

func TestPriceComparison(t *testing.T) {
	p := &fakeProvider{historyPrice: 100, currentPrice: 150}
	c, _ := newTestClient(t, p)

	quote, err := c.PriceComparison("SOL", time.Now())

	assert.Equal(t, nil, err)
	assert.Equal(t, 100.0, quote.Price)
	assert.NotEqual(t, nil, quote.CurrentPrice)
	assert.Equal(t, 150.0, *quote.CurrentPrice)
}

func TestPriceComparisonShortCircuitsOnHistoricalFailure(t *testing.T) {
	p := &fakeProvider{historyCodes: []int{http.StatusNotFound}}
	c, _ := newTestClient(t, p)

	_, err := c.PriceComparison("SOL", time.Now())

	assert.NotEqual(t, nil, err)
	// current price must not be fetched when historical failed
	assert.Equal(t, 0, p.currentCalls)
}

func TestHistoricalSeries(t *testing.T) {
	chart := make([][]float64, 120)
	for i := range chart {
		chart[i] = []float64{float64(i * 1000), float64(i)}
	}
	p := &fakeProvider{chartPrices: chart}
	c, _ := newTestClient(t, p)

	prices, err := c.HistoricalSeries("SOL", time.Now().AddDate(0, -1, 0), time.Now())

	assert.Equal(t, nil, err)
	assert.Equal(t, 40, len(prices))
	assert.Equal(t, 0.0, prices[0])
	assert.Equal(t, 1, p.chartCalls)
}

func TestDownsample(t *testing.T) {
	short := []float64{1, 2, 3}
	assert.Equal(t, short, downsample(short))

	exact := make([]float64, 50)
	assert.Equal(t, 50, len(downsample(exact)))

	for _, n := range []int{51, 73, 100, 101, 500, 5000} {
		in := make([]float64, n)
		for i := range in {
			in[i] = float64(i)
		}
		out := downsample(in)
		if len(out) > 50 {
			t.Fatalf("n=%d: got %d points, want <= 50", n, len(out))
		}
		assert.Equal(t, 0.0, out[0])
	}

	// stride = ceil(120/50) = 3, keep every 3rd sample
	in := make([]float64, 120)
	for i := range in {
		in[i] = float64(i)
	}
	out := downsample(in)
	assert.Equal(t, 40, len(out))
	assert.Equal(t, 3.0, out[1])
	assert.Equal(t, 117.0, out[len(out)-1])
}

func TestCoinID(t *testing.T) {
	id, ok := CoinID("$btc")
	assert.Equal(t, true, ok)
	assert.Equal(t, "bitcoin", id)

	id, ok = CoinID("JUPITER")
	assert.Equal(t, true, ok)
	assert.Equal(t, "jupiter-exchange-solana", id)

	_, ok = CoinID("SOMEMICROCAP")
	assert.Equal(t, false, ok)
}
