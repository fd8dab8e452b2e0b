package analysis

import (
	"log/slog"
	"time"

	"callscan/internal/model"
	"callscan/pkg/classify"
	"callscan/pkg/price"
	"callscan/pkg/ticker"
)

// priceDelay spaces successive per-ticker price resolutions to stay
// under the provider's free-tier rate ceiling. Applied after every
// resolution, successful or not.
const priceDelay = 2 * time.Second

type PostClassifier interface {
	ClassifyAll(posts []classify.PostInput, batchSize int, progress func(done, total int)) map[string]classify.Verdict
}

type PriceSource interface {
	PriceComparison(ticker string, date time.Time) (*price.Quote, error)
	HistoricalSeries(ticker string, from, to time.Time) ([]float64, error)
}

// Result is everything one pipeline run produces for one handle.
type Result struct {
	Stats model.InfluencerStats
	Calls []model.CallRecord
}

// Analyzer drives the full pipeline: classify posts in batches, filter
// detected tickers through the allow-list, resolve prices and ROI per
// surviving (post, ticker), and roll up per-handle statistics.
//
// All network calls are issued sequentially; the fixed delays are what
// make the rate budget deterministic. Individual resolution failures
// never abort a run.
type Analyzer struct {
	classifier PostClassifier
	prices     PriceSource
	sleep      func(time.Duration)
	now        func() time.Time
}

func NewAnalyzer(classifier PostClassifier, prices PriceSource) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		prices:     prices,
		sleep:      time.Sleep,
		now:        time.Now,
	}
}

func (a *Analyzer) Run(posts []model.Post, handle string) *Result {
	slog.Info("analyzing posts", "handle", handle, "count", len(posts))

	inputs := make([]classify.PostInput, len(posts))
	for i, p := range posts {
		inputs[i] = classify.PostInput{
			ID:          p.ID,
			Text:        p.Text,
			Handle:      p.Handle,
			PublishedAt: p.PublishedAt,
		}
	}

	verdicts := a.classifier.ClassifyAll(inputs, classify.DefaultBatchSize, func(done, total int) {
		slog.Info("classification progress", "handle", handle, "done", done, "total", total)
	})

	var calls []model.CallRecord
	for _, post := range posts {
		verdict, ok := verdicts[post.ID]
		if !ok || !verdict.IsCall || len(verdict.Tickers) == 0 {
			continue
		}

		// The allow-list is a hard business filter: a flagged post
		// whose tickers all fall outside it does not count as a call
		// at all.
		kept := ticker.FilterAllowed(verdict.Tickers)
		if len(kept) == 0 {
			slog.Info("call dropped, no allow-listed tickers", "post_id", post.ID, "tickers", verdict.Tickers)
			continue
		}

		for _, raw := range kept {
			calls = append(calls, a.analyzeCall(post, ticker.Normalize(raw), verdict))
		}
	}

	stats := computeStats(handle, len(posts), calls, a.now())
	slog.Info("analysis complete",
		"handle", handle,
		"total_calls", stats.TotalCalls,
		"success_rate", stats.SuccessRate,
		"hypothetical_pnl", stats.HypotheticalPnL)

	return &Result{Stats: stats, Calls: calls}
}

// analyzeCall resolves prices for one (post, ticker) pair. A failed
// resolution leaves the price fields nil, which is a valid terminal
// state, not an error.
func (a *Analyzer) analyzeCall(post model.Post, canonical string, verdict classify.Verdict) model.CallRecord {
	rec := model.CallRecord{
		PostID:     post.ID,
		PostText:   post.Text,
		PostDate:   post.PublishedAt,
		Handle:     post.Handle,
		Ticker:     canonical,
		CallType:   verdict.CallType,
		Sentiment:  verdict.Sentiment,
		Confidence: verdict.Confidence,
		Rationale:  verdict.Rationale,
		AnalyzedAt: a.now(),
	}

	quote, err := a.prices.PriceComparison(canonical, post.PublishedAt)
	if err != nil {
		slog.Warn("price resolution failed", "ticker", canonical, "post_id", post.ID, "error", err)
	} else if quote.Price > 0 {
		priceAtCall := quote.Price
		rec.PriceAtCall = &priceAtCall

		if quote.CurrentPrice != nil {
			rec.CurrentPrice = quote.CurrentPrice

			roi := (*quote.CurrentPrice - priceAtCall) / priceAtCall * 100
			success := roi > 0
			rec.RoiPercent = &roi
			rec.IsSuccessful = &success

			series, serr := a.prices.HistoricalSeries(canonical, post.PublishedAt, a.now())
			if serr != nil {
				slog.Warn("chart fetch failed", "ticker", canonical, "error", serr)
			} else {
				rec.ChartData = series
			}
		} else {
			slog.Warn("no current price", "ticker", canonical, "post_id", post.ID)
		}
	}

	a.sleep(priceDelay)
	return rec
}
