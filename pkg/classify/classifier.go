package classify

import (
	"log/slog"
	"time"
)

const (
	DefaultBatchSize = 20
	batchDelay       = time.Second
)

// Classifier turns batches of posts into per-post verdicts by
// delegating to a text-generation backend. It never returns a hard
// error: any request or parse failure degrades to a default
// "no call detected" verdict, which is the safe direction.
type Classifier struct {
	backend Backend
	sleep   func(time.Duration)
}

func NewClassifier(backend Backend) *Classifier {
	return &Classifier{backend: backend, sleep: time.Sleep}
}

func defaultVerdict() Verdict {
	return Verdict{
		IsCall:    false,
		CallType:  CallTypeOther,
		Sentiment: SentimentNeutral,
		Tickers:   []string{},
	}
}

// ClassifyBatch issues exactly one backend request for the whole batch
// and guarantees an entry for every input post id.
func (c *Classifier) ClassifyBatch(posts []PostInput) map[string]Verdict {
	results := make(map[string]Verdict, len(posts))
	if len(posts) == 0 {
		return results
	}

	content, err := c.backend.Complete(systemPrompt, formatBatchPrompt(posts))
	if err != nil {
		slog.Error("classification request failed", "backend", c.backend.Name(), "batch_size", len(posts), "error", err)
	} else {
		items, perr := parseBatchReply(content)
		if perr != nil {
			slog.Error("classification reply unparseable", "backend", c.backend.Name(), "error", perr)
		}
		for _, item := range items {
			results[item.PostID] = verdictFromItem(item)
		}
	}

	// Posts the reply omitted get the conservative default.
	for _, p := range posts {
		if _, ok := results[p.ID]; !ok {
			results[p.ID] = defaultVerdict()
		}
	}

	return results
}

// verdictFromItem applies the is-call invariant: only spot_buy and
// long count as calls, whatever the backend's own flag says.
func verdictFromItem(item batchItem) Verdict {
	callType := item.CallType
	if callType == "" {
		callType = CallTypeOther
	}
	sentiment := item.Sentiment
	if sentiment == "" {
		sentiment = SentimentNeutral
	}
	tickers := item.Tickers
	if tickers == nil {
		tickers = []string{}
	}

	return Verdict{
		IsCall:     item.IsCall && (callType == CallTypeSpotBuy || callType == CallTypeLong),
		CallType:   callType,
		Confidence: item.Confidence,
		Tickers:    tickers,
		Sentiment:  sentiment,
		Rationale:  item.Reasoning,
	}
}

// ClassifyAll slices posts into fixed-size batches, merges the per-
// batch results and reports cumulative progress. A fixed delay
// separates successive batches to respect backend throughput limits.
func (c *Classifier) ClassifyAll(posts []PostInput, batchSize int, progress func(done, total int)) map[string]Verdict {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	all := make(map[string]Verdict, len(posts))
	for i := 0; i < len(posts); i += batchSize {
		end := i + batchSize
		if end > len(posts) {
			end = len(posts)
		}

		batch := posts[i:end]
		slog.Info("classifying batch", "batch", i/batchSize+1, "size", len(batch), "total", len(posts))

		calls := 0
		for id, v := range c.ClassifyBatch(batch) {
			all[id] = v
			if v.IsCall {
				calls++
			}
		}
		slog.Info("batch classified", "batch", i/batchSize+1, "calls", calls)

		if progress != nil {
			progress(end, len(posts))
		}

		if end < len(posts) {
			c.sleep(batchDelay)
		}
	}

	return all
}
