package analysis

import (
	"time"

	"callscan/internal/model"
)

// stakePerCall is the fixed hypothetical stake, in the accounting
// currency, assumed for every resolved call.
const stakePerCall = 100.0

// computeStats rolls up one run. Success rate, ROI sums and the
// hypothetical PnL are computed over resolved records only; records
// with unresolved prices count toward totalCalls but nothing else.
func computeStats(handle string, totalPosts int, calls []model.CallRecord, analyzedAt time.Time) model.InfluencerStats {
	stats := model.InfluencerStats{
		Handle:     handle,
		TotalPosts: totalPosts,
		TotalCalls: len(calls),
		AnalyzedAt: analyzedAt,
	}

	resolved := 0
	for _, c := range calls {
		if !c.Resolved() {
			continue
		}
		resolved++

		roi := *c.RoiPercent
		stats.TotalRoi += roi
		stats.HypotheticalPnL += stakePerCall * roi / 100

		if *c.IsSuccessful {
			stats.SuccessfulCalls++
		} else {
			stats.FailedCalls++
		}
	}

	if resolved > 0 {
		stats.SuccessRate = float64(stats.SuccessfulCalls) / float64(resolved) * 100
		stats.AvgRoi = stats.TotalRoi / float64(resolved)
	}

	return stats
}
