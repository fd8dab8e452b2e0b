package model

import "time"

// CallRecord is one detected trading call for one (post, ticker) pair.
// Price fields are nil when resolution failed; ROI and success are
// derived and present only when both prices are present.
type CallRecord struct {
	ID           int64
	PostID       string
	PostText     string
	PostDate     time.Time
	Handle       string
	Ticker       string
	CallType     string
	Sentiment    string
	PriceAtCall  *float64
	CurrentPrice *float64
	RoiPercent   *float64
	IsSuccessful *bool
	Confidence   int
	Rationale    string
	ChartData    []float64
	AnalyzedAt   time.Time
}

// Resolved reports whether both prices were obtained for this record.
func (c *CallRecord) Resolved() bool {
	return c.RoiPercent != nil
}

type InfluencerStats struct {
	ID              int64
	Handle          string
	TotalPosts      int
	TotalCalls      int
	SuccessfulCalls int
	FailedCalls     int
	SuccessRate     float64
	TotalRoi        float64
	AvgRoi          float64
	HypotheticalPnL float64
	AnalyzedAt      time.Time
}
