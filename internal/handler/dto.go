package handler

type StatsResponse struct {
	Handle          string  `json:"handle"`
	TotalPosts      int     `json:"total_posts"`
	TotalCalls      int     `json:"total_calls"`
	SuccessfulCalls int     `json:"successful_calls"`
	FailedCalls     int     `json:"failed_calls"`
	SuccessRate     float64 `json:"success_rate"`
	TotalRoi        float64 `json:"total_roi"`
	AvgRoi          float64 `json:"avg_roi"`
	HypotheticalPnL float64 `json:"hypothetical_pnl"`
	AnalyzedAt      string  `json:"analyzed_at"`
}

type LeaderboardResponse struct {
	Influencers []StatsResponse `json:"influencers"`
	Total       int             `json:"total"`
}

type CallResponse struct {
	ID           int64     `json:"id"`
	PostID       string    `json:"post_id"`
	PostText     string    `json:"post_text"`
	PostDate     string    `json:"post_date"`
	Ticker       string    `json:"ticker"`
	CallType     string    `json:"call_type"`
	Sentiment    string    `json:"sentiment"`
	PriceAtCall  *float64  `json:"price_at_call"`
	CurrentPrice *float64  `json:"current_price"`
	RoiPercent   *float64  `json:"roi_percent"`
	IsSuccessful *bool     `json:"is_successful"`
	Confidence   int       `json:"confidence"`
	Rationale    string    `json:"rationale,omitempty"`
	ChartData    []float64 `json:"chart_data,omitempty"`
}

type CallsResponse struct {
	Handle string         `json:"handle"`
	Calls  []CallResponse `json:"calls"`
	Total  int            `json:"total"`
}
