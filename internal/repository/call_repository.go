package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"callscan/internal/model"
)

type CallRepository struct {
	db *sql.DB
}

func NewCallRepository(db *sql.DB) *CallRepository {
	return &CallRepository{db: db}
}

// SaveRun replaces a handle's previous analysis with the new one in a
// single transaction: re-running an account must not leave stale call
// records behind.
func (r *CallRepository) SaveRun(stats *model.InfluencerStats, calls []model.CallRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM call_record WHERE handle = $1`, stats.Handle)
	if err != nil {
		return err
	}

	for i := range calls {
		c := &calls[i]
		err = tx.QueryRow(`
			INSERT INTO call_record(post_id, post_text, post_date, handle, ticker, call_type, sentiment,
				price_at_call, current_price, roi_percent, is_successful, confidence, rationale, chart_data, analyzed_at)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id
		`, c.PostID, c.PostText, c.PostDate, c.Handle, c.Ticker, c.CallType, c.Sentiment,
			c.PriceAtCall, c.CurrentPrice, c.RoiPercent, c.IsSuccessful, c.Confidence, c.Rationale,
			pq.Array(c.ChartData), c.AnalyzedAt).Scan(&c.ID)
		if err != nil {
			return err
		}
	}

	err = tx.QueryRow(`
		INSERT INTO influencer_stats(handle, total_posts, total_calls, successful_calls, failed_calls,
			success_rate, total_roi, avg_roi, hypothetical_pnl, analyzed_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (handle) DO UPDATE SET
			total_posts = EXCLUDED.total_posts,
			total_calls = EXCLUDED.total_calls,
			successful_calls = EXCLUDED.successful_calls,
			failed_calls = EXCLUDED.failed_calls,
			success_rate = EXCLUDED.success_rate,
			total_roi = EXCLUDED.total_roi,
			avg_roi = EXCLUDED.avg_roi,
			hypothetical_pnl = EXCLUDED.hypothetical_pnl,
			analyzed_at = EXCLUDED.analyzed_at
		RETURNING id
	`, stats.Handle, stats.TotalPosts, stats.TotalCalls, stats.SuccessfulCalls, stats.FailedCalls,
		stats.SuccessRate, stats.TotalRoi, stats.AvgRoi, stats.HypotheticalPnL, stats.AnalyzedAt).Scan(&stats.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *CallRepository) GetStatsByHandle(handle string) (*model.InfluencerStats, error) {
	var s model.InfluencerStats
	err := r.db.QueryRow(`
		SELECT id, handle, total_posts, total_calls, successful_calls, failed_calls,
			success_rate, total_roi, avg_roi, hypothetical_pnl, analyzed_at
		FROM influencer_stats
		WHERE handle = $1
	`, handle).Scan(&s.ID, &s.Handle, &s.TotalPosts, &s.TotalCalls, &s.SuccessfulCalls, &s.FailedCalls,
		&s.SuccessRate, &s.TotalRoi, &s.AvgRoi, &s.HypotheticalPnL, &s.AnalyzedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *CallRepository) GetLeaderboard(limit int) ([]model.InfluencerStats, error) {
	rows, err := r.db.Query(`
		SELECT id, handle, total_posts, total_calls, successful_calls, failed_calls,
			success_rate, total_roi, avg_roi, hypothetical_pnl, analyzed_at
		FROM influencer_stats
		ORDER BY hypothetical_pnl DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.InfluencerStats
	for rows.Next() {
		var s model.InfluencerStats
		err := rows.Scan(&s.ID, &s.Handle, &s.TotalPosts, &s.TotalCalls, &s.SuccessfulCalls, &s.FailedCalls,
			&s.SuccessRate, &s.TotalRoi, &s.AvgRoi, &s.HypotheticalPnL, &s.AnalyzedAt)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *CallRepository) GetCallsByHandle(handle string) ([]model.CallRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, post_id, post_text, post_date, handle, ticker, call_type, sentiment,
			price_at_call, current_price, roi_percent, is_successful, confidence, rationale, chart_data, analyzed_at
		FROM call_record
		WHERE handle = $1
		ORDER BY post_date DESC
	`, handle)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []model.CallRecord
	for rows.Next() {
		var c model.CallRecord
		var chart pq.Float64Array
		err := rows.Scan(&c.ID, &c.PostID, &c.PostText, &c.PostDate, &c.Handle, &c.Ticker, &c.CallType, &c.Sentiment,
			&c.PriceAtCall, &c.CurrentPrice, &c.RoiPercent, &c.IsSuccessful, &c.Confidence, &c.Rationale, &chart, &c.AnalyzedAt)
		if err != nil {
			return nil, err
		}
		c.ChartData = chart
		calls = append(calls, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return calls, nil
}
