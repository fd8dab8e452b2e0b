package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"callscan/internal/model"
)

const defaultLeaderboardLimit = 50

type CallStore interface {
	GetLeaderboard(limit int) ([]model.InfluencerStats, error)
	GetStatsByHandle(handle string) (*model.InfluencerStats, error)
	GetCallsByHandle(handle string) ([]model.CallRecord, error)
}

type CallHandler struct {
	repository CallStore
}

func NewCallHandler(repository CallStore) *CallHandler {
	return &CallHandler{repository: repository}
}

func (h *CallHandler) GetLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	stats, err := h.repository.GetLeaderboard(limit)
	if err != nil {
		slog.Error("error fetching leaderboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	influencers := make([]StatsResponse, 0, len(stats))
	for _, s := range stats {
		influencers = append(influencers, statsResponse(&s))
	}

	c.JSON(http.StatusOK, LeaderboardResponse{
		Influencers: influencers,
		Total:       len(influencers),
	})
}

func (h *CallHandler) GetStats(c *gin.Context) {
	handle := c.Param("handle")

	stats, err := h.repository.GetStatsByHandle(handle)
	if err != nil {
		slog.Error("error fetching stats", "handle", handle, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Handle not analyzed"})
		return
	}

	c.JSON(http.StatusOK, statsResponse(stats))
}

func (h *CallHandler) GetCalls(c *gin.Context) {
	handle := c.Param("handle")

	calls, err := h.repository.GetCallsByHandle(handle)
	if err != nil {
		slog.Error("error fetching calls", "handle", handle, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := CallsResponse{Handle: handle, Calls: make([]CallResponse, 0, len(calls)), Total: len(calls)}
	for _, call := range calls {
		res.Calls = append(res.Calls, CallResponse{
			ID:           call.ID,
			PostID:       call.PostID,
			PostText:     call.PostText,
			PostDate:     call.PostDate.Format(time.RFC3339),
			Ticker:       call.Ticker,
			CallType:     call.CallType,
			Sentiment:    call.Sentiment,
			PriceAtCall:  call.PriceAtCall,
			CurrentPrice: call.CurrentPrice,
			RoiPercent:   call.RoiPercent,
			IsSuccessful: call.IsSuccessful,
			Confidence:   call.Confidence,
			Rationale:    call.Rationale,
			ChartData:    call.ChartData,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *CallHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func statsResponse(s *model.InfluencerStats) StatsResponse {
	return StatsResponse{
		Handle:          s.Handle,
		TotalPosts:      s.TotalPosts,
		TotalCalls:      s.TotalCalls,
		SuccessfulCalls: s.SuccessfulCalls,
		FailedCalls:     s.FailedCalls,
		SuccessRate:     s.SuccessRate,
		TotalRoi:        s.TotalRoi,
		AvgRoi:          s.AvgRoi,
		HypotheticalPnL: s.HypotheticalPnL,
		AnalyzedAt:      s.AnalyzedAt.Format(time.RFC3339),
	}
}
