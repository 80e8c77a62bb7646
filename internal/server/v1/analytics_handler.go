package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/autorouter/internal/analytics"
	"github.com/nulzo/autorouter/internal/core/domain"
	"github.com/nulzo/autorouter/pkg/api"
)

type AnalyticsHandler struct {
	service analytics.Service
}

func NewAnalyticsHandler(service analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// GetStats summarises routing activity.
// GET /v1/stats?days=7
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		_ = c.Error(domain.InvalidInputError("Invalid 'days' parameter"))
		return
	}

	overview, err := h.service.GetUsageOverview(c.Request.Context(), days)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := api.StatsResponse{
		Days:       overview.Days,
		Daily:      make([]api.DailyStats, 0, len(overview.Daily)),
		Categories: make([]api.CategoryStats, 0, len(overview.Categories)),
		TopModels:  make([]api.ModelStats, 0, len(overview.TopModels)),
	}

	var latencyWeighted float64
	for _, d := range overview.Daily {
		resp.Daily = append(resp.Daily, api.DailyStats{
			Date:             d.Date,
			Requests:         d.TotalRequests,
			Errors:           d.ErrorRequests,
			PromptTokens:     d.PromptTokens,
			CompletionTokens: d.CompletionTokens,
			AvgLatencyMs:     d.AverageLatency,
		})
		resp.Totals.Requests += d.TotalRequests
		resp.Totals.Errors += d.ErrorRequests
		resp.Totals.PromptTokens += d.PromptTokens
		resp.Totals.CompletionTokens += d.CompletionTokens
		latencyWeighted += d.AverageLatency * float64(d.TotalRequests)
	}
	if resp.Totals.Requests > 0 {
		resp.Totals.AvgLatencyMs = latencyWeighted / float64(resp.Totals.Requests)
	}

	for _, cs := range overview.Categories {
		resp.Categories = append(resp.Categories, api.CategoryStats{
			Category:      cs.Category,
			Requests:      cs.TotalRequests,
			AvgConfidence: cs.AvgConfidence,
		})
	}
	for _, m := range overview.TopModels {
		resp.TopModels = append(resp.TopModels, api.ModelStats{ModelID: m.ModelID, Requests: m.TotalRequests})
	}

	c.JSON(http.StatusOK, resp)
}
