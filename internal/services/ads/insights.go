package ads

import (
	"context"
	"net/http"

	"github.com/praecolabs/praeco/internal/graph"
	"github.com/praecolabs/praeco/internal/tools"
)

const insightsFields = "impressions,clicks,ctr,spend,reach,frequency,cpm,cpp,cpc,actions,action_values,conversions,cost_per_action_type,cost_per_conversion,website_purchase_roas"

// datePresets maps the accepted time range names to Graph API date presets.
var datePresets = map[string]string{
	"today":        "today",
	"yesterday":    "yesterday",
	"last_7_days":  "last_7d",
	"last_30_days": "last_30d",
}

// GetInsights returns performance metrics for a campaign, ad set or ad over
// a preset time range (default last_30_days).
func (s *Service) GetInsights(ctx context.Context, token, objectID, timeRange string) (map[string]interface{}, error) {
	if objectID == "" {
		return nil, tools.NewValidationError("object_id", "is required")
	}

	if timeRange == "" {
		timeRange = "last_30_days"
	}
	preset, ok := datePresets[timeRange]
	if !ok {
		return nil, tools.NewValidationError("time_range", "must be one of today, yesterday, last_7_days, last_30_days")
	}

	return s.graph.Execute(ctx, http.MethodGet, objectID+"/insights", token, graph.Params{
		"date_preset": preset,
		"fields":      insightsFields,
	})
}
