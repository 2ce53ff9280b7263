package ads

import (
	"context"
	"net/http"

	"github.com/praecolabs/praeco/internal/graph"
	"github.com/praecolabs/praeco/internal/tools"
)

const (
	adsetListFields   = "id,name,campaign_id,status,daily_budget,lifetime_budget,targeting,bid_amount,bid_strategy,optimization_goal,billing_event,start_time,end_time,created_time,updated_time,frequency_control_specs{event,interval_days,max_frequency}"
	adsetDetailFields = "id,name,campaign_id,status,frequency_control_specs{event,interval_days,max_frequency},daily_budget,lifetime_budget,targeting,bid_amount,bid_strategy,optimization_goal,billing_event,start_time,end_time,created_time,updated_time,attribution_spec,destination_type,promoted_object,pacing_type,budget_remaining"
)

// CreateAdSetRequest holds every field the ad set create operation accepts.
type CreateAdSetRequest struct {
	AccountID        string                 `json:"account_id" validate:"required"`
	CampaignID       string                 `json:"campaign_id" validate:"required"`
	Name             string                 `json:"name" validate:"required"`
	OptimizationGoal string                 `json:"optimization_goal" validate:"required"`
	BillingEvent     string                 `json:"billing_event" validate:"required"`
	Status           string                 `json:"status"`
	DailyBudget      *int64                 `json:"daily_budget"`
	LifetimeBudget   *int64                 `json:"lifetime_budget"`
	Targeting        map[string]interface{} `json:"targeting"`
	BidAmount        *int64                 `json:"bid_amount"`
	BidStrategy      string                 `json:"bid_strategy"`
	StartTime        string                 `json:"start_time"`
	EndTime          string                 `json:"end_time"`
}

// UpdateAdSetRequest holds the fields the update operation can change. At
// least one must be set.
type UpdateAdSetRequest struct {
	AdSetID               string                   `json:"adset_id" validate:"required"`
	FrequencyControlSpecs []map[string]interface{} `json:"frequency_control_specs"`
	BidStrategy           string                   `json:"bid_strategy"`
	BidAmount             *int64                   `json:"bid_amount"`
	Status                string                   `json:"status"`
	Targeting             map[string]interface{}   `json:"targeting"`
	OptimizationGoal      string                   `json:"optimization_goal"`
}

// defaultTargeting is applied when a create request carries no targeting
// spec: broad US adults with automatic audience finding enabled.
func defaultTargeting() map[string]interface{} {
	return map[string]interface{}{
		"age_min":              18,
		"age_max":              65,
		"geo_locations":        map[string]interface{}{"countries": []string{"US"}},
		"targeting_automation": map[string]interface{}{"advantage_audience": 1},
	}
}

// GetAdSets lists ad sets. A campaign filter is expressed through the
// campaign's own sub-resource path, never as a query parameter; only when
// no filter is given does the account collection path apply.
func (s *Service) GetAdSets(ctx context.Context, token, accountID, campaignID string, limit int) (map[string]interface{}, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	params := graph.Params{
		"fields": adsetListFields,
		"limit":  limit,
	}

	if campaignID != "" {
		return s.graph.Execute(ctx, http.MethodGet, campaignID+"/adsets", token, params)
	}

	resolved, err := s.ResolveAccountID(ctx, token, accountID)
	if err != nil {
		return nil, err
	}
	return s.graph.Execute(ctx, http.MethodGet, resolved+"/adsets", token, params)
}

// GetAdSetDetails returns the full field set for one ad set. When the API
// omits frequency_control_specs a note is attached so the caller can tell
// "no caps set" apart from a field that was dropped.
func (s *Service) GetAdSetDetails(ctx context.Context, token, adsetID string) (map[string]interface{}, error) {
	if adsetID == "" {
		return nil, tools.NewValidationError("adset_id", "is required")
	}

	data, err := s.graph.Execute(ctx, http.MethodGet, adsetID, token, graph.Params{
		"fields": adsetDetailFields,
	})
	if err != nil {
		return nil, err
	}

	if _, ok := data["frequency_control_specs"]; !ok {
		data["_meta"] = map[string]interface{}{
			"note": "No frequency_control_specs field was returned by the API. This means either no frequency caps are set or the API did not include this field in the response.",
		}
	}

	return data, nil
}

// CreateAdSet creates an ad set under the account's collection. New ad sets
// default to PAUSED.
func (s *Service) CreateAdSet(ctx context.Context, token string, req CreateAdSetRequest) (map[string]interface{}, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "PAUSED"
	}
	targeting := req.Targeting
	if len(targeting) == 0 {
		targeting = defaultTargeting()
	}

	params := graph.Params{
		"name":              req.Name,
		"campaign_id":       req.CampaignID,
		"status":            status,
		"optimization_goal": req.OptimizationGoal,
		"billing_event":     req.BillingEvent,
		"targeting":         targeting,
	}
	if req.DailyBudget != nil {
		params["daily_budget"] = *req.DailyBudget
	}
	if req.LifetimeBudget != nil {
		params["lifetime_budget"] = *req.LifetimeBudget
	}
	if req.BidAmount != nil {
		params["bid_amount"] = *req.BidAmount
	}
	if req.BidStrategy != "" {
		params["bid_strategy"] = req.BidStrategy
	}
	if req.StartTime != "" {
		params["start_time"] = req.StartTime
	}
	if req.EndTime != "" {
		params["end_time"] = req.EndTime
	}

	return s.graph.Execute(ctx, http.MethodPost, req.AccountID+"/adsets", token, params)
}

// UpdateAdSet updates an ad set in place. The Graph API takes updates as a
// POST against the resource's own id, not a separate verb.
func (s *Service) UpdateAdSet(ctx context.Context, token string, req UpdateAdSetRequest) (map[string]interface{}, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	params := graph.Params{}
	if req.FrequencyControlSpecs != nil {
		params["frequency_control_specs"] = req.FrequencyControlSpecs
	}
	if req.BidStrategy != "" {
		params["bid_strategy"] = req.BidStrategy
	}
	if req.BidAmount != nil {
		params["bid_amount"] = *req.BidAmount
	}
	if req.Status != "" {
		params["status"] = req.Status
	}
	if len(req.Targeting) > 0 {
		params["targeting"] = req.Targeting
	}
	if req.OptimizationGoal != "" {
		params["optimization_goal"] = req.OptimizationGoal
	}

	if len(params) == 0 {
		return nil, tools.NewValidationError("", "no update parameters provided")
	}

	return s.graph.Execute(ctx, http.MethodPost, req.AdSetID, token, params)
}
