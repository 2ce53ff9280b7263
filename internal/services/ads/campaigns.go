package ads

import (
	"context"
	"net/http"

	"github.com/praecolabs/praeco/internal/graph"
	"github.com/praecolabs/praeco/internal/tools"
)

const (
	campaignListFields   = "id,name,objective,status,daily_budget,lifetime_budget,buying_type,start_time,stop_time,created_time,updated_time,bid_strategy"
	campaignDetailFields = "id,name,objective,status,daily_budget,lifetime_budget,buying_type,start_time,stop_time,created_time,updated_time,bid_strategy,special_ad_categories,special_ad_category_country,budget_remaining,configured_status"
)

// CreateCampaignRequest holds every field the create operation accepts.
// Optional fields are pointers or zero-skipped values; each is added to the
// outgoing params only when set.
type CreateCampaignRequest struct {
	AccountID                  string                   `json:"account_id" validate:"required"`
	Name                       string                   `json:"name" validate:"required"`
	Objective                  string                   `json:"objective" validate:"required"`
	Status                     string                   `json:"status"`
	SpecialAdCategories        []string                 `json:"special_ad_categories"`
	DailyBudget                *int64                   `json:"daily_budget"`
	LifetimeBudget             *int64                   `json:"lifetime_budget"`
	BuyingType                 string                   `json:"buying_type"`
	BidStrategy                string                   `json:"bid_strategy"`
	BidCap                     *int64                   `json:"bid_cap"`
	SpendCap                   *int64                   `json:"spend_cap"`
	CampaignBudgetOptimization *bool                    `json:"campaign_budget_optimization"`
	ABTestControlSetups        []map[string]interface{} `json:"ab_test_control_setups"`
}

// GetCampaigns lists campaigns for an account, optionally filtered by
// effective status.
func (s *Service) GetCampaigns(ctx context.Context, token, accountID string, limit int, statusFilter string) (map[string]interface{}, error) {
	resolved, err := s.ResolveAccountID(ctx, token, accountID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	params := graph.Params{
		"fields": campaignListFields,
		"limit":  limit,
	}
	if statusFilter != "" {
		params["effective_status"] = []string{statusFilter}
	}

	return s.graph.Execute(ctx, http.MethodGet, resolved+"/campaigns", token, params)
}

// GetCampaignDetails returns the full field set for one campaign.
func (s *Service) GetCampaignDetails(ctx context.Context, token, campaignID string) (map[string]interface{}, error) {
	if campaignID == "" {
		return nil, tools.NewValidationError("campaign_id", "is required")
	}

	return s.graph.Execute(ctx, http.MethodGet, campaignID, token, graph.Params{
		"fields": campaignDetailFields,
	})
}

// CreateCampaign creates a campaign. New campaigns default to PAUSED so
// nothing spends before the caller activates it.
func (s *Service) CreateCampaign(ctx context.Context, token string, req CreateCampaignRequest) (map[string]interface{}, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "PAUSED"
	}

	params := graph.Params{
		"name":      req.Name,
		"objective": req.Objective,
		"status":    status,
	}
	if len(req.SpecialAdCategories) > 0 {
		params["special_ad_categories"] = req.SpecialAdCategories
	}
	if req.DailyBudget != nil {
		params["daily_budget"] = *req.DailyBudget
	}
	if req.LifetimeBudget != nil {
		params["lifetime_budget"] = *req.LifetimeBudget
	}
	if req.BuyingType != "" {
		params["buying_type"] = req.BuyingType
	}
	if req.BidStrategy != "" {
		params["bid_strategy"] = req.BidStrategy
	}
	if req.BidCap != nil {
		params["bid_cap"] = *req.BidCap
	}
	if req.SpendCap != nil {
		params["spend_cap"] = *req.SpendCap
	}
	if req.CampaignBudgetOptimization != nil {
		params["campaign_budget_optimization"] = *req.CampaignBudgetOptimization
	}
	if len(req.ABTestControlSetups) > 0 {
		params["ab_test_control_setups"] = req.ABTestControlSetups
	}

	return s.graph.Execute(ctx, http.MethodPost, req.AccountID+"/campaigns", token, params)
}
