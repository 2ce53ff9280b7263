package main

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/praecolabs/praeco/internal/interfaces"
	"github.com/praecolabs/praeco/internal/services/ads"
	"github.com/praecolabs/praeco/internal/tools"
)

// handleGetAdAccounts implements the get_ad_accounts tool
func handleGetAdAccounts(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_ad_accounts", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		user := request.GetString("user", "me")
		limit := request.GetInt("limit", 10)
		return adsService.GetAdAccounts(ctx, token, user, limit)
	})
}

// handleGetAccountInfo implements the get_account_info tool
func handleGetAccountInfo(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_account_info", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		return adsService.GetAccountInfo(ctx, token, request.GetString("account_id", ""))
	})
}

// handleGetCampaigns implements the get_campaigns tool
func handleGetCampaigns(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_campaigns", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		return adsService.GetCampaigns(ctx, token,
			request.GetString("account_id", ""),
			request.GetInt("limit", 10),
			request.GetString("status_filter", ""),
		)
	})
}

// handleGetCampaignDetails implements the get_campaign_details tool
func handleGetCampaignDetails(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_campaign_details", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		return adsService.GetCampaignDetails(ctx, token, request.GetString("campaign_id", ""))
	})
}

// handleCreateCampaign implements the create_campaign tool
func handleCreateCampaign(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("create_campaign", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		daily, err := optInt64(request, "daily_budget")
		if err != nil {
			return nil, err
		}
		lifetime, err := optInt64(request, "lifetime_budget")
		if err != nil {
			return nil, err
		}
		bidCap, err := optInt64(request, "bid_cap")
		if err != nil {
			return nil, err
		}
		spendCap, err := optInt64(request, "spend_cap")
		if err != nil {
			return nil, err
		}

		req := ads.CreateCampaignRequest{
			AccountID:                  request.GetString("account_id", ""),
			Name:                       request.GetString("name", ""),
			Objective:                  request.GetString("objective", ""),
			Status:                     request.GetString("status", ""),
			SpecialAdCategories:        request.GetStringSlice("special_ad_categories", nil),
			DailyBudget:                daily,
			LifetimeBudget:             lifetime,
			BuyingType:                 request.GetString("buying_type", ""),
			BidStrategy:                request.GetString("bid_strategy", ""),
			BidCap:                     bidCap,
			SpendCap:                   spendCap,
			CampaignBudgetOptimization: optBool(request, "campaign_budget_optimization"),
			ABTestControlSetups:        mapSliceArg(request, "ab_test_control_setups"),
		}
		return adsService.CreateCampaign(ctx, token, req)
	})
}

// handleGetAdSets implements the get_adsets tool
func handleGetAdSets(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_adsets", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		return adsService.GetAdSets(ctx, token,
			request.GetString("account_id", ""),
			request.GetString("campaign_id", ""),
			request.GetInt("limit", 10),
		)
	})
}

// handleGetAdSetDetails implements the get_adset_details tool
func handleGetAdSetDetails(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_adset_details", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		return adsService.GetAdSetDetails(ctx, token, request.GetString("adset_id", ""))
	})
}

// handleCreateAdSet implements the create_adset tool
func handleCreateAdSet(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("create_adset", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		daily, err := optInt64(request, "daily_budget")
		if err != nil {
			return nil, err
		}
		lifetime, err := optInt64(request, "lifetime_budget")
		if err != nil {
			return nil, err
		}
		bidAmount, err := optInt64(request, "bid_amount")
		if err != nil {
			return nil, err
		}

		req := ads.CreateAdSetRequest{
			AccountID:        request.GetString("account_id", ""),
			CampaignID:       request.GetString("campaign_id", ""),
			Name:             request.GetString("name", ""),
			OptimizationGoal: request.GetString("optimization_goal", ""),
			BillingEvent:     request.GetString("billing_event", ""),
			Status:           request.GetString("status", ""),
			DailyBudget:      daily,
			LifetimeBudget:   lifetime,
			Targeting:        mapArg(request, "targeting"),
			BidAmount:        bidAmount,
			BidStrategy:      request.GetString("bid_strategy", ""),
			StartTime:        request.GetString("start_time", ""),
			EndTime:          request.GetString("end_time", ""),
		}
		return adsService.CreateAdSet(ctx, token, req)
	})
}

// handleUpdateAdSet implements the update_adset tool
func handleUpdateAdSet(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("update_adset", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		bidAmount, err := optInt64(request, "bid_amount")
		if err != nil {
			return nil, err
		}

		req := ads.UpdateAdSetRequest{
			AdSetID:               request.GetString("adset_id", ""),
			FrequencyControlSpecs: mapSliceArg(request, "frequency_control_specs"),
			BidStrategy:           request.GetString("bid_strategy", ""),
			BidAmount:             bidAmount,
			Status:                request.GetString("status", ""),
			Targeting:             mapArg(request, "targeting"),
			OptimizationGoal:      request.GetString("optimization_goal", ""),
		}
		return adsService.UpdateAdSet(ctx, token, req)
	})
}

// handleGetAds implements the get_ads tool
func handleGetAds(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_ads", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		return adsService.GetAds(ctx, token,
			request.GetString("account_id", ""),
			request.GetInt("limit", 10),
		)
	})
}

// handleGetAdCreatives implements the get_ad_creatives tool
func handleGetAdCreatives(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_ad_creatives", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		return adsService.GetAdCreatives(ctx, token, request.GetString("ad_id", ""))
	})
}

// handleGetInsights implements the get_insights tool
func handleGetInsights(adsService *ads.Service, tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return tools.Wrap("get_insights", tokens, logger, func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error) {
		return adsService.GetInsights(ctx, token,
			request.GetString("object_id", ""),
			request.GetString("time_range", ""),
		)
	})
}

// handleAuthenticate implements the authenticate tool. It runs outside the
// token wrapper: it must work precisely when no token can be resolved yet.
func handleAuthenticate(tokens interfaces.TokenManager, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := tokens.InitiateAuthFlow(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Auth flow failed")
			return tools.ErrorResult(tools.ErrorEnvelope{
				Error: err.Error(),
			}), nil
		}
		return tools.SuccessResult(result)
	}
}

// optInt64 reads an optional integer argument, tolerating the string form
// some clients send for budget values. A present but unparseable value is a
// validation error, not an absent one.
func optInt64(request mcp.CallToolRequest, key string) (*int64, error) {
	args := request.GetArguments()
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		n := int64(v)
		return &n, nil
	case int:
		n := int64(v)
		return &n, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, tools.NewValidationError(key, "must be an integer")
		}
		return &n, nil
	}
	return nil, tools.NewValidationError(key, "must be an integer")
}

func optBool(request mcp.CallToolRequest, key string) *bool {
	args := request.GetArguments()
	if raw, ok := args[key]; ok {
		if v, ok := raw.(bool); ok {
			return &v
		}
	}
	return nil
}

func mapArg(request mcp.CallToolRequest, key string) map[string]interface{} {
	args := request.GetArguments()
	if raw, ok := args[key]; ok {
		if v, ok := raw.(map[string]interface{}); ok {
			return v
		}
	}
	return nil
}

func mapSliceArg(request mcp.CallToolRequest, key string) []map[string]interface{} {
	args := request.GetArguments()
	raw, ok := args[key]
	if !ok {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
