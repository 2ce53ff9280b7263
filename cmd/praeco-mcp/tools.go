package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetAdAccountsTool returns the get_ad_accounts tool definition
func createGetAdAccountsTool() mcp.Tool {
	return mcp.NewTool("get_ad_accounts",
		mcp.WithDescription("List the Meta Ads accounts visible to a user"),
		mcp.WithString("user",
			mcp.Description("User to list accounts for (default: me)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum accounts to return (default: 10)"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional - resolved automatically when omitted)"),
		),
	)
}

// createGetAccountInfoTool returns the get_account_info tool definition
func createGetAccountInfoTool() mcp.Tool {
	return mcp.NewTool("get_account_info",
		mcp.WithDescription("Get details and a 30-day performance summary for a Meta Ads account"),
		mcp.WithString("account_id",
			mcp.Description("Account ID (format: act_XXXXXXXXX; default: first available account)"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createGetCampaignsTool returns the get_campaigns tool definition
func createGetCampaignsTool() mcp.Tool {
	return mcp.NewTool("get_campaigns",
		mcp.WithDescription("List campaigns for a Meta Ads account with optional status filtering"),
		mcp.WithString("account_id",
			mcp.Description("Account ID (format: act_XXXXXXXXX; default: first available account)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum campaigns to return (default: 10)"),
		),
		mcp.WithString("status_filter",
			mcp.Description("Filter by effective status (e.g. ACTIVE, PAUSED; empty for all)"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createGetCampaignDetailsTool returns the get_campaign_details tool definition
func createGetCampaignDetailsTool() mcp.Tool {
	return mcp.NewTool("get_campaign_details",
		mcp.WithDescription("Get detailed information about a specific campaign"),
		mcp.WithString("campaign_id",
			mcp.Required(),
			mcp.Description("Campaign ID"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createCreateCampaignTool returns the create_campaign tool definition
func createCreateCampaignTool() mcp.Tool {
	return mcp.NewTool("create_campaign",
		mcp.WithDescription("Create a new campaign in a Meta Ads account (created PAUSED)"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Account ID (format: act_XXXXXXXXX)"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Campaign name"),
		),
		mcp.WithString("objective",
			mcp.Required(),
			mcp.Description("Campaign objective (AWARENESS, TRAFFIC, ENGAGEMENT, ...)"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status (default: PAUSED)"),
		),
		mcp.WithArray("special_ad_categories",
			mcp.WithStringItems(),
			mcp.Description("Special ad categories, if applicable"),
		),
		mcp.WithNumber("daily_budget",
			mcp.Description("Daily budget in account currency cents"),
		),
		mcp.WithNumber("lifetime_budget",
			mcp.Description("Lifetime budget in account currency cents"),
		),
		mcp.WithString("buying_type",
			mcp.Description("Buying type (e.g. AUCTION)"),
		),
		mcp.WithString("bid_strategy",
			mcp.Description("Bid strategy (LOWEST_COST, LOWEST_COST_WITH_BID_CAP, COST_CAP)"),
		),
		mcp.WithNumber("bid_cap",
			mcp.Description("Bid cap in account currency cents"),
		),
		mcp.WithNumber("spend_cap",
			mcp.Description("Campaign spending limit in account currency cents"),
		),
		mcp.WithBoolean("campaign_budget_optimization",
			mcp.Description("Enable campaign budget optimization"),
		),
		mcp.WithArray("ab_test_control_setups",
			mcp.Description("A/B test setups (e.g. [{\"name\":\"Creative A\",\"ad_format\":\"SINGLE_IMAGE\"}])"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createGetAdSetsTool returns the get_adsets tool definition
func createGetAdSetsTool() mcp.Tool {
	return mcp.NewTool("get_adsets",
		mcp.WithDescription("List ad sets for an account, or for one campaign when campaign_id is given"),
		mcp.WithString("account_id",
			mcp.Description("Account ID (format: act_XXXXXXXXX; default: first available account)"),
		),
		mcp.WithString("campaign_id",
			mcp.Description("Campaign ID to filter by (uses the campaign's own ad set collection)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum ad sets to return (default: 10)"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createGetAdSetDetailsTool returns the get_adset_details tool definition
func createGetAdSetDetailsTool() mcp.Tool {
	return mcp.NewTool("get_adset_details",
		mcp.WithDescription("Get detailed information about a specific ad set, including frequency caps"),
		mcp.WithString("adset_id",
			mcp.Required(),
			mcp.Description("Ad set ID"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createCreateAdSetTool returns the create_adset tool definition
func createCreateAdSetTool() mcp.Tool {
	return mcp.NewTool("create_adset",
		mcp.WithDescription("Create a new ad set in a Meta Ads account (created PAUSED)"),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Account ID (format: act_XXXXXXXXX)"),
		),
		mcp.WithString("campaign_id",
			mcp.Required(),
			mcp.Description("Campaign this ad set belongs to"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Ad set name"),
		),
		mcp.WithString("optimization_goal",
			mcp.Required(),
			mcp.Description("Conversion optimization goal (LINK_CLICKS, REACH, CONVERSIONS, ...)"),
		),
		mcp.WithString("billing_event",
			mcp.Required(),
			mcp.Description("How you are charged (IMPRESSIONS, LINK_CLICKS, ...)"),
		),
		mcp.WithString("status",
			mcp.Description("Initial status (default: PAUSED)"),
		),
		mcp.WithNumber("daily_budget",
			mcp.Description("Daily budget in account currency cents"),
		),
		mcp.WithNumber("lifetime_budget",
			mcp.Description("Lifetime budget in account currency cents"),
		),
		mcp.WithObject("targeting",
			mcp.Description("Targeting spec (age, geo, interests; default: US adults with advantage_audience)"),
		),
		mcp.WithNumber("bid_amount",
			mcp.Description("Bid amount in account currency cents"),
		),
		mcp.WithString("bid_strategy",
			mcp.Description("Bid strategy (e.g. LOWEST_COST_WITH_BID_CAP)"),
		),
		mcp.WithString("start_time",
			mcp.Description("Start time, ISO 8601"),
		),
		mcp.WithString("end_time",
			mcp.Description("End time, ISO 8601"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createUpdateAdSetTool returns the update_adset tool definition
func createUpdateAdSetTool() mcp.Tool {
	return mcp.NewTool("update_adset",
		mcp.WithDescription("Update an ad set's settings, including frequency caps and targeting"),
		mcp.WithString("adset_id",
			mcp.Required(),
			mcp.Description("Ad set ID"),
		),
		mcp.WithArray("frequency_control_specs",
			mcp.Description("Frequency caps (e.g. [{\"event\":\"IMPRESSIONS\",\"interval_days\":7,\"max_frequency\":3}])"),
		),
		mcp.WithString("bid_strategy",
			mcp.Description("Bid strategy"),
		),
		mcp.WithNumber("bid_amount",
			mcp.Description("Bid amount in account currency cents"),
		),
		mcp.WithString("status",
			mcp.Description("New status (ACTIVE, PAUSED, ...)"),
		),
		mcp.WithObject("targeting",
			mcp.Description("Replacement targeting spec (replaces existing targeting entirely)"),
		),
		mcp.WithString("optimization_goal",
			mcp.Description("Conversion optimization goal"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createGetAdsTool returns the get_ads tool definition
func createGetAdsTool() mcp.Tool {
	return mcp.NewTool("get_ads",
		mcp.WithDescription("List ads for a Meta Ads account"),
		mcp.WithString("account_id",
			mcp.Description("Account ID (format: act_XXXXXXXXX; default: first available account)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum ads to return (default: 10)"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createGetAdCreativesTool returns the get_ad_creatives tool definition
func createGetAdCreativesTool() mcp.Tool {
	return mcp.NewTool("get_ad_creatives",
		mcp.WithDescription("Get the creative details (copy, media, story spec) behind a specific ad"),
		mcp.WithString("ad_id",
			mcp.Required(),
			mcp.Description("Ad ID"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createGetInsightsTool returns the get_insights tool definition
func createGetInsightsTool() mcp.Tool {
	return mcp.NewTool("get_insights",
		mcp.WithDescription("Get performance insights for a campaign, ad set or ad"),
		mcp.WithString("object_id",
			mcp.Required(),
			mcp.Description("Campaign, ad set or ad ID"),
		),
		mcp.WithString("time_range",
			mcp.Description("today, yesterday, last_7_days or last_30_days (default: last_30_days)"),
		),
		mcp.WithString("access_token",
			mcp.Description("Meta API access token (optional)"),
		),
	)
}

// createAuthenticateTool returns the authenticate tool definition
func createAuthenticateTool() mcp.Tool {
	return mcp.NewTool("authenticate",
		mcp.WithDescription("Start the Meta authorization flow, or report the current authentication state"),
	)
}
