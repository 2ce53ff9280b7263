package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/praecolabs/praeco/internal/graph"
	"github.com/praecolabs/praeco/internal/tools"
)

type graphCall struct {
	Method   string
	Endpoint string
	Token    string
	Params   graph.Params
}

type fakeGraph struct {
	mu      sync.Mutex
	calls   []graphCall
	respond func(method, endpoint string, params graph.Params) (map[string]interface{}, error)
}

func (f *fakeGraph) Execute(ctx context.Context, method, endpoint, token string, params graph.Params) (map[string]interface{}, error) {
	f.mu.Lock()
	f.calls = append(f.calls, graphCall{Method: method, Endpoint: endpoint, Token: token, Params: params.Clone()})
	f.mu.Unlock()

	if f.respond != nil {
		return f.respond(method, endpoint, params)
	}
	return map[string]interface{}{"data": []interface{}{}}, nil
}

func (f *fakeGraph) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGraph) lastCall(t *testing.T) graphCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func newTestService(fake *fakeGraph) *Service {
	return NewService(fake, arbor.NewLogger())
}

func accountsResponse(ids ...string) map[string]interface{} {
	data := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		data = append(data, map[string]interface{}{"id": id, "name": "Account " + id})
	}
	return map[string]interface{}{"data": data}
}

func TestGetAdSetsCampaignScopedPath(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.GetAdSets(context.Background(), "tok", "act_999", "camp_42", 25)
	require.NoError(t, err)

	require.Equal(t, 1, fake.callCount(), "campaign filter needs no account resolution")
	call := fake.lastCall(t)
	assert.Equal(t, "GET", call.Method)
	assert.Equal(t, "camp_42/adsets", call.Endpoint)
	_, hasFilter := call.Params["campaign_id"]
	assert.False(t, hasFilter, "scoping is path-based, not a query parameter")
	assert.Equal(t, 25, call.Params["limit"])
}

func TestGetAdSetsAccountPath(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.GetAdSets(context.Background(), "tok", "act_999", "", 0)
	require.NoError(t, err)

	call := fake.lastCall(t)
	assert.Equal(t, "act_999/adsets", call.Endpoint)
	assert.Equal(t, defaultListLimit, call.Params["limit"])
}

func TestResolveAccountIDFallsBackToFirstAccount(t *testing.T) {
	fake := &fakeGraph{respond: func(method, endpoint string, params graph.Params) (map[string]interface{}, error) {
		if endpoint == "me/adaccounts" {
			return accountsResponse("act_111", "act_222"), nil
		}
		return map[string]interface{}{}, nil
	}}
	svc := newTestService(fake)

	id, err := svc.ResolveAccountID(context.Background(), "tok", "")
	require.NoError(t, err)
	assert.Equal(t, "act_111", id)
}

func TestResolveAccountIDZeroAccounts(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.ResolveAccountID(context.Background(), "tok", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAccounts)

	var validationErr *tools.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestResolveAccountIDExplicitWins(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	id, err := svc.ResolveAccountID(context.Background(), "tok", "act_777")
	require.NoError(t, err)
	assert.Equal(t, "act_777", id)
	assert.Equal(t, 0, fake.callCount())
}

func TestGetCampaignsStatusFilter(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.GetCampaigns(context.Background(), "tok", "act_1", 5, "ACTIVE")
	require.NoError(t, err)

	call := fake.lastCall(t)
	assert.Equal(t, "act_1/campaigns", call.Endpoint)
	assert.Equal(t, []string{"ACTIVE"}, call.Params["effective_status"])
}

func TestGetCampaignDetailsRequiresID(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.GetCampaignDetails(context.Background(), "tok", "")
	var validationErr *tools.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, fake.callCount())
}

func TestCreateCampaignDefaultsAndOptionals(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	daily := int64(5000)
	cbo := true
	_, err := svc.CreateCampaign(context.Background(), "tok", CreateCampaignRequest{
		AccountID:                  "act_1",
		Name:                       "Summer Launch",
		Objective:                  "TRAFFIC",
		DailyBudget:                &daily,
		CampaignBudgetOptimization: &cbo,
		ABTestControlSetups: []map[string]interface{}{
			{"name": "Creative A", "ad_format": "SINGLE_IMAGE"},
		},
	})
	require.NoError(t, err)

	call := fake.lastCall(t)
	assert.Equal(t, "POST", call.Method)
	assert.Equal(t, "act_1/campaigns", call.Endpoint)
	assert.Equal(t, "PAUSED", call.Params["status"])
	assert.Equal(t, int64(5000), call.Params["daily_budget"])
	assert.Equal(t, true, call.Params["campaign_budget_optimization"])
	_, hasBidCap := call.Params["bid_cap"]
	assert.False(t, hasBidCap, "unset optionals stay out of the params")
}

func TestCreateCampaignMissingObjective(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.CreateCampaign(context.Background(), "tok", CreateCampaignRequest{
		AccountID: "act_1",
		Name:      "Nameless",
	})
	var validationErr *tools.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "objective", validationErr.Field)
	assert.Equal(t, 0, fake.callCount(), "validation failures never reach the network")
}

func TestCreateAdSetMissingOptimizationGoal(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.CreateAdSet(context.Background(), "tok", CreateAdSetRequest{
		AccountID:    "act_1",
		CampaignID:   "camp_1",
		Name:         "Test Ad Set",
		BillingEvent: "IMPRESSIONS",
	})
	var validationErr *tools.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "optimization_goal", validationErr.Field)
	assert.Equal(t, 0, fake.callCount())
}

func TestCreateAdSetDefaultTargeting(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.CreateAdSet(context.Background(), "tok", CreateAdSetRequest{
		AccountID:        "act_1",
		CampaignID:       "camp_1",
		Name:             "Broad Reach",
		OptimizationGoal: "REACH",
		BillingEvent:     "IMPRESSIONS",
	})
	require.NoError(t, err)

	call := fake.lastCall(t)
	assert.Equal(t, "act_1/adsets", call.Endpoint)
	assert.Equal(t, "camp_1", call.Params["campaign_id"])

	targeting, ok := call.Params["targeting"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 18, targeting["age_min"])
	assert.Equal(t, 65, targeting["age_max"])
}

func TestCreateAdSetTargetingEncodesAsJSONString(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	targeting := map[string]interface{}{
		"geo_locations": map[string]interface{}{"countries": []string{"DE"}},
		"age_min":       21,
	}
	_, err := svc.CreateAdSet(context.Background(), "tok", CreateAdSetRequest{
		AccountID:        "act_1",
		CampaignID:       "camp_1",
		Name:             "DE Audience",
		OptimizationGoal: "LINK_CLICKS",
		BillingEvent:     "LINK_CLICKS",
		Targeting:        targeting,
	})
	require.NoError(t, err)

	values, err := fake.lastCall(t).Params.Encode()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(values.Get("targeting")), &decoded))
	assert.Equal(t, float64(21), decoded["age_min"])
}

func TestUpdateAdSetRequiresChanges(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.UpdateAdSet(context.Background(), "tok", UpdateAdSetRequest{AdSetID: "as_1"})
	var validationErr *tools.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, fake.callCount())
}

func TestUpdateAdSetPostsToResourceID(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.UpdateAdSet(context.Background(), "tok", UpdateAdSetRequest{
		AdSetID: "as_1",
		Status:  "ACTIVE",
		FrequencyControlSpecs: []map[string]interface{}{
			{"event": "IMPRESSIONS", "interval_days": 7, "max_frequency": 3},
		},
	})
	require.NoError(t, err)

	call := fake.lastCall(t)
	assert.Equal(t, "POST", call.Method)
	assert.Equal(t, "as_1", call.Endpoint)
	assert.Equal(t, "ACTIVE", call.Params["status"])
}

func TestConcurrentUpdatesDoNotShareParams(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := "PAUSED"
			if i%2 == 0 {
				status = "ACTIVE"
			}
			_, err := svc.UpdateAdSet(context.Background(), "tok", UpdateAdSetRequest{
				AdSetID: fmt.Sprintf("as_%d", i),
				Status:  status,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.Equal(t, workers, fake.callCount())
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, call := range fake.calls {
		var i int
		_, err := fmt.Sscanf(call.Endpoint, "as_%d", &i)
		require.NoError(t, err)
		want := "PAUSED"
		if i%2 == 0 {
			want = "ACTIVE"
		}
		assert.Equal(t, want, call.Params["status"], "params leaked between concurrent updates")
	}
}

func TestGetAdSetDetailsFrequencyCapNote(t *testing.T) {
	fake := &fakeGraph{respond: func(method, endpoint string, params graph.Params) (map[string]interface{}, error) {
		return map[string]interface{}{"id": "as_1", "name": "No Caps"}, nil
	}}
	svc := newTestService(fake)

	data, err := svc.GetAdSetDetails(context.Background(), "tok", "as_1")
	require.NoError(t, err)

	meta, ok := data["_meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, meta["note"], "frequency_control_specs")
}

func TestGetAccountInfoRewritesStatus(t *testing.T) {
	fake := &fakeGraph{respond: func(method, endpoint string, params graph.Params) (map[string]interface{}, error) {
		switch endpoint {
		case "act_1":
			return map[string]interface{}{"id": "act_1", "account_status": float64(1)}, nil
		case "act_1/insights":
			return map[string]interface{}{"data": []interface{}{map[string]interface{}{"spend": "123.45"}}}, nil
		}
		return map[string]interface{}{}, nil
	}}
	svc := newTestService(fake)

	data, err := svc.GetAccountInfo(context.Background(), "tok", "act_1")
	require.NoError(t, err)
	assert.Equal(t, "Active", data["account_status"])
	require.NotNil(t, data["insights"])
}

func TestGetAdsAccountPath(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.GetAds(context.Background(), "tok", "act_5", 3)
	require.NoError(t, err)

	call := fake.lastCall(t)
	assert.Equal(t, "GET", call.Method)
	assert.Equal(t, "act_5/ads", call.Endpoint)
	assert.Equal(t, 3, call.Params["limit"])
}

func TestGetAdsResolvesAccount(t *testing.T) {
	fake := &fakeGraph{respond: func(method, endpoint string, params graph.Params) (map[string]interface{}, error) {
		if endpoint == "me/adaccounts" {
			return accountsResponse("act_9"), nil
		}
		return map[string]interface{}{"data": []interface{}{}}, nil
	}}
	svc := newTestService(fake)

	_, err := svc.GetAds(context.Background(), "tok", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "act_9/ads", fake.lastCall(t).Endpoint)
}

func TestGetAdCreativesTwoStepRead(t *testing.T) {
	fake := &fakeGraph{respond: func(method, endpoint string, params graph.Params) (map[string]interface{}, error) {
		switch endpoint {
		case "ad_1":
			assert.Equal(t, "creative", params["fields"])
			return map[string]interface{}{"creative": map[string]interface{}{"id": "cr_55"}}, nil
		case "cr_55":
			return map[string]interface{}{"id": "cr_55", "title": "Spring Sale"}, nil
		}
		t.Errorf("unexpected endpoint %q", endpoint)
		return nil, nil
	}}
	svc := newTestService(fake)

	data, err := svc.GetAdCreatives(context.Background(), "tok", "ad_1")
	require.NoError(t, err)
	assert.Equal(t, "Spring Sale", data["title"])
	assert.Equal(t, 2, fake.callCount())
}

func TestGetAdCreativesNoCreative(t *testing.T) {
	fake := &fakeGraph{respond: func(method, endpoint string, params graph.Params) (map[string]interface{}, error) {
		return map[string]interface{}{"id": "ad_1"}, nil
	}}
	svc := newTestService(fake)

	data, err := svc.GetAdCreatives(context.Background(), "tok", "ad_1")
	require.NoError(t, err)

	meta, ok := data["_meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, meta["note"], "creative")
	assert.Equal(t, 1, fake.callCount(), "no second read without a creative id")
}

func TestGetAdCreativesRequiresAdID(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.GetAdCreatives(context.Background(), "tok", "")
	var validationErr *tools.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, fake.callCount())
}

func TestGetInsightsPresets(t *testing.T) {
	fake := &fakeGraph{}
	svc := newTestService(fake)

	_, err := svc.GetInsights(context.Background(), "tok", "camp_1", "last_7_days")
	require.NoError(t, err)
	assert.Equal(t, "last_7d", fake.lastCall(t).Params["date_preset"])
	assert.Equal(t, "camp_1/insights", fake.lastCall(t).Endpoint)

	_, err = svc.GetInsights(context.Background(), "tok", "camp_1", "next_week")
	var validationErr *tools.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
