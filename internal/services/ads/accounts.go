package ads

import (
	"context"
	"net/http"

	"github.com/praecolabs/praeco/internal/graph"
	"github.com/praecolabs/praeco/internal/tools"
)

const (
	accountListFields = "id,name,account_status,amount_spent,balance,currency,age,business_name,business_country_code"
	accountInfoFields = "id,name,account_status,currency,timezone_name,business_name,created_time,amount_spent,balance,min_daily_budget,owner"

	defaultListLimit = 10
)

// ErrNoAccounts is returned when no account id was given and the user has no
// ad accounts to fall back to.
var ErrNoAccounts = tools.NewValidationError("account_id", "no account ID specified and no accounts found for user")

// accountStatusNames maps the numeric account_status the API returns to its
// documented meaning.
var accountStatusNames = map[int]string{
	1:   "Active",
	2:   "Disabled",
	3:   "Unsettled",
	7:   "Pending_risk_review",
	8:   "Pending_settlement",
	9:   "In_grace_period",
	100: "Pending_closure",
	101: "Closed",
	201: "Any_active",
	202: "Any_closed",
}

// GetAdAccounts lists the ad accounts visible to the given user ("me" when
// empty).
func (s *Service) GetAdAccounts(ctx context.Context, token, user string, limit int) (map[string]interface{}, error) {
	if user == "" {
		user = "me"
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	params := graph.Params{
		"fields": accountListFields,
		"limit":  limit,
	}

	return s.graph.Execute(ctx, http.MethodGet, user+"/adaccounts", token, params)
}

// GetAccountInfo returns account details plus a 30-day performance summary.
// The numeric account_status is rewritten to its documented name.
func (s *Service) GetAccountInfo(ctx context.Context, token, accountID string) (map[string]interface{}, error) {
	resolved, err := s.ResolveAccountID(ctx, token, accountID)
	if err != nil {
		return nil, err
	}

	account, err := s.graph.Execute(ctx, http.MethodGet, resolved, token, graph.Params{
		"fields": accountInfoFields,
	})
	if err != nil {
		return nil, err
	}

	if status, ok := account["account_status"].(float64); ok {
		if name, known := accountStatusNames[int(status)]; known {
			account["account_status"] = name
		}
	}

	// Performance summary is best effort; account details stand on their own
	insights, err := s.graph.Execute(ctx, http.MethodGet, resolved+"/insights", token, graph.Params{
		"date_preset": "last_30d",
		"fields":      "spend,impressions,clicks,ctr,cpm,cpp,reach,frequency",
	})
	if err == nil {
		account["insights"] = insights["data"]
	} else {
		s.logger.Debug().Err(err).Str("account_id", resolved).Msg("Account insights unavailable")
	}

	return account, nil
}

// ResolveAccountID applies the explicit account default policy: a given id
// is used as-is; otherwise the user's first available account is taken, and
// having zero accounts is a distinct error rather than a silent empty id.
func (s *Service) ResolveAccountID(ctx context.Context, token, accountID string) (string, error) {
	if accountID != "" {
		return accountID, nil
	}

	accounts, err := s.GetAdAccounts(ctx, token, "me", 1)
	if err != nil {
		return "", err
	}

	data, ok := accounts["data"].([]interface{})
	if !ok || len(data) == 0 {
		return "", ErrNoAccounts
	}

	first, ok := data[0].(map[string]interface{})
	if !ok {
		return "", ErrNoAccounts
	}
	id, ok := first["id"].(string)
	if !ok || id == "" {
		return "", ErrNoAccounts
	}

	s.logger.Debug().Str("account_id", id).Msg("Defaulted to first available ad account")
	return id, nil
}
