package ads

import (
	"context"
	"net/http"

	"github.com/praecolabs/praeco/internal/graph"
	"github.com/praecolabs/praeco/internal/tools"
)

const (
	adListFields   = "id,name,status,adset_id,campaign_id,created_time,updated_time"
	creativeFields = "id,name,title,body,image_url,link_url,video_id,object_story_spec,thumbnail_url,asset_feed_spec,object_type,effective_object_story_id"
)

// GetAds lists ads for an account.
func (s *Service) GetAds(ctx context.Context, token, accountID string, limit int) (map[string]interface{}, error) {
	resolved, err := s.ResolveAccountID(ctx, token, accountID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	return s.graph.Execute(ctx, http.MethodGet, resolved+"/ads", token, graph.Params{
		"fields": adListFields,
		"limit":  limit,
	})
}

// GetAdCreatives returns the creative behind an ad. The creative is a
// separate resource, so this is a two-step read: resolve the creative id
// from the ad, then fetch the creative's own field set.
func (s *Service) GetAdCreatives(ctx context.Context, token, adID string) (map[string]interface{}, error) {
	if adID == "" {
		return nil, tools.NewValidationError("ad_id", "is required")
	}

	ad, err := s.graph.Execute(ctx, http.MethodGet, adID, token, graph.Params{
		"fields": "creative",
	})
	if err != nil {
		return nil, err
	}

	creativeRef, _ := ad["creative"].(map[string]interface{})
	creativeID, _ := creativeRef["id"].(string)
	if creativeID == "" {
		return map[string]interface{}{
			"ad_id": adID,
			"_meta": map[string]interface{}{
				"note": "No creative ID found for this ad.",
			},
		}, nil
	}

	return s.graph.Execute(ctx, http.MethodGet, creativeID, token, graph.Params{
		"fields": creativeFields,
	})
}
