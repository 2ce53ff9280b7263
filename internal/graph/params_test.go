package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsEncodeScalars(t *testing.T) {
	params := Params{
		"name":        "Summer Sale",
		"limit":       25,
		"daily_bid":   int64(1500),
		"enabled":     true,
		"json_number": float64(10),
		"ratio":       2.5,
	}

	values, err := params.Encode()
	require.NoError(t, err)

	assert.Equal(t, "Summer Sale", values.Get("name"))
	assert.Equal(t, "25", values.Get("limit"))
	assert.Equal(t, "1500", values.Get("daily_bid"))
	assert.Equal(t, "true", values.Get("enabled"))
	assert.Equal(t, "10", values.Get("json_number"), "integral floats encode without decimal point")
	assert.Equal(t, "2.5", values.Get("ratio"))
}

func TestParamsEncodeNestedStructure(t *testing.T) {
	targeting := map[string]interface{}{
		"age_min":       float64(18),
		"age_max":       float64(65),
		"geo_locations": map[string]interface{}{"countries": []interface{}{"US"}},
	}

	params := Params{"targeting": targeting}
	values, err := params.Encode()
	require.NoError(t, err)

	encoded := values.Get("targeting")
	require.NotEmpty(t, encoded)

	// Round-trip: the JSON-string form must decode back to the original
	// structure exactly
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))
	assert.Equal(t, targeting, decoded)
}

func TestParamsEncodeFrequencyCapList(t *testing.T) {
	specs := []map[string]interface{}{
		{"event": "IMPRESSIONS", "interval_days": float64(7), "max_frequency": float64(3)},
	}

	values, err := Params{"frequency_control_specs": specs}.Encode()
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(values.Get("frequency_control_specs")), &decoded))
	assert.Equal(t, specs, decoded)
}

func TestParamsClone(t *testing.T) {
	original := Params{"status": "PAUSED"}
	clone := original.Clone()
	clone["status"] = "ACTIVE"
	clone["extra"] = "value"

	assert.Equal(t, "PAUSED", original["status"])
	assert.NotContains(t, original, "extra")
}
