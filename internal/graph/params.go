package graph

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Params holds the parameters for one Graph API operation. Scalar values are
// transmitted as-is; any structured value (map, slice, or struct) is
// serialized to its JSON string form before transmission, because the Graph
// API expects nested structures (targeting specs, frequency cap lists) as
// JSON-encoded strings inside otherwise flat form parameters.
type Params map[string]interface{}

// Encode converts the params into url.Values ready for a query string or
// form body, applying the structure-to-string encoding rule.
func (p Params) Encode() (url.Values, error) {
	values := url.Values{}
	for key, raw := range p {
		s, err := encodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to encode param %q: %w", key, err)
		}
		values.Set(key, s)
	}
	return values, nil
}

// Clone returns a shallow copy so concurrent callers never share
// mutable parameter state.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Redacted returns a plain map view of the params with any credential value
// masked, suitable for error envelopes and diagnostics.
func (p Params) Redacted() map[string]interface{} {
	if p == nil {
		return nil
	}
	out := make(map[string]interface{}, len(p))
	for k, v := range p {
		if k == "access_token" {
			out[k] = "***TOKEN***"
			continue
		}
		out[k] = v
	}
	return out
}

func encodeValue(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		// JSON numbers arrive as float64; budgets and limits are integral
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), nil
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	default:
		// Maps, slices and structs become JSON strings
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
