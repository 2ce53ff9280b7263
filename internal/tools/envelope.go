// Package tools applies the uniform invocation envelope to every MCP tool:
// token resolution before the tool body runs, and normalization of every
// failure into a structured error result. Tool bodies only contain domain
// logic; no fault crosses the external boundary unhandled.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/praecolabs/praeco/internal/graph"
	"github.com/praecolabs/praeco/internal/services/auth"
)

// ErrorEnvelope is the uniform error shape every tool returns on failure.
type ErrorEnvelope struct {
	Error      string                 `json:"error"`
	Details    string                 `json:"details,omitempty"`
	ParamsSent map[string]interface{} `json:"params_sent,omitempty"`
}

// SuccessResult renders a decoded payload as a pretty-printed JSON text
// result. The payload is returned unaltered apart from formatting.
func SuccessResult(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return textResult(renderEnvelope(ErrorEnvelope{
			Error:   "failed to render result",
			Details: err.Error(),
		})), nil
	}
	return textResult(string(data)), nil
}

// ErrorResult renders an explicit error envelope.
func ErrorResult(env ErrorEnvelope) *mcp.CallToolResult {
	return textResult(renderEnvelope(env))
}

// envelopeFromError classifies a failure into the uniform error envelope.
func envelopeFromError(err error) ErrorEnvelope {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ErrorEnvelope{Error: validationErr.Error()}
	}

	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		return ErrorEnvelope{Error: authErr.Error()}
	}

	var apiErr *graph.APIError
	if errors.As(err, &apiErr) {
		env := ErrorEnvelope{
			Error:      apiErr.Error(),
			ParamsSent: apiErr.ParamsSent,
		}
		if len(apiErr.Body) > 0 {
			if data, err := json.Marshal(apiErr.Body); err == nil {
				env.Details = string(data)
			}
		}
		return env
	}

	var transportErr *graph.TransportError
	if errors.As(err, &transportErr) {
		return ErrorEnvelope{
			Error:   "network error reaching the Graph API",
			Details: transportErr.Error(),
		}
	}

	var decodeErr *graph.DecodeError
	if errors.As(err, &decodeErr) {
		return ErrorEnvelope{
			Error:   "could not parse the Graph API response",
			Details: decodeErr.Error(),
		}
	}

	return ErrorEnvelope{Error: err.Error()}
}

func renderEnvelope(env ErrorEnvelope) string {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		// Envelope fields are plain strings and maps; this does not happen
		return fmt.Sprintf(`{"error": %q}`, env.Error)
	}
	return string(data)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
