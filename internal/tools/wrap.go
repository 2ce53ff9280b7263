package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/praecolabs/praeco/internal/interfaces"
)

// HandlerFunc is the body of one tool operation. It receives the resolved
// access token and the raw request and returns a decoded payload.
type HandlerFunc func(ctx context.Context, token string, request mcp.CallToolRequest) (interface{}, error)

// Wrap turns a tool body into an MCP handler with the uniform envelope
// applied. When the caller supplied an explicit access_token argument it is
// passed through unchanged and the token lifecycle manager is never
// consulted; otherwise a token is resolved and injected. Token resolution
// always completes before the tool body runs. Any failure, including a
// panic in the body, becomes an error envelope rather than a fault.
func Wrap(name string, tokens interfaces.TokenManager, logger arbor.ILogger, fn HandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Str("tool", name).Str("panic", fmt.Sprint(r)).Msg("Tool handler panicked")
				result = ErrorResult(ErrorEnvelope{
					Error: fmt.Sprintf("internal error in %s: %v", name, r),
				})
				err = nil
			}
		}()

		token := request.GetString("access_token", "")
		if token == "" {
			token, err = tokens.GetAccessToken(ctx, false)
			if err != nil {
				logger.Warn().Str("tool", name).Err(err).Msg("Token resolution failed")
				return ErrorResult(envelopeFromError(err)), nil
			}
		}

		payload, err := fn(ctx, token, request)
		if err != nil {
			logger.Warn().Str("tool", name).Err(err).Msg("Tool call failed")
			return ErrorResult(envelopeFromError(err)), nil
		}

		return SuccessResult(payload)
	}
}
