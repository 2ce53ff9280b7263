package interfaces

import (
	"context"

	"github.com/praecolabs/praeco/internal/graph"
)

// GraphExecutor executes one logical Graph API operation. Satisfied by
// graph.Client; test doubles implement it to observe dispatched requests.
type GraphExecutor interface {
	Execute(ctx context.Context, method, endpoint, token string, params graph.Params) (map[string]interface{}, error)
}
