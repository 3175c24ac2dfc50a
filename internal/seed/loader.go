package seed

import (
	"context"
	"fmt"

	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// ErrCodeLoadFailed marks a dataset that was only partly written.
const ErrCodeLoadFailed types.ErrorCode = "SEED_LOAD_FAILED"

// Result counts what a load did.
type Result struct {
	Cleared       int `json:"cleared"`
	Nodes         int `json:"nodes"`
	Relationships int `json:"relationships"`
}

// Load writes ds to the graph. With reset, every existing node is removed first.
// Writes are not transactional: a failure leaves the nodes created so far in place.
func Load(ctx context.Context, client graph.GraphClient, ds *Dataset, reset bool, logger *observability.TracedLogger) (Result, error) {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	var res Result

	if err := ds.Validate(); err != nil {
		return res, types.WrapError(types.REQUEST_INVALID, "invalid dataset", err)
	}

	if reset {
		n, err := client.Clear(ctx)
		if err != nil {
			return res, types.WrapError(ErrCodeLoadFailed, "failed to clear graph", err)
		}
		res.Cleared = n
		logger.Info(ctx, "cleared graph", "nodes", n)
	}

	ids := make(map[string]string, len(ds.Nodes))
	for _, n := range ds.Nodes {
		id, err := client.CreateNode(ctx, n.Labels, n.Properties)
		if err != nil {
			return res, types.WrapError(ErrCodeLoadFailed, fmt.Sprintf("failed to create node %q", n.Key), err)
		}
		ids[n.Key] = id
		res.Nodes++
	}

	for _, r := range ds.Relationships {
		if err := client.CreateRelationship(ctx, ids[r.From], ids[r.To], r.Type, r.Properties); err != nil {
			return res, types.WrapError(ErrCodeLoadFailed,
				fmt.Sprintf("failed to create %s relationship from %q to %q", r.Type, r.From, r.To), err)
		}
		res.Relationships++
	}

	logger.Info(ctx, "dataset loaded", "nodes", res.Nodes, "relationships", res.Relationships)
	return res, nil
}
