// Package graph provides the graph store client used by the question answering pipeline.
//
// GraphClient is the only way the rest of the service talks to Neo4j. Reads run in
// read-access sessions so that a generated statement can never modify data, and
// every failure is returned as a *types.AppError with one of the ErrCodeGraph* codes:
//
//   - ErrCodeGraphConnectionFailed / ErrCodeGraphConnectionClosed: the store is unreachable
//   - ErrCodeGraphQueryTimeout: the query ran past its deadline or the server tx timeout
//   - ErrCodeGraphInvalidQuery / ErrCodeGraphQueryFailed: the store refused the statement;
//     the AppError message carries the store's message verbatim
//
// # Usage
//
//	config := graph.DefaultConfig()
//	config.URI = "bolt://localhost:7687"
//	config.Password = os.Getenv("NEO4J_PASSWORD")
//
//	client, err := graph.NewNeo4jClient(config)
//	if err != nil {
//	    return err
//	}
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close(ctx)
//
//	result, err := client.Query(ctx, "MATCH (p:Project) RETURN p.name AS name", nil)
//
// Records are normalized with NormalizeValue, so nodes, relationships and paths
// arrive as plain maps that encode directly as JSON.
//
// MockGraphClient implements GraphClient in memory for tests.
package graph
