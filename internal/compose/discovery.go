package compose

import (
	"context"
)

// SubgraphMeta identifies one discoverable subgraph. Path is the
// source location used in diagnostics and may be empty.
type SubgraphMeta struct {
	Name string
	Path string
}

// Discovery enumerates the subgraphs of a composition target and
// serves their schema text.
type Discovery interface {
	ListSubgraphs(ctx context.Context) ([]*SubgraphMeta, error)
	ReadSchema(ctx context.Context, name string) (string, error)
}
