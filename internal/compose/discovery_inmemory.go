package compose

import (
	"context"
	"fmt"
)

type InMemorySubgraph struct {
	Name    string
	Content string
}

// InMemoryDiscovery is a test implementation of Discovery that stores
// schema text in memory.
type InMemoryDiscovery struct {
	metas    []*SubgraphMeta
	contents map[string]string
}

// NewInMemoryDiscovery creates a new InMemoryDiscovery instance.
func NewInMemoryDiscovery(subgraphs []InMemorySubgraph) *InMemoryDiscovery {
	discovery := &InMemoryDiscovery{
		contents: make(map[string]string),
	}
	for _, sub := range subgraphs {
		discovery.metas = append(discovery.metas, &SubgraphMeta{Name: sub.Name})
		if _, ok := discovery.contents[sub.Name]; !ok {
			discovery.contents[sub.Name] = sub.Content
		}
	}
	return discovery
}

func (d *InMemoryDiscovery) String() string { return "memory" }

// ListSubgraphs implements Discovery.
func (d *InMemoryDiscovery) ListSubgraphs(ctx context.Context) ([]*SubgraphMeta, error) {
	return append([]*SubgraphMeta(nil), d.metas...), nil
}

// ReadSchema implements Discovery.
func (d *InMemoryDiscovery) ReadSchema(ctx context.Context, name string) (string, error) {
	content, ok := d.contents[name]
	if !ok {
		return "", fmt.Errorf("subgraph %q not found", name)
	}
	return content, nil
}
