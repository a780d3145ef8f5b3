package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// manifest is the on-disk shape of a composition manifest:
//
//	subgraphs:
//	  - name: accounts
//	    schema: accounts/schema.graphql
type manifest struct {
	Subgraphs []manifestSubgraph `yaml:"subgraphs"`
}

type manifestSubgraph struct {
	Name   string `yaml:"name"`
	Schema string `yaml:"schema"`
}

// ManifestDiscovery implements Discovery over a YAML manifest that
// names each subgraph and its schema file. Schema paths are resolved
// relative to the manifest location.
type ManifestDiscovery struct {
	path  string
	metas []*SubgraphMeta
	paths map[string]string
}

func NewManifestDiscovery(path string) (*ManifestDiscovery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	if len(m.Subgraphs) == 0 {
		return nil, fmt.Errorf("manifest %q lists no subgraphs", path)
	}

	discovery := &ManifestDiscovery{
		path:  path,
		paths: make(map[string]string),
	}
	base := filepath.Dir(path)
	for i, sub := range m.Subgraphs {
		if sub.Name == "" {
			return nil, fmt.Errorf("manifest %q: subgraph %d has no name", path, i)
		}
		if sub.Schema == "" {
			return nil, fmt.Errorf("manifest %q: subgraph %q has no schema path", path, sub.Name)
		}
		schemaPath := sub.Schema
		if !filepath.IsAbs(schemaPath) {
			schemaPath = filepath.Join(base, schemaPath)
		}
		discovery.metas = append(discovery.metas, &SubgraphMeta{Name: sub.Name, Path: sub.Schema})
		if _, ok := discovery.paths[sub.Name]; !ok {
			discovery.paths[sub.Name] = schemaPath
		}
	}
	return discovery, nil
}

func (d *ManifestDiscovery) String() string { return d.path }

// WatchRoots reports the manifest file plus every schema file it
// names, so a watcher sees edits to either.
func (d *ManifestDiscovery) WatchRoots() []string {
	roots := []string{d.path}
	seen := map[string]bool{}
	for _, meta := range d.metas {
		path := d.paths[meta.Name]
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		roots = append(roots, path)
	}
	return roots
}

// ListSubgraphs returns the manifest entries in declaration order.
func (d *ManifestDiscovery) ListSubgraphs(ctx context.Context) ([]*SubgraphMeta, error) {
	return append([]*SubgraphMeta(nil), d.metas...), nil
}

// ReadSchema reads the schema file named by the manifest entry.
func (d *ManifestDiscovery) ReadSchema(ctx context.Context, name string) (string, error) {
	path, ok := d.paths[name]
	if !ok {
		return "", fmt.Errorf("subgraph %q not found", name)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema for %q: %w", name, err)
	}
	return string(content), nil
}
