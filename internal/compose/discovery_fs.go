package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirectoryDiscovery implements Discovery over a directory tree: every
// .graphql file is one subgraph named after its base name.
type DirectoryDiscovery struct {
	dir   string
	metas []*SubgraphMeta
	paths map[string]string
}

// NewDirectoryDiscovery walks rootDir and indexes its schema files.
// Files sharing a base name are all listed, so composition can report
// the duplicate instead of silently dropping one.
func NewDirectoryDiscovery(rootDir string) (*DirectoryDiscovery, error) {
	discovery := &DirectoryDiscovery{
		dir:   rootDir,
		paths: make(map[string]string),
	}

	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".graphql" {
			return nil
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %q: %w", path, err)
		}

		name := strings.TrimSuffix(d.Name(), ".graphql")
		discovery.metas = append(discovery.metas, &SubgraphMeta{Name: name, Path: relPath})
		if _, ok := discovery.paths[name]; !ok {
			discovery.paths[name] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk root directory %q: %w", rootDir, err)
	}
	return discovery, nil
}

func (d *DirectoryDiscovery) String() string { return d.dir }

// WatchRoots reports the paths a file watcher must cover to observe
// schema changes for this discovery.
func (d *DirectoryDiscovery) WatchRoots() []string { return []string{d.dir} }

// ListSubgraphs returns the discovered subgraphs.
func (d *DirectoryDiscovery) ListSubgraphs(ctx context.Context) ([]*SubgraphMeta, error) {
	return append([]*SubgraphMeta(nil), d.metas...), nil
}

// ReadSchema reads the schema text for a discovered subgraph.
func (d *DirectoryDiscovery) ReadSchema(ctx context.Context, name string) (string, error) {
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
