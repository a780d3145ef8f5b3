package compose

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Xemius/graphql-platform/internal/eventbus"
	"github.com/Xemius/graphql-platform/internal/events"
	"github.com/Xemius/graphql-platform/internal/language"
	"github.com/Xemius/graphql-platform/internal/supergraph"
)

// Load reads and parses every discovered subgraph schema. Subgraphs
// are independent, so reading and parsing run concurrently; results
// land in name-sorted slots so the returned set is deterministic.
// Unparseable schemas are reported together as a CompositionError.
func Load(ctx context.Context, disc Discovery) ([]*Input, error) {
	metas, err := disc.ListSubgraphs(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })

	inputs := make([]*Input, len(metas))
	failures := make([]*Diagnostic, len(metas))

	g, gctx := errgroup.WithContext(ctx)
	for i, meta := range metas {
		g.Go(func() error {
			started := time.Now()
			eventbus.Publish(gctx, events.SubgraphLoadStart{Subgraph: meta.Name})

			sdl, err := disc.ReadSchema(gctx, meta.Name)
			if err != nil {
				eventbus.Publish(gctx, events.SubgraphLoadFinish{Subgraph: meta.Name, Err: err, Duration: time.Since(started)})
				return fmt.Errorf("reading subgraph %q: %w", meta.Name, err)
			}

			sourceName := meta.Path
			if sourceName == "" {
				sourceName = meta.Name
			}
			doc, err := language.ParseSchema(sourceName, sdl)
			eventbus.Publish(gctx, events.SubgraphLoadFinish{Subgraph: meta.Name, Err: err, Duration: time.Since(started)})
			if err != nil {
				failures[i] = diagnosticParseFailure(meta.Name, sourceName, err)
				return nil
			}
			inputs[i] = &Input{Name: meta.Name, Document: doc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var diagnostics []*Diagnostic
	for _, d := range failures {
		if d != nil {
			diagnostics = append(diagnostics, d)
		}
	}
	if len(diagnostics) > 0 {
		return nil, CompositionError(diagnostics)
	}
	return inputs, nil
}

// Compose runs discovery, composition and rendering as one step and
// returns the supergraph document text.
func Compose(ctx context.Context, disc Discovery) (string, error) {
	started := time.Now()
	target := ""
	if s, ok := disc.(fmt.Stringer); ok {
		target = s.String()
	}
	eventbus.Publish(ctx, events.ComposeStart{Target: target})

	inputs, err := Load(ctx, disc)
	if err != nil {
		eventbus.Publish(ctx, events.ComposeFinish{Target: target, Err: err, Duration: time.Since(started)})
		return "", err
	}

	doc, err := Build(ctx, inputs)
	if err != nil {
		eventbus.Publish(ctx, events.ComposeFinish{Target: target, Subgraphs: len(inputs), Err: err, Duration: time.Since(started)})
		return "", err
	}

	out := supergraph.Render(doc)
	eventbus.Publish(ctx, events.ComposeFinish{Target: target, Subgraphs: len(inputs), Bytes: len(out), Duration: time.Since(started)})
	return out, nil
}
