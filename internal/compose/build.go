package compose

import (
	"context"
	"sort"

	"github.com/Xemius/graphql-platform/internal/eventbus"
	"github.com/Xemius/graphql-platform/internal/events"
	"github.com/Xemius/graphql-platform/internal/language"
	"github.com/Xemius/graphql-platform/internal/supergraph"
)

// Input is one named subgraph schema handed to Build. Subgraph names
// must be unique across the input set.
type Input struct {
	Name     string
	Document *language.SchemaDocument
}

type builder struct {
	inputs    []*Input
	subgraphs []*Subgraph

	merged   map[string]*mergedType
	entities []*mergedType // merged types promoted to entity, promotion order

	diagnostics []*Diagnostic
}

// Build composes the subgraph set into a supergraph document. It
// either fully succeeds or fails with a CompositionError carrying
// every diagnostic found; no partial document is returned. The result
// is independent of input order.
func Build(ctx context.Context, inputs []*Input) (*supergraph.Document, error) {
	b := &builder{
		inputs: inputs,
		merged: make(map[string]*mergedType),
	}
	doc, err := b.build(ctx)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (b *builder) build(ctx context.Context) (*supergraph.Document, error) {
	eventbus.Publish(ctx, events.BuildStart{Subgraphs: len(b.inputs)})

	// Reshape each subgraph document into its model
	if err := b.buildSubgraphs(); err != nil {
		return nil, err
	}

	// Merge same-named types across subgraphs
	if err := b.mergeTypes(); err != nil {
		return nil, err
	}

	// Extract entity keys and resolver candidates from Query fields
	if err := b.extractEntities(); err != nil {
		return nil, err
	}

	// Synthesize @variable and @resolver bindings
	b.synthesize()

	doc := b.assemble()
	eventbus.Publish(ctx, events.BuildFinish{Types: len(doc.Types), Entities: len(b.entities)})
	return doc, nil
}

func (b *builder) addDiagnostic(d ...*Diagnostic) {
	b.diagnostics = append(b.diagnostics, d...)
}

// buildSubgraphs checks name uniqueness and builds the per-subgraph
// models in name-sorted order, so that subgraph Index and every
// first-contributor rule downstream are stable under input reordering.
func (b *builder) buildSubgraphs() error {
	inputs := append([]*Input(nil), b.inputs...)
	sort.SliceStable(inputs, func(i, j int) bool { return inputs[i].Name < inputs[j].Name })

	seen := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		if seen[input.Name] {
			b.addDiagnostic(diagnosticDuplicateSubgraph(input.Name))
			continue
		}
		seen[input.Name] = true

		sg, diagnostics := buildSubgraph(input.Name, len(b.subgraphs), input.Document)
		b.addDiagnostic(diagnostics...)
		b.subgraphs = append(b.subgraphs, sg)
	}

	if len(b.diagnostics) > 0 {
		return CompositionError(b.diagnostics)
	}
	return nil
}
