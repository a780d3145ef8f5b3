package compose_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Xemius/graphql-platform/internal/compose"
)

func TestLoadSortsInputs(t *testing.T) {
	disc := compose.NewInMemoryDiscovery([]compose.InMemorySubgraph{
		{Name: "zebra", Content: "type Query { z: String }"},
		{Name: "alpha", Content: "type Query { a: String }"},
		{Name: "mango", Content: "type Query { m: String }"},
	})

	inputs, err := compose.Load(t.Context(), disc)
	require.NoError(t, err)
	require.Len(t, inputs, 3)
	require.Equal(t, "alpha", inputs[0].Name)
	require.Equal(t, "mango", inputs[1].Name)
	require.Equal(t, "zebra", inputs[2].Name)
}

func TestLoadAggregatesParseFailures(t *testing.T) {
	disc := compose.NewInMemoryDiscovery([]compose.InMemorySubgraph{
		{Name: "apples", Content: "type {"},
		{Name: "bananas", Content: "type Query { ok: String }"},
		{Name: "cherries", Content: "union ="},
	})

	_, err := compose.Load(t.Context(), disc)
	var cerr compose.CompositionError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr, 2)
	require.Contains(t, cerr[0].Message, `"apples"`)
	require.Contains(t, cerr[1].Message, `"cherries"`)
	for _, d := range cerr {
		require.Equal(t, compose.DiagnosticInvalidSchema, d.Kind)
	}
}

func TestLoadReadFailure(t *testing.T) {
	_, err := compose.Load(t.Context(), readFailingDiscovery{})
	require.ErrorContains(t, err, `reading subgraph "broken"`)

	var cerr compose.CompositionError
	require.False(t, errors.As(err, &cerr), "I/O failures are not diagnostics")
}

func TestLoadListFailure(t *testing.T) {
	_, err := compose.Load(t.Context(), listFailingDiscovery{})
	require.ErrorContains(t, err, "listing failed")
}

type readFailingDiscovery struct{}

func (readFailingDiscovery) ListSubgraphs(ctx context.Context) ([]*compose.SubgraphMeta, error) {
	return []*compose.SubgraphMeta{{Name: "broken"}}, nil
}

func (readFailingDiscovery) ReadSchema(ctx context.Context, name string) (string, error) {
	return "", errors.New("disk unavailable")
}

type listFailingDiscovery struct{}

func (listFailingDiscovery) ListSubgraphs(ctx context.Context) ([]*compose.SubgraphMeta, error) {
	return nil, errors.New("listing failed")
}

func (listFailingDiscovery) ReadSchema(ctx context.Context, name string) (string, error) {
	return "", nil
}
