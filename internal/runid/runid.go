package runid

import (
	"context"

	"github.com/google/uuid"
)

// key is the context key for the run ID.
type key struct{}

// NewContext returns a copy of parent with a fresh run ID stored.
// It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the run ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(key{}).(string)
	return id, ok
}
