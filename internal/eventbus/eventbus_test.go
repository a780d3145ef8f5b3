package eventbus_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Xemius/graphql-platform/internal/eventbus"
)

type ping struct{ n int }

type pong struct{ n int }

func useBus(t *testing.T) {
	t.Helper()
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })
}

func TestPublishWithoutBus(t *testing.T) {
	eventbus.Use(nil)
	eventbus.Publish(t.Context(), ping{n: 1})

	unsubscribe := eventbus.Subscribe(func(ctx context.Context, e ping) {
		t.Fatal("handler must not run without a bus")
	})
	unsubscribe()
}

func TestSubscribePublish(t *testing.T) {
	useBus(t)

	var got []ping
	eventbus.Subscribe(func(ctx context.Context, e ping) {
		got = append(got, e)
	})

	eventbus.Publish(t.Context(), ping{n: 1})
	eventbus.Publish(t.Context(), ping{n: 2})

	require.Equal(t, []ping{{n: 1}, {n: 2}}, got)
}

func TestUnsubscribe(t *testing.T) {
	useBus(t)

	calls := 0
	unsubscribe := eventbus.Subscribe(func(ctx context.Context, e ping) {
		calls++
	})

	eventbus.Publish(t.Context(), ping{n: 1})
	unsubscribe()
	unsubscribe()
	eventbus.Publish(t.Context(), ping{n: 2})

	require.Equal(t, 1, calls)
}

func TestTypeIsolation(t *testing.T) {
	useBus(t)

	var pings, pongs int
	eventbus.Subscribe(func(ctx context.Context, e ping) { pings++ })
	eventbus.Subscribe(func(ctx context.Context, e pong) { pongs++ })

	eventbus.Publish(t.Context(), ping{n: 1})
	eventbus.Publish(t.Context(), ping{n: 2})
	eventbus.Publish(t.Context(), pong{n: 1})

	require.Equal(t, 2, pings)
	require.Equal(t, 1, pongs)
}

func TestSubscriptionOrder(t *testing.T) {
	useBus(t)

	var order []string
	eventbus.Subscribe(func(ctx context.Context, e ping) { order = append(order, "first") })
	eventbus.Subscribe(func(ctx context.Context, e ping) { order = append(order, "second") })

	eventbus.Publish(t.Context(), ping{n: 1})

	require.Equal(t, []string{"first", "second"}, order)
}

func TestContextPassesThrough(t *testing.T) {
	useBus(t)

	type key struct{}
	var seen any
	eventbus.Subscribe(func(ctx context.Context, e ping) {
		seen = ctx.Value(key{})
	})

	ctx := context.WithValue(t.Context(), key{}, "marker")
	eventbus.Publish(ctx, ping{n: 1})

	require.Equal(t, "marker", seen)
}

func TestConcurrentPublish(t *testing.T) {
	useBus(t)

	var calls atomic.Int64
	eventbus.Subscribe(func(ctx context.Context, e ping) {
		calls.Add(1)
	})

	ctx := t.Context()
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				eventbus.Publish(ctx, ping{n: i})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1000), calls.Load())
}
