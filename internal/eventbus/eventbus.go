package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handler processes events of type T.
type Handler[T any] func(context.Context, T)

// Bus is a simple in-process event dispatcher.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[reflect.Type][]subscription
}

type subscription struct {
	id int
	fn func(context.Context, any)
}

// New creates a new Bus.
func New() *Bus { return &Bus{subs: make(map[reflect.Type][]subscription)} }

func (b *Bus) subscribe(t reflect.Type, fn func(context.Context, any)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], subscription{id: id, fn: fn})
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[t]
		for i, sub := range list {
			if sub.id == id {
				b.subs[t] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(b.subs[t]) == 0 {
			delete(b.subs, t)
		}
	}
}

// emit dispatches e to all handlers of its dynamic type, in
// subscription order.
func (b *Bus) emit(ctx context.Context, e any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	list := append([]subscription(nil), b.subs[reflect.TypeOf(e)]...)
	b.mu.RUnlock()
	for _, sub := range list {
		sub.fn(ctx, e)
	}
}

var global atomic.Pointer[Bus]

// Use sets the global bus. Passing nil disables event publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h with the global bus.
func Subscribe[T any](h Handler[T]) (unsubscribe func()) {
	if b := global.Load(); b != nil {
		t := reflect.TypeOf((*T)(nil)).Elem()
		return b.subscribe(t, func(ctx context.Context, v any) { h(ctx, v.(T)) })
	}
	return func() {}
}

// Publish sends e through the global bus.
func Publish[T any](ctx context.Context, e T) {
	if b := global.Load(); b != nil {
		b.emit(ctx, e)
	}
}
