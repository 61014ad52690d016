package hooks

import (
	"context"
	"sort"
	"sync"
)

// DefaultPriority is used by AddFilter/AddAction when no priority is given.
const DefaultPriority = 10

// FilterFunc transforms value. args carries call-site context (e.g. a post id).
type FilterFunc func(ctx context.Context, value any, args ...any) any

// ActionFunc runs a side effect.
type ActionFunc func(ctx context.Context, args ...any)

type filterEntry struct {
	fn       FilterFunc
	priority int
	seq      int
}

type actionEntry struct {
	fn       ActionFunc
	priority int
	seq      int
}

// Registry stores filter and action chains. The zero value is not usable;
// use New.
type Registry struct {
	mu      sync.RWMutex
	filters map[string][]filterEntry
	actions map[string][]actionEntry
	seq     int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		filters: make(map[string][]filterEntry),
		actions: make(map[string][]actionEntry),
	}
}

// Option tunes a single registration.
type Option func(*registration)

type registration struct {
	priority int
}

// WithPriority sets the callback priority. Lower runs first.
func WithPriority(priority int) Option {
	return func(r *registration) {
		r.priority = priority
	}
}

func resolve(opts []Option) registration {
	reg := registration{priority: DefaultPriority}
	for _, opt := range opts {
		if opt != nil {
			opt(&reg)
		}
	}
	return reg
}

// AddFilter appends fn to the filter chain for name.
func (r *Registry) AddFilter(name string, fn FilterFunc, opts ...Option) {
	if r == nil || fn == nil || name == "" {
		return
	}
	reg := resolve(opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	chain := append(r.filters[name], filterEntry{fn: fn, priority: reg.priority, seq: r.seq})
	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].priority == chain[j].priority {
			return chain[i].seq < chain[j].seq
		}
		return chain[i].priority < chain[j].priority
	})
	r.filters[name] = chain
}

// AddAction appends fn to the action chain for name.
func (r *Registry) AddAction(name string, fn ActionFunc, opts ...Option) {
	if r == nil || fn == nil || name == "" {
		return
	}
	reg := resolve(opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	chain := append(r.actions[name], actionEntry{fn: fn, priority: reg.priority, seq: r.seq})
	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].priority == chain[j].priority {
			return chain[i].seq < chain[j].seq
		}
		return chain[i].priority < chain[j].priority
	})
	r.actions[name] = chain
}

// ApplyFilters threads value through every filter registered for name and
// returns the final value. Without filters the value is returned unchanged.
func (r *Registry) ApplyFilters(ctx context.Context, name string, value any, args ...any) any {
	if r == nil {
		return value
	}
	r.mu.RLock()
	chain := append([]filterEntry(nil), r.filters[name]...)
	r.mu.RUnlock()

	for _, entry := range chain {
		value = entry.fn(ctx, value, args...)
	}
	return value
}

// DoAction runs every action registered for name.
func (r *Registry) DoAction(ctx context.Context, name string, args ...any) {
	if r == nil {
		return
	}
	r.mu.RLock()
	chain := append([]actionEntry(nil), r.actions[name]...)
	r.mu.RUnlock()

	for _, entry := range chain {
		entry.fn(ctx, args...)
	}
}

// HasFilter reports whether name has at least one filter.
func (r *Registry) HasFilter(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters[name]) > 0
}

// HasAction reports whether name has at least one action.
func (r *Registry) HasAction(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions[name]) > 0
}

// RemoveAll drops every filter and action registered for name.
func (r *Registry) RemoveAll(name string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.filters, name)
	delete(r.actions, name)
}

// Apply runs the filter chain for name with a typed value. A callback
// returning a value of another type is skipped and the chain continues with
// the last well-typed value.
func Apply[T any](ctx context.Context, r *Registry, name string, value T, args ...any) T {
	if r == nil {
		return value
	}
	r.mu.RLock()
	chain := append([]filterEntry(nil), r.filters[name]...)
	r.mu.RUnlock()

	for _, entry := range chain {
		if next, ok := entry.fn(ctx, value, args...).(T); ok {
			value = next
		}
	}
	return value
}

// Filter adapts a typed callback into a FilterFunc. The callback is skipped
// when the incoming value is not a T.
func Filter[T any](fn func(ctx context.Context, value T, args ...any) T) FilterFunc {
	return func(ctx context.Context, value any, args ...any) any {
		typed, ok := value.(T)
		if !ok {
			return value
		}
		return fn(ctx, typed, args...)
	}
}

// Value returns a FilterFunc that ignores its input and returns v.
func Value(v any) FilterFunc {
	return func(context.Context, any, ...any) any { return v }
}
