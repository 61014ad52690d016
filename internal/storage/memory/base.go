package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
	"github.com/google/uuid"
)

type baseMemoryRepo[T any] struct {
	mu      sync.RWMutex
	records map[uuid.UUID]T
	extract func(*T) *domain.RecordMeta
}

func newBaseMemoryRepo[T any](extract func(*T) *domain.RecordMeta) baseMemoryRepo[T] {
	return baseMemoryRepo[T]{
		records: make(map[uuid.UUID]T),
		extract: extract,
	}
}

func (r *baseMemoryRepo[T]) create(ctx context.Context, record *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := r.extract(record)
	base.EnsureID()
	now := time.Now().UTC()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	r.records[base.ID] = *record
	return nil
}

func (r *baseMemoryRepo[T]) list(ctx context.Context, opts store.ListOptions) (store.ListResult[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []T
	for _, record := range r.records {
		base := r.extract(&record)
		if !opts.IncludeSoftDeleted && !base.DeletedAt.IsZero() {
			continue
		}
		if !opts.Since.IsZero() && base.CreatedAt.Before(opts.Since) {
			continue
		}
		if !opts.Until.IsZero() && base.CreatedAt.After(opts.Until) {
			continue
		}
		filtered = append(filtered, record)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return r.extract(&filtered[i]).CreatedAt.Before(r.extract(&filtered[j]).CreatedAt)
	})

	total := len(filtered)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := total
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}

	result := store.ListResult[T]{
		Items: filtered[start:end],
		Total: total,
	}
	return result, nil
}

// trash marks the first live record matching as deleted.
func (r *baseMemoryRepo[T]) trash(match func(*T) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, record := range r.records {
		base := r.extract(&record)
		if base.Trashed() || !match(&record) {
			continue
		}
		now := time.Now().UTC()
		base.DeletedAt = now
		base.UpdatedAt = now
		r.records[id] = record
		return nil
	}
	return store.ErrNotFound
}

func (r *baseMemoryRepo[T]) find(match func(*T) bool) (*T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if r.extract(&record).Trashed() {
			continue
		}
		if match(&record) {
			copy := record
			return &copy, true
		}
	}
	return nil, false
}

func (r *baseMemoryRepo[T]) each(fn func(*T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		fn(&record)
	}
}
