package store

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-post-delete/pkg/domain"
)

// ErrNotFound is returned when a record cannot be located.
var ErrNotFound = errors.New("store: not found")

// ListOptions capture pagination and filtering knobs common to repositories.
type ListOptions struct {
	Limit              int
	Offset             int
	Since              time.Time
	Until              time.Time
	IncludeSoftDeleted bool
}

// ListResult bundles records and totals.
type ListResult[T any] struct {
	Items []T
	Total int
}

// Repository defines base helpers reused by entity-specific interfaces.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	List(ctx context.Context, opts ListOptions) (ListResult[T], error)
}

// PostRepository persists host posts. Number lookups exclude trashed posts;
// Trash returns ErrNotFound for missing or already trashed posts.
type PostRepository interface {
	Repository[domain.Post]
	GetByNumber(ctx context.Context, number int64) (*domain.Post, error)
	Trash(ctx context.Context, number int64) error
}
