package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
)

// PostRepository keeps posts in memory for demos and tests.
type PostRepository struct {
	base baseMemoryRepo[domain.Post]
	seq  sync.Mutex
}

var _ store.PostRepository = (*PostRepository)(nil)

func NewPostRepository() *PostRepository {
	return &PostRepository{
		base: newBaseMemoryRepo(func(p *domain.Post) *domain.RecordMeta { return &p.RecordMeta }),
	}
}

// Create stores the post, assigning the next free Number when unset.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.seq.Lock()
	defer r.seq.Unlock()

	var highest int64
	taken := false
	r.base.each(func(p *domain.Post) {
		if p.Number > highest {
			highest = p.Number
		}
		if post.Number != 0 && p.Number == post.Number {
			taken = true
		}
	})
	if taken {
		return fmt.Errorf("memory: post number %d already exists", post.Number)
	}
	if post.Number == 0 {
		post.Number = highest + 1
	}
	if post.Type == "" {
		post.Type = domain.PostTypePost
	}
	if post.Status == "" {
		post.Status = domain.PostStatusPublish
	}
	return r.base.create(ctx, post)
}

func (r *PostRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.Post], error) {
	return r.base.list(ctx, opts)
}

func (r *PostRepository) GetByNumber(ctx context.Context, number int64) (*domain.Post, error) {
	post, ok := r.base.find(func(p *domain.Post) bool { return p.Number == number })
	if !ok {
		return nil, store.ErrNotFound
	}
	return post, nil
}

// Trash soft deletes the live post with number. Lookup and marking happen
// under one lock so concurrent calls trash a post at most once.
func (r *PostRepository) Trash(ctx context.Context, number int64) error {
	return r.base.trash(func(p *domain.Post) bool { return p.Number == number })
}
