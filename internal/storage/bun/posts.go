package bunrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type PostRepository struct {
	base baseRepository[domain.Post]
}

var _ store.PostRepository = (*PostRepository)(nil)

func NewPostRepository(db *bun.DB) *PostRepository {
	handlers := repository.ModelHandlers[*domain.Post]{
		NewRecord:          func() *domain.Post { return &domain.Post{} },
		GetID:              func(p *domain.Post) uuid.UUID { return p.ID },
		SetID:              func(p *domain.Post, id uuid.UUID) { p.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(p *domain.Post) string { return p.ID.String() },
	}
	return &PostRepository{
		base: newBaseRepository[domain.Post](db, handlers, func(p *domain.Post) *domain.RecordMeta { return &p.RecordMeta }),
	}
}

// Create stores the post, assigning the next free Number when unset.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	if p.Type == "" {
		p.Type = domain.PostTypePost
	}
	if p.Status == "" {
		p.Status = domain.PostStatusPublish
	}
	if p.Number == 0 {
		next, err := r.nextNumber(ctx)
		if err != nil {
			return err
		}
		p.Number = next
	}
	return r.base.create(ctx, p)
}

func (r *PostRepository) List(ctx context.Context, opts store.ListOptions) (store.ListResult[domain.Post], error) {
	return r.base.list(ctx, opts)
}

func (r *PostRepository) GetByNumber(ctx context.Context, number int64) (*domain.Post, error) {
	record, err := r.base.repo.Get(ctx, withNumber(number), withoutDeleted())
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

// Trash soft deletes the live post with number in a single UPDATE, so
// concurrent calls trash a post at most once.
func (r *PostRepository) Trash(ctx context.Context, number int64) error {
	now := time.Now().UTC()
	res, err := r.base.db.NewUpdate().
		Model((*domain.Post)(nil)).
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Where("number = ?", number).
		Where("deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bunrepo: trash post %d: %w", number, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *PostRepository) nextNumber(ctx context.Context) (int64, error) {
	var highest int64
	err := r.base.db.NewSelect().
		Model((*domain.Post)(nil)).
		WhereAllWithDeleted().
		ColumnExpr("COALESCE(MAX(number), 0)").
		Scan(ctx, &highest)
	if err != nil {
		return 0, fmt.Errorf("bunrepo: next post number: %w", err)
	}
	return highest + 1, nil
}
