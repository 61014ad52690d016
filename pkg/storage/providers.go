package storage

import (
	"context"
	"database/sql"

	bunrepo "github.com/goliatone/go-post-delete/internal/storage/bun"
	"github.com/goliatone/go-post-delete/internal/storage/memory"
	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
)

// Providers exposes the repositories needed by the reference host.
type Providers struct {
	Posts       store.PostRepository
	Transaction store.TransactionManager
}

type Option func(*Providers)

// WithPostRepository swaps the post repository, e.g. for a host-owned store.
func WithPostRepository(repo store.PostRepository) Option {
	return func(p *Providers) {
		if repo != nil {
			p.Posts = repo
		}
	}
}

// NewMemoryProviders returns repositories backed by in-memory maps.
func NewMemoryProviders(opts ...Option) Providers {
	providers := Providers{
		Posts:       memory.NewPostRepository(),
		Transaction: &store.NopTransactionManager{},
	}
	for _, opt := range opts {
		opt(&providers)
	}
	return providers
}

// NewBunProviders wires Bun-backed repositories using go-repository-bun.
// The caller is responsible for creating the *bun.DB instance (potentially
// via go-persistence-bun) and managing its lifecycle.
func NewBunProviders(db *bun.DB, opts ...Option) Providers {
	if db == nil {
		panic("storage: bun DB is required")
	}

	// Register models so go-persistence-bun migrations can pick them up.
	persistence.RegisterModel(
		(*domain.Post)(nil),
	)

	providers := Providers{
		Posts:       bunrepo.NewPostRepository(db),
		Transaction: &bunTxManager{db: db},
	}

	for _, opt := range opts {
		opt(&providers)
	}
	return providers
}

// CreateSchema creates the tables for every registered model. Intended for
// demos and tests running on an empty database.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*domain.Post)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

type bunTxManager struct {
	db *bun.DB
}

func (m *bunTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx)
	})
}
