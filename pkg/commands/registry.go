package commands

import (
	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-post-delete/internal/commands"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
	"github.com/goliatone/go-post-delete/pkg/postdelete"
)

// Re-export request types so consumers need not import internal packages.
type (
	DeletePost = internalcommands.DeletePost
	CreatePost = internalcommands.CreatePost
)

// Errors returned by DeletePost.
var (
	ErrUnauthorized = internalcommands.ErrUnauthorized
	ErrDeleteFailed = internalcommands.ErrDeleteFailed
)

// Registry exposes go-command compatible handlers backed by the module services.
type Registry struct {
	Catalog    *internalcommands.Catalog
	DeletePost command.Commander[DeletePost]
	CreatePost command.Commander[CreatePost]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Service *postdelete.Service
	Content host.Content
	Posts   store.PostRepository
	Logger  logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	var authorizer internalcommands.Authorizer
	if deps.Service != nil {
		authorizer = deps.Service
	}
	catalog, err := internalcommands.NewCatalog(internalcommands.Dependencies{
		Authorizer: authorizer,
		Content:    deps.Content,
		Posts:      deps.Posts,
		Logger:     deps.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:    catalog,
		DeletePost: catalog.DeletePost,
		CreatePost: catalog.CreatePost,
	}, nil
}

// Commanders returns every handler so callers can register them with go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.DeletePost,
		r.CreatePost,
	}
}
