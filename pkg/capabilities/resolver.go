package capabilities

import (
	"context"
	"errors"

	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
)

// doNotAllow is never granted; meta mappings return it for missing posts.
const doNotAllow = "do_not_allow"

// PostLookup finds live posts by number.
type PostLookup interface {
	GetByNumber(ctx context.Context, number int64) (*domain.Post, error)
}

// Dependencies wires the resolver.
type Dependencies struct {
	Posts  PostLookup
	Roles  Roles
	Logger logger.Logger
}

// Resolver implements host.Capabilities.
type Resolver struct {
	posts  PostLookup
	roles  Roles
	logger logger.Logger
}

var (
	_ host.Capabilities    = (*Resolver)(nil)
	_ host.AnyCapabilities = (*Resolver)(nil)
)

var errPostsRequired = errors.New("capabilities: post lookup is required")

// New builds a resolver. A nil role table uses DefaultRoles.
func New(deps Dependencies) (*Resolver, error) {
	if deps.Posts == nil {
		return nil, errPostsRequired
	}
	if deps.Roles == nil {
		deps.Roles = DefaultRoles()
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	return &Resolver{
		posts:  deps.Posts,
		roles:  deps.Roles,
		logger: deps.Logger,
	}, nil
}

// UserCan reports whether actor holds capability. Meta capabilities require a
// post id and resolve to every primitive capability the post demands.
func (r *Resolver) UserCan(ctx context.Context, actor host.Actor, capability string, objectID int64) bool {
	if r == nil || !actor.LoggedIn() || capability == "" {
		return false
	}
	switch capability {
	case DeletePost, DeletePage:
		if objectID <= 0 {
			return false
		}
		for _, required := range r.mapMeta(ctx, actor, capability, objectID) {
			if !r.hasPrimitive(actor, required) {
				return false
			}
		}
		return true
	default:
		return r.hasPrimitive(actor, capability)
	}
}

// UserCanAny reports whether actor holds at least one of caps.
func (r *Resolver) UserCanAny(ctx context.Context, actor host.Actor, caps []string, objectID int64) bool {
	for _, capability := range caps {
		if r.UserCan(ctx, actor, capability, objectID) {
			return true
		}
	}
	return false
}

func (r *Resolver) hasPrimitive(actor host.Actor, capability string) bool {
	if capability == doNotAllow {
		return false
	}
	if granted, ok := actor.Caps[capability]; ok {
		return granted
	}
	for _, role := range actor.Roles {
		if r.roles.grants(role, capability) {
			return true
		}
	}
	return false
}

func (r *Resolver) mapMeta(ctx context.Context, actor host.Actor, capability string, objectID int64) []string {
	post, err := r.posts.GetByNumber(ctx, objectID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.logger.Warn("capabilities: post lookup failed",
				logger.F("post_id", objectID),
				logger.F("error", err),
			)
		}
		return []string{doNotAllow}
	}

	suffix := "posts"
	if post.IsPage() {
		suffix = "pages"
	}

	if post.AuthorID != "" && post.AuthorID == actor.ID {
		if post.IsPublished() {
			return []string{"delete_published_" + suffix}
		}
		if post.Status == domain.PostStatusPrivate {
			return []string{"delete_private_" + suffix}
		}
		return []string{"delete_" + suffix}
	}

	required := []string{"delete_others_" + suffix}
	switch post.Status {
	case domain.PostStatusPublish:
		required = append(required, "delete_published_"+suffix)
	case domain.PostStatusPrivate:
		required = append(required, "delete_private_"+suffix)
	}
	return required
}
