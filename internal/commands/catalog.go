package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
)

var (
	// ErrUnauthorized is returned when the actor may not delete the post.
	ErrUnauthorized = errors.New("commands: actor may not delete post")
	// ErrDeleteFailed is returned when the host refused the deletion.
	ErrDeleteFailed = errors.New("commands: host delete failed")
)

// Catalog exposes go-command compatible handlers for non-HTTP transports.
type Catalog struct {
	DeletePost command.Commander[DeletePost]
	CreatePost command.Commander[CreatePost]
}

// Authorizer decides whether the actor in ctx may delete a post.
type Authorizer interface {
	CanDelete(ctx context.Context, postID int64) bool
}

// Dependencies wires services into the command catalog.
type Dependencies struct {
	Authorizer Authorizer
	Content    host.Content
	Posts      store.PostRepository
	Logger     logger.Logger
}

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Authorizer == nil {
		return nil, errors.New("commands: authorizer is required")
	}
	if deps.Content == nil {
		return nil, errors.New("commands: content is required")
	}
	if deps.Posts == nil {
		return nil, errors.New("commands: post repository is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	return &Catalog{
		DeletePost: deletePostCommand{auth: deps.Authorizer, content: deps.Content, logger: deps.Logger},
		CreatePost: createPostCommand{posts: deps.Posts},
	}, nil
}

// DeletePost deletes one post on behalf of Actor, applying the same
// authorization as the HTTP handler. Tokens are not involved.
type DeletePost struct {
	PostID int64      `json:"post_id"`
	Actor  host.Actor `json:"-"`
}

type deletePostCommand struct {
	auth    Authorizer
	content host.Content
	logger  logger.Logger
}

func (c deletePostCommand) Execute(ctx context.Context, msg DeletePost) error {
	if msg.PostID <= 0 {
		return errors.New("commands: post id is required")
	}
	ctx = host.WithActor(ctx, msg.Actor)
	if !c.auth.CanDelete(ctx, msg.PostID) {
		c.logger.Debug("delete command refused",
			logger.F("post_id", msg.PostID),
			logger.F("actor", msg.Actor.ID),
		)
		return fmt.Errorf("%w: %d", ErrUnauthorized, msg.PostID)
	}
	deleted, err := c.content.Delete(ctx, msg.PostID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	if !deleted {
		return fmt.Errorf("%w: %d", ErrDeleteFailed, msg.PostID)
	}
	return nil
}

// CreatePost stores a new post. A zero Number takes the next free number.
type CreatePost struct {
	Number   int64  `json:"number"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	AuthorID string `json:"author_id"`
}

type createPostCommand struct {
	posts store.PostRepository
}

func (c createPostCommand) Execute(ctx context.Context, msg CreatePost) error {
	if strings.TrimSpace(msg.Title) == "" {
		return errors.New("commands: post title is required")
	}
	post := &domain.Post{
		Number:   msg.Number,
		Type:     msg.Type,
		Status:   msg.Status,
		Title:    msg.Title,
		Slug:     strings.Trim(msg.Slug, "/"),
		Content:  msg.Content,
		AuthorID: msg.AuthorID,
	}
	return c.posts.Create(ctx, post)
}
