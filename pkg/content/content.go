// Package content exposes stored posts to the deletion façade: type and
// title lookups, permalinks and moving a post to the trash.
package content

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
)

var (
	// ErrRepositoryRequired is returned when no post repository is wired.
	ErrRepositoryRequired = errors.New("content: post repository is required")
	// ErrBaseURLRequired is returned when no base URL is configured.
	ErrBaseURLRequired = errors.New("content: base url is required")
)

// Dependencies wires the content service.
type Dependencies struct {
	Posts   store.PostRepository
	BaseURL string
	Logger  logger.Logger
}

// Service implements host.Content over a post repository.
type Service struct {
	posts  store.PostRepository
	base   *url.URL
	logger logger.Logger
}

var _ host.Content = (*Service)(nil)

// New validates dependencies and builds the service.
func New(deps Dependencies) (*Service, error) {
	if deps.Posts == nil {
		return nil, ErrRepositoryRequired
	}
	if strings.TrimSpace(deps.BaseURL) == "" {
		return nil, ErrBaseURLRequired
	}
	base, err := url.Parse(deps.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("content: parse base url: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	return &Service{
		posts:  deps.Posts,
		base:   base,
		logger: deps.Logger,
	}, nil
}

// PostType returns the post type of id.
func (s *Service) PostType(ctx context.Context, id int64) (string, error) {
	post, err := s.posts.GetByNumber(ctx, id)
	if err != nil {
		return "", err
	}
	if post.Type == "" {
		return domain.PostTypePost, nil
	}
	return post.Type, nil
}

// Title returns the raw title of id.
func (s *Service) Title(ctx context.Context, id int64) (string, error) {
	post, err := s.posts.GetByNumber(ctx, id)
	if err != nil {
		return "", err
	}
	return post.Title, nil
}

// Permalink returns <base>/<slug>/ or <base>/?p=<id> for posts without a slug.
func (s *Service) Permalink(ctx context.Context, id int64) (string, error) {
	post, err := s.posts.GetByNumber(ctx, id)
	if err != nil {
		return "", err
	}
	link := *s.base
	slug := strings.Trim(post.Slug, "/")
	if slug == "" {
		query := link.Query()
		query.Set("p", strconv.FormatInt(post.Number, 10))
		link.RawQuery = query.Encode()
		return link.String(), nil
	}
	link.Path += slug + "/"
	link.RawPath = ""
	return link.String(), nil
}

// Delete moves the post to the trash. Missing posts report false without an
// error.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	if err := s.posts.Trash(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("content: delete skipped, post not found", logger.F("post_id", id))
			return false, nil
		}
		return false, fmt.Errorf("content: trash post %d: %w", id, err)
	}
	s.logger.Info("content: post trashed", logger.F("post_id", id))
	return true, nil
}
