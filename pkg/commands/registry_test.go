package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-post-delete/internal/storage/memory"
	"github.com/goliatone/go-post-delete/pkg/capabilities"
	"github.com/goliatone/go-post-delete/pkg/content"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
	"github.com/goliatone/go-post-delete/pkg/nonce"
	"github.com/goliatone/go-post-delete/pkg/postdelete"
)

func newRegistry(t *testing.T) (*Registry, *memory.PostRepository) {
	t.Helper()
	posts := memory.NewPostRepository()
	contentSvc, err := content.New(content.Dependencies{Posts: posts, BaseURL: "https://example.com/"})
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	caps, err := capabilities.New(capabilities.Dependencies{Posts: posts})
	if err != nil {
		t.Fatalf("capabilities: %v", err)
	}
	tokens, err := nonce.New(nonce.Dependencies{Secret: []byte("registry-test-secret-0001")})
	if err != nil {
		t.Fatalf("nonce: %v", err)
	}
	svc, err := postdelete.New(postdelete.Dependencies{
		Content:      contentSvc,
		Capabilities: caps,
		Tokens:       tokens,
		Site:         host.StaticSite("https://example.com/"),
	})
	if err != nil {
		t.Fatalf("postdelete: %v", err)
	}

	reg, err := New(Dependencies{Service: svc, Content: contentSvc, Posts: posts})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg, posts
}

func TestRegistryDeletePostUsesCapabilities(t *testing.T) {
	reg, posts := newRegistry(t)
	ctx := context.Background()

	if err := reg.CreatePost.Execute(ctx, CreatePost{Title: "Mine", Slug: "mine", AuthorID: "author-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := host.Actor{ID: "author-2", Roles: []string{"author"}}
	if err := reg.DeletePost.Execute(ctx, DeletePost{PostID: 1, Actor: stranger}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	owner := host.Actor{ID: "author-1", Roles: []string{"author"}}
	if err := reg.DeletePost.Execute(ctx, DeletePost{PostID: 1, Actor: owner}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := posts.GetByNumber(ctx, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected post to be trashed, got %v", err)
	}

	admin := host.Actor{ID: "admin", Roles: []string{"administrator"}}
	if err := reg.DeletePost.Execute(ctx, DeletePost{PostID: 1, Actor: admin}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for trashed post, got %v", err)
	}
}

func TestRegistryCommanders(t *testing.T) {
	reg, _ := newRegistry(t)
	if got := len(reg.Commanders()); got != 2 {
		t.Fatalf("expected 2 commanders, got %d", got)
	}
	var nilRegistry *Registry
	if nilRegistry.Commanders() != nil {
		t.Fatal("expected nil commanders for nil registry")
	}
}

func TestRegistryRequiresService(t *testing.T) {
	if _, err := New(Dependencies{Posts: memory.NewPostRepository()}); err == nil {
		t.Fatal("expected error without service")
	}
}
