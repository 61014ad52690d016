package postdelete_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-post-delete/internal/storage/memory"
	"github.com/goliatone/go-post-delete/pkg/capabilities"
	"github.com/goliatone/go-post-delete/pkg/content"
	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/hooks"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/nonce"
	"github.com/goliatone/go-post-delete/pkg/postdelete"
)

func newReferenceService(t *testing.T, singleUse bool) (*postdelete.Service, *memory.PostRepository) {
	t.Helper()
	ctx := context.Background()
	posts := memory.NewPostRepository()
	for _, post := range []*domain.Post{
		{Number: 42, Title: "Hello World", Slug: "hello-world", AuthorID: "author-1"},
		{Number: 7, Title: "Someone else", Slug: "someone-else", AuthorID: "author-2"},
		{Number: 43, Title: "Second", Slug: "second", AuthorID: "author-1"},
	} {
		if err := posts.Create(ctx, post); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	contentSvc, err := content.New(content.Dependencies{Posts: posts, BaseURL: "https://example.com/"})
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	caps, err := capabilities.New(capabilities.Dependencies{Posts: posts})
	if err != nil {
		t.Fatalf("capabilities: %v", err)
	}
	tokens, err := nonce.New(nonce.Dependencies{Secret: []byte("0123456789abcdef0123"), SingleUse: singleUse})
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
	return svc, posts
}

func TestLinkRoundTripDeletesOwnPost(t *testing.T) {
	svc, posts := newReferenceService(t, true)
	ctx := host.WithActor(context.Background(), host.Actor{ID: "author-1", Roles: []string{"author"}, Session: "s1"})

	signed, err := svc.URL(ctx, 42, postdelete.Destination{})
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	parsed, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	out := svc.HandleRequest(ctx, postdelete.Request{Params: parsed.Query()})
	if !out.Deleted || !out.Terminate {
		t.Fatalf("expected deletion, got %+v", out)
	}
	if out.Redirect != "https://example.com/?delete_post_success=42" {
		t.Fatalf("unexpected redirect %s", out.Redirect)
	}
	if _, err := posts.GetByNumber(ctx, 42); err == nil {
		t.Fatal("post should be trashed")
	}

	// The token was consumed; replaying the URL does nothing.
	if replay := svc.HandleRequest(ctx, postdelete.Request{Params: parsed.Query()}); replay.Handled() {
		t.Fatalf("replayed token should be inert, got %+v", replay)
	}
}

func TestAuthorCannotDeleteOthersPosts(t *testing.T) {
	svc, _ := newReferenceService(t, false)
	ctx := host.WithActor(context.Background(), host.Actor{ID: "author-1", Roles: []string{"author"}, Session: "s1"})

	if out, ok := svc.GetLink(ctx, postdelete.LinkArgs{PostID: 7}); ok || out != "" {
		t.Fatalf("author should not get a link for another author's post: %q", out)
	}

	editor := host.WithActor(context.Background(), host.Actor{ID: "editor-1", Roles: []string{"editor"}, Session: "s2"})
	out, ok := svc.GetLink(editor, postdelete.LinkArgs{PostID: 7})
	if !ok || !strings.Contains(out, "delete_post=7") {
		t.Fatalf("editor should get a link, got %q", out)
	}
}

func TestTokenFromAnotherSessionIsInert(t *testing.T) {
	svc, _ := newReferenceService(t, false)
	owner := host.WithActor(context.Background(), host.Actor{ID: "author-1", Roles: []string{"author"}, Session: "s1"})
	other := host.WithActor(context.Background(), host.Actor{ID: "author-1", Roles: []string{"author"}, Session: "s9"})

	signed, err := svc.URL(owner, 42, postdelete.Destination{})
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	parsed, _ := url.Parse(signed)
	if out := svc.HandleRequest(other, postdelete.Request{Params: parsed.Query()}); out.Handled() {
		t.Fatalf("token bound to another session must be inert, got %+v", out)
	}
}

func TestDeletesTwoPostsFromOnePage(t *testing.T) {
	svc, posts := newReferenceService(t, true)
	ctx := host.WithActor(context.Background(), host.Actor{ID: "author-1", Roles: []string{"author"}, Session: "s1"})

	// Both links are rendered before either is followed.
	var queries []url.Values
	for _, id := range []int64{42, 43} {
		signed, err := svc.URL(ctx, id, postdelete.Destination{})
		if err != nil {
			t.Fatalf("url %d: %v", id, err)
		}
		parsed, err := url.Parse(signed)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		queries = append(queries, parsed.Query())
	}

	for i, id := range []int64{42, 43} {
		out := svc.HandleRequest(ctx, postdelete.Request{Params: queries[i]})
		if !out.Deleted || out.PostID != id {
			t.Fatalf("expected post %d deleted, got %+v", id, out)
		}
		if _, err := posts.GetByNumber(ctx, id); err == nil {
			t.Fatalf("post %d should be trashed", id)
		}
	}
}

func TestRefusedRequestDoesNotSpendToken(t *testing.T) {
	svc, _ := newReferenceService(t, true)
	ctx := host.WithActor(context.Background(), host.Actor{ID: "author-1", Roles: []string{"author"}, Session: "s1"})

	signed, err := svc.URL(ctx, 42, postdelete.Destination{})
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	parsed, _ := url.Parse(signed)
	query := parsed.Query()

	// Same token aimed at another author's post is refused.
	refused := url.Values{"delete_post": {"7"}, "nonce": {query.Get("nonce")}}
	if out := svc.HandleRequest(ctx, postdelete.Request{Params: refused}); out.Handled() {
		t.Fatalf("expected refused request to be inert, got %+v", out)
	}

	if out := svc.HandleRequest(ctx, postdelete.Request{Params: query}); !out.Deleted {
		t.Fatalf("expected own post deleted after a refused attempt, got %+v", out)
	}
}

func TestPublicEditCapabilityListUsesResolver(t *testing.T) {
	svc, _ := newReferenceService(t, false)
	svc.Hooks().AddFilter(svc.PublicEditHook(), hooks.Value([]string{"manage_options", "moderate_comments"}))

	editor := host.WithActor(context.Background(), host.Actor{ID: "editor-1", Roles: []string{"editor"}})
	if !svc.CanDelete(editor, 7) {
		t.Fatal("editor holds moderate_comments and should be allowed")
	}
	author := host.WithActor(context.Background(), host.Actor{ID: "author-1", Roles: []string{"author"}})
	if svc.CanDelete(author, 42) {
		t.Fatal("a capability list miss decides the result, even for an own post")
	}
	if svc.CanDelete(context.Background(), 42) {
		t.Fatal("anonymous visitors fall through and are denied")
	}
}
