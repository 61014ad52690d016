package postdelete

import (
	"context"
	"testing"

	"github.com/goliatone/go-post-delete/pkg/config"
	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/hooks"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
)

type fakePost struct {
	kind      string
	title     string
	permalink string
}

type fakeContent struct {
	posts     map[int64]fakePost
	deleteOK  bool
	deleteErr error
	deleted   []int64
}

func (f *fakeContent) PostType(_ context.Context, id int64) (string, error) {
	p, ok := f.posts[id]
	if !ok {
		return "", store.ErrNotFound
	}
	return p.kind, nil
}

func (f *fakeContent) Title(_ context.Context, id int64) (string, error) {
	p, ok := f.posts[id]
	if !ok {
		return "", store.ErrNotFound
	}
	return p.title, nil
}

func (f *fakeContent) Permalink(_ context.Context, id int64) (string, error) {
	p, ok := f.posts[id]
	if !ok {
		return "", store.ErrNotFound
	}
	return p.permalink, nil
}

func (f *fakeContent) Delete(_ context.Context, id int64) (bool, error) {
	f.deleted = append(f.deleted, id)
	return f.deleteOK, f.deleteErr
}

// fakeCaps grants "<actor>:<cap>" for any object or "<actor>:<cap>:<id>"
// for one post.
type fakeCaps struct {
	grants map[string]bool
}

func (f *fakeCaps) UserCan(_ context.Context, actor host.Actor, capability string, objectID int64) bool {
	if !actor.LoggedIn() {
		return false
	}
	if f.grants[actor.ID+":"+capability] {
		return true
	}
	return f.grants[actor.ID+":"+capability+":"+formatID(objectID)]
}

type fakeTokens struct{}

func (fakeTokens) Create(_ context.Context, action string, actor host.Actor) (string, error) {
	return "tok." + action + "." + actor.ID, nil
}

func (f fakeTokens) Verify(ctx context.Context, token, action string, actor host.Actor) bool {
	want, _ := f.Create(ctx, action, actor)
	return token == want
}

type fixture struct {
	svc     *Service
	hooks   *hooks.Registry
	content *fakeContent
	caps    *fakeCaps
}

func newFixture(t *testing.T, cfg config.Config) fixture {
	t.Helper()
	registry := hooks.New()
	content := &fakeContent{
		posts: map[int64]fakePost{
			42: {kind: domain.PostTypePost, title: "Hello World", permalink: "https://example.com/hello-world/"},
			7:  {kind: domain.PostTypePost, title: "Seven", permalink: "https://example.com/seven/"},
			8:  {kind: domain.PostTypePage, title: "About", permalink: "https://example.com/about/"},
		},
		deleteOK: true,
	}
	caps := &fakeCaps{grants: map[string]bool{
		"u1:delete_post:42": true,
	}}
	svc, err := New(Dependencies{
		Hooks:        registry,
		Content:      content,
		Capabilities: caps,
		Tokens:       fakeTokens{},
		Site:         host.StaticSite("https://example.com/"),
		Config:       cfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return fixture{svc: svc, hooks: registry, content: content, caps: caps}
}

func actorCtx(id string) context.Context {
	return host.WithActor(context.Background(), host.Actor{ID: id, Login: id})
}

func deleteRequest(id, token string) Request {
	params := map[string][]string{}
	if id != "" {
		params[DefaultRequestID] = []string{id}
	}
	if token != "" {
		params[NonceParam] = []string{token}
	}
	return Request{Params: params}
}
