package postdelete

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-post-delete/pkg/config"
	"github.com/goliatone/go-post-delete/pkg/hooks"
)

const validToken = "tok.sewn_post_delete.u1"

func TestHandleRequestDeletesAndTerminates(t *testing.T) {
	fx := newFixture(t, config.Config{})

	out := fx.svc.HandleRequest(actorCtx("u1"), deleteRequest("42", validToken))

	if len(fx.content.deleted) != 1 || fx.content.deleted[0] != 42 {
		t.Fatalf("expected host delete for 42, got %v", fx.content.deleted)
	}
	if out.Redirect != "https://example.com/?delete_post_success=42" {
		t.Fatalf("unexpected redirect %q", out.Redirect)
	}
	if !out.Terminate || !out.Deleted || out.PostID != 42 {
		t.Fatalf("expected terminating success outcome, got %+v", out)
	}
}

func TestHandleRequestFailureRedirectsWithoutTerminating(t *testing.T) {
	fx := newFixture(t, config.Config{})
	fx.content.deleteOK = false

	out := fx.svc.HandleRequest(actorCtx("u1"), deleteRequest("42", validToken))

	if len(fx.content.deleted) != 1 {
		t.Fatalf("expected one delete attempt, got %v", fx.content.deleted)
	}
	if out.Redirect != "https://example.com/hello-world/?delete_post_failure=42" {
		t.Fatalf("unexpected redirect %q", out.Redirect)
	}
	// A failed delete redirects but lets the request continue.
	if out.Terminate || out.Deleted {
		t.Fatalf("failure must not terminate, got %+v", out)
	}
}

func TestHandleRequestHostErrorCountsAsFailure(t *testing.T) {
	fx := newFixture(t, config.Config{})
	fx.content.deleteErr = errors.New("db down")

	out := fx.svc.HandleRequest(actorCtx("u1"), deleteRequest("42", validToken))
	if out.Terminate || out.Redirect != "https://example.com/hello-world/?delete_post_failure=42" {
		t.Fatalf("expected failure outcome, got %+v", out)
	}
}

func TestHandleRequestInert(t *testing.T) {
	cases := []struct {
		name  string
		actor string
		req   Request
	}{
		{name: "missing nonce", actor: "u1", req: deleteRequest("42", "")},
		{name: "invalid nonce", actor: "u1", req: deleteRequest("42", "tok.other.u1")},
		{name: "nonce for another actor", actor: "u1", req: deleteRequest("42", "tok.sewn_post_delete.u2")},
		{name: "missing id", actor: "u1", req: deleteRequest("", validToken)},
		{name: "non numeric id", actor: "u1", req: deleteRequest("abc", validToken)},
		{name: "mixed id", actor: "u1", req: deleteRequest("42abc", validToken)},
		{name: "negative id", actor: "u1", req: deleteRequest("-42", validToken)},
		{name: "unauthorized", actor: "u1", req: deleteRequest("7", validToken)},
		{name: "no params", actor: "u1", req: Request{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture(t, config.Config{})
			out := fx.svc.HandleRequest(actorCtx(tc.actor), tc.req)
			if out != (Outcome{}) {
				t.Fatalf("expected inert outcome, got %+v", out)
			}
			if out.Handled() {
				t.Fatal("inert outcome must not be handled")
			}
			if len(fx.content.deleted) != 0 {
				t.Fatalf("host delete must not run, got %v", fx.content.deleted)
			}
		})
	}
}

func TestHandleRequestRedirectSuccessFilter(t *testing.T) {
	fx := newFixture(t, config.Config{})
	var gotID int64
	fx.hooks.AddFilter(fx.svc.HookName(HookRedirectSuccess), func(ctx context.Context, value any, args ...any) any {
		if len(args) > 0 {
			gotID, _ = args[0].(int64)
		}
		return "https://example.com/dashboard?tab=posts"
	})

	out := fx.svc.HandleRequest(actorCtx("u1"), deleteRequest("42", validToken))
	if out.Redirect != "https://example.com/dashboard?delete_post_success=42&tab=posts" {
		t.Fatalf("unexpected redirect %q", out.Redirect)
	}
	if gotID != 42 {
		t.Fatalf("filter should receive the post id, got %d", gotID)
	}
}

func TestHandleRequestUsesFilteredSettings(t *testing.T) {
	fx := newFixture(t, config.Config{})
	fx.hooks.AddFilter(fx.svc.HookName(HookSettings), hooks.Filter(func(ctx context.Context, s Settings, args ...any) Settings {
		s.RequestID = "remove_post"
		s.NonceAction = "tenant_a"
		return s
	}))

	out := fx.svc.HandleRequest(actorCtx("u1"), deleteRequest("42", validToken))
	if out.Handled() {
		t.Fatalf("default request key must be ignored once replaced, got %+v", out)
	}

	req := Request{Params: map[string][]string{
		"remove_post": {"42"},
		NonceParam:    {"tok.tenant_a.u1"},
	}}
	out = fx.svc.HandleRequest(actorCtx("u1"), req)
	if !out.Deleted || out.Redirect != "https://example.com/?delete_post_success=42" {
		t.Fatalf("expected deletion under replaced settings, got %+v", out)
	}
}
