package nonce

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-post-delete/pkg/host"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, now *time.Time, singleUse bool) *Manager {
	t.Helper()
	manager, err := New(Dependencies{
		Secret:    []byte(testSecret),
		Lifetime:  24 * time.Hour,
		SingleUse: singleUse,
		Now:       func() time.Time { return *now },
	})
	if err != nil {
		t.Fatalf("nonce manager: %v", err)
	}
	return manager
}

func TestCreateAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now, false)
	ctx := context.Background()
	actor := host.Actor{ID: "alice", Session: "s-1"}

	token, err := manager.Create(ctx, "sewn_post_delete", actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(token) != tokenLength {
		t.Fatalf("expected token length %d, got %d", tokenLength, len(token))
	}
	if !manager.Verify(ctx, token, "sewn_post_delete", actor) {
		t.Fatal("expected token to verify")
	}
	if !manager.Verify(ctx, token, "sewn_post_delete", actor) {
		t.Fatal("expected reusable token without single use")
	}
}

func TestVerifyRejectsMismatches(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now, false)
	ctx := context.Background()
	actor := host.Actor{ID: "alice", Session: "s-1"}

	token, err := manager.Create(ctx, "sewn_post_delete", actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if manager.Verify(ctx, token, "other_action", actor) {
		t.Fatal("expected action mismatch to fail")
	}
	if manager.Verify(ctx, token, "sewn_post_delete", host.Actor{ID: "bob", Session: "s-1"}) {
		t.Fatal("expected actor mismatch to fail")
	}
	if manager.Verify(ctx, token, "sewn_post_delete", host.Actor{ID: "alice", Session: "s-2"}) {
		t.Fatal("expected session mismatch to fail")
	}
	if manager.Verify(ctx, "", "sewn_post_delete", actor) {
		t.Fatal("expected empty token to fail")
	}
	if manager.Verify(ctx, strings.Repeat("0", tokenLength), "sewn_post_delete", actor) {
		t.Fatal("expected forged token to fail")
	}
}

func TestVerifyExpiresAfterTwoTicks(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now, false)
	ctx := context.Background()
	actor := host.Actor{ID: "alice"}

	token, err := manager.Create(ctx, "act", actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	now = now.Add(12 * time.Hour)
	if !manager.Verify(ctx, token, "act", actor) {
		t.Fatal("expected token valid in following tick")
	}

	now = now.Add(12 * time.Hour)
	if manager.Verify(ctx, token, "act", actor) {
		t.Fatal("expected token to expire after two ticks")
	}
}

func TestSingleUse(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now, true)
	ctx := context.Background()
	actor := host.Actor{ID: "alice"}

	token, err := manager.Create(ctx, "act", actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !manager.Verify(ctx, token, "act", actor) || !manager.Verify(ctx, token, "act", actor) {
		t.Fatal("expected verification not to spend the token")
	}
	if !manager.Consume(ctx, token, "42") {
		t.Fatal("expected first use for 42 to pass")
	}
	if manager.Consume(ctx, token, "42") {
		t.Fatal("expected replay for 42 to fail")
	}

	again, err := manager.Create(ctx, "act", actor)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if again != token {
		t.Fatal("expected the same token within a tick")
	}
	if !manager.Consume(ctx, again, "43") {
		t.Fatal("expected the token to stay usable for another scope")
	}
}

func TestConsumeWithoutSingleUse(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	manager := newTestManager(t, &now, false)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if !manager.Consume(ctx, "token", "42") {
			t.Fatal("expected consume to pass when single use is off")
		}
	}
	if manager.Consume(ctx, "", "42") {
		t.Fatal("expected empty token to fail")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Dependencies{Secret: []byte("short")}); err != ErrSecretTooShort {
		t.Fatalf("expected ErrSecretTooShort, got %v", err)
	}

	now := time.Now()
	manager := newTestManager(t, &now, false)
	if _, err := manager.Create(context.Background(), " ", host.Actor{}); err != ErrActionRequired {
		t.Fatalf("expected ErrActionRequired, got %v", err)
	}
}

func TestMaskToken(t *testing.T) {
	masked := MaskToken("abcdef123456")
	if masked == "abcdef123456" {
		t.Fatal("expected token to be masked")
	}
	if !strings.HasPrefix(masked, "ab") || !strings.HasSuffix(masked, "56") {
		t.Fatalf("expected preserved ends, got %q", masked)
	}
	if MaskToken("") != "" {
		t.Fatal("expected empty mask for empty token")
	}
}
