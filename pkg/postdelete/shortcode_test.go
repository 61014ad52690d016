package postdelete

import (
	"strings"
	"testing"

	"github.com/goliatone/go-post-delete/pkg/config"
)

func TestParseShortcodeAttrs(t *testing.T) {
	attrs := ParseShortcodeAttrs(` post_id="42" TEXT='Bin it' class=btn before="<p>" unknown="x"`)
	want := map[string]string{
		"post_id": "42",
		"text":    "Bin it",
		"class":   "btn",
		"before":  "<p>",
		"unknown": "x",
	}
	for key, value := range want {
		if attrs[key] != value {
			t.Fatalf("attr %s: expected %q, got %q", key, value, attrs[key])
		}
	}
}

func TestExpandShortcodes(t *testing.T) {
	fx := newFixture(t, config.Config{})
	ctx := actorCtx("u1")

	content := `<p>Intro</p>[sewn_post_delete_link post_id="42" foo="bar"]<p>Outro</p>`
	out := fx.svc.ExpandShortcodes(ctx, content)
	link, _ := fx.svc.GetLink(ctx, LinkArgs{PostID: 42})
	if out != "<p>Intro</p>"+link+"<p>Outro</p>" {
		t.Fatalf("unexpected expansion: %s", out)
	}

	selfClosing := fx.svc.ExpandShortcodes(ctx, `[sewn_post_delete_link post_id="42" /]`)
	if selfClosing != link {
		t.Fatalf("self closing form should expand the same: %s", selfClosing)
	}
}

func TestExpandShortcodesRemovesUnauthorizedAndInvalid(t *testing.T) {
	fx := newFixture(t, config.Config{})
	ctx := actorCtx("u1")

	cases := map[string]string{
		`a[sewn_post_delete_link post_id="7"]b`:   "ab",
		`a[sewn_post_delete_link post_id="abc"]b`: "ab",
		`a[sewn_post_delete_link]b`:               "ab",
		`a[other_shortcode post_id="42"]b`:        `a[other_shortcode post_id="42"]b`,
		`a[sewn_post_delete_linkx]b`:              `a[sewn_post_delete_linkx]b`,
	}
	for input, want := range cases {
		if got := fx.svc.ExpandShortcodes(ctx, input); got != want {
			t.Fatalf("%s: expected %q, got %q", input, want, got)
		}
	}
}

func TestShortcodeTagFollowsPrefix(t *testing.T) {
	fx := newFixture(t, config.Config{Plugin: config.PluginConfig{Prefix: "acme", Name: "acme_post_delete"}})
	fx.caps.grants["u1:delete_post:42"] = true

	if fx.svc.ShortcodeTag() != "acme_post_delete_link" {
		t.Fatalf("unexpected tag %s", fx.svc.ShortcodeTag())
	}
	out := fx.svc.ExpandShortcodes(actorCtx("u1"), `[acme_post_delete_link post_id="42"]`)
	if !strings.Contains(out, `class="acme_post_delete_link"`) {
		t.Fatalf("expected acme link, got %s", out)
	}
	if !strings.Contains(out, "nonce=tok.acme_post_delete.u1") {
		t.Fatalf("nonce action should follow the plugin name: %s", out)
	}
}
