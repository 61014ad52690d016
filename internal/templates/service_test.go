package templates

import (
	"context"
	"errors"
	"testing"

	i18n "github.com/goliatone/go-i18n"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: "en"},
		Messages: map[string]i18n.Message{},
	}
	msg := i18n.Message{}
	msg.SetContent("Delete Post")
	catalog.Messages["post_delete.link.text"] = msg

	store := i18n.NewStaticStore(i18n.Translations{"en": catalog})
	translator, err := i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	svc, err := NewService(translator)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRenderRegisteredTemplate(t *testing.T) {
	svc := newTestService(t)
	svc.Register("anchor", `<a href="{{ href|safe }}">{{ text|safe }}</a>`)

	out, err := svc.Render(context.Background(), "anchor", "", map[string]any{
		"href": "https://example.com/?p=1",
		"text": "Delete",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `<a href="https://example.com/?p=1">Delete</a>` {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderExposesLocale(t *testing.T) {
	svc := newTestService(t)
	svc.Register("locale", `{{ locale }}`)

	out, err := svc.Render(context.Background(), "locale", "", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "en" {
		t.Fatalf("expected default locale, got %q", out)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Render(context.Background(), "missing", "en", nil); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if _, err := svc.Render(context.Background(), "", "en", nil); !errors.Is(err, ErrInvalidRenderRequest) {
		t.Fatalf("expected ErrInvalidRenderRequest, got %v", err)
	}
}

func TestNewServiceRequiresTranslator(t *testing.T) {
	if _, err := NewService(nil); !errors.Is(err, ErrTranslatorRequired) {
		t.Fatalf("expected ErrTranslatorRequired, got %v", err)
	}
}

func TestTranslationHelperRegistered(t *testing.T) {
	svc := newTestService(t)
	if !svc.helpers.has("t") {
		t.Fatal("expected t helper to be registered")
	}
	svc.RegisterHelpers(map[string]any{"upper": nil})
	if svc.helpers.has("upper") {
		t.Fatal("nil helpers should be skipped")
	}
}
