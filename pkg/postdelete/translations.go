package postdelete

import (
	"context"
	"strings"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-post-delete/pkg/host"
)

const (
	msgLinkText       = "post_delete.link.text"
	msgConfirmMessage = "post_delete.confirm.message"
)

// Translations returns the built-in catalogs.
func Translations() i18n.Translations {
	return i18n.Translations{
		"en": newCatalog("en", map[string]string{
			msgLinkText:       "Delete Post",
			msgConfirmMessage: `Are you sure you want to delete "[post_title]"?`,
		}),
		"es": newCatalog("es", map[string]string{
			msgLinkText:       "Eliminar entrada",
			msgConfirmMessage: `¿Seguro que quieres eliminar "[post_title]"?`,
		}),
	}
}

// NewTranslator builds a translator over Translations.
func NewTranslator(defaultLocale string) (i18n.Translator, error) {
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	store := i18n.NewStaticStore(Translations())
	return i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale(defaultLocale))
}

func newCatalog(locale string, entries map[string]string) *i18n.TranslationCatalog {
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: locale},
		Messages: make(map[string]i18n.Message),
	}
	for key, template := range entries {
		msg := i18n.Message{}
		msg.SetContent(template)
		catalog.Messages[key] = msg
	}
	return catalog
}

func (s *Service) localeFor(ctx context.Context) string {
	if locale := strings.TrimSpace(host.Locale(ctx)); locale != "" {
		return locale
	}
	return s.locale
}

// translate looks key up for the request locale, then the default locale,
// then returns fallback.
func (s *Service) translate(ctx context.Context, key, fallback string) string {
	for _, locale := range []string{s.localeFor(ctx), s.locale} {
		out, err := s.translator.Translate(locale, key)
		if err == nil && out != "" && out != key {
			return out
		}
	}
	return fallback
}
