package templates

import (
	"context"
	"fmt"
	"strings"
	"sync"

	i18n "github.com/goliatone/go-i18n"
	gotemplate "github.com/goliatone/go-template"
)

// Service renders named markup fragments with go-template. The translator is
// exposed to templates through the "t" helper.
type Service struct {
	renderer      *gotemplate.Engine
	helpers       *helperRegistry
	translator    i18n.Translator
	defaultLocale string
	localeKey     string

	mu        sync.RWMutex
	templates map[string]string
	renderMu  sync.Mutex
}

type serviceOptions struct {
	defaultLocale  string
	helperFuncs    []map[string]any
	rendererOpts   []gotemplate.Option
	missingHandler i18n.MissingTranslationHandler
	localeKey      string
}

// Option configures the template service.
type Option func(*serviceOptions)

// WithDefaultLocale overrides the locale used when lookups do not provide one.
func WithDefaultLocale(locale string) Option {
	return func(so *serviceOptions) {
		so.defaultLocale = locale
	}
}

// WithHelperFuncs registers additional helper functions with the renderer.
func WithHelperFuncs(funcs map[string]any) Option {
	return func(so *serviceOptions) {
		if len(funcs) == 0 {
			return
		}
		so.helperFuncs = append(so.helperFuncs, funcs)
	}
}

// WithRendererOptions forwards options directly to go-template's renderer.
func WithRendererOptions(opts ...gotemplate.Option) Option {
	return func(so *serviceOptions) {
		so.rendererOpts = append(so.rendererOpts, opts...)
	}
}

// WithLocaleKey customizes the key injected into the data map to expose the locale.
func WithLocaleKey(key string) Option {
	return func(so *serviceOptions) {
		if key == "" {
			return
		}
		so.localeKey = key
	}
}

// WithMissingTranslationHandler customizes how go-i18n helpers surface missing keys.
func WithMissingTranslationHandler(handler i18n.MissingTranslationHandler) Option {
	return func(so *serviceOptions) {
		so.missingHandler = handler
	}
}

// NewService builds the template service wiring the helper registry, renderer,
// and localization translator together.
func NewService(translator i18n.Translator, opts ...Option) (*Service, error) {
	if translator == nil {
		return nil, ErrTranslatorRequired
	}

	settings := serviceOptions{
		localeKey: "locale",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	defaultLocale := strings.TrimSpace(settings.defaultLocale)
	if defaultLocale == "" {
		if provider, ok := translator.(interface{ DefaultLocale() string }); ok {
			defaultLocale = provider.DefaultLocale()
		}
	}
	if defaultLocale == "" {
		defaultLocale = "en"
	}

	rendererOpts := []gotemplate.Option{
		gotemplate.WithBaseDir("."),
	}
	rendererOpts = append(rendererOpts, settings.rendererOpts...)

	renderer, err := gotemplate.NewRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererConfig, err)
	}

	service := &Service{
		renderer:      renderer,
		helpers:       newHelperRegistry(renderer),
		translator:    translator,
		defaultLocale: defaultLocale,
		localeKey:     settings.localeKey,
		templates:     make(map[string]string),
	}

	helperCfg := i18n.HelperConfig{
		LocaleKey:         service.localeKey,
		TemplateHelperKey: "t",
		OnMissing:         settings.missingHandler,
	}
	service.helpers.Register(i18n.TemplateHelpers(translator, helperCfg))

	for _, funcs := range settings.helperFuncs {
		service.helpers.Register(funcs)
	}

	return service, nil
}

// DefaultLocale returns the locale used when a render call passes none.
func (s *Service) DefaultLocale() string {
	if s == nil {
		return ""
	}
	return s.defaultLocale
}

// Register stores tpl under name, replacing any previous template.
func (s *Service) Register(name, tpl string) {
	if s == nil || strings.TrimSpace(name) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[name] = tpl
}

// RegisterHelpers adds helper functions to the underlying renderer.
func (s *Service) RegisterHelpers(funcs map[string]any) {
	if s == nil {
		return
	}
	s.helpers.Register(funcs)
}

// Render executes the template registered under name. The resolved locale is
// injected into data under the locale key.
func (s *Service) Render(ctx context.Context, name, locale string, data map[string]any) (string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	if s == nil {
		return "", ErrRendererConfig
	}
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidRenderRequest
	}

	s.mu.RLock()
	tpl, ok := s.templates[name]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	payload := make(map[string]any, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	if strings.TrimSpace(locale) == "" {
		locale = s.defaultLocale
	}
	payload[s.localeKey] = locale

	s.renderMu.Lock()
	out, err := s.renderer.RenderString(tpl, payload)
	s.renderMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("templates: render %s: %w", name, err)
	}
	return out, nil
}
