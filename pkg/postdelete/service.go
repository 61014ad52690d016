package postdelete

import (
	"errors"
	"strings"
	"sync"

	i18n "github.com/goliatone/go-i18n"
	"github.com/goliatone/go-post-delete/internal/templates"
	"github.com/goliatone/go-post-delete/pkg/config"
	"github.com/goliatone/go-post-delete/pkg/hooks"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
)

var (
	// ErrContentRequired is returned when no content host is wired.
	ErrContentRequired = errors.New("postdelete: content is required")
	// ErrCapabilitiesRequired is returned when no capability resolver is wired.
	ErrCapabilitiesRequired = errors.New("postdelete: capabilities are required")
	// ErrTokensRequired is returned when no token issuer is wired.
	ErrTokensRequired = errors.New("postdelete: tokens are required")
	// ErrSiteRequired is returned when no site is wired.
	ErrSiteRequired = errors.New("postdelete: site is required")
	// ErrNoPost is returned by URL when no target post can be resolved.
	ErrNoPost = errors.New("postdelete: no post id")
)

// Dependencies wires the service to its host.
type Dependencies struct {
	Hooks        *hooks.Registry
	Content      host.Content
	Capabilities host.Capabilities
	Tokens       host.Tokens
	Site         host.Site
	// Config supplies the plugin identity, setting overrides and the default
	// locale. Zero values fall back to config.Defaults.
	Config     config.Config
	Translator i18n.Translator
	Logger     logger.Logger
}

// Service is the post deletion façade. It keeps no per-request state.
type Service struct {
	hooks     *hooks.Registry
	content   host.Content
	caps      host.Capabilities
	tokens    host.Tokens
	site      host.Site
	plugin    config.PluginConfig
	overrides config.SettingsConfig
	locale    string

	translator i18n.Translator
	templates  *templates.Service
	logger     logger.Logger

	registerOnce sync.Once
}

// New validates dependencies and builds the service.
func New(deps Dependencies) (*Service, error) {
	if deps.Content == nil {
		return nil, ErrContentRequired
	}
	if deps.Capabilities == nil {
		return nil, ErrCapabilitiesRequired
	}
	if deps.Tokens == nil {
		return nil, ErrTokensRequired
	}
	if deps.Site == nil {
		return nil, ErrSiteRequired
	}
	if deps.Hooks == nil {
		deps.Hooks = hooks.New()
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	defaults := config.Defaults()
	plugin := deps.Config.Plugin
	if strings.TrimSpace(plugin.Prefix) == "" {
		plugin.Prefix = defaults.Plugin.Prefix
	}
	if strings.TrimSpace(plugin.Name) == "" {
		plugin.Name = defaults.Plugin.Name
	}
	plugin.Name = strings.ToLower(plugin.Name)
	if plugin.Version == "" {
		plugin.Version = defaults.Plugin.Version
	}
	locale := deps.Config.Localization.DefaultLocale
	if locale == "" {
		locale = defaults.Localization.DefaultLocale
	}

	translator := deps.Translator
	if translator == nil {
		var err error
		translator, err = NewTranslator(locale)
		if err != nil {
			return nil, err
		}
	}

	renderer, err := templates.NewService(translator, templates.WithDefaultLocale(locale))
	if err != nil {
		return nil, err
	}
	renderer.Register(linkTemplate, linkMarkup)
	renderer.Register(scriptTemplate, scriptMarkup)

	svc := &Service{
		hooks:      deps.Hooks,
		content:    deps.Content,
		caps:       deps.Capabilities,
		tokens:     deps.Tokens,
		site:       deps.Site,
		plugin:     plugin,
		overrides:  deps.Config.Settings,
		locale:     locale,
		translator: translator,
		templates:  renderer,
		logger:     deps.Logger.With(logger.F("component", plugin.Name)),
	}
	svc.Register()
	return svc, nil
}

// Hooks returns the registry the service reads extension points from.
func (s *Service) Hooks() *hooks.Registry {
	return s.hooks
}

// Plugin returns the resolved plugin identity.
func (s *Service) Plugin() config.PluginConfig {
	return s.plugin
}
