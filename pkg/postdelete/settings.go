package postdelete

import (
	"context"

	"github.com/goliatone/go-post-delete/pkg/hooks"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/options"
)

// Settings is the per-request configuration record. Build it with
// Service.Settings and pass it by value; nothing mutates it afterwards.
type Settings struct {
	// RequestID is the request parameter carrying the post id.
	RequestID string
	// NonceAction scopes deletion tokens.
	NonceAction string
	// LinkClass is the CSS class on every delete link.
	LinkClass string
}

const (
	settingRequestID   = "request_id"
	settingNonceAction = "nonce_delete"
	settingLinkClass   = "link_class"
)

// DefaultSettings returns the built-in settings for the service's plugin
// name.
func (s *Service) DefaultSettings() Settings {
	return Settings{
		RequestID:   DefaultRequestID,
		NonceAction: s.plugin.Name,
		LinkClass:   s.plugin.Name + "_link",
	}
}

// Settings builds the configuration record for one request: built-in
// defaults, then site overrides, then the settings filter which may replace
// the record entirely.
func (s *Service) Settings(ctx context.Context) Settings {
	defaults := s.DefaultSettings()
	merged := defaults

	resolver, err := options.NewStringResolver(
		map[string]string{
			settingRequestID:   defaults.RequestID,
			settingNonceAction: defaults.NonceAction,
			settingLinkClass:   defaults.LinkClass,
		},
		map[string]string{
			settingRequestID:   s.overrides.RequestID,
			settingNonceAction: s.overrides.NonceAction,
			settingLinkClass:   s.overrides.LinkClass,
		},
	)
	if err != nil {
		s.logger.Warn("settings merge failed, using defaults", logger.F("error", err))
	} else {
		merged = Settings{
			RequestID:   resolver.StringOr(settingRequestID, defaults.RequestID),
			NonceAction: resolver.StringOr(settingNonceAction, defaults.NonceAction),
			LinkClass:   resolver.StringOr(settingLinkClass, defaults.LinkClass),
		}
	}

	return hooks.Apply(ctx, s.hooks, s.HookName(HookSettings), merged)
}
