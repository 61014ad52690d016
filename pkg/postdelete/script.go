package postdelete

import (
	"context"
	_ "embed"
	"encoding/json"
	"html"

	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
)

// Script is the confirmation script served next to pages with delete links.
//
//go:embed assets/post-delete.js
var Script []byte

// ScriptPlaceholder is replaced with the post title in the confirm message.
const ScriptPlaceholder = "[post_title]"

// ScriptParams are the values published to the confirmation script.
type ScriptParams struct {
	Message   string `json:"message"`
	Replace   string `json:"replace"`
	Prefix    string `json:"prefix"`
	LinkClass string `json:"link_class"`
}

const scriptTemplate = "post_delete.script"

const scriptMarkup = `<script id="{{ handle|safe }}-js-extra">var {{ name|safe }} = {{ params|safe }};</script>
<script src="{{ src|safe }}" id="{{ handle|safe }}-js" data-params="{{ name|safe }}"></script>`

// ScriptParams returns the confirmation script parameters for settings.
func (s *Service) ScriptParams(ctx context.Context, settings Settings) ScriptParams {
	return ScriptParams{
		Message:   s.translate(ctx, msgConfirmMessage, `Are you sure you want to delete "[post_title]"?`),
		Replace:   ScriptPlaceholder,
		Prefix:    s.plugin.Prefix,
		LinkClass: settings.LinkClass,
	}
}

// ScriptTag renders the inline parameters and the script include for src.
// The plugin version is appended as a ver query argument.
func (s *Service) ScriptTag(ctx context.Context, settings Settings, src string) string {
	params, err := json.Marshal(s.ScriptParams(ctx, settings))
	if err != nil {
		s.logger.Error("script params encode failed", logger.F("error", err))
		return ""
	}
	if versioned, err := AddQueryArgs(src, map[string]string{"ver": s.plugin.Version}); err == nil {
		src = versioned
	}

	out, err := s.templates.Render(ctx, scriptTemplate, s.localeFor(ctx), map[string]any{
		"handle": html.EscapeString(s.plugin.Name),
		"name":   jsIdentifier(s.plugin.Name),
		"params": string(params),
		"src":    html.EscapeString(src),
	})
	if err != nil {
		s.logger.Error("script tag render failed", logger.F("error", err))
		return ""
	}
	return out
}

// jsIdentifier keeps letters, digits, underscore and dollar signs.
func jsIdentifier(name string) string {
	out := make([]rune, 0, len(name))
	for i, r := range name {
		switch {
		case r == '_' || r == '$',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			i > 0 && r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
