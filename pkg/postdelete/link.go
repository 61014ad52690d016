package postdelete

import (
	"context"
	"html"
	"strings"

	"github.com/goliatone/go-post-delete/pkg/hooks"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/jaytaylor/html2text"
)

// LinkArgs describes one delete link. Empty fields take their defaults.
type LinkArgs struct {
	// PostID is the target post; 0 uses the post currently being rendered.
	PostID int64
	// Text is the link text, escaped.
	Text string
	// Title is the anchor title attribute; it falls back to Text.
	Title string
	// Class is appended to the configured link class.
	Class string
	// Before and After are markup placed around the anchor, not escaped.
	Before string
	After  string
	// Destination is where the signed URL points; the zero value uses the
	// target post's permalink.
	Destination Destination
}

const linkTemplate = "post_delete.link"

const linkMarkup = `{{ before|safe }}<a class="{{ class|safe }}" data-title="{{ data_title|safe }}" href="{{ href|safe }}" title="{{ title|safe }}">{{ text|safe }}</a>{{ after|safe }}`

// LinkDefaults returns the default link arguments after the link_defaults
// filter.
func (s *Service) LinkDefaults(ctx context.Context) LinkArgs {
	defaults := LinkArgs{
		Text: s.translate(ctx, msgLinkText, "Delete Post"),
	}
	return hooks.Apply(ctx, s.hooks, s.HookName(HookLinkDefaults), defaults)
}

// GetLink renders the delete link for args. It reports false, with an empty
// string, when the actor may not delete the post or the link cannot be
// built.
func (s *Service) GetLink(ctx context.Context, args LinkArgs) (string, bool) {
	settings := s.Settings(ctx)
	args = mergeLinkArgs(s.LinkDefaults(ctx), args)

	if args.PostID <= 0 {
		args.PostID = host.CurrentPost(ctx)
	}

	requestKey := hooks.Apply(ctx, s.hooks, s.HookName(HookRequestID), settings.RequestID, args.PostID)

	if !s.CanDelete(ctx, args.PostID) {
		s.logger.Debug("delete link withheld: unauthorized",
			logger.F("post_id", args.PostID),
			logger.F("actor", host.ActorFrom(ctx).ID),
		)
		return "", false
	}

	if args.Title == "" {
		args.Title = args.Text
	}

	href, err := s.signedURL(ctx, settings, requestKey, args.PostID, args.Destination)
	if err != nil {
		s.logger.Warn("delete link withheld: url failed",
			logger.F("post_id", args.PostID),
			logger.F("error", err),
		)
		return "", false
	}

	class := settings.LinkClass
	if args.Class != "" {
		class += " " + args.Class
	}

	out, err := s.templates.Render(ctx, linkTemplate, s.localeFor(ctx), map[string]any{
		"class":      html.EscapeString(class),
		"data_title": html.EscapeString(s.plainTitle(ctx, args.PostID)),
		"href":       html.EscapeString(href),
		"title":      html.EscapeString(args.Title),
		"text":       html.EscapeString(args.Text),
		"before":     args.Before,
		"after":      args.After,
	})
	if err != nil {
		s.logger.Error("delete link render failed", logger.F("error", err))
		return "", false
	}
	return out, true
}

// plainTitle returns the post title with markup removed.
func (s *Service) plainTitle(ctx context.Context, postID int64) string {
	if postID <= 0 {
		return ""
	}
	title, err := s.content.Title(ctx, postID)
	if err != nil || title == "" {
		return ""
	}
	plain, err := html2text.FromString(title, html2text.Options{OmitLinks: true, TextOnly: true})
	if err != nil {
		return title
	}
	return strings.Join(strings.Fields(plain), " ")
}

// mergeLinkArgs lays caller values over defaults; empty caller fields keep
// the default.
func mergeLinkArgs(defaults, args LinkArgs) LinkArgs {
	out := defaults
	if args.PostID > 0 {
		out.PostID = args.PostID
	}
	if args.Text != "" {
		out.Text = args.Text
	}
	if args.Title != "" {
		out.Title = args.Title
	}
	if args.Class != "" {
		out.Class = args.Class
	}
	if args.Before != "" {
		out.Before = args.Before
	}
	if args.After != "" {
		out.After = args.After
	}
	if args.Destination != (Destination{}) {
		out.Destination = args.Destination
	}
	return out
}
