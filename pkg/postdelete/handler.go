package postdelete

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-post-delete/pkg/hooks"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/nonce"
)

// Request carries the parameters of an incoming request.
type Request struct {
	Params url.Values
}

// Get returns the first value for key.
func (r Request) Get(key string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params.Get(key)
}

// Outcome reports what HandleRequest decided. The zero value means the
// request was not a deletion request, or was refused, and should proceed.
type Outcome struct {
	// Redirect is the Location to send, empty when nothing happened.
	Redirect string
	// Terminate tells the caller to stop processing after redirecting. Only
	// a successful deletion terminates; a failed one redirects and lets the
	// request continue.
	Terminate bool
	// Deleted reports whether the host deleted the post.
	Deleted bool
	// PostID is the post the request targeted, 0 when inert.
	PostID int64
}

// Handled reports whether the request produced a redirect.
func (o Outcome) Handled() bool {
	return o.Redirect != ""
}

// HandleRequest runs the deletion handler for one request. It must run
// before anything renders so the outcome flags reach the redirected page.
func (s *Service) HandleRequest(ctx context.Context, req Request) Outcome {
	settings := s.Settings(ctx)

	raw := strings.TrimSpace(req.Get(settings.RequestID))
	if raw == "" {
		return Outcome{}
	}

	actor := host.ActorFrom(ctx)
	token := req.Get(NonceParam)
	log := s.logger.With(
		logger.F("request_id", raw),
		logger.F("nonce", nonce.MaskToken(token)),
		logger.F("actor", actor.ID),
	)

	if token == "" || !s.tokens.Verify(ctx, token, settings.NonceAction, actor) {
		log.Debug("delete request ignored: invalid nonce")
		return Outcome{}
	}

	postID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || postID <= 0 {
		log.Debug("delete request ignored: non numeric post id")
		return Outcome{}
	}

	if !s.CanDelete(ctx, postID) {
		log.Debug("delete request ignored: unauthorized")
		return Outcome{}
	}

	if consumer, ok := s.tokens.(host.TokenConsumer); ok && !consumer.Consume(ctx, token, formatID(postID)) {
		log.Debug("delete request ignored: token already used")
		return Outcome{}
	}

	// Resolve the permalink before deleting; a trashed post has none.
	permalink, permalinkErr := s.content.Permalink(ctx, postID)

	deleted, err := s.content.Delete(ctx, postID)
	if err != nil {
		log.Error("host delete failed", logger.F("error", err))
		deleted = false
	}

	if deleted {
		base := hooks.Apply(ctx, s.hooks, s.HookName(HookRedirectSuccess), s.site.HomeURL(), postID)
		redirect, err := AddQueryArgs(base, map[string]string{SuccessParam: formatID(postID)})
		if err != nil {
			log.Error("success redirect invalid", logger.F("error", err))
			redirect = s.site.HomeURL()
		}
		log.Info("post deleted", logger.F("post_id", postID))
		return Outcome{Redirect: redirect, Terminate: true, Deleted: true, PostID: postID}
	}

	if permalinkErr != nil {
		log.Warn("permalink lookup failed", logger.F("error", permalinkErr))
		permalink = s.site.HomeURL()
	}
	redirect, err := AddQueryArgs(permalink, map[string]string{FailureParam: formatID(postID)})
	if err != nil {
		log.Error("failure redirect invalid", logger.F("error", err))
		redirect = s.site.HomeURL()
	}
	log.Info("post delete failed", logger.F("post_id", postID))
	return Outcome{Redirect: redirect, Terminate: false, PostID: postID}
}
