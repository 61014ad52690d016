package postdelete

import (
	"context"
	"errors"

	"github.com/goliatone/go-post-delete/pkg/capabilities"
	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
)

// CanDelete reports whether the request actor may delete postID. A postID of
// 0 means no post; only a public_edit override can allow that.
//
// The public_edit filter starts at false and is consulted first: true allows
// everyone, "loggedin" allows any logged in actor, and any other string or
// string list allows a logged in actor holding one of the named
// capabilities. Otherwise the post type decides between delete_page and
// delete_post, checked against the post.
func (s *Service) CanDelete(ctx context.Context, postID int64) bool {
	actor := host.ActorFrom(ctx)

	if allowed, decided := s.publicEdit(ctx, actor, postID); decided {
		return allowed
	}

	if postID <= 0 {
		return false
	}

	postType, err := s.content.PostType(ctx, postID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("post type lookup failed",
				logger.F("post_id", postID),
				logger.F("error", err),
			)
		}
		return false
	}

	capability := capabilities.DeletePost
	if postType == domain.PostTypePage {
		capability = capabilities.DeletePage
	}
	return s.caps.UserCan(ctx, actor, capability, postID)
}

func (s *Service) publicEdit(ctx context.Context, actor host.Actor, postID int64) (allowed, decided bool) {
	value := s.hooks.ApplyFilters(ctx, s.PublicEditHook(), false, postID)

	switch v := value.(type) {
	case bool:
		if v {
			return true, true
		}
		return false, false
	case string:
		if v == "" || !actor.LoggedIn() {
			return false, false
		}
		if v == PublicEditAllowLoggedIn {
			return true, true
		}
		return s.caps.UserCan(ctx, actor, v, postID), true
	case []string:
		return s.anyCapability(ctx, actor, v, postID)
	case []any:
		caps := make([]string, 0, len(v))
		for _, item := range v {
			if capability, ok := item.(string); ok && capability != "" {
				caps = append(caps, capability)
			}
		}
		return s.anyCapability(ctx, actor, caps, postID)
	default:
		return false, false
	}
}

func (s *Service) anyCapability(ctx context.Context, actor host.Actor, caps []string, postID int64) (allowed, decided bool) {
	if len(caps) == 0 || !actor.LoggedIn() {
		return false, false
	}
	if multi, ok := s.caps.(host.AnyCapabilities); ok {
		return multi.UserCanAny(ctx, actor, caps, postID), true
	}
	for _, capability := range caps {
		if s.caps.UserCan(ctx, actor, capability, postID) {
			return true, true
		}
	}
	return false, true
}
