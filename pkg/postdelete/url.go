package postdelete

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goliatone/go-post-delete/pkg/host"
)

// Destination names the page a signed URL points at. The zero value uses the
// target post's own permalink.
type Destination struct {
	URL    string
	PostID int64
}

// ToURL points a signed URL at an absolute address.
func ToURL(u string) Destination { return Destination{URL: u} }

// ToPost points a signed URL at another post's permalink.
func ToPost(id int64) Destination { return Destination{PostID: id} }

// URL returns dest with the request key set to postID and a fresh nonce.
// A postID of 0 uses the post currently being rendered.
func (s *Service) URL(ctx context.Context, postID int64, dest Destination) (string, error) {
	settings := s.Settings(ctx)
	return s.signedURL(ctx, settings, settings.RequestID, postID, dest)
}

func (s *Service) signedURL(ctx context.Context, settings Settings, requestKey string, postID int64, dest Destination) (string, error) {
	if postID <= 0 {
		postID = host.CurrentPost(ctx)
	}

	base, err := s.destination(ctx, postID, dest)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Create(ctx, settings.NonceAction, host.ActorFrom(ctx))
	if err != nil {
		return "", fmt.Errorf("postdelete: create nonce: %w", err)
	}

	return AddQueryArgs(base, map[string]string{
		requestKey: formatID(postID),
		NonceParam: token,
	})
}

func (s *Service) destination(ctx context.Context, postID int64, dest Destination) (string, error) {
	switch {
	case dest.PostID > 0:
		link, err := s.content.Permalink(ctx, dest.PostID)
		if err != nil {
			return "", fmt.Errorf("postdelete: permalink for %d: %w", dest.PostID, err)
		}
		return link, nil
	case dest.URL != "":
		return dest.URL, nil
	case postID <= 0:
		return "", ErrNoPost
	default:
		link, err := s.content.Permalink(ctx, postID)
		if err != nil {
			return "", fmt.Errorf("postdelete: permalink for %d: %w", postID, err)
		}
		return link, nil
	}
}

// AddQueryArgs sets each key in args on rawURL. Existing parameters are kept
// and a key already present is replaced. The fragment is preserved.
func AddQueryArgs(rawURL string, args map[string]string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("postdelete: parse url %q: %w", rawURL, err)
	}
	query := u.Query()
	for key, value := range args {
		if key == "" {
			continue
		}
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
