package host

import "context"

// Actor is the visitor a request runs as. The zero value is an anonymous
// visitor.
type Actor struct {
	ID      string
	Login   string
	Roles   []string
	Caps    map[string]bool
	Session string
}

// LoggedIn reports whether the actor is authenticated.
func (a Actor) LoggedIn() bool {
	return a.ID != ""
}

// Content resolves and deletes posts by their public numeric identifier.
type Content interface {
	PostType(ctx context.Context, id int64) (string, error)
	Title(ctx context.Context, id int64) (string, error)
	Permalink(ctx context.Context, id int64) (string, error)
	// Delete reports whether the post was deleted. A false result with a
	// nil error means the host declined or could not find the post.
	Delete(ctx context.Context, id int64) (bool, error)
}

// Capabilities resolves named permissions. objectID is 0 for capabilities
// that are not scoped to a post.
type Capabilities interface {
	UserCan(ctx context.Context, actor Actor, capability string, objectID int64) bool
}

// AnyCapabilities is implemented by Capabilities that can check a list of
// capabilities in one call.
type AnyCapabilities interface {
	UserCanAny(ctx context.Context, actor Actor, capabilities []string, objectID int64) bool
}

// Tokens issues and verifies action-scoped tokens for an actor.
type Tokens interface {
	Create(ctx context.Context, action string, actor Actor) (string, error)
	Verify(ctx context.Context, token, action string, actor Actor) bool
}

// TokenConsumer is implemented by Tokens that enforce single use. Consume
// marks token as spent for scope and reports false if it already was.
type TokenConsumer interface {
	Consume(ctx context.Context, token, scope string) bool
}

// Site exposes site-wide URLs.
type Site interface {
	HomeURL() string
}

// StaticSite is a Site with a fixed home URL.
type StaticSite string

func (s StaticSite) HomeURL() string { return string(s) }
