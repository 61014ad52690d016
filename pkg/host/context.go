package host

import "context"

type actorKey struct{}
type currentPostKey struct{}
type localeKey struct{}

// WithActor stores the request actor in ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the request actor, or an anonymous actor.
func ActorFrom(ctx context.Context) Actor {
	if ctx == nil {
		return Actor{}
	}
	actor, _ := ctx.Value(actorKey{}).(Actor)
	return actor
}

// WithCurrentPost stores the id of the post being rendered.
func WithCurrentPost(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, currentPostKey{}, id)
}

// CurrentPost returns the id of the post being rendered, or 0.
func CurrentPost(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(currentPostKey{}).(int64)
	return id
}

// WithLocale stores the preferred locale for rendered text.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// Locale returns the preferred locale, or "" when none was set.
func Locale(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}
