package fiberhttp

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/postdelete"
)

// SessionCookieName is read by SessionResolver.
const SessionCookieName = "session_id"

// ActorResolver returns the actor for a request. Anonymous requests return
// the zero Actor.
type ActorResolver func(c *fiber.Ctx) host.Actor

// Options configures Middleware.
type Options struct {
	Actor ActorResolver
	// Locales lists the locales offered for Accept-Language negotiation.
	Locales []string
	Logger  logger.Logger
}

// Middleware resolves the actor into the request context and runs the
// deletion handler.
func Middleware(svc *postdelete.Service, opts Options) fiber.Handler {
	if opts.Logger == nil {
		opts.Logger = &logger.Nop{}
	}
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if opts.Actor != nil {
			ctx = host.WithActor(ctx, opts.Actor(c))
		}
		if len(opts.Locales) > 0 {
			if locale := c.AcceptsLanguages(opts.Locales...); locale != "" {
				ctx = host.WithLocale(ctx, locale)
			}
		}
		c.SetUserContext(ctx)

		out := svc.HandleRequest(ctx, postdelete.Request{Params: RequestParams(c)})
		if !out.Handled() {
			return c.Next()
		}
		if out.Terminate {
			return c.Redirect(out.Redirect, fiber.StatusFound)
		}

		opts.Logger.Debug("delete failed, continuing with redirect set",
			logger.F("path", c.Path()),
			logger.F("post_id", out.PostID),
		)
		c.Location(out.Redirect)
		c.Status(fiber.StatusFound)
		return c.Next()
	}
}

// RequestParams collects query parameters, then urlencoded form values for
// keys the query did not set.
func RequestParams(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	form := url.Values{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		form.Add(string(key), string(value))
	})
	for key, vals := range form {
		if _, ok := values[key]; ok {
			continue
		}
		values[key] = vals
	}
	return values
}

// WithPost marks id as the post being rendered for the rest of the request.
func WithPost(c *fiber.Ctx, id int64) {
	c.SetUserContext(host.WithCurrentPost(c.UserContext(), id))
}

// SessionResolver maps the session cookie to a known actor.
func SessionResolver(sessions map[string]host.Actor) ActorResolver {
	return func(c *fiber.Ctx) host.Actor {
		session := c.Cookies(SessionCookieName)
		if session == "" {
			return host.Actor{}
		}
		actor, ok := sessions[session]
		if !ok {
			return host.Actor{}
		}
		actor.Session = session
		return actor
	}
}

// RegisterAssets serves the confirmation script at path.
func RegisterAssets(r fiber.Router, path string) {
	r.Get(path, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
		return c.Send(postdelete.Script)
	})
}
