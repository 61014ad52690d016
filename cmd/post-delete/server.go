package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-post-delete/adapters/fiberhttp"
	"github.com/goliatone/go-post-delete/internal/templates"
	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
	"github.com/goliatone/go-post-delete/pkg/postdelete"
)

const (
	assetPath    = "/assets/post-delete.js"
	pageTemplate = "demo.page"
)

const pageMarkup = `<!doctype html>
<html lang="{{ locale }}">
<head><meta charset="utf-8"><title>{{ title }}</title></head>
<body>
<nav>{% for user in users %}<a href="/login/{{ user }}">{{ user }}</a> {% endfor %}<a href="/logout">logout</a> | signed in as {{ actor }}</nav>
{% if flash %}<p class="flash">{{ flash }}</p>{% endif %}
{% for post in posts %}<article>
<h2><a href="{{ post.url }}">{{ post.title }}</a> <small>#{{ post.number }} {{ post.type }} {{ post.status }}</small></h2>
{{ post.body|safe }}
{{ post.link|safe }}
</article>
{% endfor %}
{{ script|safe }}
</body>
</html>`

type demoServer struct {
	app   *app
	pages *templates.Service
}

func serve(ctx context.Context, a *app, addr string) error {
	translator, err := postdelete.NewTranslator(a.cfg.Localization.DefaultLocale)
	if err != nil {
		return err
	}
	pages, err := templates.NewService(translator, templates.WithDefaultLocale(a.cfg.Localization.DefaultLocale))
	if err != nil {
		return err
	}
	pages.Register(pageTemplate, pageMarkup)

	srv := &demoServer{app: a, pages: pages}
	web := fiber.New(fiber.Config{DisableStartupMessage: true})
	srv.routes(web)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", logger.F("addr", addr), logger.F("home", a.cfg.Site.HomeURL))
		errCh <- web.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		return web.Shutdown()
	case err := <-errCh:
		return err
	}
}

func (s *demoServer) routes(web *fiber.App) {
	web.Use(fiberhttp.Middleware(s.app.service, fiberhttp.Options{
		Actor:   fiberhttp.SessionResolver(s.app.users),
		Locales: []string{"en", "es"},
		Logger:  s.app.log,
	}))
	fiberhttp.RegisterAssets(web, assetPath)

	web.Get("/login/:user", s.login)
	web.Get("/logout", func(c *fiber.Ctx) error {
		c.ClearCookie(fiberhttp.SessionCookieName)
		return c.Redirect("/", fiber.StatusFound)
	})
	web.Get("/", s.home)
	web.Get("/:slug", s.single)
}

func (s *demoServer) login(c *fiber.Ctx) error {
	actor, err := s.app.actor(c.Params("user"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	c.Cookie(&fiber.Cookie{Name: fiberhttp.SessionCookieName, Value: actor.Session, HTTPOnly: true, Path: "/"})
	return c.Redirect("/", fiber.StatusFound)
}

func (s *demoServer) home(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if raw := c.Query("p"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fiber.ErrNotFound
		}
		post, err := s.app.providers.Posts.GetByNumber(ctx, id)
		if err != nil {
			return s.notFound(err)
		}
		return s.render(c, post.Title, []domain.Post{*post})
	}

	posts, err := s.app.posts(ctx)
	if err != nil {
		return err
	}
	return s.render(c, "Posts", posts)
}

func (s *demoServer) single(c *fiber.Ctx) error {
	post, err := s.app.postBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return s.notFound(err)
	}
	return s.render(c, post.Title, []domain.Post{*post})
}

func (s *demoServer) notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.ErrNotFound
	}
	return err
}

func (s *demoServer) render(c *fiber.Ctx, title string, posts []domain.Post) error {
	ctx := c.UserContext()
	svc := s.app.service

	items := make([]map[string]any, 0, len(posts))
	for _, post := range posts {
		postCtx := host.WithCurrentPost(ctx, post.Number)
		permalink, err := s.app.content.Permalink(postCtx, post.Number)
		if err != nil {
			return err
		}
		link, _ := svc.GetLink(postCtx, postdelete.LinkArgs{})
		items = append(items, map[string]any{
			"number": post.Number,
			"type":   post.Type,
			"status": post.Status,
			"title":  post.Title,
			"url":    permalink,
			"body":   svc.ExpandShortcodes(postCtx, post.Content),
			"link":   link,
		})
	}

	users := make([]string, 0, len(s.app.users))
	for _, user := range s.app.users {
		users = append(users, user.Login)
	}
	sort.Strings(users)

	actor := host.ActorFrom(ctx)
	actorName := "nobody"
	if actor.LoggedIn() {
		actorName = actor.Login
	}

	out, err := s.pages.Render(ctx, pageTemplate, host.Locale(ctx), map[string]any{
		"title":  title,
		"users":  users,
		"actor":  actorName,
		"flash":  flash(c),
		"posts":  items,
		"script": svc.ScriptTag(ctx, svc.Settings(ctx), assetPath),
	})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(out)
}

func flash(c *fiber.Ctx) string {
	if id := c.Query(postdelete.SuccessParam); id != "" {
		return fmt.Sprintf("Post %s moved to trash.", id)
	}
	if id := c.Query(postdelete.FailureParam); id != "" {
		return fmt.Sprintf("Post %s could not be deleted.", id)
	}
	return ""
}
