package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-post-delete/pkg/capabilities"
	"github.com/goliatone/go-post-delete/pkg/commands"
	"github.com/goliatone/go-post-delete/pkg/config"
	"github.com/goliatone/go-post-delete/pkg/content"
	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
	"github.com/goliatone/go-post-delete/pkg/nonce"
	"github.com/goliatone/go-post-delete/pkg/postdelete"
	"github.com/goliatone/go-post-delete/pkg/storage"
	"github.com/google/uuid"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/urfave/cli/v3"
)

type app struct {
	cfg       config.Config
	log       logger.Logger
	db        *bun.DB
	providers storage.Providers
	content   *content.Service
	service   *postdelete.Service
	commands  *commands.Registry
	users     map[string]host.Actor
}

func bootstrap(ctx context.Context, cmd *cli.Command) (*app, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if format := cmd.String("log-format"); format != "" {
		cfg.Logging.Format = format
	}
	return newApp(ctx, cfg, newLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr))
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(config.Defaults())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}
	var data map[string]any
	if err := gotoml.Unmarshal(raw, &data); err != nil {
		return config.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config.Load(data)
}

func newApp(ctx context.Context, cfg config.Config, lgr logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: lgr, users: demoUsers()}

	switch cfg.Persistence.Driver {
	case "sqlite":
		db, err := openDatabase(ctx, cfg.Persistence.DSN)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.providers = storage.NewBunProviders(db)
	default:
		a.providers = storage.NewMemoryProviders()
	}

	contentSvc, err := content.New(content.Dependencies{
		Posts:   a.providers.Posts,
		BaseURL: cfg.Site.HomeURL,
		Logger:  lgr,
	})
	if err != nil {
		return nil, err
	}
	a.content = contentSvc

	caps, err := capabilities.New(capabilities.Dependencies{Posts: a.providers.Posts, Logger: lgr})
	if err != nil {
		return nil, err
	}

	secret := cfg.Nonce.Secret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		lgr.Warn("nonce.secret not set, using a per-process secret; signed links die with the process")
	}
	tokens, err := nonce.New(nonce.Dependencies{
		Secret:    []byte(secret),
		Lifetime:  cfg.Nonce.Lifetime,
		SingleUse: cfg.Nonce.SingleUse,
		Logger:    lgr,
	})
	if err != nil {
		return nil, err
	}

	svc, err := postdelete.New(postdelete.Dependencies{
		Content:      contentSvc,
		Capabilities: caps,
		Tokens:       tokens,
		Site:         host.StaticSite(cfg.Site.HomeURL),
		Config:       cfg,
		Logger:       lgr,
	})
	if err != nil {
		return nil, err
	}
	a.service = svc

	registry, err := commands.New(commands.Dependencies{
		Service: svc,
		Content: contentSvc,
		Posts:   a.providers.Posts,
		Logger:  lgr,
	})
	if err != nil {
		return nil, err
	}
	a.commands = registry

	if err := seedPosts(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("persistence: open sqlite: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := storage.CreateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("persistence: create schema: %w", err)
	}
	return db, nil
}

// Close releases the database, if any.
func (a *app) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *app) actor(login string) (host.Actor, error) {
	for session, actor := range a.users {
		if strings.EqualFold(actor.Login, login) {
			actor.Session = session
			return actor, nil
		}
	}
	return host.Actor{}, fmt.Errorf("unknown demo user %q", login)
}

func (a *app) as(ctx context.Context, actor host.Actor) context.Context {
	return host.WithActor(ctx, actor)
}

// posts returns live posts ordered by number.
func (a *app) posts(ctx context.Context) ([]domain.Post, error) {
	result, err := a.providers.Posts.List(ctx, store.ListOptions{})
	if err != nil {
		return nil, err
	}
	items := result.Items
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	return items, nil
}

func (a *app) postBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	items, err := a.posts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Slug == slug {
			return &items[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func deletePost(postID int64, actor host.Actor) commands.DeletePost {
	return commands.DeletePost{PostID: postID, Actor: actor}
}
