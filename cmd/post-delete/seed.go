package main

import (
	"context"
	"fmt"

	"github.com/goliatone/go-post-delete/pkg/commands"
	"github.com/goliatone/go-post-delete/pkg/domain"
	"github.com/goliatone/go-post-delete/pkg/host"
	"github.com/goliatone/go-post-delete/pkg/interfaces/logger"
	"github.com/goliatone/go-post-delete/pkg/interfaces/store"
)

// demoUsers maps session ids to demo actors.
func demoUsers() map[string]host.Actor {
	return map[string]host.Actor{
		"admin-session":      {ID: "user-admin", Login: "admin", Roles: []string{"administrator"}},
		"editor-session":     {ID: "user-editor", Login: "editor", Roles: []string{"editor"}},
		"author-session":     {ID: "user-author", Login: "author", Roles: []string{"author"}},
		"subscriber-session": {ID: "user-subscriber", Login: "subscriber", Roles: []string{"subscriber"}},
	}
}

func seedPosts(ctx context.Context, a *app) error {
	existing, err := a.providers.Posts.List(ctx, store.ListOptions{Limit: 1, IncludeSoftDeleted: true})
	if err != nil {
		return fmt.Errorf("seed: list posts: %w", err)
	}
	if existing.Total > 0 {
		return nil
	}

	posts := []commands.CreatePost{
		{
			Title:    "Hello World",
			Slug:     "hello-world",
			Content:  "<p>Welcome to the demo site.</p>",
			AuthorID: "user-author",
		},
		{
			Title:    "Editor <em>picks</em>",
			Slug:     "editor-picks",
			Content:  fmt.Sprintf(`<p>Shortcode below.</p>[%s text="Remove these picks" before="<p>" after="</p>"]`, a.service.ShortcodeTag()),
			AuthorID: "user-editor",
		},
		{
			Title:    "Draft notes",
			Slug:     "draft-notes",
			Status:   domain.PostStatusDraft,
			Content:  "<p>Work in progress.</p>",
			AuthorID: "user-author",
		},
		{
			Type:     domain.PostTypePage,
			Title:    "About",
			Slug:     "about",
			Content:  "<p>About this site.</p>",
			AuthorID: "user-admin",
		},
	}
	err = a.providers.Transaction.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, post := range posts {
			if err := a.commands.CreatePost.Execute(ctx, post); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.log.Info("seeded demo posts", logger.F("count", len(posts)))
	return nil
}
