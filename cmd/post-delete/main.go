package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/goliatone/go-post-delete/pkg/postdelete"
	"github.com/urfave/cli/v3"
)

// Version is set during build using ldflags
var Version = "dev"

func main() {
	app := &cli.Command{
		Name:    "post-delete",
		Version: Version,
		Usage:   "Front end post deletion demo host",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML configuration file",
				Sources: cli.EnvVars("POST_DELETE_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides the config file)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json (overrides the config file)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print the version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("post-delete version %s\n", cmd.Root().Version)
					return nil
				},
			},
			{
				Name:  "serve",
				Usage: "Run the demo site",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides server.addr)"},
				},
				Action: runServe,
			},
			{
				Name:  "url",
				Usage: "Print a signed delete URL for a post",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "post", Usage: "post number", Required: true},
					&cli.StringFlag{Name: "user", Usage: "demo user login", Value: "admin"},
					&cli.StringFlag{Name: "dest", Usage: "destination URL or post number"},
				},
				Action: runURL,
			},
			{
				Name:  "delete",
				Usage: "Delete a post as a demo user",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "post", Usage: "post number", Required: true},
					&cli.StringFlag{Name: "user", Usage: "demo user login", Value: "admin"},
				},
				Action: runDelete,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Server.Addr
	if override := cmd.String("addr"); override != "" {
		addr = override
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, a, addr)
}

func runURL(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(cmd.String("user"))
	if err != nil {
		return err
	}
	signed, err := a.service.URL(a.as(ctx, actor), cmd.Int64("post"), parseDestination(cmd.String("dest")))
	if err != nil {
		return err
	}
	fmt.Println(signed)
	return nil
}

func runDelete(ctx context.Context, cmd *cli.Command) error {
	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	actor, err := a.actor(cmd.String("user"))
	if err != nil {
		return err
	}
	postID := cmd.Int64("post")
	if err := a.commands.DeletePost.Execute(ctx, deletePost(postID, actor)); err != nil {
		return err
	}
	fmt.Printf("post %d moved to trash\n", postID)
	return nil
}

func parseDestination(raw string) postdelete.Destination {
	if raw == "" {
		return postdelete.Destination{}
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
		return postdelete.ToPost(id)
	}
	return postdelete.ToURL(raw)
}
