package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/yash200611/launchmate/internal/cache"
	"github.com/yash200611/launchmate/internal/client"
	"github.com/yash200611/launchmate/internal/logging"
	"github.com/yash200611/launchmate/internal/notifications"
)

const snapshotTTL = 30 * 24 * time.Hour

type options struct {
	apiURL   string
	owner    string
	token    string
	cookie   string
	redis    string
	logLevel string

	store cache.Store
	close func() error
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&options{})
}

// buildRootCmd binds flags onto opts. A store already set on opts is kept.
func buildRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "launchmate",
		Short:         "LaunchMate founder dashboard in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Init(logging.Config{Level: opts.logLevel, Output: cmd.ErrOrStderr()})
			return opts.openStore(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.close != nil {
				return opts.close()
			}
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.apiURL, "api", envOr("LAUNCHMATE_API", "http://localhost:8080"), "API base URL")
	f.StringVar(&opts.owner, "owner", os.Getenv("LAUNCHMATE_OWNER"), "signed-in founder email")
	f.StringVar(&opts.token, "token", os.Getenv("LAUNCHMATE_TOKEN"), "session token printed by 'auth signin'")
	f.StringVar(&opts.cookie, "cookie-name", envOr("LAUNCHMATE_COOKIE_NAME", client.DefaultSessionCookie), "session cookie name the server uses")
	f.StringVar(&opts.redis, "redis", os.Getenv("LAUNCHMATE_REDIS"), "redis address for local snapshots (in-memory when empty)")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(newAuthCmd(opts))
	root.AddCommand(newProjectsCmd(opts))
	root.AddCommand(newNotificationsCmd(opts))
	return root
}

func (o *options) openStore(ctx context.Context) error {
	if o.store != nil {
		return nil
	}
	if o.redis == "" {
		o.store = cache.NewMemoryStore()
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: o.redis})
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("redis ping: %w", err)
	}
	o.store = cache.NewRedisStore(rdb, "launchmate:cli:", snapshotTTL)
	o.close = rdb.Close
	return nil
}

func (o *options) api() *client.API {
	api := client.NewAPI(o.apiURL).WithCookieName(o.cookie)
	if o.token != "" {
		api.WithToken(o.token)
	}
	return api
}

func (o *options) requireOwner() error {
	if o.owner == "" {
		return fmt.Errorf("--owner (or LAUNCHMATE_OWNER) is required")
	}
	return nil
}

// projects loads the owner's aggregate: snapshot first, then the server.
func (o *options) loadProjects(ctx context.Context) (*client.ProjectAggregate, error) {
	if err := o.requireOwner(); err != nil {
		return nil, err
	}
	agg := client.NewProjectAggregate(o.api(), o.store, o.owner)
	if err := agg.Load(ctx); err != nil {
		return nil, err
	}
	return agg, nil
}

func (o *options) loadNotifications(ctx context.Context) (*notifications.Center, error) {
	if err := o.requireOwner(); err != nil {
		return nil, err
	}
	center := notifications.NewCenter(o.store, o.owner)
	if err := center.Load(ctx); err != nil {
		return nil, err
	}
	return center, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
