package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scenesmith/scenesmith/internal/server"
	"github.com/scenesmith/scenesmith/pkg/cache"
	"github.com/scenesmith/scenesmith/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // redis address; empty means the local file cache
	mongo   string // mongodb connection URI; empty means in-memory storage
	mongoDB string // mongodb database name
	noCache bool   // disable document caching entirely
}

// newServeCmd creates the serve command for running the HTTP API.
//
// Default settings:
//   - addr: :8080
//   - cache: file cache under the XDG cache directory
//   - store: in-memory (scenes are lost on restart)
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080", mongoDB: appName}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scenesmith HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for the document cache (host:port)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "mongodb URI for scene storage")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "mongodb database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable document caching")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := newCache(opts)
	if err != nil {
		return err
	}
	defer c.Close()

	st, err := newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	srv := server.New(
		server.WithLogger(logger),
		server.WithCache(c),
		server.WithStore(st),
	)
	return srv.ListenAndServe(ctx, opts.addr)
}

// newCache picks the document cache backend: redis when --redis is given,
// otherwise a file cache under the XDG cache directory. A missing home
// directory degrades to no caching rather than failing startup.
func newCache(opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		return cache.NewRedisCache(opts.redis)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore picks the scene storage backend: mongodb when --mongo is given,
// otherwise in-memory.
func newStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongo != "" {
		return store.NewMongoStore(ctx, opts.mongo, opts.mongoDB)
	}
	return store.NewMemoryStore(), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/scenesmith/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
