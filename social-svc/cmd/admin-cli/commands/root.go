package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Densingh-123/Home-Services/config"
	"github.com/Densingh-123/Home-Services/docstore"
	"github.com/Densingh-123/Home-Services/social-svc/internal/domain"
)

// StoreOpener connects to the document store; the returned func releases it.
type StoreOpener func(ctx context.Context) (docstore.Store, func(), error)

type Config struct {
	config.Common
	config.Store
	config.Redis

	RatingPolicy string `env:"RATING_POLICY" envDefault:"append"`
}

type app struct {
	open   StoreOpener
	logger *zap.Logger
	policy domain.RatingPolicy
}

// NewRootCommand builds the admin-cli command tree.
func NewRootCommand(open StoreOpener, policy domain.RatingPolicy, logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{open: open, logger: logger, policy: policy}

	root := &cobra.Command{
		Use:   "admin-cli",
		Short: "Maintenance commands for the social metrics store",
		Long: `admin-cli operates directly on the document store configured through
DOCSTORE_BACKEND and friends, bypassing the HTTP services.

Examples:
  admin-cli migrate-likes --dry-run     # Report legacy likes without writing
  admin-cli migrate-likes               # Rewrite legacy likes as pair records
  admin-cli metrics b1 --as jane@x.io   # Print metrics as seen by a user`,
		SilenceUsage: true,
	}
	root.AddCommand(a.migrateLikesCommand(), a.metricsCommand())
	return root
}

// Execute runs the command tree against the environment's configuration.
func Execute() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	open := func(ctx context.Context) (docstore.Store, func(), error) {
		var rdb *redis.Client
		if cfg.Backend == config.BackendRedis {
			rdb = config.MustInitRedis(ctx, cfg.Redis, logger)
		}
		store, closeStore := config.MustOpenStore(ctx, cfg.Store, rdb, logger)
		return store, func() {
			closeStore()
			if rdb != nil {
				_ = rdb.Close()
			}
		}, nil
	}

	policy := domain.RatingPolicy(cfg.RatingPolicy)
	if err := NewRootCommand(open, policy, logger).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
