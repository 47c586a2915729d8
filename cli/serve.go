// ABOUTME: Sync server subcommand
// ABOUTME: Serves the shared state key-value endpoint from SQLite or Redis
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"

	"github.com/harperreed/outreach/config"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/web"
	"github.com/rs/zerolog"
)

// ServeCommand runs the sync server until ctx is canceled.
func ServeCommand(ctx context.Context, cfg *config.Config, database *sql.DB, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.ServerAddr, "Listen address")
	redisURL := fs.String("redis", cfg.RedisURL, "Redis URL (default: SQLite key store)")
	_ = fs.Parse(args)

	kv, closeKV, err := openKV(ctx, database, *redisURL)
	if err != nil {
		return err
	}
	defer closeKV()

	server := web.NewServer(kv, log, cfg.AllowedOrigins)
	return server.ListenAndServe(ctx, *addr)
}

func openKV(ctx context.Context, database *sql.DB, redisURL string) (web.KVStore, func(), error) {
	if redisURL == "" {
		return db.NewKV(database), func() {}, nil
	}

	kv, err := web.OpenRedisKV(ctx, redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return kv, func() { _ = kv.Close() }, nil
}
