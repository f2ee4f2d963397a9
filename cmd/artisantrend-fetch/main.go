// Command artisantrend-fetch collects reddit posts and comments for the catalog
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"artisantrend/internal/adapters/files"
	"artisantrend/internal/adapters/ingest/reddit"
	"artisantrend/internal/core/version"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/platform/config"
	"artisantrend/internal/platform/logger"
	"artisantrend/internal/platform/store"
	ptime "artisantrend/internal/platform/time"
)

const service = "artisantrend-fetch"

func main() {
	config.LoadDotEnv()
	logger.Init(logger.FromEnv())
	l := logger.Named("fetch")

	cfg := reddit.FromConfig(config.New().Prefix("CORE_FETCH_"))
	var (
		dataDir     = flag.String("data-dir", cfg.DataDir, "data directory")
		cache       = flag.String("cache", cfg.Cache, "query cache: disk|redis|none")
		showVersion = flag.Bool("version", false, "print build info and exit")
	)
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Info(service))
		return
	}
	cfg.DataDir, cfg.Cache = *dataDir, *cache

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := vocab.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("vocab load failed")
	}

	// only the cache backend is needed here
	stCfg := store.ConfigFromEnv(service)
	stCfg.PG.Enabled, stCfg.CH.Enabled, stCfg.NATS.Enabled = false, false, false
	stCfg.RDS.Enabled = cfg.Cache == reddit.CacheRedis && stCfg.RDS.Enabled
	st, err := store.Open(ctx, stCfg, store.WithLogger(logger.Named("store")))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := st.Guard(ctx); err != nil {
		l.Warn().Err(err).Msg("cache backend unhealthy")
	}

	f := reddit.NewFetcher(reddit.NewClient(cfg.Client), cfg.CacheFor(st, stCfg.RDS), v, cfg.Fetch)
	l.Info().
		Int("queries", len(v.Fetch.Queries)).
		Strs("subreddits", v.Fetch.Subreddits).
		Str("cache", cfg.Cache).
		Msg("fetch starting")

	entries, err := f.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal().Err(err).Msg("fetch failed")
	}
	if len(entries) == 0 {
		l.Warn().Msg("nothing fetched; no raw file written")
		return
	}

	out := files.Stamped(filepath.Join(cfg.DataDir, files.RawDir), files.RawPrefix, ".json", ptime.Now())
	if err := files.WriteJSON(out, entries); err != nil {
		l.Fatal().Err(err).Msg("write raw data failed")
	}
	l.Info().Str("output", out).Int("entries", len(entries)).Bool("partial", ctx.Err() != nil).Msg("raw data written")
}
