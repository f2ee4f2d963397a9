// @title         artisantrend API
// @version       0.1.0
// @description   Trend records, run history and ad-hoc scoring for artisan products
// @BasePath      /api/v1

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"artisantrend/internal/core/trend"
	"artisantrend/internal/core/version"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/platform/config"
	"artisantrend/internal/platform/logger"
	phttp "artisantrend/internal/platform/net/http"
	"artisantrend/internal/platform/store"

	"artisantrend/internal/services/api"
	metamod "artisantrend/internal/services/api/meta/module"
	forecastrepo "artisantrend/internal/services/forecast/repo"

	"github.com/go-chi/chi/v5"
)

func main() {
	showVersion := flag.Bool("version", false, "print build info and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Info(metamod.ServiceName))
		return
	}

	config.LoadDotEnv()
	logger.Init(logger.FromEnv())
	l := logger.Named("api")

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := vocab.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("vocab load failed")
	}
	costs := trend.CostsFrom(v)
	if path := root.Prefix("CORE_RUN_").MayString("COSTS_FILE", ""); path != "" {
		over, err := trend.LoadCosts(path)
		if err != nil {
			l.Fatal().Err(err).Str("file", path).Msg("costs load failed")
		}
		costs = costs.Merge(over)
	}

	// postgres and clickhouse are optional; their endpoints answer 503 when disabled
	st, err := store.Open(ctx, store.ConfigFromEnv(metamod.ServiceName), store.WithLogger(logger.Named("store")))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		l.Warn().Err(err).Msg("store guard reported unhealthy backends")
	}
	if err := forecastrepo.EnsureSchema(ctx, st.PG, st.CH); err != nil {
		l.Fatal().Err(err).Msg("ensure schema failed")
	}

	addr := net.JoinHostPort(apiCfg.MayString("HOST", ""), apiCfg.MayString("PORT", "8080"))
	srv := phttp.NewServer(addr, func(r chi.Router) {
		api.Mount(r, api.Options{
			Config:        apiCfg,
			Store:         st,
			Logger:        l,
			Vocab:         v,
			Costs:         costs,
			EnableSwagger: apiCfg.MayBool("SWAGGER", true),
		})
	})

	l.Info().
		Str("addr", srv.Addr()).
		Str("vocab", v.Source()).
		Bool("pg", st.PG != nil).
		Bool("ch", st.CH != nil).
		Msg("api starting")
	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}
