// Command artisantrend-run executes the batch stages over a data directory
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"artisantrend/internal/core/trend"
	"artisantrend/internal/core/version"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/platform/bus"
	"artisantrend/internal/platform/config"
	"artisantrend/internal/platform/logger"
	"artisantrend/internal/platform/store"

	analysissvc "artisantrend/internal/services/analysis/service"
	cleansvc "artisantrend/internal/services/clean/service"
	exportsvc "artisantrend/internal/services/export/service"
	fdomain "artisantrend/internal/services/forecast/domain"
	forecastrepo "artisantrend/internal/services/forecast/repo"
	forecastsvc "artisantrend/internal/services/forecast/service"
	"artisantrend/internal/services/pipeline"
)

const service = "artisantrend-run"

func main() {
	config.LoadDotEnv()
	logger.Init(logger.FromEnv())
	l := logger.Named("run")

	runCfg := config.New().Prefix("CORE_RUN_")
	var minScore *float64
	var (
		stageStr    = flag.String("stage", runCfg.MayEnum("STAGE", "all", pipeline.StageNames...), "stage to run: "+strings.Join(pipeline.StageNames, "|"))
		dataDir     = flag.String("data-dir", runCfg.MayString("DATA_DIR", "data"), "data directory")
		minConf     = flag.Int("min-confidence", runCfg.MayInt("MIN_CONFIDENCE", trend.DefaultMinConfidence), "BI export confidence floor")
		costsFile   = flag.String("costs", runCfg.MayString("COSTS_FILE", ""), "cost table override (.yaml or .csv)")
		color       = flag.Bool("color", runCfg.MayBool("COLOR", true), "color the console table")
		quiet       = flag.Bool("quiet", false, "skip the console table")
		showVersion = flag.Bool("version", false, "print build info and exit")
	)
	flag.Func("min-score", "drop records scoring below this", func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		minScore = &f
		return nil
	})
	flag.Parse()
	if *showVersion {
		fmt.Println(version.Info(service))
		return
	}

	stage, err := pipeline.ParseStage(*stageStr)
	if err != nil {
		l.Fatal().Err(err).Msg("bad -stage")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := vocab.Load()
	if err != nil {
		l.Fatal().Err(err).Msg("vocab load failed")
	}
	costs := trend.CostsFrom(v)
	if *costsFile != "" {
		over, err := trend.LoadCosts(*costsFile)
		if err != nil {
			l.Fatal().Err(err).Str("file", *costsFile).Msg("costs load failed")
		}
		costs = costs.Merge(over)
	}

	stCfg := store.ConfigFromEnv(service)
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
		l.Warn().Err(err).Msg("store guard reported unhealthy backends")
	}
	if err := forecastrepo.EnsureSchema(ctx, st.PG, st.CH); err != nil {
		l.Fatal().Err(err).Msg("ensure schema failed")
	}

	var pub bus.Publisher = bus.Noop{}
	if stCfg.NATS.Enabled {
		n, err := bus.Connect(bus.Options{URL: stCfg.NATS.URL, Name: service}, logger.Named("bus"))
		if err != nil {
			l.Fatal().Err(err).Msg("nats connect failed")
		}
		pub = n
	}
	defer pub.Close()

	var hist fdomain.History
	if st.CH != nil {
		hist = forecastrepo.NewCH(st.CH)
	}

	an := analysissvc.New(v, nil, logger.Named("analysis"))
	fd := forecastsvc.Deps{
		Vocab:     v,
		Costs:     costs,
		Agg:       an.Aggregator(),
		PG:        st.PG,
		Snapshots: forecastrepo.NewPG(),
		History:   hist,
		Bus:       pub,
		Subject:   stCfg.NATS.Subject,
		Color:     *color,
		Log:       logger.Named("forecast"),
	}
	if !*quiet {
		fd.Console = os.Stdout
	}

	r := pipeline.New(pipeline.Stages{
		Clean:    cleansvc.New(v, logger.Named("clean")),
		Analysis: an,
		Forecast: forecastsvc.New(fd),
		Export:   exportsvc.New(*minConf, logger.Named("export")),
	}, l)

	l.Info().
		Str("stage", string(stage)).
		Str("data_dir", *dataDir).
		Str("vocab", v.Source()).
		Bool("pg", st.PG != nil).
		Bool("ch", st.CH != nil).
		Bool("nats", stCfg.NATS.Enabled).
		Msg("run starting")
	if _, err := r.Run(ctx, stage, pipeline.Options{DataDir: *dataDir, MinScore: minScore}); err != nil {
		l.Fatal().Err(err).Msg("run failed")
	}
}
