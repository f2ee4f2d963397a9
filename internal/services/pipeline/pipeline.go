// Package pipeline runs the batch stages in order: clean, analyze, forecast, export
package pipeline

import (
	"context"
	"strings"
	"time"

	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/platform/logger"
	analysisdomain "artisantrend/internal/services/analysis/domain"
	cleandomain "artisantrend/internal/services/clean/domain"
	exportsvc "artisantrend/internal/services/export/service"
	forecastsvc "artisantrend/internal/services/forecast/service"
)

// Stage names one step, or all of them
type Stage string

const (
	StageAll      Stage = "all"
	StageClean    Stage = "clean"
	StageAnalyze  Stage = "analyze"
	StageForecast Stage = "forecast"
	StageExport   Stage = "export"
)

// StageNames lists the accepted -stage values
var StageNames = []string{
	string(StageAll), string(StageClean), string(StageAnalyze), string(StageForecast), string(StageExport),
}

// ParseStage accepts a stage name case-insensitively
func ParseStage(s string) (Stage, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range StageNames {
		if s == n {
			return Stage(s), nil
		}
	}
	return "", perr.WithField(perr.InvalidArgf("unknown stage %q (want one of %s)", s, strings.Join(StageNames, ", ")), "stage")
}

// Forecaster is the forecast stage surface
type Forecaster interface {
	Run(ctx context.Context, dataDir string, in *forecastsvc.Input, minScore *float64) (forecastsvc.Output, error)
}

// Exporter is the BI export stage surface
type Exporter interface {
	Run(ctx context.Context, dataDir string) (exportsvc.Result, error)
}

// Stages are the wired stage services
type Stages struct {
	Clean    cleandomain.Cleaner
	Analysis analysisdomain.Analyzer
	Forecast Forecaster
	Export   Exporter
}

// Options apply to a single invocation
type Options struct {
	DataDir  string
	MinScore *float64
}

// Report names what each executed stage produced; skipped stages stay zero
type Report struct {
	Cleaned  string
	Analysis string
	Forecast *forecastsvc.Output
	Export   *exportsvc.Result
}

// Runner sequences the stages
type Runner struct {
	st  Stages
	log *logger.Logger
}

// New wires the stages; every stage must be set
func New(st Stages, log *logger.Logger) *Runner {
	if st.Clean == nil || st.Analysis == nil || st.Forecast == nil || st.Export == nil {
		panic("pipeline.New requires every stage")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{st: st, log: log}
}

// Run executes stage; StageAll hands the analysis aggregate straight to the forecast
func (r *Runner) Run(ctx context.Context, stage Stage, opt Options) (Report, error) {
	if opt.DataDir == "" {
		opt.DataDir = "data"
	}
	var rep Report

	switch stage {
	case StageClean:
		return rep, r.clean(ctx, opt, &rep)
	case StageAnalyze:
		_, err := r.analyze(ctx, opt, &rep)
		return rep, err
	case StageForecast:
		return rep, r.forecast(ctx, opt, nil, &rep)
	case StageExport:
		return rep, r.export(ctx, opt, &rep)
	case StageAll:
	default:
		return rep, perr.WithField(perr.InvalidArgf("unknown stage %q", stage), "stage")
	}

	if err := r.clean(ctx, opt, &rep); err != nil {
		return rep, err
	}
	an, err := r.analyze(ctx, opt, &rep)
	if err != nil {
		return rep, err
	}
	in := &forecastsvc.Input{
		Source:           an.Report.Source,
		Aggregate:        an.Aggregate,
		ProductRelevance: an.ProductRelevance,
	}
	if err := r.forecast(ctx, opt, in, &rep); err != nil {
		return rep, err
	}
	return rep, r.export(ctx, opt, &rep)
}

func (r *Runner) clean(ctx context.Context, opt Options, rep *Report) error {
	defer r.timed(StageClean)()
	out, res, err := r.st.Clean.Run(ctx, opt.DataDir)
	if err != nil {
		return perr.WithOp(err, "pipeline.clean")
	}
	rep.Cleaned = out
	r.log.Info().Str("stage", string(StageClean)).Str("output", out).Int("kept", len(res.Entries)).Msg("stage done")
	return nil
}

func (r *Runner) analyze(ctx context.Context, opt Options, rep *Report) (analysisdomain.Analysis, error) {
	defer r.timed(StageAnalyze)()
	out, an, err := r.st.Analysis.Run(ctx, opt.DataDir)
	if err != nil {
		return analysisdomain.Analysis{}, perr.WithOp(err, "pipeline.analyze")
	}
	rep.Analysis = out
	r.log.Info().
		Str("stage", string(StageAnalyze)).
		Str("output", out).
		Int("matching", an.Report.Overall.Matching).
		Float64("percentage", an.Report.Overall.Percentage).
		Msg("stage done")
	return an, nil
}

func (r *Runner) forecast(ctx context.Context, opt Options, in *forecastsvc.Input, rep *Report) error {
	defer r.timed(StageForecast)()
	out, err := r.st.Forecast.Run(ctx, opt.DataDir, in, opt.MinScore)
	if err != nil {
		return perr.WithOp(err, "pipeline.forecast")
	}
	rep.Forecast = &out
	s := out.Run.Summary()
	r.log.Info().
		Str("stage", string(StageForecast)).
		Str("run_id", s.ID).
		Int("products", s.Products).
		Int("rising", s.Rising).
		Int("stable", s.Stable).
		Int("declining", s.Declining).
		Msg("stage done")
	return nil
}

func (r *Runner) export(ctx context.Context, opt Options, rep *Report) error {
	defer r.timed(StageExport)()
	res, err := r.st.Export.Run(ctx, opt.DataDir)
	if err != nil {
		return perr.WithOp(err, "pipeline.export")
	}
	rep.Export = &res
	r.log.Info().Str("stage", string(StageExport)).Str("output", res.Output).Int("rows", len(res.Rows)).Msg("stage done")
	return nil
}

func (r *Runner) timed(stage Stage) func() {
	start := time.Now()
	return func() {
		r.log.Debug().Str("stage", string(stage)).Dur("took", time.Since(start)).Msg("stage timing")
	}
}
