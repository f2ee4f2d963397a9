// Package service scores aggregated products, writes the prediction artifacts
// and fans the run out to the enabled stores and the event bus.
package service

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"artisantrend/internal/adapters/files"
	"artisantrend/internal/core/aggregate"
	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/trend"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/modkit/repokit"
	"artisantrend/internal/platform/bus"
	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/platform/logger"
	ptime "artisantrend/internal/platform/time"
	clean "artisantrend/internal/services/clean/service"
	"artisantrend/internal/services/forecast/domain"

	"github.com/google/uuid"
)

// DefaultSubject prefixes the per-direction event subjects
const DefaultSubject = "artisan.trends"

// saveAttempts bounds retries of a run save on serialization or deadlock errors
const saveAttempts = 3

// Aggregator folds cleaned entries when no aggregate is handed in
type Aggregator interface {
	Aggregate(entries []entry.Entry, catalog []string) *aggregate.Result
}

// Deps wires the stage; nil stores, bus and console are disabled
type Deps struct {
	Vocab     *vocab.Vocab
	Costs     trend.Costs
	Agg       Aggregator
	PG        repokit.TxRunner
	Snapshots repokit.Binder[domain.Snapshots]
	History   domain.History
	Bus       bus.Publisher
	Subject   string
	Console   io.Writer
	Color     bool
	Log       *logger.Logger
}

// Input is what one forecast consumes
type Input struct {
	Source           string
	Aggregate        *aggregate.Result
	ProductRelevance map[string]float64
}

// Output names the written artifacts
type Output struct {
	Run      domain.Run
	JSONPath string
	CSVPath  string
}

// Service runs the forecast stage
type Service struct {
	d Deps
}

// New fills defaults for the optional deps
func New(d Deps) *Service {
	if d.Costs == nil && d.Vocab != nil {
		d.Costs = trend.CostsFrom(d.Vocab)
	}
	if d.Bus == nil {
		d.Bus = bus.Noop{}
	}
	if d.Subject == "" {
		d.Subject = DefaultSubject
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return &Service{d: d}
}

// Inputs builds one scoring input per aggregated product, in traversal order
func (s *Service) Inputs(agg *aggregate.Result, relevance map[string]float64) []trend.Input {
	out := make([]trend.Input, 0, agg.Len())
	for _, a := range agg.Products() {
		out = append(out, trend.Input{
			Product:      a.Product,
			PostCount:    a.Total(),
			KeywordCount: a.KeywordCount(),
			Sentiment:    a.MeanSentiment(),
			AvgCost:      s.d.Costs.Unit(a.Product),
			ApproxIncome: s.d.Costs.Monthly(a.Product),
			Relevance:    relevance[a.Product],
		})
	}
	return out
}

// Forecast scores and ranks in; records under minScore are dropped
func (s *Service) Forecast(ctx context.Context, in Input, minScore *float64) (domain.Run, error) {
	if in.Aggregate == nil {
		return domain.Run{}, perr.InvalidArgf("forecast: no aggregate")
	}
	recs, err := trend.ScoreAll(ctx, s.Inputs(in.Aggregate, in.ProductRelevance))
	if err != nil {
		return domain.Run{}, err
	}
	return domain.Run{
		ID:        uuid.New(),
		CreatedAt: ptime.Now().Truncate(time.Millisecond),
		Source:    in.Source,
		Records:   trend.Rank(recs, minScore),
	}, nil
}

// Run forecasts in, or the newest cleaned artifact when in is nil, then writes,
// persists, publishes and renders the result
func (s *Service) Run(ctx context.Context, dataDir string, in *Input, minScore *float64) (Output, error) {
	if in == nil {
		loaded, err := s.load(dataDir)
		if err != nil {
			return Output{}, err
		}
		in = &loaded
	}

	run, err := s.Forecast(ctx, *in, minScore)
	if err != nil {
		return Output{}, err
	}
	ctx = logger.WithRun(ctx, run.ID.String())
	log := s.d.Log.With().Str("run_id", run.ID.String()).Logger()

	out := Output{Run: run}
	dir := filepath.Join(dataDir, files.PredictionsDir)
	out.JSONPath = files.Stamped(dir, files.PredictionsPrefix, ".json", run.CreatedAt)
	out.CSVPath = files.Stamped(dir, files.PredictionsPrefix, ".csv", run.CreatedAt)
	records := run.Records
	if records == nil {
		records = []trend.Record{}
	}
	if err := files.WriteJSON(out.JSONPath, records); err != nil {
		return out, err
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.CSV()
	}
	if err := files.WriteCSV(out.CSVPath, trend.RecordHeader, rows); err != nil {
		return out, err
	}
	log.Info().Str("json", out.JSONPath).Str("csv", out.CSVPath).Int("records", len(records)).Msg("predictions written")

	if err := s.persist(ctx, &log, run, in.Aggregate); err != nil {
		return out, err
	}
	if err := s.publish(ctx, run); err != nil {
		return out, err
	}
	if s.d.Console != nil {
		if err := Render(s.d.Console, records, s.d.Color); err != nil {
			log.Warn().Err(err).Msg("console table")
		}
	}
	return out, nil
}

func (s *Service) load(dataDir string) (Input, error) {
	if s.d.Agg == nil || s.d.Vocab == nil {
		return Input{}, perr.InvalidArgf("forecast: no aggregator wired for standalone runs")
	}
	src, err := clean.Newest(dataDir)
	if err != nil {
		return Input{}, err
	}
	cleaned, err := clean.Load(src)
	if err != nil {
		return Input{}, err
	}
	return Input{
		Source:           src,
		Aggregate:        s.d.Agg.Aggregate(cleaned.Entries, s.d.Vocab.Catalog),
		ProductRelevance: cleaned.ProductRelevance,
	}, nil
}

func (s *Service) persist(ctx context.Context, log *logger.Logger, run domain.Run, agg *aggregate.Result) error {
	if s.d.PG != nil && s.d.Snapshots != nil {
		var err error
		for attempt := 1; attempt <= saveAttempts; attempt++ {
			err = repokit.WithTx(ctx, s.d.PG, s.d.Snapshots, func(snap domain.Snapshots) error {
				return snap.SaveRun(ctx, run)
			})
			if err == nil || !perr.Retryable(err) || ctx.Err() != nil {
				break
			}
			log.Warn().Err(err).Int("attempt", attempt).Msg("save run failed, retrying")
		}
		if err != nil {
			if _, coded := perr.As(err); coded {
				return err
			}
			return perr.Wrap(err, perr.ErrorCodeDB, "forecast: save run")
		}
		log.Debug().Int("records", len(run.Records)).Msg("run saved to postgres")
	}
	if s.d.History != nil {
		if err := s.d.History.WriteSignals(ctx, run.ID, run.CreatedAt, agg.Signals); err != nil {
			return err
		}
		if err := s.d.History.WriteRecords(ctx, run); err != nil {
			return err
		}
		log.Debug().Int("signals", len(agg.Signals)).Msg("history written to clickhouse")
	}
	return nil
}

func (s *Service) publish(ctx context.Context, run domain.Run) error {
	for _, r := range run.Records {
		ev := domain.Event{EventID: uuid.NewString(), RunID: run.ID.String(), At: run.CreatedAt, Record: r}
		subj := domain.Subject(s.d.Subject, r.Direction)
		if err := s.d.Bus.Publish(ctx, subj, ev); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnavailable, "forecast: publish %s", subj)
		}
	}
	return nil
}
