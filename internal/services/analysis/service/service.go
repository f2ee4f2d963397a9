// Package service aggregates cleaned entries into the per-product analysis report
package service

import (
	"context"
	"path/filepath"
	"sort"

	"artisantrend/internal/adapters/files"
	"artisantrend/internal/core/aggregate"
	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/keywords"
	"artisantrend/internal/core/relevance"
	"artisantrend/internal/core/sentiment"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/platform/logger"
	ptime "artisantrend/internal/platform/time"
	"artisantrend/internal/services/analysis/domain"
	clean "artisantrend/internal/services/clean/service"

	"github.com/rs/zerolog"
)

// unmatchedSamples caps the unmatched entries logged per run
const unmatchedSamples = 5

// Service implements domain.Analyzer
type Service struct {
	v   *vocab.Vocab
	agg *aggregate.Aggregator
	log *logger.Logger
}

var _ domain.Analyzer = (*Service)(nil)

// New builds the aggregator from v. A nil scorer uses VADER.
func New(v *vocab.Vocab, sc aggregate.Scorer, log *logger.Logger) *Service {
	if sc == nil {
		sc = sentiment.New()
	}
	if log == nil {
		log = logger.Nop()
	}
	agg := aggregate.New(relevance.New(v), keywords.New(v), sc,
		aggregate.WithKeywordsPerEntry(v.Keywords.PerEntry))
	return &Service{v: v, agg: agg, log: log}
}

// Aggregator exposes the wired aggregator to other stages
func (s *Service) Aggregator() *aggregate.Aggregator { return s.agg }

// Analyze aggregates entries and builds the report; Source and Timestamp are left empty
func (s *Service) Analyze(entries []entry.Entry) (domain.Report, *aggregate.Result) {
	res := s.agg.Aggregate(entries, s.v.Catalog)

	var rep domain.Report
	rep.Overall.Total = len(entries)
	for _, sig := range res.Signals {
		if sig.Relevant {
			rep.Overall.Matching++
		}
	}
	rep.Overall.Percentage = pct(rep.Overall.Matching, rep.Overall.Total)
	rep.Skipped = res.Skipped

	rep.Products = make([]domain.ProductStats, 0, res.Len())
	for _, a := range res.Products() {
		rep.Products = append(rep.Products, domain.ProductStats{
			Product:             a.Product,
			Posts:               a.Posts,
			Comments:            a.Comments,
			Total:               a.Total(),
			Relevant:            a.Relevant(),
			RelevancePercentage: a.RelevancePct(),
			Sentiment:           a.MeanSentiment(),
			KeywordCount:        a.KeywordCount(),
			TopKeywords:         a.TopKeywords(domain.TopKeywords),
		})
		rep.Totals.Posts += a.Posts
		rep.Totals.Comments += a.Comments
		rep.Totals.Relevant += a.Relevant()
	}
	sort.SliceStable(rep.Products, func(i, j int) bool { return rep.Products[i].Product < rep.Products[j].Product })
	rep.Totals.Count = rep.Totals.Posts + rep.Totals.Comments
	rep.Totals.RelevancePercentage = pct(rep.Totals.Relevant, rep.Totals.Count)
	return rep, res
}

// Run analyzes the newest cleaned artifact under dataDir and writes the report
func (s *Service) Run(ctx context.Context, dataDir string) (string, domain.Analysis, error) {
	src, err := clean.Newest(dataDir)
	if err != nil {
		return "", domain.Analysis{}, err
	}
	cleaned, err := clean.Load(src)
	if err != nil {
		return "", domain.Analysis{}, err
	}
	if err := ctx.Err(); err != nil {
		return "", domain.Analysis{}, err
	}

	rep, res := s.Analyze(cleaned.Entries)
	now := ptime.Now()
	rep.Source = src
	rep.Timestamp = now.Format("2006-01-02 15:04:05")

	out := files.Stamped(filepath.Join(dataDir, files.ProcessedDir), files.AnalysisPrefix, ".json", now)
	if err := files.WriteJSON(out, rep); err != nil {
		return "", domain.Analysis{}, err
	}

	s.log.Info().
		Str("source", src).
		Str("output", out).
		Int("entries", rep.Overall.Total).
		Int("matching", rep.Overall.Matching).
		Float64("percentage", rep.Overall.Percentage).
		Int("skipped", rep.Skipped).
		Msg("analyzed")
	s.logUnmatched(cleaned.Entries, res)

	return out, domain.Analysis{Report: rep, Aggregate: res, ProductRelevance: cleaned.ProductRelevance}, nil
}

func (s *Service) logUnmatched(entries []entry.Entry, res *aggregate.Result) {
	if s.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	text := make(map[string]string, len(entries))
	for _, e := range entries {
		text[e.ID] = e.Text
	}
	n := 0
	for _, sig := range res.Signals {
		if sig.Relevant {
			continue
		}
		s.log.Debug().Str("id", sig.EntryID).Str("product", sig.Product).Str("text", clip(text[sig.EntryID], 200)).Msg("unmatched entry")
		if n++; n == unmatchedSamples {
			return
		}
	}
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
