// Package service answers trend queries from the stored runs and scores ad-hoc texts in process
package service

import (
	"context"
	"fmt"
	"strings"

	"artisantrend/internal/core/aggregate"
	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/keywords"
	"artisantrend/internal/core/normalize"
	"artisantrend/internal/core/relevance"
	"artisantrend/internal/core/sentiment"
	"artisantrend/internal/core/trend"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/modkit/repokit"
	perr "artisantrend/internal/platform/errors"
	str "artisantrend/internal/platform/strings"
	"artisantrend/internal/services/api/trends/domain"
	fdomain "artisantrend/internal/services/forecast/domain"
)

// DefaultTopN is how many keywords a manual query returns per product
const DefaultTopN = 10

// Deps wires the service; nil stores turn their endpoints into 503s
type Deps struct {
	PG        repokit.TxRunner
	Snapshots repokit.Binder[fdomain.Snapshots]
	History   fdomain.History
	Vocab     *vocab.Vocab
	Costs     trend.Costs
	Scorer    aggregate.Scorer
}

// Service implements domain.Service
type Service struct {
	pg    repokit.TxRunner
	snaps repokit.Binder[fdomain.Snapshots]
	hist  fdomain.History
	costs trend.Costs
	cls   *relevance.Classifier
	agg   *aggregate.Aggregator
}

var _ domain.Service = (*Service)(nil)

// New compiles the core from d.Vocab
func New(d Deps) *Service {
	if d.Scorer == nil {
		d.Scorer = sentiment.New()
	}
	if d.Costs == nil {
		d.Costs = trend.CostsFrom(d.Vocab)
	}
	cls := relevance.New(d.Vocab)
	return &Service{
		pg:    d.PG,
		snaps: d.Snapshots,
		hist:  d.History,
		costs: d.Costs,
		cls:   cls,
		agg: aggregate.New(cls, keywords.New(d.Vocab), d.Scorer,
			aggregate.WithKeywordsPerEntry(d.Vocab.Keywords.PerEntry)),
	}
}

func (s *Service) snapshots() (fdomain.Snapshots, error) {
	if s.pg == nil || s.snaps == nil {
		return nil, perr.Unavailablef("trend snapshots are disabled")
	}
	return repokit.MustBind(s.snaps, s.pg), nil
}

// Latest returns the newest stored run narrowed by in
func (s *Service) Latest(ctx context.Context, in domain.QueryInput) (domain.LatestResponse, error) {
	snap, err := s.snapshots()
	if err != nil {
		return domain.LatestResponse{}, err
	}
	sum, recs, err := snap.Latest(ctx, fdomain.Filter{
		MinConfidence: in.MinConfidence,
		Direction:     trend.Direction(in.Direction),
		Limit:         in.Limit,
	})
	if err != nil {
		return domain.LatestResponse{}, err
	}
	return domain.LatestResponse{Run: sum, Records: recs}, nil
}

// Runs lists stored runs, newest first
func (s *Service) Runs(ctx context.Context, limit int) ([]fdomain.RunSummary, error) {
	snap, err := s.snapshots()
	if err != nil {
		return nil, err
	}
	return snap.Runs(ctx, limit)
}

// History returns a product's stored time series
func (s *Service) History(ctx context.Context, product string, limit int) (domain.HistoryResponse, error) {
	if s.hist == nil {
		return domain.HistoryResponse{}, perr.Unavailablef("trend history is disabled")
	}
	product = strings.ToLower(strings.TrimSpace(product))
	if product == "" {
		return domain.HistoryResponse{}, perr.WithField(perr.InvalidArgf("product is required"), "product")
	}
	pts, err := s.hist.Product(ctx, product, limit)
	if err != nil {
		return domain.HistoryResponse{}, err
	}
	return domain.HistoryResponse{Product: product, Points: pts}, nil
}

// Analyze scores ad-hoc texts without touching storage
func (s *Service) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.AnalyzeResponse, error) {
	if len(in.Texts) == 0 && len(in.Entries) == 0 {
		return domain.AnalyzeResponse{}, perr.WithField(perr.InvalidArgf("texts or entries are required"), "texts")
	}
	topN := in.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	products := make([]string, 0, len(in.Products))
	for _, p := range in.Products {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			products = append(products, p)
		}
	}
	products = str.Dedupe(products)

	var es []entry.Entry
	texts := map[string]string{}
	add := func(id, product, text string, kind entry.Kind) {
		text = normalize.Clean(text)
		if text == "" {
			return
		}
		es = append(es, entry.New(id, product, text, kind, ""))
		texts[id] = text
	}
	for i, t := range in.Texts {
		for _, p := range products {
			add(fmt.Sprintf("texts[%d]", i), p, t, entry.KindPost)
		}
	}
	for i, e := range in.Entries {
		kind := entry.KindPost
		if e.Kind == string(entry.KindComment) {
			kind = entry.KindComment
		}
		add(fmt.Sprintf("entries[%d]", i), e.Product, e.Text, kind)
	}

	res := s.agg.Aggregate(es, products)
	if err := ctx.Err(); err != nil {
		return domain.AnalyzeResponse{}, err
	}

	sigs := map[string][]domain.TextSignal{}
	for _, sig := range res.Signals {
		sigs[sig.Product] = append(sigs[sig.Product], domain.TextSignal{
			ID:        sig.EntryID,
			Relevant:  sig.Relevant,
			Match:     s.cls.Explain(texts[sig.EntryID], sig.Product),
			Sentiment: sig.Sentiment,
			Keywords:  str.IfEmpty(sig.Keywords, []string{}),
		})
	}

	by := make(map[string]domain.ProductAnalysis, res.Len())
	recs := make([]trend.Record, 0, res.Len())
	for _, a := range res.Products() {
		rec := trend.Score(trend.Input{
			Product:      a.Product,
			PostCount:    a.Total(),
			KeywordCount: a.KeywordCount(),
			Sentiment:    a.MeanSentiment(),
			AvgCost:      s.costs.Unit(a.Product),
			ApproxIncome: s.costs.Monthly(a.Product),
			Relevance:    a.RelevancePct(),
		})
		recs = append(recs, rec)
		by[a.Product] = domain.ProductAnalysis{
			Product:      a.Product,
			Posts:        a.Posts,
			Comments:     a.Comments,
			Relevant:     a.Relevant(),
			RelevancePct: a.RelevancePct(),
			Sentiment:    a.MeanSentiment(),
			Keywords:     str.IfEmpty(a.TopKeywords(topN), []string{}),
			Signals:      str.IfEmpty(sigs[a.Product], []domain.TextSignal{}),
			Record:       rec,
		}
	}

	out := domain.AnalyzeResponse{Products: make([]domain.ProductAnalysis, 0, len(recs))}
	for _, r := range trend.Rank(recs, nil) {
		out.Products = append(out.Products, by[r.Product])
	}
	return out, nil
}
