package service

import (
	"context"
	"errors"
	"testing"

	"artisantrend/internal/core/trend"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/modkit/repokit"
	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/services/api/trends/domain"
	fdomain "artisantrend/internal/services/forecast/domain"
)

type flat float64

func (f flat) Score(string) float64 { return float64(f) }

func mustVocab(t *testing.T) *vocab.Vocab {
	t.Helper()
	v, err := vocab.Default()
	if err != nil {
		t.Fatalf("vocab.Default: %v", err)
	}
	return v
}

type fakeTx struct{ repokit.Queryer }

func (f *fakeTx) Tx(_ context.Context, fn func(repokit.Queryer) error) error { return fn(f) }

type fakeSnap struct {
	fdomain.Snapshots
	filter fdomain.Filter
	limit  int
	err    error
}

func (f *fakeSnap) Latest(_ context.Context, flt fdomain.Filter) (fdomain.RunSummary, []trend.Record, error) {
	f.filter = flt
	if f.err != nil {
		return fdomain.RunSummary{}, nil, f.err
	}
	return fdomain.RunSummary{Source: "raw.json", Products: 1, Rising: 1},
		[]trend.Record{{Product: "handmade soap", Direction: trend.Rising}}, nil
}

func (f *fakeSnap) Runs(_ context.Context, limit int) ([]fdomain.RunSummary, error) {
	f.limit = limit
	return []fdomain.RunSummary{{Source: "a"}, {Source: "b"}}, nil
}

func newWithSnap(t *testing.T, snap *fakeSnap) *Service {
	t.Helper()
	return New(Deps{
		PG:        &fakeTx{},
		Snapshots: repokit.BindFunc[fdomain.Snapshots](func(repokit.Queryer) fdomain.Snapshots { return snap }),
		Vocab:     mustVocab(t),
		Scorer:    flat(0.5),
	})
}

func TestLatest_PassesFilter(t *testing.T) {
	t.Parallel()
	snap := &fakeSnap{}
	s := newWithSnap(t, snap)

	got, err := s.Latest(context.Background(), domain.QueryInput{MinConfidence: 70, Direction: "Rising", Limit: 5})
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if snap.filter.MinConfidence != 70 || snap.filter.Direction != trend.Rising || snap.filter.Limit != 5 {
		t.Fatalf("filter = %+v", snap.filter)
	}
	if got.Run.Source != "raw.json" || len(got.Records) != 1 {
		t.Fatalf("Latest() = %+v", got)
	}
}

func TestLatest_PropagatesNotFound(t *testing.T) {
	t.Parallel()
	s := newWithSnap(t, &fakeSnap{err: perr.NotFoundf("no trend runs stored")})

	_, err := s.Latest(context.Background(), domain.QueryInput{})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Latest err = %v, want NotFound", err)
	}
}

func TestRuns(t *testing.T) {
	t.Parallel()
	snap := &fakeSnap{}
	s := newWithSnap(t, snap)

	got, err := s.Runs(context.Background(), 7)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(got) != 2 || snap.limit != 7 {
		t.Fatalf("Runs() = %d rows, limit %d", len(got), snap.limit)
	}
}

func TestStores_Disabled(t *testing.T) {
	t.Parallel()
	s := New(Deps{Vocab: mustVocab(t), Scorer: flat(0)})
	ctx := context.Background()

	if _, err := s.Latest(ctx, domain.QueryInput{}); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Latest err = %v, want Unavailable", err)
	}
	if _, err := s.Runs(ctx, 1); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Runs err = %v, want Unavailable", err)
	}
	if _, err := s.History(ctx, "handmade soap", 1); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("History err = %v, want Unavailable", err)
	}
}

type histStub struct {
	fdomain.History
	product string
	limit   int
}

func (h *histStub) Product(_ context.Context, product string, limit int) ([]fdomain.HistoryPoint, error) {
	h.product, h.limit = product, limit
	return []fdomain.HistoryPoint{{CurrentScore: 1.5}}, nil
}

func TestHistory(t *testing.T) {
	t.Parallel()
	h := &histStub{}
	s := New(Deps{History: h, Vocab: mustVocab(t), Scorer: flat(0)})

	got, err := s.History(context.Background(), "  Handmade Soap ", 12)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if h.product != "handmade soap" || h.limit != 12 {
		t.Fatalf("store called with %q/%d", h.product, h.limit)
	}
	if got.Product != "handmade soap" || len(got.Points) != 1 {
		t.Fatalf("History() = %+v", got)
	}

	_, err = s.History(context.Background(), " ", 1)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("blank product err = %v, want InvalidArgument", err)
	}
}

func TestAnalyze_TextsAgainstEveryProduct(t *testing.T) {
	t.Parallel()
	s := New(Deps{Vocab: mustVocab(t), Scorer: flat(0.5)})

	got, err := s.Analyze(context.Background(), domain.AnalyzeInput{
		Products: []string{"Handmade Soap", "handmade soap", "leather bag"},
		Texts:    []string{"this handmade soap smells lovely", "   "},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(got.Products) != 2 {
		t.Fatalf("products = %d, want 2 after dedupe", len(got.Products))
	}
	for _, p := range got.Products {
		if p.Posts != 1 || p.Comments != 0 {
			t.Fatalf("%s posts/comments = %d/%d, want 1/0", p.Product, p.Posts, p.Comments)
		}
		if len(p.Signals) != 1 || p.Signals[0].ID != "texts[0]" {
			t.Fatalf("%s signals = %+v", p.Product, p.Signals)
		}
		if p.Record.Product != p.Product {
			t.Fatalf("record product = %q, want %q", p.Record.Product, p.Product)
		}
	}

	// output follows the trend ranking
	for i := 1; i < len(got.Products); i++ {
		if got.Products[i-1].Record.CurrentScore < got.Products[i].Record.CurrentScore {
			t.Fatalf("products not ranked by score: %+v", got.Products)
		}
	}
}

func TestAnalyze_Entries(t *testing.T) {
	t.Parallel()
	s := New(Deps{Vocab: mustVocab(t), Scorer: flat(0.5)})

	got, err := s.Analyze(context.Background(), domain.AnalyzeInput{
		Products: []string{"handmade soap"},
		Entries: []domain.EntryInput{
			{Product: "handmade soap", Text: "lavender handmade soap bar", Kind: "post"},
			{Product: "handmade soap", Text: "agreed, the soap is great", Kind: "comment"},
		},
		TopN: 1,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(got.Products) != 1 {
		t.Fatalf("products = %d, want 1", len(got.Products))
	}
	p := got.Products[0]
	if p.Posts != 1 || p.Comments != 1 {
		t.Fatalf("posts/comments = %d/%d, want 1/1", p.Posts, p.Comments)
	}
	if len(p.Keywords) > 1 {
		t.Fatalf("keywords = %v, want at most top_n", p.Keywords)
	}
	if p.Signals[0].ID != "entries[0]" || p.Signals[1].ID != "entries[1]" {
		t.Fatalf("signal ids = %s, %s", p.Signals[0].ID, p.Signals[1].ID)
	}
	if p.Sentiment != 0.5 {
		t.Fatalf("sentiment = %v, want 0.5", p.Sentiment)
	}
}

func TestAnalyze_RequiresText(t *testing.T) {
	t.Parallel()
	s := New(Deps{Vocab: mustVocab(t), Scorer: flat(0)})

	_, err := s.Analyze(context.Background(), domain.AnalyzeInput{Products: []string{"handmade soap"}})
	var pe *perr.Error
	if !errors.As(err, &pe) || pe.Code() != perr.ErrorCodeInvalidArgument || pe.Field() != "texts" {
		t.Fatalf("Analyze err = %v, want InvalidArgument on texts", err)
	}
}
