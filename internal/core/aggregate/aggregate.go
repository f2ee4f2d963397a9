// Package aggregate folds entries into per-product counts, sentiment and keywords.
//
// Traversal is fixed: catalog products in catalog order, then products outside
// the catalog in first-seen order; within a product, entries keep input order.
// Keyword tie-breaks depend on that order, so identical input gives identical output.
package aggregate

import (
	"strings"

	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/keywords"
	"artisantrend/internal/core/relevance"
	"artisantrend/internal/core/sentiment"
)

// DefaultKeywordsPerEntry is how many keywords each entry contributes
const DefaultKeywordsPerEntry = 5

// Scorer scores text polarity
type Scorer interface {
	Score(text string) float64
}

// ProductAggregate is the per-product tally
type ProductAggregate struct {
	Product          string
	Posts            int
	Comments         int
	RelevantPosts    int
	RelevantComments int
	Sentiments       []float64
	Keywords         Multiset
}

// Total counts every well-formed entry
func (a *ProductAggregate) Total() int { return a.Posts + a.Comments }

// Relevant counts relevant entries of both kinds
func (a *ProductAggregate) Relevant() int { return a.RelevantPosts + a.RelevantComments }

// RelevancePct is relevant over total as a percentage, 0 when empty
func (a *ProductAggregate) RelevancePct() float64 {
	if a.Total() == 0 {
		return 0
	}
	return float64(a.Relevant()) / float64(a.Total()) * 100
}

// MeanSentiment averages the sentiment sequence
func (a *ProductAggregate) MeanSentiment() float64 { return sentiment.Mean(a.Sentiments) }

// KeywordCount is the keyword multiset size
func (a *ProductAggregate) KeywordCount() int { return a.Keywords.Len() }

// TopKeywords returns the n most frequent keywords
func (a *ProductAggregate) TopKeywords(n int) []string {
	top := a.Keywords.Top(n)
	out := make([]string, len(top))
	for i, k := range top {
		out[i] = k.Word
	}
	return out
}

// Signal is what one entry contributed
type Signal struct {
	EntryID   string
	Product   string
	Kind      entry.Kind
	Relevant  bool
	Sentiment float64
	Keywords  []string
	CreatedAt string
}

// Result owns the aggregates of one pass
type Result struct {
	order   []string
	by      map[string]*ProductAggregate
	Signals []Signal
	Skipped int // malformed entries
}

// Products returns aggregates in traversal order
func (r *Result) Products() []*ProductAggregate {
	out := make([]*ProductAggregate, len(r.order))
	for i, p := range r.order {
		out[i] = r.by[p]
	}
	return out
}

// Get looks up one product
func (r *Result) Get(product string) (*ProductAggregate, bool) {
	a, ok := r.by[canon(product)]
	return a, ok
}

// Len returns the number of products
func (r *Result) Len() int { return len(r.order) }

// Aggregator runs one pass per call; it holds no state between calls
type Aggregator struct {
	cls      *relevance.Classifier
	ex       *keywords.Extractor
	sc       Scorer
	perEntry int
}

// Option tweaks an Aggregator
type Option func(*Aggregator)

// WithKeywordsPerEntry overrides DefaultKeywordsPerEntry
func WithKeywordsPerEntry(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.perEntry = n
		}
	}
}

// New wires the classifier, extractor and scorer
func New(cls *relevance.Classifier, ex *keywords.Extractor, sc Scorer, opts ...Option) *Aggregator {
	a := &Aggregator{cls: cls, ex: ex, sc: sc, perEntry: DefaultKeywordsPerEntry}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Aggregate folds entries; every catalog product is present in the result
func (a *Aggregator) Aggregate(entries []entry.Entry, catalog []string) *Result {
	r := &Result{by: make(map[string]*ProductAggregate, len(catalog))}
	for _, p := range catalog {
		r.ensure(canon(p))
	}

	groups := make(map[string][]int, len(catalog))
	var extra []string
	for i, e := range entries {
		if !relevance.WellFormed(e) {
			r.Skipped++
			continue
		}
		p := canon(e.Product)
		if _, known := r.by[p]; !known {
			if _, grouped := groups[p]; !grouped {
				extra = append(extra, p)
			}
		}
		groups[p] = append(groups[p], i)
	}
	for _, p := range extra {
		r.ensure(p)
	}

	sess := a.ex.Session()
	for _, p := range r.order {
		agg := r.by[p]
		for _, i := range groups[p] {
			r.Signals = append(r.Signals, a.fold(agg, sess, entries[i]))
		}
	}
	return r
}

func (a *Aggregator) fold(agg *ProductAggregate, sess *keywords.Session, e entry.Entry) Signal {
	comment := e.IsComment()
	if comment {
		agg.Comments++
	} else {
		agg.Posts++
	}

	rel := a.cls.IsRelevant(e.Text, agg.Product)
	if rel {
		if comment {
			agg.RelevantComments++
		} else {
			agg.RelevantPosts++
		}
	}

	kws := sess.Next(e.Text, agg.Product, a.perEntry)
	kept := make([]string, 0, len(kws))
	for _, k := range kws {
		if k == keywords.Placeholder {
			continue
		}
		agg.Keywords.Add(k)
		kept = append(kept, k)
	}

	s := a.sc.Score(e.Text)
	agg.Sentiments = append(agg.Sentiments, s)

	return Signal{
		EntryID:   e.ID,
		Product:   agg.Product,
		Kind:      e.Kind,
		Relevant:  rel,
		Sentiment: s,
		Keywords:  kept,
		CreatedAt: e.CreatedAt,
	}
}

func (r *Result) ensure(p string) {
	if _, ok := r.by[p]; ok {
		return
	}
	r.by[p] = &ProductAggregate{Product: p}
	r.order = append(r.order, p)
}

func canon(p string) string { return strings.ToLower(strings.TrimSpace(p)) }
