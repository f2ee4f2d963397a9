// Package keywords ranks the representative words of a product text.
//
// Tokens shorter than four runes, stop-words and the product's own name forms
// are dropped. Early in a run every surviving token counts; after ten texts for
// the same product a token must repeat. Tokens from the product's expected
// vocabulary are boosted before ranking.
package keywords

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"artisantrend/internal/core/normalize"
	"artisantrend/internal/core/vocab"
)

// Placeholder pads short results
const Placeholder = "N/A"

const (
	minRunes    = 4  // tokens of 3 runes or fewer are noise
	warmupTexts = 10 // below this many texts per product, single hits count
)

// Extractor is safe for concurrent use
type Extractor struct {
	v      *vocab.Vocab
	factor float64
	stops  sync.Map // product -> map[string]struct{}
}

// New builds an extractor over the vocabulary tables
func New(v *vocab.Vocab) *Extractor {
	return &Extractor{v: v, factor: v.Keywords.BoostFactor}
}

// BoostFactor returns the multiplier applied to expected-vocabulary tokens
func (x *Extractor) BoostFactor() float64 { return x.factor }

// Extract returns exactly n keywords for text, padding with Placeholder.
// seen is how many texts for product were processed earlier in the run.
func (x *Extractor) Extract(text, product string, n, seen int) []string {
	if n <= 0 {
		return []string{}
	}
	out := x.rank(text, product, seen)
	if len(out) > n {
		out = out[:n]
	}
	for len(out) < n {
		out = append(out, Placeholder)
	}
	return out
}

type cand struct {
	tok   string
	freq  int
	score float64
}

func (x *Extractor) rank(text, product string, seen int) []string {
	toks := normalize.Words(text)
	if len(toks) == 0 {
		return nil
	}
	product = strings.ToLower(strings.TrimSpace(product))
	stop := x.stopSet(product)

	idx := make(map[string]int, len(toks))
	var cs []cand
	for _, t := range toks {
		if utf8.RuneCountInString(t) < minRunes {
			continue
		}
		if _, ok := stop[t]; ok || x.v.IsStopword(t) {
			continue
		}
		if i, ok := idx[t]; ok {
			cs[i].freq++
			continue
		}
		idx[t] = len(cs)
		cs = append(cs, cand{tok: t, freq: 1})
	}

	minFreq := 1
	if seen >= warmupTexts {
		minFreq = 2
	}
	kept := cs[:0]
	for _, c := range cs {
		if c.freq < minFreq {
			continue
		}
		c.score = float64(c.freq)
		if x.v.Boosted(product, c.tok) {
			c.score *= x.factor
		}
		kept = append(kept, c)
	}

	// stable keeps first-encountered order among equal scores
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })

	out := make([]string, len(kept))
	for i, c := range kept {
		out[i] = c.tok
	}
	return out
}

// stopSet holds every name form of product; the generic list lives in vocab
func (x *Extractor) stopSet(product string) map[string]struct{} {
	if s, ok := x.stops.Load(product); ok {
		return s.(map[string]struct{})
	}
	set := make(map[string]struct{}, 16)
	for _, w := range strings.Fields(product) {
		for _, f := range Variants(w) {
			set[f] = struct{}{}
		}
		for _, irr := range x.v.Irregular(w) {
			for _, f := range Variants(irr) {
				set[f] = struct{}{}
			}
		}
	}
	s, _ := x.stops.LoadOrStore(product, set)
	return s.(map[string]struct{})
}

// Variants returns w with its naive plural or singular form
func Variants(w string) []string {
	if w == "" {
		return nil
	}
	out := []string{w, w + "s"}
	if strings.HasSuffix(w, "s") && len(w) > 1 {
		out = append(out, w[:len(w)-1])
	}
	return out
}
