// Package vocab loads the vocabulary tables shared by the classifier, the keyword
// extractor, the cleaning filter and the fetcher.
//
// The tables ship embedded as vocab.yaml. CORE_VOCAB_FILE points at a replacement
// file with the same shape. A loaded Vocab is read-only and safe to share.
package vocab

import (
	_ "embed"
	"os"
	"sort"
	"strings"
	"sync"

	"artisantrend/internal/platform/config/raw"
	perr "artisantrend/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

//go:embed vocab.yaml
var embedded []byte

// EnvFile names the override env var
const EnvFile = "CORE_VOCAB_FILE"

// Query is one search the fetcher runs on behalf of a product
type Query struct {
	Query   string `yaml:"query"`
	Product string `yaml:"product"`
}

// Filter holds the cleaning-stage reject lists
type Filter struct {
	Spam       []string `yaml:"spam"`
	Meta       []string `yaml:"meta"`
	Generic    []string `yaml:"generic"`
	MinWords   int      `yaml:"min_words"`
	MaxGeneric int      `yaml:"max_generic"`
}

// Keywords configures extraction
type Keywords struct {
	PerEntry    int                 `yaml:"per_entry"`
	BoostFactor float64             `yaml:"boost_factor"`
	Stopwords   []string            `yaml:"stopwords"`
	Irregular   map[string][]string `yaml:"irregular"`
	Boost       map[string][]string `yaml:"boost"`
}

// Fetch configures the social search
type Fetch struct {
	Generic    []string `yaml:"generic"`
	Subreddits []string `yaml:"subreddits"`
	Queries    []Query  `yaml:"queries"`
}

// Vocab is the compiled table set
type Vocab struct {
	Version         int                `yaml:"version"`
	Descriptive     []string           `yaml:"descriptive"`
	ProductKeywords []string           `yaml:"product_keywords"`
	Catalog         []string           `yaml:"catalog"`
	Filter          Filter             `yaml:"filter"`
	Keywords        Keywords           `yaml:"keywords"`
	Costs           map[string]float64 `yaml:"costs"`
	Fetch           Fetch              `yaml:"fetch"`

	source  string
	catalog map[string]int
	stop    map[string]struct{}
	boost   map[string]map[string]struct{}
}

var (
	defOnce sync.Once
	defVoc  *Vocab
	defErr  error
)

// Default returns the embedded tables, parsed once
func Default() (*Vocab, error) {
	defOnce.Do(func() {
		defVoc, defErr = Parse(embedded)
		if defVoc != nil {
			defVoc.source = "embedded"
		}
	})
	return defVoc, defErr
}

// Load returns the tables named by CORE_VOCAB_FILE, or the embedded ones when unset
func Load() (*Vocab, error) {
	if p := raw.New().Get(EnvFile, ""); p != "" {
		return LoadFile(p)
	}
	return Default()
}

// LoadFile reads and compiles a vocabulary file
func LoadFile(path string) (*Vocab, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "vocab: %s", path)
		}
		return nil, perr.IOf(err, "vocab: read %s", path)
	}
	v, err := Parse(b)
	if err != nil {
		return nil, perr.WithOp(err, path)
	}
	v.source = path
	return v, nil
}

// Embedded returns the raw embedded yaml
func Embedded() []byte { return append([]byte(nil), embedded...) }

// Parse decodes and compiles yaml tables
func Parse(b []byte) (*Vocab, error) {
	var v Vocab
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "vocab: parse yaml")
	}
	if err := v.compile(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (v *Vocab) compile() error {
	if v.Version != 1 {
		return perr.Validationf("vocab: unsupported version %d (want 1)", v.Version)
	}

	v.Descriptive = fold(v.Descriptive)
	v.ProductKeywords = fold(v.ProductKeywords)
	v.Catalog = fold(v.Catalog)
	v.Filter.Spam = fold(v.Filter.Spam)
	v.Filter.Meta = fold(v.Filter.Meta)
	v.Filter.Generic = fold(v.Filter.Generic)
	v.Fetch.Generic = fold(v.Fetch.Generic)

	switch {
	case len(v.Catalog) == 0:
		return perr.Validationf("vocab: catalog is empty")
	case len(v.Descriptive) == 0 || len(v.ProductKeywords) == 0:
		return perr.Validationf("vocab: descriptive and product_keywords are required")
	case v.Keywords.PerEntry <= 0:
		return perr.Validationf("vocab: keywords.per_entry must be positive, got %d", v.Keywords.PerEntry)
	case v.Keywords.BoostFactor <= 0:
		return perr.Validationf("vocab: keywords.boost_factor must be positive, got %v", v.Keywords.BoostFactor)
	case v.Filter.MinWords < 0 || v.Filter.MaxGeneric < 0:
		return perr.Validationf("vocab: filter thresholds must not be negative")
	}

	v.catalog = make(map[string]int, len(v.Catalog))
	for i, p := range v.Catalog {
		v.catalog[p] = i
	}

	v.stop = make(map[string]struct{}, len(v.Keywords.Stopwords))
	for _, w := range fold(v.Keywords.Stopwords) {
		v.stop[w] = struct{}{}
	}

	irr := make(map[string][]string, len(v.Keywords.Irregular))
	for k, vals := range v.Keywords.Irregular {
		irr[key(k)] = fold(vals)
	}
	v.Keywords.Irregular = irr

	v.boost = make(map[string]map[string]struct{}, len(v.Keywords.Boost))
	for p, words := range v.Keywords.Boost {
		p = key(p)
		if _, ok := v.catalog[p]; !ok {
			return perr.WithField(perr.Validationf("vocab: boost table for unknown product %q", p), "keywords.boost")
		}
		set := make(map[string]struct{}, len(words))
		for _, w := range fold(words) {
			set[w] = struct{}{}
		}
		v.boost[p] = set
	}

	costs := make(map[string]float64, len(v.Costs))
	for p, c := range v.Costs {
		if c < 0 {
			return perr.WithField(perr.Validationf("vocab: negative cost for %q", p), "costs")
		}
		costs[key(p)] = c
	}
	v.Costs = costs

	for i, q := range v.Fetch.Queries {
		q.Query = strings.TrimSpace(q.Query)
		q.Product = key(q.Product)
		if q.Query == "" {
			return perr.WithField(perr.Validationf("vocab: fetch query %d is empty", i), "fetch.queries")
		}
		if _, ok := v.catalog[q.Product]; !ok {
			return perr.WithField(perr.Validationf("vocab: fetch query %q targets unknown product %q", q.Query, q.Product), "fetch.queries")
		}
		v.Fetch.Queries[i] = q
	}
	return nil
}

// Source reports where the tables came from
func (v *Vocab) Source() string { return v.source }

// InCatalog reports whether product is a known catalog product
func (v *Vocab) InCatalog(product string) bool {
	_, ok := v.catalog[key(product)]
	return ok
}

// CatalogIndex returns the catalog position of product, or -1
func (v *Vocab) CatalogIndex(product string) int {
	if i, ok := v.catalog[key(product)]; ok {
		return i
	}
	return -1
}

// IsStopword reports whether w is in the generic stop list
func (v *Vocab) IsStopword(w string) bool {
	_, ok := v.stop[w]
	return ok
}

// Irregular returns the extra exclusions for a product word
func (v *Vocab) Irregular(word string) []string { return v.Keywords.Irregular[word] }

// Boosted reports whether tok is in product's expected vocabulary
func (v *Vocab) Boosted(product, tok string) bool {
	_, ok := v.boost[key(product)][tok]
	return ok
}

// BoostWords returns product's boost vocabulary sorted
func (v *Vocab) BoostWords(product string) []string {
	set := v.boost[key(product)]
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Cost returns the unit cost for product, 0 when unknown
func (v *Vocab) Cost(product string) float64 { return v.Costs[key(product)] }

// Marshal renders the effective tables as yaml
func (v *Vocab) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "vocab: marshal")
	}
	return b, nil
}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// fold lowercases, trims and dedupes while keeping first-seen order
func fold(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = key(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Stats counts table sizes for summaries
type Stats struct {
	Catalog         int `json:"catalog"`
	Descriptive     int `json:"descriptive"`
	ProductKeywords int `json:"product_keywords"`
	Stopwords       int `json:"stopwords"`
	BoostTables     int `json:"boost_tables"`
	Costs           int `json:"costs"`
	Queries         int `json:"queries"`
	Subreddits      int `json:"subreddits"`
}

// Stats returns table sizes
func (v *Vocab) Stats() Stats {
	return Stats{
		Catalog:         len(v.Catalog),
		Descriptive:     len(v.Descriptive),
		ProductKeywords: len(v.ProductKeywords),
		Stopwords:       len(v.stop),
		BoostTables:     len(v.boost),
		Costs:           len(v.Costs),
		Queries:         len(v.Fetch.Queries),
		Subreddits:      len(v.Fetch.Subreddits),
	}
}
