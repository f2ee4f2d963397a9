// Package service dedupes, normalizes and filters raw entries
package service

import (
	"context"
	"path/filepath"
	"strings"

	"artisantrend/internal/adapters/files"
	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/normalize"
	"artisantrend/internal/core/relevance"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/platform/logger"
	ptime "artisantrend/internal/platform/time"
	"artisantrend/internal/services/clean/domain"
)

// Service implements domain.Cleaner
type Service struct {
	v      *vocab.Vocab
	policy *relevance.Policy
	log    *logger.Logger
}

var _ domain.Cleaner = (*Service)(nil)

// New compiles the filter policy from v
func New(v *vocab.Vocab, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{v: v, policy: relevance.NewPolicy(v), log: log}
}

// Clean keeps catalog entries that survive normalization and the filter policy.
// Relevance percentages are kept over deduped catalog entries, overall over all input.
func (s *Service) Clean(in []entry.Entry) domain.Result {
	res := domain.Result{
		Entries:          []entry.Entry{},
		ProductRelevance: map[string]float64{},
		Stats:            domain.Stats{Total: len(in), Rejected: map[string]int{}},
	}
	seen := make(map[string]struct{}, len(in))
	counts := map[string]int{}
	kept := map[string]int{}

	for _, e := range in {
		if _, dup := seen[e.ID]; dup {
			res.Stats.Duplicates++
			continue
		}
		seen[e.ID] = struct{}{}

		product := strings.ToLower(strings.TrimSpace(e.Product))
		if !s.v.InCatalog(product) {
			res.Stats.OffCatalog++
			continue
		}
		e.Product = product
		counts[product]++

		if e.TextOK {
			e.Text = normalize.Clean(e.Text)
		}
		if e.TextOK && e.Text == "" {
			res.Stats.Empty++
			continue
		}
		if !relevance.WellFormed(e) {
			res.Stats.Malformed++
			continue
		}
		if ok, why := s.policy.Check(e.Text); !ok {
			res.Stats.Rejected[why.String()]++
			continue
		}

		res.Entries = append(res.Entries, e)
		kept[product]++
	}

	res.Stats.Kept = len(res.Entries)
	if res.Stats.Total > 0 {
		res.OverallRelevance = float64(res.Stats.Kept) / float64(res.Stats.Total) * 100
	}
	for p, n := range counts {
		res.ProductRelevance[p] = float64(kept[p]) / float64(n) * 100
	}
	return res
}

// Run cleans the newest raw artifact under dataDir and writes the cleaned one
func (s *Service) Run(ctx context.Context, dataDir string) (string, domain.Result, error) {
	src, err := files.Newest(filepath.Join(dataDir, files.RawDir), files.RawPrefix, ".json", files.ByModTime)
	if err != nil {
		return "", domain.Result{}, err
	}
	f, err := files.Open(src)
	if err != nil {
		return "", domain.Result{}, err
	}
	raw, err := entry.Decode(f)
	_ = f.Close()
	if err != nil {
		return "", domain.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return "", domain.Result{}, err
	}

	res := s.Clean(raw)
	out := files.Stamped(filepath.Join(dataDir, files.CleanedDir), files.CleanedPrefix, ".json", ptime.Now())
	if err := files.WriteJSON(out, res); err != nil {
		return "", domain.Result{}, err
	}

	ev := s.log.Info().
		Str("source", src).
		Str("output", out).
		Int("total", res.Stats.Total).
		Int("kept", res.Stats.Kept).
		Int("duplicates", res.Stats.Duplicates).
		Int("off_catalog", res.Stats.OffCatalog).
		Float64("overall_relevance", res.OverallRelevance)
	for reason, n := range res.Stats.Rejected {
		ev = ev.Int("rejected_"+reason, n)
	}
	ev.Msg("cleaned")
	for _, p := range s.v.Catalog {
		if r, ok := res.ProductRelevance[p]; ok {
			s.log.Debug().Str("product", p).Float64("relevance", r).Msg("product relevance")
		}
	}
	return out, res, nil
}

// Load reads a cleaned artifact back
func Load(path string) (domain.Result, error) {
	var res domain.Result
	if err := files.ReadJSON(path, &res); err != nil {
		return domain.Result{}, err
	}
	if res.ProductRelevance == nil {
		res.ProductRelevance = map[string]float64{}
	}
	return res, nil
}

// Newest finds the newest cleaned artifact under dataDir
func Newest(dataDir string) (string, error) {
	return files.Newest(filepath.Join(dataDir, files.CleanedDir), files.CleanedPrefix, ".json", files.ByModTime)
}
