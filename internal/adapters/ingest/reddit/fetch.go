package reddit

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/relevance"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/platform/logger"
	ptime "artisantrend/internal/platform/time"
)

// Source is the search surface the fetcher drives; *Client satisfies it
type Source interface {
	Search(ctx context.Context, subreddits []string, query string, limit int) ([]Post, error)
	Comments(ctx context.Context, postID string, limit int) ([]Comment, error)
}

// FetchOptions tunes volume and pacing
type FetchOptions struct {
	PostLimit    int
	CommentLimit int
	MinChars     int
	QueryPause   time.Duration
	ErrorPause   time.Duration
}

// DefaultFetchOptions mirrors the public API etiquette the queries were tuned for
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		PostLimit:    300,
		CommentLimit: 100,
		MinChars:     20,
		QueryPause:   2 * time.Second,
		ErrorPause:   5 * time.Second,
	}
}

// Fetcher runs every configured query and collects entries
type Fetcher struct {
	src   Source
	cache Cache
	v     *vocab.Vocab
	cls   *relevance.Classifier
	opts  FetchOptions
	log   *logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewFetcher wires a source and cache to the vocabulary; a nil cache never hits
func NewFetcher(src Source, cache Cache, v *vocab.Vocab, opts FetchOptions) *Fetcher {
	if cache == nil {
		cache = NopCache{}
	}
	return &Fetcher{
		src:   src,
		cache: cache,
		v:     v,
		cls:   relevance.New(v),
		opts:  opts,
		log:   logger.Named("fetch"),
		now:   ptime.Now,
		sleep: sleepCtx,
	}
}

// CommentID derives a stable id from the comment body
func CommentID(body string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(body))
	return "comment_" + strconv.FormatUint(h.Sum64(), 10)
}

// Run fetches every query in order; query failures are logged and skipped,
// only cancellation stops the run
func (f *Fetcher) Run(ctx context.Context) ([]entry.Entry, error) {
	seen := make(map[string]struct{})
	var out []entry.Entry
	for _, q := range f.v.Fetch.Queries {
		b := f.query(ctx, q, seen)
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out = append(out, b.Posts...)
		day := f.now().UTC().Format(ptime.DayLayout)
		for _, body := range b.Comments {
			out = append(out, entry.New(CommentID(body), q.Product, body, entry.KindComment, day))
		}
		f.log.Info().
			Str("query", q.Query).
			Str("product", q.Product).
			Int("posts", len(b.Posts)).
			Int("comments", len(b.Comments)).
			Msg("query fetched")
	}
	return out, nil
}

func (f *Fetcher) query(ctx context.Context, q vocab.Query, seen map[string]struct{}) Batch {
	log := f.log.With().Str("query", q.Query).Logger()

	if b, ok, err := f.cache.Get(ctx, q.Query); err != nil {
		log.Warn().Err(err).Msg("cache read failed")
	} else if ok {
		for _, p := range b.Posts {
			seen[p.Text] = struct{}{}
		}
		log.Debug().Msg("cache hit")
		return b
	}

	posts, err := f.src.Search(ctx, f.v.Fetch.Subreddits, q.Query, f.opts.PostLimit)
	if err != nil {
		log.Error().Err(err).Msg("search failed")
		_ = f.sleep(ctx, f.opts.ErrorPause)
		return Batch{}
	}

	var b Batch
	for _, p := range posts {
		text := p.Text()
		if _, dup := seen[text]; dup || !f.prefilter(text, q.Product) {
			continue
		}
		seen[text] = struct{}{}
		b.Posts = append(b.Posts, entry.New(p.ID, q.Product, text, entry.KindPost, ptime.Day(p.CreatedUTC)))

		cms, err := f.src.Comments(ctx, p.ID, f.opts.CommentLimit)
		if err != nil {
			if ctx.Err() != nil {
				return b
			}
			log.Warn().Err(err).Str("post", p.ID).Msg("comments failed")
			continue
		}
		for _, c := range cms {
			if f.prefilter(c.Body, q.Product) && !f.generic(c.Body) {
				b.Comments = append(b.Comments, c.Body)
			}
		}
	}

	if err := f.cache.Put(ctx, q.Query, b); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}
	_ = f.sleep(ctx, f.opts.QueryPause)
	return b
}

// prefilter keeps long enough texts naming the product or a descriptive term
func (f *Fetcher) prefilter(text, product string) bool {
	if utf8.RuneCountInString(text) <= f.opts.MinChars {
		return false
	}
	m := f.cls.Explain(text, product)
	return m.ProductToken || m.Descriptive
}

// generic reports short praise comments
func (f *Fetcher) generic(text string) bool {
	lt := strings.ToLower(text)
	for _, w := range f.v.Fetch.Generic {
		if strings.Contains(lt, w) {
			return true
		}
	}
	return false
}
