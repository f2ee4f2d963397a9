package reddit

import (
	"context"
	"errors"
	"testing"
	"time"

	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/vocab"

	"github.com/redis/go-redis/v9"
)

const testVocab = `
version: 1
descriptive: [handmade, artisan]
product_keywords: [soap, bag]
catalog: [handmade soap, leather bag]
filter: {min_words: 10, max_generic: 2}
keywords: {per_entry: 5, boost_factor: 100}
fetch:
  generic: [nice, great, thanks]
  subreddits: [Crafts, Soapmaking]
  queries:
    - {query: handmade soap, product: handmade soap}
    - {query: artisan soap, product: handmade soap}
    - {query: leather bag, product: leather bag}
`

type fakeSource struct {
	posts    map[string][]Post
	comments map[string][]Comment
	failOn   string
	searches []string
}

func (f *fakeSource) Search(_ context.Context, _ []string, q string, _ int) ([]Post, error) {
	f.searches = append(f.searches, q)
	if q == f.failOn {
		return nil, errors.New("boom")
	}
	return f.posts[q], nil
}

func (f *fakeSource) Comments(_ context.Context, id string, _ int) ([]Comment, error) {
	return f.comments[id], nil
}

func testFetcher(t *testing.T, src Source, cache Cache) (*Fetcher, *[]time.Duration) {
	t.Helper()
	v, err := vocab.Parse([]byte(testVocab))
	if err != nil {
		t.Fatalf("vocab.Parse: %v", err)
	}
	f := NewFetcher(src, cache, v, DefaultFetchOptions())
	var waits []time.Duration
	f.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	f.now = func() time.Time { return time.Date(2025, 5, 6, 7, 0, 0, 0, time.UTC) }
	return f, &waits
}

func TestFetcher_Run(t *testing.T) {
	t.Parallel()

	dup := Post{ID: "p1", Title: "My handmade soap batch", Selftext: "came out great", CreatedUTC: 1700000000}
	src := &fakeSource{
		posts: map[string][]Post{
			"handmade soap": {
				dup,
				{ID: "short", Title: "soap"},
				{ID: "off", Title: "Completely unrelated post about cars and engines"},
			},
			"artisan soap": {dup, {ID: "p2", Title: "Artisan bars for gifts", Selftext: "lavender and oat"}},
		},
		comments: map[string][]Comment{
			"p1": {
				{Body: "Which oils did you use for this soap recipe?"},
				{Body: "great soap, thanks for sharing it here"},
				{Body: "ok"},
			},
		},
		failOn: "leather bag",
	}
	f, waits := testFetcher(t, src, nil)

	got, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	comment := CommentID("Which oils did you use for this soap recipe?")
	want := []string{"p1", comment, "p2"}
	if len(ids) != len(want) {
		t.Fatalf("Run() ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Run() ids = %v, want %v", ids, want)
		}
	}

	if got[0].Kind != entry.KindPost || got[0].CreatedAt != "2023-11-14" || got[0].Product != "handmade soap" {
		t.Fatalf("post entry = %+v", got[0])
	}
	if got[1].Kind != entry.KindComment || got[1].CreatedAt != "2025-05-06" {
		t.Fatalf("comment entry = %+v", got[1])
	}

	// two paced queries, then one error pause
	wantWaits := []time.Duration{2 * time.Second, 2 * time.Second, 5 * time.Second}
	if len(*waits) != 3 || (*waits)[0] != wantWaits[0] || (*waits)[2] != wantWaits[2] {
		t.Fatalf("waits = %v, want %v", *waits, wantWaits)
	}
}

func TestFetcher_DiskCacheHitSkipsSource(t *testing.T) {
	t.Parallel()

	cache := NewDiskCache(t.TempDir())
	seed := Batch{
		Posts:    []entry.Entry{entry.New("c1", "handmade soap", "cached handmade soap post", entry.KindPost, "2024-01-01")},
		Comments: []string{"cached comment about the soap"},
	}
	for _, q := range []string{"handmade soap", "artisan soap", "leather bag"} {
		if err := cache.Put(context.Background(), q, seed); err != nil {
			t.Fatalf("Put(%s): %v", q, err)
		}
	}

	src := &fakeSource{}
	f, waits := testFetcher(t, src, cache)
	got, err := f.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(src.searches) != 0 {
		t.Fatalf("source searched %v on full cache", src.searches)
	}
	if len(got) != 6 || len(*waits) != 0 {
		t.Fatalf("Run() = %d entries, %d waits", len(got), len(*waits))
	}
	if got[5].Product != "leather bag" || !got[5].IsComment() {
		t.Fatalf("last entry = %+v", got[5])
	}
}

func TestFetcher_CancelStops(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, _ := testFetcher(t, &fakeSource{}, nil)
	if _, err := f.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want canceled", err)
	}
}

func TestCommentID_Stable(t *testing.T) {
	t.Parallel()

	a, b := CommentID("same body"), CommentID("same body")
	if a != b || a[:8] != "comment_" {
		t.Fatalf("CommentID() = %q, %q", a, b)
	}
	if CommentID("other") == a {
		t.Fatalf("CommentID collision on different bodies")
	}
}

type fakeKV struct {
	data map[string]string
	ttl  time.Duration
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttl = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	t.Parallel()

	kv := &fakeKV{data: map[string]string{}}
	c := &RedisCache{rdb: kv, ttl: time.Hour, prefix: "artisantrend:fetch:"}

	if _, ok, err := c.Get(context.Background(), "handmade soap"); ok || err != nil {
		t.Fatalf("Get() on empty = %v, %v", ok, err)
	}
	b := Batch{Comments: []string{"x"}}
	if err := c.Put(context.Background(), "handmade soap", b); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok := kv.data["artisantrend:fetch:handmade soap"]; !ok || kv.ttl != time.Hour {
		t.Fatalf("stored keys = %v ttl %v", kv.data, kv.ttl)
	}
	got, ok, err := c.Get(context.Background(), "handmade soap")
	if err != nil || !ok || len(got.Comments) != 1 {
		t.Fatalf("Get() = %+v, %v, %v", got, ok, err)
	}
}
