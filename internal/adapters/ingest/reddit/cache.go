package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"artisantrend/internal/core/entry"
	perr "artisantrend/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

// Batch is what one query produced: accepted posts and raw comment bodies
type Batch struct {
	Posts    []entry.Entry `json:"posts"`
	Comments []string      `json:"comments"`
}

// Cache stores one Batch per query
type Cache interface {
	Get(ctx context.Context, query string) (Batch, bool, error)
	Put(ctx context.Context, query string, b Batch) error
}

// NopCache never hits
type NopCache struct{}

// Get always misses
func (NopCache) Get(context.Context, string) (Batch, bool, error) { return Batch{}, false, nil }

// Put discards b
func (NopCache) Put(context.Context, string, Batch) error { return nil }

// DiskCache keeps one json file per query under dir
type DiskCache struct{ dir string }

// NewDiskCache creates dir on first write
func NewDiskCache(dir string) *DiskCache { return &DiskCache{dir: dir} }

func (c *DiskCache) path(query string) string {
	return filepath.Join(c.dir, strings.ReplaceAll(query, " ", "_")+".json")
}

// Get reads the batch for query; a missing file is a miss
func (c *DiskCache) Get(_ context.Context, query string) (Batch, bool, error) {
	b, err := os.ReadFile(c.path(query))
	if err != nil {
		if os.IsNotExist(err) {
			return Batch{}, false, nil
		}
		return Batch{}, false, perr.IOf(err, "reddit cache read %s", query)
	}
	var out Batch
	if err := json.Unmarshal(b, &out); err != nil {
		return Batch{}, false, perr.Wrapf(err, perr.ErrorCodeJSON, "reddit cache decode %s", query)
	}
	return out, true, nil
}

// Put writes the batch atomically
func (c *DiskCache) Put(_ context.Context, query string, b Batch) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return perr.IOf(err, "reddit cache mkdir")
	}
	data, err := json.Marshal(b)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "reddit cache encode %s", query)
	}
	p := c.path(query)
	tmp := p + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return perr.IOf(err, "reddit cache write %s", query)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return perr.IOf(err, "reddit cache rename %s", query)
	}
	return nil
}

// kv is the part of *redis.Client the cache calls
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisCache shares batches between fetch runs on different hosts
type RedisCache struct {
	rdb    kv
	ttl    time.Duration
	prefix string
}

// NewRedisCache keys batches as artisantrend:fetch:<query>
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl, prefix: "artisantrend:fetch:"}
}

// Get reads the batch for query; redis.Nil is a miss
func (c *RedisCache) Get(ctx context.Context, query string) (Batch, bool, error) {
	b, err := c.rdb.Get(ctx, c.prefix+query).Bytes()
	if errors.Is(err, redis.Nil) {
		return Batch{}, false, nil
	}
	if err != nil {
		return Batch{}, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "reddit cache get %s", query)
	}
	var out Batch
	if err := json.Unmarshal(b, &out); err != nil {
		return Batch{}, false, perr.Wrapf(err, perr.ErrorCodeJSON, "reddit cache decode %s", query)
	}
	return out, true, nil
}

// Put stores the batch with the configured ttl
func (c *RedisCache) Put(ctx context.Context, query string, b Batch) error {
	data, err := json.Marshal(b)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "reddit cache encode %s", query)
	}
	if err := c.rdb.Set(ctx, c.prefix+query, data, c.ttl).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "reddit cache set %s", query)
	}
	return nil
}
