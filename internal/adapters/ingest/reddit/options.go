package reddit

import (
	"path/filepath"

	"artisantrend/internal/adapters/files"
	"artisantrend/internal/platform/config"
	"artisantrend/internal/platform/store"
)

// Cache backends
const (
	CacheDisk  = "disk"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is everything the fetch command reads from CORE_FETCH_*
type Config struct {
	Client  Options
	Fetch   FetchOptions
	Cache   string
	DataDir string
}

// FromConfig reads CORE_FETCH_* with defaults
func FromConfig(c config.Conf) Config {
	d := DefaultFetchOptions()
	return Config{
		Client: Options{
			BaseURL:    c.MayString("BASE_URL", baseURLDefault),
			UserAgent:  c.MayString("USER_AGENT", defaultUA),
			Timeout:    c.MayDuration("TIMEOUT", defaultTimeout),
			MaxRetries: c.MayInt("MAX_RETRIES", defaultMaxRetry),
			RetryBase:  c.MayDuration("RETRY_BASE", defaultRetryBase),
		},
		Fetch: FetchOptions{
			PostLimit:    c.MayInt("POST_LIMIT", d.PostLimit),
			CommentLimit: c.MayInt("COMMENT_LIMIT", d.CommentLimit),
			MinChars:     c.MayInt("MIN_CHARS", d.MinChars),
			QueryPause:   c.MayDuration("QUERY_PAUSE", d.QueryPause),
			ErrorPause:   c.MayDuration("ERROR_PAUSE", d.ErrorPause),
		},
		Cache:   c.MayEnum("CACHE", CacheDisk, CacheDisk, CacheRedis, CacheNone),
		DataDir: c.MayString("DATA_DIR", "data"),
	}
}

// CacheFor picks the backend; redis falls back to disk when the store has no client
func (c Config) CacheFor(st *store.Store, rds store.RedisConfig) Cache {
	switch c.Cache {
	case CacheNone:
		return NopCache{}
	case CacheRedis:
		if st != nil && st.Redis != nil {
			return NewRedisCache(st.Redis, rds.TTL)
		}
	}
	return NewDiskCache(filepath.Join(c.DataDir, files.CacheDir))
}
