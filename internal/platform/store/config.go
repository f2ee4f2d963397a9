package store

import (
	"time"

	"artisantrend/internal/platform/config"
)

// Config aggregates per-backend settings
type Config struct {
	AppName string

	PG   PGConfig
	CH   CHConfig
	NATS NATSConfig
	RDS  RedisConfig
}

// PGConfig configures Postgres
type PGConfig struct {
	Enabled        bool
	URL            string
	MaxConns       int32
	LogSQL         bool
	SlowQueryMs    int
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures ClickHouse
type CHConfig struct {
	Enabled bool
	URL     string
	Role    string // reported in client info
}

// NATSConfig configures the event bus connection
type NATSConfig struct {
	Enabled bool
	URL     string
	Subject string
}

// RedisConfig configures the fetch cache backend
type RedisConfig struct {
	Enabled bool
	URL     string
	TTL     time.Duration
}

// ConfigFromEnv reads SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_*, SERVICE_NATS_* and SERVICE_REDIS_*
func ConfigFromEnv(app string) Config {
	c := config.New()
	pg := c.Prefix("SERVICE_PGSQL_")
	ch := c.Prefix("SERVICE_CLICKHOUSE_")
	nc := c.Prefix("SERVICE_NATS_")
	rd := c.Prefix("SERVICE_REDIS_")
	return Config{
		AppName: app,
		PG: PGConfig{
			Enabled:        pg.MayBool("ENABLED", false),
			URL:            pg.MayString("DBURL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 250),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled: ch.MayBool("ENABLED", false),
			URL:     ch.MayString("DBURL", ""),
			Role:    app,
		},
		NATS: NATSConfig{
			Enabled: nc.MayBool("ENABLED", false),
			URL:     nc.MayString("URL", "nats://127.0.0.1:4222"),
			Subject: nc.MayString("SUBJECT", "artisan.trends"),
		},
		RDS: RedisConfig{
			Enabled: rd.MayBool("ENABLED", false),
			URL:     rd.MayString("URL", "redis://127.0.0.1:6379/0"),
			TTL:     rd.MayDuration("TTL", 24*time.Hour),
		},
	}
}
