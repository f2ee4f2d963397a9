package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeCH struct {
	pingErr error
	closed  bool
}

func (f *fakeCH) Exec(context.Context, string, ...any) error           { return nil }
func (f *fakeCH) Insert(context.Context, string, [][]any) error       { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeCH) Close() error                                        { f.closed = true; return nil }
func (f *fakeCH) Ping(context.Context) error                          { return f.pingErr }

func TestOpenNothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil || s.Redis != nil {
		t.Fatalf("expected no backends, got %+v", s)
	}
	if s.Log == nil {
		t.Fatalf("Log should default to a nop logger")
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenOptionError(t *testing.T) {
	bad := func(*Store) error { return errors.New("nope") }
	if _, err := Open(context.Background(), Config{}, bad); err == nil {
		t.Fatalf("expected option error")
	}
}

func TestGuardReportsBackend(t *testing.T) {
	ch := &fakeCH{pingErr: errors.New("down")}
	s := &Store{CH: ch}
	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "ch: down") {
		t.Fatalf("Guard = %v", err)
	}
	_ = s.Close(context.Background())
	if !ch.closed {
		t.Fatalf("Close did not close clickhouse")
	}
	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatalf("nil store Guard should fail")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_ENABLED", "true")
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://x")
	t.Setenv("SERVICE_REDIS_TTL", "1h")
	t.Setenv("SERVICE_NATS_SUBJECT", "crafts.trends")

	c := ConfigFromEnv("artisantrend-run")
	if !c.PG.Enabled || c.PG.URL != "postgres://x" || c.PG.MaxConns != 8 {
		t.Fatalf("PG = %+v", c.PG)
	}
	if c.RDS.Enabled || c.RDS.TTL.Hours() != 1 {
		t.Fatalf("RDS = %+v", c.RDS)
	}
	if c.NATS.Subject != "crafts.trends" || c.CH.Role != "artisantrend-run" {
		t.Fatalf("NATS/CH = %+v %+v", c.NATS, c.CH)
	}
}

func TestOpenPGBadURL(t *testing.T) {
	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "postgres://localhost:99999999/x"}})
	if err == nil {
		t.Fatalf("expected error for bad pg url")
	}
}
