//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"artisantrend/internal/core/trend"
	"artisantrend/internal/modkit/repokit"
	"artisantrend/internal/platform/store"
	"artisantrend/internal/services/forecast/domain"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func openPG(t *testing.T) *store.Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "trends",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/trends?sslmode=disable", host, port.Port())

	st, err := store.Open(ctx, store.Config{
		AppName: "artisantrend-it",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2, ConnectRetries: 30, PingTimeout: 3 * time.Second},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func TestSnapshotsRoundTrip(t *testing.T) {
	st := openPG(t)
	ctx := context.Background()
	b := NewPG()

	if err := b.Bind(st.PG).EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	run := sampleRun()
	if err := repokit.WithTx(ctx, st.PG, b, func(s domain.Snapshots) error { return s.SaveRun(ctx, run) }); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	sum, recs, err := b.Bind(st.PG).Latest(ctx, domain.Filter{MinConfidence: 65})
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if sum.ID != run.ID.String() || sum.Rising != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(recs) != 2 || recs[0].Product != "handmade soap" || recs[1].Direction != trend.Stable {
		t.Fatalf("records = %+v", recs)
	}

	runs, err := b.Bind(st.PG).Runs(ctx, 5)
	if err != nil || len(runs) != 1 {
		t.Fatalf("Runs = %+v, %v", runs, err)
	}
}
