package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artisantrend/internal/core/vocab"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func call(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	r := chi.NewRouter()
	Register(r, d)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (%s)", err, env.Data)
		}
	}
	return rec.Code
}

func TestReady(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		pg, ch any
		want   string
		status map[string]string
	}{
		{"none configured", nil, nil, "ok", map[string]string{"pg": "skipped", "ch": "skipped"}},
		{"healthy", pinger{}, pinger{}, "ok", map[string]string{"pg": "ok", "ch": "ok"}},
		{"ch down", pinger{}, pinger{errors.New("refused")}, "fail", map[string]string{"pg": "ok", "ch": "fail"}},
		{"not pingable", struct{}{}, nil, "ok", map[string]string{"pg": "unknown", "ch": "skipped"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got ReadyResponse
			if code := call(t, Deps{PG: tc.pg, CH: tc.ch}, "/ready", &got); code != http.StatusOK {
				t.Fatalf("GET /ready = %d", code)
			}
			if got.Status != tc.want {
				t.Fatalf("status = %q, want %q", got.Status, tc.want)
			}
			for _, c := range got.Checks {
				if tc.status[c.Name] != c.Status {
					t.Fatalf("%s = %q, want %q", c.Name, c.Status, tc.status[c.Name])
				}
			}
		})
	}
}

func TestServiceAndVersion(t *testing.T) {
	t.Parallel()
	d := Deps{ServiceName: "artisantrend-api", StartedAt: time.Now().Add(-time.Minute)}

	var svc ServiceResponse
	call(t, d, "/service", &svc)
	if svc.Name != "artisantrend-api" || svc.Uptime < 59 {
		t.Fatalf("service = %+v", svc)
	}

	var ver map[string]any
	call(t, d, "/version", &ver)
	if ver["service"] != "artisantrend-api" {
		t.Fatalf("version = %v", ver)
	}
}

func TestVocab(t *testing.T) {
	t.Parallel()
	var none VocabResponse
	call(t, Deps{}, "/vocab", &none)
	if none.Source != "none" {
		t.Fatalf("nil vocab source = %q, want none", none.Source)
	}

	v, err := vocab.Default()
	if err != nil {
		t.Fatalf("vocab.Default: %v", err)
	}
	var got VocabResponse
	call(t, Deps{Vocab: v}, "/vocab", &got)
	if got.Source != "embedded" || got.Stats.Catalog != len(v.Catalog) {
		t.Fatalf("vocab = %+v", got)
	}
}
