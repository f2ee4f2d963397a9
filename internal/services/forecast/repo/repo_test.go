package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"artisantrend/internal/core/aggregate"
	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/trend"
	"artisantrend/internal/modkit/repokit"
	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/platform/store"
	"artisantrend/internal/services/forecast/domain"

	"github.com/google/uuid"
)

type call struct {
	sql  string
	args []any
}

type tag int64

func (t tag) String() string      { return fmt.Sprintf("INSERT 0 %d", int64(t)) }
func (t tag) RowsAffected() int64 { return int64(t) }

type fakeQ struct {
	execs   []call
	queries []call
	results [][][]any
	execErr error
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (repokit.CommandTag, error) {
	f.execs = append(f.execs, call{sql, args})
	return tag(1), f.execErr
}

func (f *fakeQ) Query(_ context.Context, sql string, args ...any) (repokit.Rows, error) {
	f.queries = append(f.queries, call{sql, args})
	if len(f.results) == 0 {
		return &fakeRows{}, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return &fakeRows{data: r}, nil
}

func (f *fakeQ) QueryRow(context.Context, string, ...any) repokit.Row { panic("not used") }

type fakeRows struct {
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool        { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

func (r *fakeRows) Scan(dst ...any) error {
	row := r.data[r.i-1]
	if len(row) != len(dst) {
		return fmt.Errorf("scan: %d values into %d targets", len(row), len(dst))
	}
	for i, d := range dst {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		case *float64:
			*p = row[i].(float64)
		case *time.Time:
			*p = row[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported %T", d)
		}
	}
	return nil
}

func sampleRun() domain.Run {
	return domain.Run{
		ID:        uuid.MustParse("7b0c61a4-5b0e-4a59-9d55-0e9fbb3a1e01"),
		CreatedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		Source:    "data/cleaned/cleaned_social_data_20250501_120000.json",
		Records: []trend.Record{
			{Product: "handmade soap", CurrentScore: 2100, PredictedScore: 2205, Direction: trend.Rising, Confidence: 80},
			{Product: "leather bag", CurrentScore: 900, PredictedScore: 900, Direction: trend.Stable, Confidence: 70},
			{Product: "vegan soap", CurrentScore: 120, PredictedScore: 114, Direction: trend.Declining, Confidence: 62},
		},
	}
}

func TestSaveRun(t *testing.T) {
	t.Parallel()
	q := &fakeQ{}
	s := NewPG().Bind(q)

	if err := s.SaveRun(context.Background(), sampleRun()); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if len(q.execs) != 2 {
		t.Fatalf("SaveRun() ran %d statements, want 2", len(q.execs))
	}
	head := q.execs[0]
	if !strings.Contains(head.sql, "INSERT INTO trend_runs") {
		t.Fatalf("first statement = %s", head.sql)
	}
	// products, rising, stable, declining
	if head.args[3] != 3 || head.args[4] != 1 || head.args[5] != 1 || head.args[6] != 1 {
		t.Fatalf("run args = %v", head.args)
	}

	recs := q.execs[1]
	if !strings.Contains(recs.sql, "INSERT INTO trend_records") || !strings.Contains(recs.sql, "$45)") {
		t.Fatalf("records statement = %s", recs.sql)
	}
	if len(recs.args) != 45 {
		t.Fatalf("records args = %d, want 45", len(recs.args))
	}
	// rank is 1-based and follows input order
	if recs.args[1] != 1 || recs.args[16] != 2 || recs.args[17] != "leather bag" {
		t.Fatalf("record args = %v", recs.args[:18])
	}
}

func TestSaveRun_NoRecords(t *testing.T) {
	t.Parallel()
	q := &fakeQ{}
	run := sampleRun()
	run.Records = nil

	if err := NewPG().Bind(q).SaveRun(context.Background(), run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if len(q.execs) != 1 {
		t.Fatalf("SaveRun() ran %d statements, want 1", len(q.execs))
	}
}

func TestSaveRun_MapsDBErrors(t *testing.T) {
	t.Parallel()
	q := &fakeQ{execErr: errors.New("connection reset")}

	err := NewPG().Bind(q).SaveRun(context.Background(), sampleRun())
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("SaveRun() error = %v, want db code", err)
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	q := &fakeQ{results: [][][]any{
		{{"run-1", at, "src.json", 2, 1, 1, 0}},
		{{"handmade soap", 2100.0, 2205.0, "Rising", 5.0, 80.0, 12.0, 300.0, 3600.0, 400, 90, 0.4, 75.0}},
	}}

	sum, recs, err := NewPG().Bind(q).Latest(context.Background(), domain.Filter{
		MinConfidence: 70, Direction: trend.Rising, Limit: 5,
	})
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if sum.ID != "run-1" || sum.Products != 2 || !sum.CreatedAt.Equal(at) {
		t.Fatalf("summary = %+v", sum)
	}
	if len(recs) != 1 || recs[0].Direction != trend.Rising || recs[0].PostCount != 400 || recs[0].Relevance != 75 {
		t.Fatalf("records = %+v", recs)
	}

	sql := q.queries[1].sql
	for _, want := range []string{"run_id = $1::uuid", "confidence >= $2", "trend_direction = $3", "ORDER BY rank LIMIT $4"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("records query missing %q:\n%s", want, sql)
		}
	}
	if got := q.queries[1].args; len(got) != 4 || got[0] != "run-1" || got[2] != "Rising" || got[3] != 5 {
		t.Fatalf("records args = %v", got)
	}
}

func TestLatest_NoFilter(t *testing.T) {
	t.Parallel()
	q := &fakeQ{results: [][][]any{
		{{"run-1", time.Now(), "", 0, 0, 0, 0}},
		{},
	}}

	_, recs, err := NewPG().Bind(q).Latest(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("records = %#v, want empty slice", recs)
	}
	if sql := q.queries[1].sql; strings.Contains(sql, "confidence >=") || strings.Contains(sql, "LIMIT") {
		t.Fatalf("unexpected filters in:\n%s", sql)
	}
}

func TestLatest_NoRuns(t *testing.T) {
	t.Parallel()

	_, _, err := NewPG().Bind(&fakeQ{}).Latest(context.Background(), domain.Filter{})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Latest() error = %v, want not found", err)
	}
}

func TestRuns_DefaultLimit(t *testing.T) {
	t.Parallel()
	q := &fakeQ{}

	out, err := NewPG().Bind(q).Runs(context.Background(), 0)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("Runs() = %#v, want empty slice", out)
	}
	if q.queries[0].args[0] != 20 {
		t.Fatalf("Runs() limit = %v, want 20", q.queries[0].args[0])
	}
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()
	q := &fakeQ{}

	if err := NewPG().Bind(q).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if len(q.execs) != 4 {
		t.Fatalf("EnsureSchema() ran %d statements, want 4", len(q.execs))
	}
	for _, c := range q.execs {
		if strings.HasSuffix(c.sql, ";") || c.sql == "" {
			t.Fatalf("bad statement %q", c.sql)
		}
	}
}

type fakeCH struct {
	execs   []string
	inserts map[string][][]any
	rows    [][]any
	err     error
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return f.err
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	if f.inserts == nil {
		f.inserts = map[string][][]any{}
	}
	f.inserts[table] = append(f.inserts[table], rows...)
	return f.err
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRows{data: f.rows}, nil
}

func (f *fakeCH) Close() error { return nil }

func TestCH_Writes(t *testing.T) {
	t.Parallel()
	c := &fakeCH{}
	h := NewCH(c)
	run := sampleRun()

	sigs := []aggregate.Signal{
		{EntryID: "p1", Product: "handmade soap", Kind: entry.KindPost, Relevant: true, Sentiment: 0.5, Keywords: []string{"lavender"}},
		{EntryID: "c1", Product: "handmade soap", Kind: entry.KindComment},
	}
	if err := h.WriteSignals(context.Background(), run.ID, run.CreatedAt, sigs); err != nil {
		t.Fatalf("WriteSignals() error = %v", err)
	}
	if err := h.WriteRecords(context.Background(), run); err != nil {
		t.Fatalf("WriteRecords() error = %v", err)
	}

	got := c.inserts[SignalsTable]
	if len(got) != 2 || got[0][2] != "p1" || got[0][4] != "post" || got[0][5] != true {
		t.Fatalf("signals = %v", got)
	}
	if kws, ok := got[1][7].([]string); !ok || kws == nil {
		t.Fatalf("nil keywords should be an empty array, got %#v", got[1][7])
	}
	if hist := c.inserts[HistoryTable]; len(hist) != 3 || hist[2][2] != "vegan soap" || hist[2][5] != "Declining" {
		t.Fatalf("history = %v", hist)
	}
}

func TestCH_EnsureSchemaAndErrors(t *testing.T) {
	t.Parallel()
	c := &fakeCH{}
	if err := NewCH(c).EnsureSchema(context.Background()); err != nil || len(c.execs) != 2 {
		t.Fatalf("EnsureSchema() = %v, %d statements", err, len(c.execs))
	}

	bad := NewCH(&fakeCH{err: errors.New("down")})
	if err := bad.WriteRecords(context.Background(), sampleRun()); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("WriteRecords() error = %v, want db code", err)
	}
	if _, err := bad.Product(context.Background(), "x", 0); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("Product() error = %v, want db code", err)
	}
}

func TestCH_Product(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	c := &fakeCH{rows: [][]any{{"run-1", at, 100.0, 95.0, "Declining", 61.0}}}

	pts, err := NewCH(c).Product(context.Background(), "vegan soap", 10)
	if err != nil {
		t.Fatalf("Product() error = %v", err)
	}
	if len(pts) != 1 || pts[0].Direction != trend.Declining || !pts[0].RecordedAt.Equal(at) {
		t.Fatalf("Product() = %+v", pts)
	}
}

type fakeTx struct{ *fakeQ }

func (f fakeTx) Tx(_ context.Context, fn func(repokit.Queryer) error) error { return fn(f.fakeQ) }

func TestEnsureSchema_Backends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	if err := EnsureSchema(ctx, nil, nil); err != nil {
		t.Fatalf("EnsureSchema(nil, nil) = %v", err)
	}

	q, c := &fakeQ{}, &fakeCH{}
	if err := EnsureSchema(ctx, fakeTx{q}, c); err != nil {
		t.Fatalf("EnsureSchema() = %v", err)
	}
	if len(q.execs) != 4 || len(c.execs) != 2 {
		t.Fatalf("ran %d pg and %d ch statements, want 4 and 2", len(q.execs), len(c.execs))
	}

	// a failing pg stops before ch
	c = &fakeCH{}
	err := EnsureSchema(ctx, fakeTx{&fakeQ{execErr: errors.New("boom")}}, c)
	if err == nil || len(c.execs) != 0 {
		t.Fatalf("EnsureSchema() = %v with %d ch statements", err, len(c.execs))
	}
}
