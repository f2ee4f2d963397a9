// Package repo persists trend runs to Postgres and their history to ClickHouse
package repo

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"artisantrend/internal/core/trend"
	"artisantrend/internal/modkit/repokit"
	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/platform/store"
	"artisantrend/internal/services/forecast/domain"
)

//go:embed schema/pg.sql
var pgSchema string

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs the Postgres snapshot binder
func NewPG() repokit.Binder[domain.Snapshots] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.Snapshots { return &pg{q: q} }

// EnsureSchema creates the run tables when missing
func (s *pg) EnsureSchema(ctx context.Context) error {
	for _, stmt := range statements(pgSchema) {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return perr.FromPG(err, "forecast: ensure schema")
		}
	}
	return nil
}

// SaveRun writes the run header and its ranked records; call it inside a tx
func (s *pg) SaveRun(ctx context.Context, run domain.Run) error {
	sum := run.Summary()
	if err := store.ExecOne(ctx, s.q, `
		INSERT INTO trend_runs (id, created_at, source, products, rising, stable, declining)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.CreatedAt, run.Source, sum.Products, sum.Rising, sum.Stable, sum.Declining,
	); err != nil {
		return perr.FromPG(err, "forecast: insert run")
	}
	if len(run.Records) == 0 {
		return nil
	}

	const cols = 15
	var sb strings.Builder
	sb.WriteString(`INSERT INTO trend_records
		(run_id, rank, product, current_score, predicted_score, trend_direction, change_percentage,
		confidence, avg_cost, approx_income, yearly_income, post_count, keyword_count, sentiment, relevance) VALUES `)

	args := make([]any, 0, len(run.Records)*cols)
	for i, r := range run.Records {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", i*cols+c+1)
		}
		sb.WriteByte(')')
		args = append(args,
			run.ID, i+1, r.Product, r.CurrentScore, r.PredictedScore, string(r.Direction), r.ChangePercentage,
			r.Confidence, r.AvgCost, r.ApproxIncome, r.YearlyIncome, r.PostCount, r.KeywordCount, r.Sentiment, r.Relevance,
		)
	}
	if _, err := s.q.Exec(ctx, sb.String(), args...); err != nil {
		return perr.FromPG(err, "forecast: insert records")
	}
	return nil
}

// Latest returns the newest run and its records narrowed by f
func (s *pg) Latest(ctx context.Context, f domain.Filter) (domain.RunSummary, []trend.Record, error) {
	sum, err := store.One(ctx, s.q, scanSummary, selectRuns+` ORDER BY created_at DESC LIMIT 1`)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.RunSummary{}, nil, perr.NotFoundf("no trend runs stored")
		}
		return domain.RunSummary{}, nil, perr.FromPG(err, "forecast: latest run")
	}

	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT product, current_score, predicted_score, trend_direction, change_percentage, confidence,
			avg_cost, approx_income, yearly_income, post_count, keyword_count, sentiment, relevance
		FROM trend_records
		WHERE run_id = ` + arg(sum.ID) + `::uuid
	`)
	if f.MinConfidence > 0 {
		sb.WriteString("  AND confidence >= " + arg(f.MinConfidence) + "\n")
	}
	if f.Direction != "" {
		sb.WriteString("  AND trend_direction = " + arg(string(f.Direction)) + "\n")
	}
	sb.WriteString("ORDER BY rank")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(f.Limit))
	}

	recs, err := store.Many(ctx, s.q, scanRecord, sb.String(), args...)
	if err != nil {
		return domain.RunSummary{}, nil, perr.FromPG(err, "forecast: latest records")
	}
	if recs == nil {
		recs = []trend.Record{}
	}
	return sum, recs, nil
}

// Runs lists the newest runs first
func (s *pg) Runs(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	out, err := store.Many(ctx, s.q, scanSummary, selectRuns+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, perr.FromPG(err, "forecast: list runs")
	}
	if out == nil {
		out = []domain.RunSummary{}
	}
	return out, nil
}

const selectRuns = `SELECT id::text, created_at, source, products, rising, stable, declining FROM trend_runs`

func scanSummary(r repokit.Row) (domain.RunSummary, error) {
	var s domain.RunSummary
	var at time.Time
	if err := r.Scan(&s.ID, &at, &s.Source, &s.Products, &s.Rising, &s.Stable, &s.Declining); err != nil {
		return s, err
	}
	s.CreatedAt = at.UTC()
	return s, nil
}

func scanRecord(r repokit.Row) (trend.Record, error) {
	var rec trend.Record
	var dir string
	err := r.Scan(&rec.Product, &rec.CurrentScore, &rec.PredictedScore, &dir, &rec.ChangePercentage,
		&rec.Confidence, &rec.AvgCost, &rec.ApproxIncome, &rec.YearlyIncome, &rec.PostCount,
		&rec.KeywordCount, &rec.Sentiment, &rec.Relevance)
	rec.Direction = trend.Direction(dir)
	return rec, err
}

// statements splits a schema file on semicolons, dropping blanks
func statements(sql string) []string {
	var out []string
	for _, s := range strings.Split(sql, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
