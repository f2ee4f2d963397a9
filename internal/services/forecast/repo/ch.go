package repo

import (
	"context"
	_ "embed"
	"time"

	"artisantrend/internal/core/aggregate"
	"artisantrend/internal/core/trend"
	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/platform/store"
	"artisantrend/internal/services/forecast/domain"

	"github.com/google/uuid"
)

//go:embed schema/ch.sql
var chSchema string

// ClickHouse tables
const (
	SignalsTable = "trend_signals"
	HistoryTable = "trend_history"
)

// CH writes signals and record history to ClickHouse
type CH struct{ c store.Clickhouse }

var _ domain.History = (*CH)(nil)

// NewCH wraps a ClickHouse seam
func NewCH(c store.Clickhouse) *CH { return &CH{c: c} }

// EnsureSchema creates the history tables when missing
func (h *CH) EnsureSchema(ctx context.Context) error {
	for _, stmt := range statements(chSchema) {
		if err := h.c.Exec(ctx, stmt); err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "forecast: ch schema")
		}
	}
	return nil
}

// WriteSignals inserts one row per aggregated entry
func (h *CH) WriteSignals(ctx context.Context, runID uuid.UUID, at time.Time, sigs []aggregate.Signal) error {
	rows := make([][]any, 0, len(sigs))
	for _, s := range sigs {
		kws := s.Keywords
		if kws == nil {
			kws = []string{}
		}
		rows = append(rows, []any{
			runID, at.UTC(), s.EntryID, s.Product, string(s.Kind), s.Relevant, s.Sentiment, kws, s.CreatedAt,
		})
	}
	if err := h.c.Insert(ctx, SignalsTable, rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "forecast: write signals")
	}
	return nil
}

// WriteRecords appends the run's records to the history table
func (h *CH) WriteRecords(ctx context.Context, run domain.Run) error {
	rows := make([][]any, 0, len(run.Records))
	for _, r := range run.Records {
		rows = append(rows, []any{
			run.ID, run.CreatedAt.UTC(), r.Product, r.CurrentScore, r.PredictedScore, string(r.Direction),
			r.ChangePercentage, r.Confidence, uint32(r.PostCount), uint32(r.KeywordCount), r.Sentiment,
		})
	}
	if err := h.c.Insert(ctx, HistoryTable, rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "forecast: write history")
	}
	return nil
}

// Product returns a product's newest history points first
func (h *CH) Product(ctx context.Context, product string, limit int) ([]domain.HistoryPoint, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := h.c.Query(ctx, `
		SELECT toString(run_id), recorded_at, current_score, predicted_score, trend_direction, confidence
		FROM `+HistoryTable+`
		WHERE product = ?
		ORDER BY recorded_at DESC
		LIMIT ?`, product, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "forecast: history query")
	}
	defer rows.Close()

	out := []domain.HistoryPoint{}
	for rows.Next() {
		var p domain.HistoryPoint
		var dir string
		if err := rows.Scan(&p.RunID, &p.RecordedAt, &p.CurrentScore, &p.PredictedScore, &dir, &p.Confidence); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "forecast: history scan")
		}
		p.Direction = trend.Direction(dir)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "forecast: history rows")
	}
	return out, nil
}
