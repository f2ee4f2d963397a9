// Package domain holds the forecast stage contracts and its storage ports
package domain

import (
	"context"
	"strings"
	"time"

	"artisantrend/internal/core/aggregate"
	"artisantrend/internal/core/trend"

	"github.com/google/uuid"
)

// Run is one scored pipeline pass; Records are ranked
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Source    string
	Records   []trend.Record
}

// Summary counts a run's records per direction
func (r Run) Summary() RunSummary {
	s := RunSummary{ID: r.ID.String(), CreatedAt: r.CreatedAt, Source: r.Source, Products: len(r.Records)}
	for _, rec := range r.Records {
		switch rec.Direction {
		case trend.Rising:
			s.Rising++
		case trend.Declining:
			s.Declining++
		default:
			s.Stable++
		}
	}
	return s
}

// RunSummary is the stored header of a run
type RunSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source"`
	Products  int       `json:"products"`
	Rising    int       `json:"rising"`
	Stable    int       `json:"stable"`
	Declining int       `json:"declining"`
}

// Event is published once per record
type Event struct {
	EventID string       `json:"event_id"`
	RunID   string       `json:"run_id"`
	At      time.Time    `json:"at"`
	Record  trend.Record `json:"record"`
}

// Subject returns base.<direction> in lower case
func Subject(base string, d trend.Direction) string {
	return base + "." + strings.ToLower(string(d))
}

// Filter narrows the records of the latest run
type Filter struct {
	MinConfidence float64
	Direction     trend.Direction // empty means any
	Limit         int             // <= 0 means no limit
}

// HistoryPoint is one product's record in one past run
type HistoryPoint struct {
	RunID          string          `json:"run_id"`
	RecordedAt     time.Time       `json:"recorded_at"`
	CurrentScore   float64         `json:"current_score"`
	PredictedScore float64         `json:"predicted_score"`
	Direction      trend.Direction `json:"trend_direction"`
	Confidence     float64         `json:"confidence"`
}

// Snapshots stores runs and their ranked records
type Snapshots interface {
	EnsureSchema(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	Latest(ctx context.Context, f Filter) (RunSummary, []trend.Record, error)
	Runs(ctx context.Context, limit int) ([]RunSummary, error)
}

// History stores per-entry signals and per-run records for time series reads
type History interface {
	WriteSignals(ctx context.Context, runID uuid.UUID, at time.Time, sigs []aggregate.Signal) error
	WriteRecords(ctx context.Context, run Run) error
	Product(ctx context.Context, product string, limit int) ([]HistoryPoint, error)
}
