// Package service prepares the BI dashboard csv from the newest predictions
package service

import (
	"context"
	"path/filepath"

	"artisantrend/internal/adapters/files"
	"artisantrend/internal/core/trend"
	"artisantrend/internal/platform/logger"
)

// Result reports what the export wrote
type Result struct {
	Source string
	Output string
	Rows   []trend.BIRow
}

// Service runs the export stage
type Service struct {
	minConfidence int
	log           *logger.Logger
}

// New uses trend.DefaultMinConfidence when minConfidence is negative
func New(minConfidence int, log *logger.Logger) *Service {
	if minConfidence < 0 {
		minConfidence = trend.DefaultMinConfidence
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{minConfidence: minConfidence, log: log}
}

// Run converts the lexicographically newest predictions csv into the BI csv
func (s *Service) Run(ctx context.Context, dataDir string) (Result, error) {
	src, err := files.Newest(filepath.Join(dataDir, files.PredictionsDir), files.PredictionsPrefix, ".csv", files.ByName)
	if err != nil {
		return Result{}, err
	}
	f, err := files.Open(src)
	if err != nil {
		return Result{}, err
	}
	recs, err := trend.ReadRecords(f)
	_ = f.Close()
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	rows := trend.ToBI(recs, s.minConfidence)
	out := filepath.Join(dataDir, files.PowerBIDir, files.PowerBILatest)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r.CSV()
	}
	if err := files.WriteCSV(out, trend.BIHeader, cells); err != nil {
		return Result{}, err
	}

	s.log.Info().
		Str("source", src).
		Str("output", out).
		Int("read", len(recs)).
		Int("kept", len(rows)).
		Int("min_confidence", s.minConfidence).
		Msg("bi export written")
	return Result{Source: src, Output: out, Rows: rows}, nil
}
