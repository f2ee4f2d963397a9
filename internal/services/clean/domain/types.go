// Package domain holds the cleaning stage contracts
package domain

import (
	"context"

	"artisantrend/internal/core/entry"
)

// Result is the cleaned artifact; only the tagged fields are written
type Result struct {
	Entries          []entry.Entry      `json:"entries"`
	OverallRelevance float64            `json:"overall_relevance"`
	ProductRelevance map[string]float64 `json:"product_relevance"`

	Stats Stats `json:"-"`
}

// Stats counts what happened to the input
type Stats struct {
	Total      int
	Duplicates int
	OffCatalog int
	Empty      int
	Malformed  int
	Rejected   map[string]int // by filter reason
	Kept       int
}

// Cleaner is the stage surface the orchestrator calls
type Cleaner interface {
	Clean(entries []entry.Entry) Result
	Run(ctx context.Context, dataDir string) (string, Result, error)
}
