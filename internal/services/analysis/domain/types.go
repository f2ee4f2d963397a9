// Package domain holds the analysis stage contracts
package domain

import (
	"context"

	"artisantrend/internal/core/aggregate"
	"artisantrend/internal/core/entry"
)

// TopKeywords is how many keywords each product lists in the report
const TopKeywords = 10

// Overall counts entries matching the relevance rules across all products
type Overall struct {
	Total      int     `json:"total_posts"`
	Matching   int     `json:"entries_matching_relevance_criteria"`
	Percentage float64 `json:"percentage_matching"`
}

// ProductStats is one product's row
type ProductStats struct {
	Product             string   `json:"product"`
	Posts               int      `json:"posts"`
	Comments            int      `json:"comments"`
	Total               int      `json:"total"`
	Relevant            int      `json:"relevant"`
	RelevancePercentage float64  `json:"relevance_percentage"`
	Sentiment           float64  `json:"sentiment"`
	KeywordCount        int      `json:"keyword_count"`
	TopKeywords         []string `json:"top_keywords"`
}

// Totals sums the product rows
type Totals struct {
	Posts               int     `json:"total_posts"`
	Comments            int     `json:"total_comments"`
	Count               int     `json:"total_count"`
	Relevant            int     `json:"total_relevant"`
	RelevancePercentage float64 `json:"overall_relevance_percentage"`
}

// Report is the processed artifact
type Report struct {
	Source    string         `json:"file_analyzed"`
	Timestamp string         `json:"timestamp"`
	Overall   Overall        `json:"overall_stats"`
	Products  []ProductStats `json:"product_stats"`
	Totals    Totals         `json:"totals"`
	Skipped   int            `json:"skipped"`
}

// Analysis is a report plus the aggregates it was built from
type Analysis struct {
	Report    Report
	Aggregate *aggregate.Result
	// ProductRelevance carries the cleaning stage's per-product percentages
	ProductRelevance map[string]float64
}

// Analyzer is the stage surface the orchestrator calls
type Analyzer interface {
	Analyze(entries []entry.Entry) (Report, *aggregate.Result)
	Run(ctx context.Context, dataDir string) (string, Analysis, error)
}
