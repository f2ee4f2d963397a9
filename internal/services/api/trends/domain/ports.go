// Package domain holds the trends API contracts
package domain

import (
	"context"

	fdomain "artisantrend/internal/services/forecast/domain"
)

// Service is what the HTTP layer calls
type Service interface {
	Latest(ctx context.Context, in QueryInput) (LatestResponse, error)
	Runs(ctx context.Context, limit int) ([]fdomain.RunSummary, error)
	History(ctx context.Context, product string, limit int) (HistoryResponse, error)
	Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeResponse, error)
}
