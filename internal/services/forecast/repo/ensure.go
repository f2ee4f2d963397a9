package repo

import (
	"context"

	"artisantrend/internal/modkit/repokit"
	"artisantrend/internal/platform/store"
)

// EnsureSchema creates the tables of whichever backends are enabled
func EnsureSchema(ctx context.Context, pg repokit.TxRunner, ch store.Clickhouse) error {
	if pg != nil {
		if err := NewPG().Bind(pg).EnsureSchema(ctx); err != nil {
			return err
		}
	}
	if ch != nil {
		if err := NewCH(ch).EnsureSchema(ctx); err != nil {
			return err
		}
	}
	return nil
}
