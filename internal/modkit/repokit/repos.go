// Package repokit holds the seams repositories bind against so services never import a driver
package repokit

import (
	"context"

	"artisantrend/internal/platform/store"
)

type (
	// Queryer is the read and write surface SQL repos use
	Queryer = store.RowQuerier
	// TxRunner runs a function inside a transaction
	TxRunner = store.TxRunner
	// Rows is a result set
	Rows = store.Rows
	// Row is a single row result
	Row = store.Row
	// CommandTag reports a write outcome
	CommandTag = store.CommandTag
)

// WithTx runs fn inside a transaction and binds the repo to the tx
func WithTx[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(T) error) error {
	return tx.Tx(ctx, func(q Queryer) error { return fn(b.Bind(q)) })
}
