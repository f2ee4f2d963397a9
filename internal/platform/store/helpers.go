package store

import (
	"context"
	"fmt"

	perr "artisantrend/internal/platform/errors"
)

// ExecOne runs a write and fails unless exactly one row changed
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		return fmt.Errorf("expected 1 row affected, got %d", n)
	}
	return nil
}

// One maps exactly one row with scan; no rows yields perr.ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	items, err := Many(ctx, q, scan, sql, args...)
	if err != nil {
		return zero, err
	}
	switch len(items) {
	case 0:
		return zero, perr.ErrNotFound
	case 1:
		return items[0], nil
	default:
		return zero, fmt.Errorf("expected 1 row, got %d", len(items))
	}
}

// Many maps every row with scan
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
