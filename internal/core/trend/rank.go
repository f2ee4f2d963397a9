package trend

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Rank drops records below minScore (when set) and orders the rest by
// predicted score descending, then product name ascending
func Rank(records []Record, minScore *float64) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if minScore != nil && r.CurrentScore < *minScore {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PredictedScore != out[j].PredictedScore {
			return out[i].PredictedScore > out[j].PredictedScore
		}
		return out[i].Product < out[j].Product
	})
	return out
}

// ScoreAll scores inputs in parallel; output order matches input order
func ScoreAll(ctx context.Context, inputs []Input) ([]Record, error) {
	out := make([]Record, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Score(inputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
