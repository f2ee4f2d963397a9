package trend

import (
	"context"
	"testing"

	"artisantrend/internal/platform/testkit"
)

func TestScore_WorkedExample(t *testing.T) {
	r := Score(Input{
		Product:      "handmade soap",
		PostCount:    50,
		KeywordCount: 200,
		Sentiment:    0.3,
		AvgCost:      40,
		ApproxIncome: 1000,
		Relevance:    80,
	})
	// 0.7*(50*5 + 200*0.5 + 0.3*100) + 0.3*(1000*0.1) = 0.7*380 + 30
	testkit.Near(t, "CurrentScore", r.CurrentScore, 296, 1e-9)
	testkit.Near(t, "PredictedScore", r.PredictedScore, 281.2, 1e-9)
	testkit.Near(t, "ChangePercentage", r.ChangePercentage, -5, 1e-9)
	testkit.Near(t, "Confidence", r.Confidence, 88.5, 1e-9)
	testkit.Near(t, "YearlyIncome", r.YearlyIncome, 12000, 1e-9)
	if r.Direction != Declining {
		t.Fatalf("Direction = %v, want Declining", r.Direction)
	}
	if r.Product != "handmade soap" || r.AvgCost != 40 || r.PostCount != 50 {
		t.Fatalf("passthrough fields lost: %+v", r)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		current float64
		dir     Direction
		growth  float64
	}{
		{2000, Stable, 1},
		{500, Stable, 1},
		{2000.0001, Rising, 1.05},
		{499.9999, Declining, 0.95},
		{1200, Stable, 1},
		{0, Declining, 0.95},
		{-40, Declining, 0.95},
	}
	for _, tc := range tests {
		dir, growth := Classify(tc.current)
		if dir != tc.dir || growth != tc.growth {
			t.Fatalf("Classify(%v) = (%v, %v), want (%v, %v)", tc.current, dir, growth, tc.dir, tc.growth)
		}
	}
}

func TestScore_Rising(t *testing.T) {
	r := Score(Input{PostCount: 500, KeywordCount: 1000, Sentiment: 0.5, ApproxIncome: 3000})
	// 0.7*(2500+500+50) + 0.3*300 = 2225
	testkit.Near(t, "CurrentScore", r.CurrentScore, 2225, 1e-9)
	testkit.Near(t, "ChangePercentage", r.ChangePercentage, 5, 1e-9)
	if r.Direction != Rising {
		t.Fatalf("Direction = %v, want Rising", r.Direction)
	}
}

func TestScore_ZeroCurrent(t *testing.T) {
	r := Score(Input{})
	if r.CurrentScore != 0 || r.PredictedScore != 0 || r.ChangePercentage != 0 {
		t.Fatalf("Score(zero) = %+v, want zero scores and change", r)
	}
	testkit.Near(t, "Confidence", r.Confidence, 65, 1e-9)
}

func TestCurrent_MonotonicInPosts(t *testing.T) {
	prev := Current(0, 120, -0.4, 800)
	for p := 1; p <= 1000; p++ {
		cur := Current(p, 120, -0.4, 800)
		if cur < prev {
			t.Fatalf("Current(posts=%d) = %v < %v", p, cur, prev)
		}
		prev = cur
	}
}

func TestConfidence_Bounds(t *testing.T) {
	for _, posts := range []int{0, 1, 49, 50, 10000} {
		for _, kws := range []int{0, 10, 250, 1 << 20} {
			for _, s := range []float64{-1, -0.3, 0, 0.7, 1} {
				for _, rel := range []float64{0, 33.3, 100} {
					c := Confidence(posts, kws, s, rel)
					if c < ConfidenceFloor || c > ConfidenceCeil {
						t.Fatalf("Confidence(%d,%d,%v,%v) = %v, outside [60,95]", posts, kws, s, rel, c)
					}
				}
			}
		}
	}
	testkit.Near(t, "max", Confidence(10000, 1<<20, 1, 100), 95, 0)
	testkit.Near(t, "min", Confidence(0, 0, -1, 0), 60, 0)
}

func TestRank(t *testing.T) {
	recs := []Record{
		{Product: "b", CurrentScore: 100, PredictedScore: 95},
		{Product: "z", CurrentScore: 2100, PredictedScore: 2205},
		{Product: "a", CurrentScore: 100, PredictedScore: 95},
		{Product: "low", CurrentScore: 10, PredictedScore: 9.5},
	}
	got := Rank(recs, nil)
	want := []string{"z", "a", "b", "low"}
	for i, r := range got {
		if r.Product != want[i] {
			t.Fatalf("Rank()[%d] = %q, want %q", i, r.Product, want[i])
		}
	}
	if recs[0].Product != "b" {
		t.Fatalf("Rank mutated input")
	}

	floor := 50.0
	if got := Rank(recs, &floor); len(got) != 3 {
		t.Fatalf("len(Rank(min=50)) = %d, want 3", len(got))
	}
	floor = 100
	if got := Rank(recs, &floor); len(got) != 3 {
		t.Fatalf("min is inclusive: len = %d, want 3", len(got))
	}
}

func TestScoreAll(t *testing.T) {
	ins := make([]Input, 40)
	for i := range ins {
		ins[i] = Input{Product: string(rune('a' + i%26)), PostCount: i * 10, KeywordCount: i}
	}
	got, err := ScoreAll(context.Background(), ins)
	if err != nil {
		t.Fatalf("ScoreAll(): %v", err)
	}
	for i, r := range got {
		if want := Score(ins[i]); r != want {
			t.Fatalf("ScoreAll()[%d] = %+v, want %+v", i, r, want)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ScoreAll(ctx, ins); err == nil {
		t.Fatalf("ScoreAll(cancelled) error = nil")
	}

	empty, err := ScoreAll(context.Background(), nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("ScoreAll(nil) = %v, %v", empty, err)
	}
}
