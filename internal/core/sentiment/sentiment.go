// Package sentiment scores text polarity with VADER compound scores in [-1, 1]
package sentiment

import (
	"math"

	"github.com/jonreiter/govader"
)

// Scorer wraps a VADER analyzer; its lexicon is read-only after construction
type Scorer struct {
	an *govader.SentimentIntensityAnalyzer
}

// New loads the VADER lexicon
func New() *Scorer {
	return &Scorer{an: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text
func (s *Scorer) Score(text string) float64 {
	if text == "" {
		return 0
	}
	c := s.an.PolarityScores(text).Compound
	if math.IsNaN(c) {
		return 0
	}
	return math.Max(-1, math.Min(1, c))
}

// ScoreAny scores v when it is a string and returns 0 otherwise
func (s *Scorer) ScoreAny(v any) float64 {
	t, ok := v.(string)
	if !ok {
		return 0
	}
	return s.Score(t)
}

// Mean averages scores, 0 for none
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, x := range scores {
		sum += x
	}
	return sum / float64(len(scores))
}
