// Package trend turns per-product signals into a weighted trend score, a
// next-period prediction, a direction and a confidence.
//
//	social    = posts*5 + keywords*0.5 + sentiment*100
//	income    = monthly_income*0.1
//	current   = 0.7*social + 0.3*income
//	predicted = current * growth(direction)
package trend

import "math"

// Direction is the predicted movement
type Direction string

const (
	Rising    Direction = "Rising"
	Stable    Direction = "Stable"
	Declining Direction = "Declining"
)

// Score weights
const (
	PostWeight      = 5.0
	KeywordWeight   = 0.5
	SentimentWeight = 100.0
	IncomeWeight    = 0.1
	SocialShare     = 0.7
	IncomeShare     = 0.3
)

// Direction thresholds are strict: exactly 2000 or 500 is Stable
const (
	RisingAbove     = 2000.0
	DecliningBelow  = 500.0
	RisingGrowth    = 1.05
	DecliningGrowth = 0.95
)

// Confidence coefficients
const (
	ConfidenceFloor     = 60.0
	ConfidenceCeil      = 95.0
	PostsPerPoint       = 5.0  // one point per 5 posts
	PostPointsCap       = 10.0
	KeywordsPerPoint    = 50.0 // one point per 50 keywords
	KeywordPointsCap    = 5.0
	SentimentPoints     = 10.0 // full range -1..1 spans 10 points
	RelevancePointsSpan = 10.0 // 0..100 percent spans 10 points
)

// Input is what scoring needs for one product
type Input struct {
	Product      string
	PostCount    int
	KeywordCount int
	Sentiment    float64
	AvgCost      float64
	ApproxIncome float64 // monthly
	Relevance    float64 // percent, 0..100
}

// Record is one scored product; treat it as immutable
type Record struct {
	Product          string    `json:"product"`
	CurrentScore     float64   `json:"current_score"`
	PredictedScore   float64   `json:"predicted_score"`
	Direction        Direction `json:"trend_direction"`
	ChangePercentage float64   `json:"change_percentage"`
	Confidence       float64   `json:"confidence"`
	AvgCost          float64   `json:"avg_cost"`
	ApproxIncome     float64   `json:"approx_income"`
	YearlyIncome     float64   `json:"yearly_income"`
	PostCount        int       `json:"post_count"`
	KeywordCount     int       `json:"keyword_count"`
	Sentiment        float64   `json:"sentiment"`
	Relevance        float64   `json:"relevance"`
}

// Current is the weighted blend of social engagement and income potential
func Current(posts, keywords int, sentiment, approxIncome float64) float64 {
	social := float64(posts)*PostWeight + float64(keywords)*KeywordWeight + sentiment*SentimentWeight
	income := approxIncome * IncomeWeight
	return SocialShare*social + IncomeShare*income
}

// Classify returns the direction and growth factor for a current score
func Classify(current float64) (Direction, float64) {
	switch {
	case current > RisingAbove:
		return Rising, RisingGrowth
	case current < DecliningBelow:
		return Declining, DecliningGrowth
	default:
		return Stable, 1
	}
}

// Confidence estimates trust in the prediction, clamped to [60, 95]
func Confidence(posts, keywords int, sentiment, relevance float64) float64 {
	c := ConfidenceFloor +
		math.Min(float64(posts)/PostsPerPoint, PostPointsCap) +
		math.Min(float64(keywords)/KeywordsPerPoint, KeywordPointsCap) +
		(sentiment+1)/2*SentimentPoints +
		relevance/100*RelevancePointsSpan
	return math.Max(ConfidenceFloor, math.Min(ConfidenceCeil, c))
}

// Score builds the record for one product
func Score(in Input) Record {
	cur := Current(in.PostCount, in.KeywordCount, in.Sentiment, in.ApproxIncome)
	dir, growth := Classify(cur)
	pred := cur * growth

	var change float64
	if cur != 0 {
		change = (pred - cur) / cur * 100
	}

	return Record{
		Product:          in.Product,
		CurrentScore:     cur,
		PredictedScore:   pred,
		Direction:        dir,
		ChangePercentage: change,
		Confidence:       Confidence(in.PostCount, in.KeywordCount, in.Sentiment, in.Relevance),
		AvgCost:          in.AvgCost,
		ApproxIncome:     in.ApproxIncome,
		YearlyIncome:     in.ApproxIncome * MonthsPerYear,
		PostCount:        in.PostCount,
		KeywordCount:     in.KeywordCount,
		Sentiment:        in.Sentiment,
		Relevance:        in.Relevance,
	}
}
