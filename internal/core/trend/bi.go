package trend

import (
	"math"
	"sort"
)

// DefaultMinConfidence drops low-trust rows from the BI export
const DefaultMinConfidence = 60

// BIRow is one dashboard row; column names follow the BI tool's schema
type BIRow struct {
	Product                string  `json:"Product"`
	CurrentScore           float64 `json:"CurrentScore"`
	PredictedScore         float64 `json:"PredictedScore"`
	Trend                  string  `json:"Trend"`
	ChangePercentage       float64 `json:"ChangePercentage"`
	Confidence             int     `json:"Confidence"`
	AverageCost            float64 `json:"AverageCost"`
	EstimatedMonthlyIncome float64 `json:"EstimatedMonthlyIncome"`
	YearlyIncome           float64 `json:"yearly_income"`
	PostCount              int     `json:"post_count"`
	KeywordCount           int     `json:"keyword_count"`
	Sentiment              float64 `json:"sentiment"`
	PotentialGrowth        float64 `json:"PotentialGrowth"`
}

// BIHeader is the column order of the BI csv
var BIHeader = []string{
	"Product", "CurrentScore", "PredictedScore", "Trend", "ChangePercentage", "Confidence",
	"AverageCost", "EstimatedMonthlyIncome", "yearly_income", "post_count", "keyword_count",
	"sentiment", "PotentialGrowth",
}

// ToBI rounds, filters by confidence, adds PotentialGrowth and sorts by predicted score
func ToBI(records []Record, minConfidence int) []BIRow {
	out := make([]BIRow, 0, len(records))
	for _, r := range records {
		row := BIRow{
			Product:                r.Product,
			CurrentScore:           Round2(r.CurrentScore),
			PredictedScore:         Round2(r.PredictedScore),
			Trend:                  string(r.Direction),
			ChangePercentage:       Round2(r.ChangePercentage),
			Confidence:             int(math.RoundToEven(r.Confidence)),
			AverageCost:            Round2(r.AvgCost),
			EstimatedMonthlyIncome: Round2(r.ApproxIncome),
			YearlyIncome:           r.YearlyIncome,
			PostCount:              r.PostCount,
			KeywordCount:           r.KeywordCount,
			Sentiment:              r.Sentiment,
		}
		if row.Confidence < minConfidence {
			continue
		}
		row.PotentialGrowth = Round2(row.PredictedScore * row.ChangePercentage / 100)
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PredictedScore > out[j].PredictedScore })
	return out
}

// Round2 rounds half to even at two decimals
func Round2(x float64) float64 { return math.RoundToEven(x*100) / 100 }
