package trend

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	perr "artisantrend/internal/platform/errors"
)

// RecordHeader is the column order of the predictions csv
var RecordHeader = []string{
	"product", "current_score", "predicted_score", "trend_direction", "change_percentage",
	"confidence", "avg_cost", "approx_income", "yearly_income", "post_count", "keyword_count",
	"sentiment",
}

func ftoa(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }

// CSV renders r in RecordHeader order
func (r Record) CSV() []string {
	return []string{
		r.Product, ftoa(r.CurrentScore), ftoa(r.PredictedScore), string(r.Direction),
		ftoa(r.ChangePercentage), ftoa(r.Confidence), ftoa(r.AvgCost), ftoa(r.ApproxIncome),
		ftoa(r.YearlyIncome), strconv.Itoa(r.PostCount), strconv.Itoa(r.KeywordCount), ftoa(r.Sentiment),
	}
}

// CSV renders b in BIHeader order
func (b BIRow) CSV() []string {
	return []string{
		b.Product, ftoa(b.CurrentScore), ftoa(b.PredictedScore), b.Trend, ftoa(b.ChangePercentage),
		strconv.Itoa(b.Confidence), ftoa(b.AverageCost), ftoa(b.EstimatedMonthlyIncome),
		ftoa(b.YearlyIncome), strconv.Itoa(b.PostCount), strconv.Itoa(b.KeywordCount),
		ftoa(b.Sentiment), ftoa(b.PotentialGrowth),
	}
}

// ReadRecords parses a predictions csv by header name; unknown columns are ignored
// and missing numeric cells read as 0
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "trend: csv header")
	}
	col := make(map[string]int, len(head))
	for i, h := range head {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["product"]; !ok {
		return nil, perr.Validationf("trend: csv has no product column")
	}

	var out []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "trend: csv line %d", line)
		}
		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		num := func(name string) (float64, error) {
			s := get(name)
			if s == "" {
				return 0, nil
			}
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, perr.WithField(perr.Validationf("trend: line %d: %s=%q is not a number", line, name, s), name)
			}
			return x, nil
		}

		var rec Record
		rec.Product = get("product")
		rec.Direction = Direction(get("trend_direction"))
		fields := []struct {
			name string
			dst  *float64
		}{
			{"current_score", &rec.CurrentScore},
			{"predicted_score", &rec.PredictedScore},
			{"change_percentage", &rec.ChangePercentage},
			{"confidence", &rec.Confidence},
			{"avg_cost", &rec.AvgCost},
			{"approx_income", &rec.ApproxIncome},
			{"yearly_income", &rec.YearlyIncome},
			{"sentiment", &rec.Sentiment},
		}
		for _, f := range fields {
			if *f.dst, err = num(f.name); err != nil {
				return nil, err
			}
		}
		var pc, kc float64
		if pc, err = num("post_count"); err != nil {
			return nil, err
		}
		if kc, err = num("keyword_count"); err != nil {
			return nil, err
		}
		rec.PostCount, rec.KeywordCount = int(pc), int(kc)
		out = append(out, rec)
	}
}
