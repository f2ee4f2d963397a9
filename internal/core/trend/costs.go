package trend

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"artisantrend/internal/core/vocab"
	perr "artisantrend/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Sales volume assumptions behind the income figures
const (
	UnitsPerMonth = 25.0
	MonthsPerYear = 12.0
)

// Costs maps product to unit cost; missing products cost 0
type Costs map[string]float64

// CostsFrom copies the vocabulary's default cost table
func CostsFrom(v *vocab.Vocab) Costs {
	c := make(Costs, len(v.Costs))
	for p, x := range v.Costs {
		c[p] = x
	}
	return c
}

// Unit returns the unit cost of product
func (c Costs) Unit(product string) float64 { return c[strings.ToLower(strings.TrimSpace(product))] }

// Monthly is unit cost times the monthly volume
func (c Costs) Monthly(product string) float64 { return c.Unit(product) * UnitsPerMonth }

// Yearly is twelve months of Monthly
func (c Costs) Yearly(product string) float64 { return c.Monthly(product) * MonthsPerYear }

// Merge returns c overlaid with over
func (c Costs) Merge(over Costs) Costs {
	out := make(Costs, len(c)+len(over))
	for p, x := range c {
		out[p] = x
	}
	for p, x := range over {
		out[p] = x
	}
	return out
}

// LoadCosts reads a cost table from a .yaml/.yml map or a .csv with product and
// avg_cost (or cost) columns
func LoadCosts(path string) (Costs, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "costs: %s", path)
		}
		return nil, perr.IOf(err, "costs: read %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseCostsYAML(b)
	case ".csv":
		return parseCostsCSV(bytes.NewReader(b))
	default:
		return nil, perr.InvalidArgf("costs: unsupported file type %q", filepath.Ext(path))
	}
}

func parseCostsYAML(b []byte) (Costs, error) {
	var m map[string]float64
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "costs: parse yaml")
	}
	out := make(Costs, len(m))
	for p, x := range m {
		if x < 0 {
			return nil, perr.Validationf("costs: negative cost for %q", p)
		}
		out[strings.ToLower(strings.TrimSpace(p))] = x
	}
	return out, nil
}

func parseCostsCSV(r io.Reader) (Costs, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	head, err := cr.Read()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "costs: csv header")
	}
	pi, ci := -1, -1
	for i, h := range head {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "product":
			pi = i
		case "avg_cost", "cost":
			ci = i
		}
	}
	if pi < 0 || ci < 0 {
		return nil, perr.Validationf("costs: csv needs product and avg_cost columns, got %v", head)
	}

	out := Costs{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "costs: csv line %d", line)
		}
		p := strings.ToLower(strings.TrimSpace(rec[pi]))
		if p == "" {
			continue
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[ci]), 64)
		if err != nil || x < 0 {
			return nil, perr.Validationf("costs: bad cost %q for %q on line %d", rec[ci], p, line)
		}
		out[p] = x
	}
	return out, nil
}
