package trend

import (
	"testing"

	"artisantrend/internal/core/vocab"
	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/platform/testkit"
)

func TestCosts(t *testing.T) {
	c := Costs{"leather bag": 85}
	testkit.Near(t, "Unit", c.Unit(" Leather Bag "), 85, 0)
	testkit.Near(t, "Monthly", c.Monthly("leather bag"), 2125, 0)
	testkit.Near(t, "Yearly", c.Yearly("leather bag"), 25500, 0)
	testkit.Near(t, "missing", c.Monthly("unknown"), 0, 0)

	m := c.Merge(Costs{"vegan soap": 9, "leather bag": 90})
	if m.Unit("leather bag") != 90 || m.Unit("vegan soap") != 9 || c.Unit("leather bag") != 85 {
		t.Fatalf("Merge() = %v, base %v", m, c)
	}
}

func TestCostsFrom(t *testing.T) {
	v, err := vocab.Default()
	if err != nil {
		t.Fatal(err)
	}
	c := CostsFrom(v)
	if len(c) != len(v.Catalog) {
		t.Fatalf("len(CostsFrom) = %d, want %d", len(c), len(v.Catalog))
	}
	c["leather bag"] = 1
	if v.Cost("leather bag") == 1 {
		t.Fatalf("CostsFrom aliases vocab table")
	}
}

func TestLoadCosts(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		body string
		want Costs
		code perr.ErrorCode
		fail bool
	}{
		{
			name: "yaml", file: "costs.yaml",
			body: "Leather Bag: 80\nvegan soap: 7.5\n",
			want: Costs{"leather bag": 80, "vegan soap": 7.5},
		},
		{
			name: "csv avg_cost", file: "costs.csv",
			body: "product,avg_cost\nLeather Bag,80\n,3\nvegan soap, 7.5\n",
			want: Costs{"leather bag": 80, "vegan soap": 7.5},
		},
		{
			name: "csv cost column", file: "c2.csv",
			body: "cost,product\n12,handmade soap\n",
			want: Costs{"handmade soap": 12},
		},
		{name: "csv missing column", file: "c3.csv", body: "name,price\nx,1\n", fail: true, code: perr.ErrorCodeValidation},
		{name: "csv bad number", file: "c4.csv", body: "product,cost\nx,abc\n", fail: true, code: perr.ErrorCodeValidation},
		{name: "yaml negative", file: "neg.yml", body: "x: -1\n", fail: true, code: perr.ErrorCodeValidation},
		{name: "unsupported", file: "costs.txt", body: "x", fail: true, code: perr.ErrorCodeInvalidArgument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testkit.WriteFile(t, dir, tc.file, tc.body)
			got, err := LoadCosts(p)
			if tc.fail {
				if !perr.IsCode(err, tc.code) {
					t.Fatalf("LoadCosts() = %v, want code %v", err, tc.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCosts(): %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("LoadCosts() = %v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Fatalf("LoadCosts()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}

	if _, err := LoadCosts(dir + "/nope.csv"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("LoadCosts(missing) = %v, want not_found", err)
	}
}
