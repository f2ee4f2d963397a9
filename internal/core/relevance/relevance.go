// Package relevance decides whether a text talks about a product and whether it
// survives the cleaning filter.
//
// A text is relevant to a product when it contains any word of the product name,
// or when it contains both a descriptive term and a general product keyword.
// Product words and descriptive terms match as substrings. General product
// keywords match whole words only so that "art" does not fire inside "artisan".
package relevance

import (
	"strings"

	"artisantrend/internal/core/entry"
	"artisantrend/internal/core/normalize"
	"artisantrend/internal/core/vocab"
)

// Classifier applies the two-tier relevance rule
type Classifier struct {
	descriptive *matcher
	general     *matcher
}

// New compiles a classifier from the vocabulary tables
func New(v *vocab.Vocab) *Classifier {
	return &Classifier{
		descriptive: newMatcher(v.Descriptive, false),
		general:     newMatcher(v.ProductKeywords, true),
	}
}

// Match records which tier fired
type Match struct {
	ProductToken bool `json:"product_token"`
	Descriptive  bool `json:"descriptive"`
	General      bool `json:"general"`
}

// Relevant applies the rule to the recorded signals
func (m Match) Relevant() bool { return m.ProductToken || (m.Descriptive && m.General) }

// Explain returns the individual signals for text against product
func (c *Classifier) Explain(text, product string) Match {
	if text == "" {
		return Match{}
	}
	lt := normalize.Lower(text)
	return Match{
		ProductToken: hasProductToken(lt, product),
		Descriptive:  c.descriptive.Any(lt),
		General:      c.general.Any(lt),
	}
}

// IsRelevant reports whether text is relevant to product
func (c *Classifier) IsRelevant(text, product string) bool {
	if text == "" {
		return false
	}
	lt := normalize.Lower(text)
	if hasProductToken(lt, product) {
		return true
	}
	return c.descriptive.Any(lt) && c.general.Any(lt)
}

func hasProductToken(lowered, product string) bool {
	for _, tok := range strings.Fields(strings.ToLower(product)) {
		if strings.Contains(lowered, tok) {
			return true
		}
	}
	return false
}

// WellFormed reports whether an entry can take part in aggregation at all
func WellFormed(e entry.Entry) bool {
	return e.TextOK && e.Text != "" && strings.TrimSpace(e.Product) != "" && e.ID != ""
}
