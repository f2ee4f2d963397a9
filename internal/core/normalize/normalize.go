// Package normalize prepares social text for the classifier, extractor and scorer
//
// Clean is the storage form kept by the cleaning stage
// 1 scrub control bytes and invalid UTF-8
// 2 drop links (http, https, www)
// 3 drop everything except word chars, whitespace and , . ! ? -
// 4 collapse whitespace runs to one space and trim
//
// Lower is the matching form used for substring rules
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var (
	linkRE  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	strayRE = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s\p{Z},.!?-]+`)
	wordRE  = regexp.MustCompile(`[\p{L}\p{N}\p{M}_]+`)
)

// pool of fold chains; a transformer carries state so each caller borrows one
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)), // zero-width joiners, BOM
			width.Fold,
		)
	},
}

// Clean returns the storage form of text, see the package comment
func Clean(text string) string {
	if text == "" {
		return ""
	}
	s := Sanitize(text)
	s = linkRE.ReplaceAllString(s, "")
	s = strayRE.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// CleanAny cleans v when it is a string and returns "" otherwise
func CleanAny(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return Clean(s)
}

// Lower folds case and compatibility forms so vocabulary lookups are plain substring checks
func Lower(text string) string {
	if text == "" {
		return ""
	}
	s := Sanitize(text)

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Words splits text into lowercased word tokens
func Words(text string) []string {
	toks := wordRE.FindAllString(Lower(text), -1)
	if len(toks) == 0 {
		return nil
	}
	return toks
}

// WordCount counts whitespace separated fields
func WordCount(text string) int { return len(strings.Fields(text)) }
