package relevance

import (
	"strings"

	"artisantrend/internal/core/normalize"
	"artisantrend/internal/core/vocab"
)

// Reason names the first filter check a text failed
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonSpam
	ReasonTooShort
	ReasonMeta
	ReasonGeneric
)

var reasonNames = [...]string{"none", "spam", "too_short", "meta", "generic"}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Policy is the cleaning-stage hard reject filter
type Policy struct {
	spam       *matcher
	meta       *matcher
	generic    []string
	minWords   int
	maxGeneric int
}

// NewPolicy compiles the filter lists
func NewPolicy(v *vocab.Vocab) *Policy {
	return &Policy{
		spam:       newMatcher(v.Filter.Spam, false),
		meta:       newMatcher(v.Filter.Meta, false),
		generic:    v.Filter.Generic,
		minWords:   v.Filter.MinWords,
		maxGeneric: v.Filter.MaxGeneric,
	}
}

// Check runs spam, length, meta and generic-praise checks in that order
func (p *Policy) Check(text string) (bool, Reason) {
	lt := normalize.Lower(text)
	if p.spam.Any(lt) {
		return false, ReasonSpam
	}
	if normalize.WordCount(lt) < p.minWords {
		return false, ReasonTooShort
	}
	if p.meta.Any(lt) {
		return false, ReasonMeta
	}
	if p.genericCount(lt) > p.maxGeneric {
		return false, ReasonGeneric
	}
	return true, ReasonNone
}

// Accept is the boolean form of Check
func (p *Policy) Accept(text string) bool {
	ok, _ := p.Check(text)
	return ok
}

// genericCount sums non-overlapping occurrences of every praise word
func (p *Policy) genericCount(lt string) int {
	n := 0
	for _, w := range p.generic {
		n += strings.Count(lt, w)
	}
	return n
}
