package relevance

import (
	"unicode"
	"unicode/utf8"
)

// matcher is a byte-level Aho-Corasick automaton answering "does text contain
// any of these phrases". Phrases and text are expected lowercased.
// Edges are kept sparse; vocabularies here are small and shallow.
// With whole set, a hit only counts when it sits between word boundaries.

type edge struct {
	b    byte
	next int32
}

type node struct {
	edges []edge
	fail  int32
	outs  []int // lengths of phrases ending here, fail chain included
}

type matcher struct {
	nodes []node
	whole bool
}

func newMatcher(phrases []string, whole bool) *matcher {
	m := &matcher{nodes: make([]node, 1), whole: whole}
	for _, p := range phrases {
		m.add(p)
	}
	m.build()
	return m
}

func (m *matcher) step(s int32, b byte) int32 {
	for _, e := range m.nodes[s].edges {
		if e.b == b {
			return e.next
		}
	}
	return -1
}

func (m *matcher) add(p string) {
	if p == "" {
		return
	}
	var s int32
	for i := 0; i < len(p); i++ {
		nxt := m.step(s, p[i])
		if nxt < 0 {
			nxt = int32(len(m.nodes))
			m.nodes = append(m.nodes, node{})
			m.nodes[s].edges = append(m.nodes[s].edges, edge{b: p[i], next: nxt})
		}
		s = nxt
	}
	m.nodes[s].outs = append(m.nodes[s].outs, len(p))
}

// build sets fail links breadth first and merges outputs down them
func (m *matcher) build() {
	q := make([]int32, 0, len(m.nodes))
	for _, e := range m.nodes[0].edges {
		q = append(q, e.next)
	}
	for i := 0; i < len(q); i++ {
		r := q[i]
		for _, e := range m.nodes[r].edges {
			q = append(q, e.next)
			f := m.nodes[r].fail
			for f != 0 && m.step(f, e.b) < 0 {
				f = m.nodes[f].fail
			}
			if nxt := m.step(f, e.b); nxt >= 0 && nxt != e.next {
				m.nodes[e.next].fail = nxt
			}
			fo := m.nodes[m.nodes[e.next].fail].outs
			m.nodes[e.next].outs = append(m.nodes[e.next].outs, fo...)
		}
	}
}

// Any reports whether text contains at least one phrase
func (m *matcher) Any(text string) bool {
	if len(m.nodes) == 1 {
		return false
	}
	var s int32
	for i := 0; i < len(text); i++ {
		b := text[i]
		for s != 0 && m.step(s, b) < 0 {
			s = m.nodes[s].fail
		}
		if nxt := m.step(s, b); nxt >= 0 {
			s = nxt
		}
		for _, n := range m.nodes[s].outs {
			if !m.whole || bounded(text, i+1-n, i+1) {
				return true
			}
		}
	}
	return false
}

// bounded reports whether text[start:end] has no word rune on either side
func bounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWord(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWord(r) {
			return false
		}
	}
	return true
}

func isWord(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}
