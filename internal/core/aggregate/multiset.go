package aggregate

import "sort"

// Multiset counts keywords and remembers first-seen order
type Multiset struct {
	counts map[string]int
	order  []string
	size   int
}

// Add counts one occurrence of w
func (m *Multiset) Add(w string) {
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	if _, ok := m.counts[w]; !ok {
		m.order = append(m.order, w)
	}
	m.counts[w]++
	m.size++
}

// Count returns occurrences of w
func (m *Multiset) Count(w string) int { return m.counts[w] }

// Len returns total occurrences
func (m *Multiset) Len() int { return m.size }

// Distinct returns the number of different words
func (m *Multiset) Distinct() int { return len(m.order) }

// KeywordCount pairs a word with its occurrences
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Top returns the n most frequent words, ties by first-seen order
func (m *Multiset) Top(n int) []KeywordCount {
	if n <= 0 || len(m.order) == 0 {
		return nil
	}
	out := make([]KeywordCount, len(m.order))
	for i, w := range m.order {
		out[i] = KeywordCount{Word: w, Count: m.counts[w]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
