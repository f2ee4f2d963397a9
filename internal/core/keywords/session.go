package keywords

import "strings"

// Session tracks how many texts each product has contributed during one pass.
// It is not safe for concurrent use; each aggregation pass owns one.
type Session struct {
	x    *Extractor
	seen map[string]int
}

// Session starts a fresh run-scoped tracker
func (x *Extractor) Session() *Session {
	return &Session{x: x, seen: make(map[string]int)}
}

// Next extracts n keywords for text and counts it against product
func (s *Session) Next(text, product string, n int) []string {
	p := strings.ToLower(strings.TrimSpace(product))
	out := s.x.Extract(text, p, n, s.seen[p])
	s.seen[p]++
	return out
}

// Seen returns how many texts product has contributed so far
func (s *Session) Seen(product string) int {
	return s.seen[strings.ToLower(strings.TrimSpace(product))]
}
