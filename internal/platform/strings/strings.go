// Package strings holds small string helpers shared across packages
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Or returns def when s is blank
func Or(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}

// MustPrefix normalises a mount path to "/x/y" and panics on an empty path
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Dedupe returns the distinct values of in, preserving first-seen order
func Dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
