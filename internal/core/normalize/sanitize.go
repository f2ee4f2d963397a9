package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops invalid UTF-8, NUL, C0 controls other than tab/newline/return, DEL and C1 controls
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	if clean(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if bad(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func clean(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if bad(r) {
			return false
		}
	}
	return true
}

func bad(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}
