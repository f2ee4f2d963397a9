package normalize

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"empty", "", ""},
		{"identity", "Lovely handmade soap", "Lovely handmade soap"},
		{"strip https link", "see https://example.com/shop?x=1 for more", "see for more"},
		{"strip www link", "go to www.etsy.com/listing now", "go to now"},
		{"keeps punctuation subset", "Wow, nice! Is it vegan? yes - really.", "Wow, nice! Is it vegan? yes - really."},
		{"drops emoji and symbols", "soap 🧼 smells #great @home", "soap smells great home"},
		{"collapse whitespace", "  a\t\tb\n\nc   d  ", "a b c d"},
		{"control bytes", "bee\x00swax\x7f candle", "beeswax candle"},
		{"unicode letters survive", "café terracotta", "café terracotta"},
		{"only junk", "### ***", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in); got != tc.out {
				t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	in := "Check https://x.y  this ⭐ Handwoven   shawl!!"
	once := Clean(in)
	if twice := Clean(once); twice != once {
		t.Fatalf("Clean(Clean(x)) = %q, want %q", twice, once)
	}
}

func TestCleanAny(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"a  b", "a b"},
		{42, ""},
		{nil, ""},
		{map[string]any{"x": 1}, ""},
	}
	for _, tc := range tests {
		if got := CleanAny(tc.in); got != tc.want {
			t.Fatalf("CleanAny(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLower(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"ascii", "Handmade SOAP", "handmade soap"},
		{"fullwidth", "ＳＯＡＰ", "soap"},
		{"zero width", "bee\u200Bswax", "beeswax"},
		{"ligature", "oﬃce", "office"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Lower(tc.in); got != tc.out {
				t.Fatalf("Lower(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestWords(t *testing.T) {
	got := Words("The Leather-bag's stitching, 100% hand_made!")
	want := []string{"the", "leather", "bag", "s", "stitching", "100", "hand_made"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words() = %v, want %v", got, want)
	}
	if got := Words("  ,,  "); got != nil {
		t.Fatalf("Words(punct) = %v, want nil", got)
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount(" one two\tthree\n"); got != 3 {
		t.Fatalf("WordCount() = %d, want 3", got)
	}
}
