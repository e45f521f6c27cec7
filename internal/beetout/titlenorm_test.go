package beetout

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"lowercase and trim", "  Foo Bar - Greatest Hits  ", "foo bar - greatest hits"},
		{"unicode dash folded", "Foo Bar – Greatest Hits", "foo bar - greatest hits"},
		{"curly quotes dropped", "Don’t Stop", "don t stop"},
		{"diacritics stripped", "Björk - Homogénic", "bjork - homogenic"},
		{"punctuation to space", "Greatest Hits, Vol. 2 (Deluxe)", "greatest hits vol 2 deluxe"},
		{"whitespace collapsed", "Foo\tBar   Baz", "foo bar baz"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTitle(tc.title); got != tc.want {
				t.Fatalf("NormalizeTitle(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	once := NormalizeTitle("Björk – “Homogénic”")
	twice := NormalizeTitle(once)
	if once != twice {
		t.Fatalf("NormalizeTitle not idempotent: first %q, second %q", once, twice)
	}
}
