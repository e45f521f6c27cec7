package beetout

import (
	"testing"

	"beetbridge/internal/decision"
)

func TestExtractMusicBrainzID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain uuid", "release 11111111-2222-3333-4444-555555555555 matched", "11111111-2222-3333-4444-555555555555"},
		{"uppercase lowered", "Release 1B3C9E1E-6F1A-4D2B-8A3C-9F0E1D2C3B4A", "1b3c9e1e-6f1a-4d2b-8a3c-9f0e1d2c3b4a"},
		{"embedded in url", "https://musicbrainz.org/release/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"},
		{"no uuid", "nothing identifiable here", ""},
		{"truncated uuid", "11111111-2222-3333-4444", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractMusicBrainzID(tc.text); got != tc.want {
				t.Fatalf("ExtractMusicBrainzID(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtractDiscogsID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"release url", "see https://www.discogs.com/release/555", "r555"},
		{"master url", "https://discogs.com/master/421212", "m421212"},
		{"url with slug segment", "https://www.discogs.com/Foo-Bar-Greatest-Hits/release/987654", "r987654"},
		{"keyword qualified", "discogs lookup returned r1234567", "r1234567"},
		{"bare token", "candidate m7654321 considered", "m7654321"},
		{"url beats keyword", "discogs match r9999999 at https://www.discogs.com/release/555", "r555"},
		{"nothing", "no identifiers in this text", ""},
		{"short bare token ignored", "token r555 alone", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractDiscogsID(tc.text); got != tc.want {
				t.Fatalf("ExtractDiscogsID(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		source decision.Source
		id     string
		want   string
	}{
		{"musicbrainz", decision.SourceMusicBrainz, "11111111-2222-3333-4444-555555555555", "https://musicbrainz.org/release/11111111-2222-3333-4444-555555555555"},
		{"musicbrainz invalid id", decision.SourceMusicBrainz, "r555", ""},
		{"discogs release", decision.SourceDiscogs, "r555", "https://www.discogs.com/release/555"},
		{"discogs master", decision.SourceDiscogs, "m421212", "https://www.discogs.com/master/421212"},
		{"discogs malformed", decision.SourceDiscogs, "x555", ""},
		{"unknown source", decision.SourceUnknown, "r555", ""},
		{"empty id", decision.SourceDiscogs, "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildURL(tc.source, tc.id); got != tc.want {
				t.Fatalf("BuildURL(%q, %q) = %q, want %q", tc.source, tc.id, got, tc.want)
			}
		})
	}
}
