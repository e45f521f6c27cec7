package decision

import "testing"

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		value string
		want  Outcome
	}{
		{"success", OutcomeSuccess},
		{"SINGLE_MATCH", OutcomeSingleMatch},
		{"  has_candidates ", OutcomeHasCandidates},
		{"no_match", OutcomeNoMatch},
		{"low_similarity", OutcomeLowSimilarity},
		{"needs_input", OutcomeNeedsInput},
		{"bogus", OutcomeNeedsInput},
		{"", OutcomeNeedsInput},
	}
	for _, tc := range tests {
		if got := ParseOutcome(tc.value); got != tc.want {
			t.Fatalf("ParseOutcome(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		value string
		want  Source
	}{
		{"MusicBrainz", SourceMusicBrainz},
		{" discogs ", SourceDiscogs},
		{"spotify", SourceUnknown},
		{"", SourceUnknown},
	}
	for _, tc := range tests {
		if got := ParseSource(tc.value); got != tc.want {
			t.Fatalf("ParseSource(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestShortLabel(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		want      string
	}{
		{"artist and album", Candidate{Artist: "Foo Bar", Album: "Greatest Hits"}, "Foo Bar – Greatest Hits"},
		{"artist only", Candidate{Artist: "Foo Bar"}, "Foo Bar"},
		{"album only", Candidate{Album: "Greatest Hits"}, "Greatest Hits"},
		{"fallback label", Candidate{FallbackLabel: "foo bar - greatest hits"}, "foo bar - greatest hits"},
		{"external id", Candidate{ExternalID: "r1234567"}, "r1234567"},
		{"nothing", Candidate{}, "unknown release"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.candidate.ShortLabel(); got != tc.want {
				t.Fatalf("ShortLabel = %q, want %q", got, tc.want)
			}
		})
	}
}
