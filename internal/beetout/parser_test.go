package beetout

import (
	"testing"
	"time"

	"beetbridge/internal/decision"
)

var fixedClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestEngine() *Engine {
	return NewEngine(nil, WithClock(fixedClock))
}

func TestParseSuccess(t *testing.T) {
	record := newTestEngine().Parse("Successfully imported /music/album", "", "/music/album")
	if record.Outcome != decision.OutcomeSuccess {
		t.Fatalf("Outcome = %q, want success", record.Outcome)
	}
	if record.SingleMatch != nil || len(record.Candidates) != 0 {
		t.Fatalf("success record should carry no candidates")
	}
	if record.SubjectPath != "/music/album" {
		t.Fatalf("SubjectPath = %q", record.SubjectPath)
	}
	if !record.CreatedAt.Equal(fixedClock()) {
		t.Fatalf("CreatedAt = %v, want fixed clock", record.CreatedAt)
	}
}

func TestParseSuccessBeatsCandidateMarker(t *testing.T) {
	stdout := "Candidates:\n1. (88.0%) Foo Bar - Greatest Hits\nAlready in library.\n"
	record := newTestEngine().Parse(stdout, "", "/music/album")
	if record.Outcome != decision.OutcomeSuccess {
		t.Fatalf("Outcome = %q, want success to win over candidates", record.Outcome)
	}
}

func TestParseSingleMatch(t *testing.T) {
	stdout := "Match (92.3%):\n" +
		"* artist: Foo Bar\n" +
		"* album: Greatest Hits\n" +
		"≠ year (1997 -> 1998)\n" +
		"URL: https://musicbrainz.org/release/11111111-2222-3333-4444-555555555555\n"

	record := newTestEngine().Parse(stdout, "", "/music/album")
	if record.Outcome != decision.OutcomeSingleMatch {
		t.Fatalf("Outcome = %q, want single_match", record.Outcome)
	}
	if record.SingleMatch == nil {
		t.Fatalf("SingleMatch is nil")
	}
	match := *record.SingleMatch
	if !match.HasSimilarityPercent || match.SimilarityPercent != 92.3 {
		t.Fatalf("SimilarityPercent = %v, want 92.3", match.SimilarityPercent)
	}
	if match.Source != decision.SourceMusicBrainz {
		t.Fatalf("Source = %q", match.Source)
	}
	if match.ExternalID != "11111111-2222-3333-4444-555555555555" {
		t.Fatalf("ExternalID = %q", match.ExternalID)
	}
	if match.Artist != "Foo Bar" || match.Album != "Greatest Hits" {
		t.Fatalf("artist/album = %q/%q", match.Artist, match.Album)
	}
	if len(match.Differences) != 1 || match.Differences[0].FieldName != "year" {
		t.Fatalf("Differences = %+v", match.Differences)
	}
}

func TestParseHasCandidatesReconciled(t *testing.T) {
	stdout := "Candidate: Foo Bar - Greatest Hits (11111111-2222-3333-4444-555555555555)\n" +
		"Distance: 0.12\n" +
		"Finding tags for album \"Foo Bar - Greatest Hits\".\n" +
		"Candidates:\n" +
		"1. (88.0%) Foo Bar - Greatest Hits\n" +
		"   MusicBrainz, CD, 1998, US, ACME, AC-001\n"

	record := newTestEngine().Parse(stdout, "", "/music/album")
	if record.Outcome != decision.OutcomeHasCandidates {
		t.Fatalf("Outcome = %q, want has_candidates", record.Outcome)
	}
	if len(record.Candidates) != 1 {
		t.Fatalf("Candidates len = %d, want 1", len(record.Candidates))
	}
	c := record.Candidates[0]
	if c.ExternalID != "11111111-2222-3333-4444-555555555555" {
		t.Fatalf("ExternalID = %q", c.ExternalID)
	}
	if c.Source != decision.SourceMusicBrainz {
		t.Fatalf("Source = %q", c.Source)
	}
	if c.Year != 1998 || c.Label != "ACME" {
		t.Fatalf("year/label = %d/%q", c.Year, c.Label)
	}
}

func TestParseVerboseOnlySynthesizesCandidates(t *testing.T) {
	stdout := "Candidate: Foo Bar - Greatest Hits (11111111-2222-3333-4444-555555555555)\n" +
		"Distance: 0.12\n"

	record := newTestEngine().Parse(stdout, "", "/music/album")
	if record.Outcome != decision.OutcomeHasCandidates {
		t.Fatalf("Outcome = %q, want has_candidates from verbose-only trace", record.Outcome)
	}
	if len(record.Candidates) != 1 {
		t.Fatalf("Candidates len = %d, want 1", len(record.Candidates))
	}
	c := record.Candidates[0]
	if !c.HasSimilarityPercent || c.SimilarityPercent != 88.0 {
		t.Fatalf("SimilarityPercent = %v, want 88.0 from distance 0.12", c.SimilarityPercent)
	}
	if c.ExternalID != "11111111-2222-3333-4444-555555555555" {
		t.Fatalf("ExternalID = %q", c.ExternalID)
	}
}

func TestParseCandidatesMarkerWithoutBlocksFallsThrough(t *testing.T) {
	record := newTestEngine().Parse("Candidates:\nNo matching release found.\n", "", "/music/album")
	if record.Outcome != decision.OutcomeNoMatch {
		t.Fatalf("Outcome = %q, want no_match", record.Outcome)
	}
}

func TestParseNoMatch(t *testing.T) {
	record := newTestEngine().Parse("No matching release found for 12 tracks.", "", "/music/album")
	if record.Outcome != decision.OutcomeNoMatch {
		t.Fatalf("Outcome = %q, want no_match", record.Outcome)
	}
}

func TestParseLowSimilarity(t *testing.T) {
	record := newTestEngine().Parse("Skipping album: similarity 42.1% below threshold.", "", "/music/album")
	if record.Outcome != decision.OutcomeLowSimilarity {
		t.Fatalf("Outcome = %q, want low_similarity", record.Outcome)
	}
}

func TestParseTotalOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		"\x1b[31m\x1b[0m",
		"completely unrelated text\nwith several lines\n",
		"Candidates:",
	}
	for _, input := range inputs {
		record := newTestEngine().Parse(input, "", "/music/album")
		if record.Outcome != decision.OutcomeNeedsInput {
			t.Fatalf("Parse(%q) Outcome = %q, want needs_input", input, record.Outcome)
		}
	}
}

func TestParseJoinsStreams(t *testing.T) {
	record := newTestEngine().Parse("stdout line", "Successfully imported album.", "/music/album")
	if record.Outcome != decision.OutcomeSuccess {
		t.Fatalf("Outcome = %q, want success from stderr content", record.Outcome)
	}
}

func TestParseDeterministic(t *testing.T) {
	stdout := "Candidates:\n1. (88.0%) Foo Bar - Greatest Hits\n   MusicBrainz, CD, 1998, US, ACME, AC-001\n"
	engine := newTestEngine()
	first := engine.Parse(stdout, "", "/music/album")
	second := engine.Parse(stdout, "", "/music/album")
	if first.Outcome != second.Outcome || len(first.Candidates) != len(second.Candidates) {
		t.Fatalf("repeat parse diverged: %+v vs %+v", first, second)
	}
	if !first.CreatedAt.Equal(second.CreatedAt) {
		t.Fatalf("CreatedAt diverged under fixed clock")
	}
}

func TestParseRawTextIsSanitized(t *testing.T) {
	record := newTestEngine().Parse("\x1b[1mSuccessfully imported.\x1b[0m", "", "/music/album")
	if record.RawText != "Successfully imported." {
		t.Fatalf("RawText = %q, want sanitized text", record.RawText)
	}
}
