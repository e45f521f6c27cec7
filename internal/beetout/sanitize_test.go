package beetout

import "testing"

func TestSanitizeStripsANSISequences(t *testing.T) {
	raw := "\x1b[1mTagging:\x1b[0m Foo Bar - Greatest Hits"
	got := Sanitize(raw)
	want := "Tagging: Foo Bar - Greatest Hits"
	if got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeDropsNoiseLines(t *testing.T) {
	raw := "user configuration: /home/u/.config/beets/config.yaml\n" +
		"data directory: /home/u/.config/beets\n" +
		"Sending event: import_begin\n" +
		"fingerprinting of file /music/track01.flac\n" +
		"Tagging: Foo Bar - Greatest Hits\n" +
		"acoustid: no match found\n" +
		"URL: https://musicbrainz.org/release/11111111-2222-3333-4444-555555555555"
	got := Sanitize(raw)
	want := "Tagging: Foo Bar - Greatest Hits\n" +
		"URL: https://musicbrainz.org/release/11111111-2222-3333-4444-555555555555"
	if got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeSuppressesBlockContinuations(t *testing.T) {
	raw := "plugin paths:\n" +
		"  /usr/lib/beets/plugins\n" +
		"  /home/u/.beets/plugins\n" +
		"Tagging: Foo Bar - Greatest Hits"
	got := Sanitize(raw)
	want := "Tagging: Foo Bar - Greatest Hits"
	if got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeCollapsesBlankRuns(t *testing.T) {
	raw := "first line\n\n\n\nsecond line\n\n"
	got := Sanitize(raw)
	want := "first line\n\nsecond line"
	if got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	raw := "\x1b[32mSending event: before_choose_candidate\x1b[0m\n" +
		"  [candidate dump]\n" +
		"\n\n" +
		"Candidates:\n" +
		"1. (88.0%) Foo Bar - Greatest Hits\n"
	once := Sanitize(raw)
	twice := Sanitize(once)
	if once != twice {
		t.Fatalf("Sanitize not idempotent: first %q, second %q", once, twice)
	}
}

func TestSanitizeEmptyInput(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Fatalf("Sanitize(\"\") = %q, want empty", got)
	}
}
