package beetout

import (
	"testing"

	"beetbridge/internal/decision"
)

const displaySample = `Finding tags for album "Foo Bar - Greatest Hits".
Candidates:
1. (88.0%) Foo Bar - Greatest Hits
   ≠ artist (Foo -> Foo Bar), missing cover art
   MusicBrainz, CD, 1998, US, ACME, AC-001
2. (72.5%) Foo Bar - Greatest Hits Live
   Discogs, Vinyl, None, UK, None, None
`

func TestExtractDisplayBlocks(t *testing.T) {
	got := ExtractDisplay(displaySample)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	first := got[0]
	if first.Rank != 1 {
		t.Fatalf("Rank = %d, want 1", first.Rank)
	}
	if first.SimilarityPercent != 88.0 {
		t.Fatalf("SimilarityPercent = %v, want 88.0", first.SimilarityPercent)
	}
	if first.Artist != "Foo Bar" || first.Album != "Greatest Hits" {
		t.Fatalf("artist/album = %q/%q", first.Artist, first.Album)
	}
	if first.Source != decision.SourceMusicBrainz {
		t.Fatalf("Source = %q, want musicbrainz", first.Source)
	}
	if first.Format != "CD" || first.Year != 1998 || first.Country != "US" {
		t.Fatalf("metadata = %q/%d/%q", first.Format, first.Year, first.Country)
	}
	if first.Label != "ACME" || first.CatalogNumber != "AC-001" {
		t.Fatalf("label/catalog = %q/%q", first.Label, first.CatalogNumber)
	}
	if len(first.RawDifferences) != 2 {
		t.Fatalf("RawDifferences = %v, want 2 entries", first.RawDifferences)
	}
	if first.RawDifferences[0] != "≠ artist (Foo -> Foo Bar)" {
		t.Fatalf("RawDifferences[0] = %q", first.RawDifferences[0])
	}

	second := got[1]
	if second.Rank != 2 || second.Source != decision.SourceDiscogs {
		t.Fatalf("second = rank %d source %q", second.Rank, second.Source)
	}
	if second.Year != 0 || second.Label != "" || second.CatalogNumber != "" {
		t.Fatalf("sentinel fields should be absent, got %d/%q/%q", second.Year, second.Label, second.CatalogNumber)
	}
	if second.Format != "Vinyl" || second.Country != "UK" {
		t.Fatalf("format/country = %q/%q", second.Format, second.Country)
	}
}

func TestExtractDisplayNoHeader(t *testing.T) {
	if got := ExtractDisplay("Tagging: something unrelated\n"); len(got) != 0 {
		t.Fatalf("got %d candidates, want 0", len(got))
	}
}

func TestExtractDisplayHeaderWithoutAlbum(t *testing.T) {
	got := ExtractDisplay("1. (50.0%) Solo Artist\n")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Artist != "Solo Artist" || got[0].Album != "" {
		t.Fatalf("artist/album = %q/%q", got[0].Artist, got[0].Album)
	}
	if got[0].Title() != "Solo Artist" {
		t.Fatalf("Title = %q", got[0].Title())
	}
}
