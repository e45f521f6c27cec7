package decision

import (
	"strings"
	"time"
)

// Outcome classifies the result of one import attempt. Exactly one outcome
// is ever assigned to a record.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeSingleMatch   Outcome = "single_match"
	OutcomeHasCandidates Outcome = "has_candidates"
	OutcomeNoMatch       Outcome = "no_match"
	OutcomeLowSimilarity Outcome = "low_similarity"
	OutcomeNeedsInput    Outcome = "needs_input"
)

var allOutcomes = []Outcome{
	OutcomeSuccess,
	OutcomeSingleMatch,
	OutcomeHasCandidates,
	OutcomeNoMatch,
	OutcomeLowSimilarity,
	OutcomeNeedsInput,
}

var outcomeSet = func() map[Outcome]struct{} {
	set := make(map[Outcome]struct{}, len(allOutcomes))
	for _, outcome := range allOutcomes {
		set[outcome] = struct{}{}
	}
	return set
}()

// ParseOutcome normalizes a stored outcome string. Unknown values map to
// OutcomeNeedsInput so stale session rows stay loadable.
func ParseOutcome(value string) Outcome {
	outcome := Outcome(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := outcomeSet[outcome]; ok {
		return outcome
	}
	return OutcomeNeedsInput
}

// Source identifies the metadata provider a candidate came from.
type Source string

const (
	SourceMusicBrainz Source = "musicbrainz"
	SourceDiscogs     Source = "discogs"
	SourceUnknown     Source = "unknown"
)

// ParseSource maps free-text provider names from tool output onto a Source.
func ParseSource(value string) Source {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "musicbrainz":
		return SourceMusicBrainz
	case "discogs":
		return SourceDiscogs
	default:
		return SourceUnknown
	}
}

// Record is the canonical result of parsing one beet import attempt.
type Record struct {
	SubjectPath string  `json:"subject_path"`
	Outcome     Outcome `json:"outcome"`

	// SingleMatch is set iff Outcome == OutcomeSingleMatch.
	SingleMatch *Candidate `json:"single_match,omitempty"`
	// Candidates is populated iff Outcome == OutcomeHasCandidates, in
	// display order (1-based ranks preserved).
	Candidates []Candidate `json:"candidates,omitempty"`

	// SelectedIndex is owned by the session layer; always nil after a parse.
	SelectedIndex *int `json:"selected_index,omitempty"`

	// RawText holds the sanitized (not raw) tool output for audit display.
	RawText   string    `json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`
}

// Candidate is one proposed release match. The identifier half
// (Source/ExternalID/ExternalURL) and the metadata half (Artist/Album/...)
// come from different regions of the tool output and either may be absent.
type Candidate struct {
	DisplayRank int `json:"display_rank"`

	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Year   int    `json:"year,omitempty"`

	Source      Source `json:"source"`
	ExternalID  string `json:"external_id,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`

	Format        string `json:"format,omitempty"`
	Country       string `json:"country,omitempty"`
	Label         string `json:"label,omitempty"`
	CatalogNumber string `json:"catalog_number,omitempty"`

	// SimilarityPercent and Distance are the two confidence signals; at
	// least one is set when the candidate came from either extraction
	// phase. Zero values with the Has* flags false mean "absent".
	SimilarityPercent    float64 `json:"similarity_percent,omitempty"`
	HasSimilarityPercent bool    `json:"has_similarity_percent,omitempty"`
	Distance             float64 `json:"distance,omitempty"`
	HasDistance          bool    `json:"has_distance,omitempty"`

	Differences []Difference `json:"differences,omitempty"`

	// FallbackLabel backs ShortLabel for synthesized candidates that have
	// no artist/album metadata.
	FallbackLabel string `json:"fallback_label,omitempty"`
}

// ShortLabel renders the human display fallback for the candidate.
func (c Candidate) ShortLabel() string {
	artist := strings.TrimSpace(c.Artist)
	album := strings.TrimSpace(c.Album)
	switch {
	case artist != "" && album != "":
		return artist + " – " + album
	case artist != "":
		return artist
	case album != "":
		return album
	case c.FallbackLabel != "":
		return c.FallbackLabel
	case c.ExternalID != "":
		return c.ExternalID
	default:
		return "unknown release"
	}
}

// DiffKind classifies one listed difference line.
type DiffKind string

const (
	DiffFieldChange DiffKind = "field_change"
	DiffMissing     DiffKind = "missing"
	DiffExtra       DiffKind = "extra"
	DiffMismatch    DiffKind = "mismatch"
	DiffGeneric     DiffKind = "generic"
)

// Difference is one classified edit from the tool's change listing.
type Difference struct {
	Kind      DiffKind `json:"kind"`
	FieldName string   `json:"field_name,omitempty"`
	// OldValue and NewValue are both populated only for DiffFieldChange;
	// bullet-form changes carry only NewValue.
	OldValue string `json:"old_value,omitempty"`
	NewValue string `json:"new_value,omitempty"`
	// RawLine is always retained verbatim.
	RawLine string `json:"raw_line"`
}
