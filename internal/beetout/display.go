package beetout

import (
	"regexp"
	"strconv"
	"strings"

	"beetbridge/internal/decision"
)

// DisplayCandidate is the human-facing half of a candidate: rank, similarity
// and free-text metadata, without an identifier.
type DisplayCandidate struct {
	Rank              int
	SimilarityPercent float64
	Artist            string
	Album             string
	Year              int
	Source            decision.Source
	Format            string
	Country           string
	Label             string
	CatalogNumber     string
	RawDifferences    []string
}

// Title reconstructs the free-text title the verbose trace would have used.
func (d DisplayCandidate) Title() string {
	if d.Album == "" {
		return d.Artist
	}
	return d.Artist + " - " + d.Album
}

var rankPattern = regexp.MustCompile(`^\s*(\d+)\.\s*\(\s*([0-9]*\.?[0-9]+)%\s*\)\s*(.+?)\s*$`)

// metadataSentinels are field values meaning "absent", not literal text.
var metadataSentinels = map[string]struct{}{
	"none": {}, "n/a": {}, "na": {}, "-": {}, "unknown": {},
}

// ExtractDisplay scans the human-facing region for numbered candidate
// blocks: a "<rank>. (<similarity>%) <artist> - <album>" header, an optional
// comma-separated differences line, and an optional metadata line beginning
// with the source name. A block ends at the next rank header or end of text.
func ExtractDisplay(text string) []DisplayCandidate {
	lines := strings.Split(text, "\n")
	var out []DisplayCandidate
	var current *DisplayCandidate

	flush := func() {
		if current != nil {
			out = append(out, *current)
			current = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := rankPattern.FindStringSubmatch(line); m != nil {
			flush()
			rank, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			similarity, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			artist, album := splitArtistAlbum(m[3])
			current = &DisplayCandidate{
				Rank:              rank,
				SimilarityPercent: similarity,
				Artist:            artist,
				Album:             album,
				Source:            decision.SourceUnknown,
			}
			continue
		}

		if current == nil {
			continue
		}

		if source, rest, ok := splitMetadataLine(trimmed); ok {
			current.Source = source
			applyMetadataFields(current, rest)
			continue
		}

		if len(current.RawDifferences) == 0 {
			current.RawDifferences = splitDifferences(trimmed)
		}
	}
	flush()

	return out
}

// splitArtistAlbum splits on the first " - " separator. Without one the
// whole string is the artist and the album stays unknown.
func splitArtistAlbum(value string) (string, string) {
	value = strings.TrimSpace(value)
	if idx := strings.Index(value, " - "); idx >= 0 {
		return strings.TrimSpace(value[:idx]), strings.TrimSpace(value[idx+3:])
	}
	return value, ""
}

// splitMetadataLine recognizes a metadata line by its leading source name
// and returns the remaining comma-separated fields.
func splitMetadataLine(line string) (decision.Source, []string, bool) {
	fields := strings.Split(line, ",")
	source := decision.ParseSource(fields[0])
	if source == decision.SourceUnknown {
		return decision.SourceUnknown, nil, false
	}
	rest := make([]string, 0, len(fields)-1)
	for _, field := range fields[1:] {
		rest = append(rest, strings.TrimSpace(field))
	}
	return source, rest, true
}

// applyMetadataFields maps the positional metadata fields onto the
// candidate: format, year, country, label, catalog number. Sentinel values
// and malformed years become absent fields, never failures.
func applyMetadataFields(candidate *DisplayCandidate, fields []string) {
	value := func(idx int) string {
		if idx >= len(fields) {
			return ""
		}
		field := fields[idx]
		if _, sentinel := metadataSentinels[strings.ToLower(field)]; sentinel {
			return ""
		}
		return field
	}

	candidate.Format = value(0)
	if year, err := strconv.Atoi(value(1)); err == nil && year > 0 {
		candidate.Year = year
	}
	candidate.Country = value(2)
	candidate.Label = value(3)
	candidate.CatalogNumber = value(4)
}

func splitDifferences(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
