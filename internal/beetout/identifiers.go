package beetout

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"beetbridge/internal/decision"
)

var (
	uuidPattern = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

	discogsURLPattern     = regexp.MustCompile(`(?i)discogs\.com/(?:[^/\s]+/)*?(release|master)s?/(\d+)`)
	discogsPrefixedToken  = regexp.MustCompile(`(?i)\b([rm])(\d{6,})\b`)
	discogsKeywordPattern = regexp.MustCompile(`(?i)discogs\b.{0,80}?\b([rm])(\d{6,})\b`)
)

// ExtractMusicBrainzID returns the first UUID-shaped token in the text,
// lowercased, or "" when none exists.
func ExtractMusicBrainzID(text string) string {
	match := uuidPattern.FindString(text)
	if match == "" {
		return ""
	}
	if _, err := uuid.Parse(match); err != nil {
		return ""
	}
	return strings.ToLower(match)
}

// ExtractDiscogsID returns a canonical Discogs identifier (r<digits> for
// releases, m<digits> for masters) or "". Rules run in priority order and
// each only fires when the previous found nothing: a discogs.com URL path,
// then a prefixed token near a "discogs" keyword, then a bare prefixed
// token. The bare form is too ambiguous to trust except as last resort.
func ExtractDiscogsID(text string) string {
	if m := discogsURLPattern.FindStringSubmatch(text); m != nil {
		prefix := "r"
		if strings.EqualFold(m[1], "master") {
			prefix = "m"
		}
		return prefix + m[2]
	}
	if m := discogsKeywordPattern.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1]) + m[2]
	}
	if m := discogsPrefixedToken.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1]) + m[2]
	}
	return ""
}

// BuildURL derives the canonical web URL for an identifier. Returns "" when
// the pair cannot be mapped.
func BuildURL(source decision.Source, id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	switch source {
	case decision.SourceMusicBrainz:
		if _, err := uuid.Parse(id); err != nil {
			return ""
		}
		return "https://musicbrainz.org/release/" + strings.ToLower(id)
	case decision.SourceDiscogs:
		if len(id) < 2 {
			return ""
		}
		digits := id[1:]
		if !isDigits(digits) {
			return ""
		}
		switch id[0] {
		case 'r':
			return "https://www.discogs.com/release/" + digits
		case 'm':
			return "https://www.discogs.com/master/" + digits
		}
	}
	return ""
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
