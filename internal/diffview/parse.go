package diffview

import (
	"regexp"
	"strings"

	"beetbridge/internal/decision"
)

// MismatchMarker prefixes changed-field lines in beet's change listing.
const MismatchMarker = "≠"

var (
	// Track-style change: both sides carry a (#n) track token.
	trackChangePattern = regexp.MustCompile(`^\s*[≠!]?\s*(\(#\d+\).*?)\s*->\s*(\(#\d+\).*?)\s*$`)
	// Field change with an arrow and no parentheses around the values.
	arrowFieldPattern = regexp.MustCompile(`^\s*[≠*]?\s*([A-Za-z][A-Za-z0-9 _.]*?):\s*(.+?)\s*->\s*(.+?)\s*$`)
	// Field change with the old/new pair in parentheses, arrow or "vs".
	parenFieldPattern = regexp.MustCompile(`^\s*≠?\s*([A-Za-z][A-Za-z0-9 _.]*?)\s*\(\s*(.+?)\s*(?:->|vs\.?)\s+(.+?)\s*\)\s*$`)
	// Bullet form: new value only.
	bulletFieldPattern = regexp.MustCompile(`^\s*\*\s*([A-Za-z][A-Za-z0-9 _.]*?):\s*(.+?)\s*$`)
)

// ParseDifference classifies one raw change line. Shapes are tried from
// most to least specific; the first matching rule wins, so the track and
// arrowed-field forms are never swallowed by the generic fallbacks.
func ParseDifference(rawLine string) decision.Difference {
	line := strings.TrimSpace(rawLine)

	if m := trackChangePattern.FindStringSubmatch(line); m != nil {
		return decision.Difference{
			Kind:      decision.DiffFieldChange,
			FieldName: "track",
			OldValue:  strings.TrimSpace(m[1]),
			NewValue:  strings.TrimSpace(m[2]),
			RawLine:   rawLine,
		}
	}

	if m := arrowFieldPattern.FindStringSubmatch(line); m != nil {
		return decision.Difference{
			Kind:      decision.DiffFieldChange,
			FieldName: strings.ToLower(strings.TrimSpace(m[1])),
			OldValue:  m[2],
			NewValue:  m[3],
			RawLine:   rawLine,
		}
	}

	if m := parenFieldPattern.FindStringSubmatch(line); m != nil {
		return decision.Difference{
			Kind:      decision.DiffFieldChange,
			FieldName: strings.ToLower(strings.TrimSpace(m[1])),
			OldValue:  m[2],
			NewValue:  m[3],
			RawLine:   rawLine,
		}
	}

	if m := bulletFieldPattern.FindStringSubmatch(line); m != nil {
		return decision.Difference{
			Kind:      decision.DiffFieldChange,
			FieldName: strings.ToLower(strings.TrimSpace(m[1])),
			NewValue:  m[2],
			RawLine:   rawLine,
		}
	}

	lower := strings.ToLower(line)

	if strings.Contains(lower, "missing") {
		return decision.Difference{
			Kind:      decision.DiffMissing,
			FieldName: stripKeyword(line, "missing"),
			RawLine:   rawLine,
		}
	}

	if strings.Contains(lower, "extra") || strings.Contains(lower, "unmatched") {
		field := stripKeyword(line, "extra")
		if field == strings.Trim(line, "≠!* \t") {
			field = stripKeyword(line, "unmatched")
		}
		return decision.Difference{
			Kind:      decision.DiffExtra,
			FieldName: field,
			RawLine:   rawLine,
		}
	}

	if strings.HasPrefix(line, MismatchMarker) {
		return decision.Difference{Kind: decision.DiffMismatch, RawLine: rawLine}
	}

	return decision.Difference{Kind: decision.DiffGeneric, RawLine: rawLine}
}

// stripKeyword removes the classifying keyword and leading markers from the
// line, leaving the field description.
func stripKeyword(line, keyword string) string {
	cleaned := strings.Trim(line, "≠!* \t")
	idx := strings.Index(strings.ToLower(cleaned), keyword)
	if idx < 0 {
		return cleaned
	}
	rest := cleaned[:idx] + cleaned[idx+len(keyword):]
	return strings.Trim(strings.Join(strings.Fields(rest), " "), ":,- ")
}
