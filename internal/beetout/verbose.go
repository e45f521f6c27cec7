package beetout

import (
	"regexp"
	"strconv"
	"strings"

	"beetbridge/internal/decision"
)

// VerboseEntry is the identifier half of a candidate, recovered from the
// verbose trace and keyed by normalized title.
type VerboseEntry struct {
	Title    string
	Source   decision.Source
	ID       string
	Distance float64
}

// VerboseIndex preserves the order entries appeared in the verbose text.
// Iteration order matters: the reconciler's containment fallback takes the
// first key that matches.
type VerboseIndex struct {
	keys    []string
	entries map[string]VerboseEntry

	// discogsLog records raw Discogs identifiers seen in lookup chatter, in
	// positional order, as a last-resort join source when no parenthesized
	// identifier survived into a candidate block.
	discogsLog []string
}

// Len returns the number of indexed entries.
func (v *VerboseIndex) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Keys returns the normalized-title keys in order of first appearance.
func (v *VerboseIndex) Keys() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Lookup returns the entry for an exact normalized-title key.
func (v *VerboseIndex) Lookup(key string) (VerboseEntry, bool) {
	if v == nil {
		return VerboseEntry{}, false
	}
	entry, ok := v.entries[key]
	return entry, ok
}

// DiscogsLog returns the positional log of raw Discogs lookups.
func (v *VerboseIndex) DiscogsLog() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.discogsLog))
	copy(out, v.discogsLog)
	return out
}

func (v *VerboseIndex) add(entry VerboseEntry) {
	key := NormalizeTitle(entry.Title)
	if key == "" {
		return
	}
	existing, ok := v.entries[key]
	if ok {
		// MusicBrainz is authoritative on title collision.
		if existing.Source == decision.SourceMusicBrainz || entry.Source != decision.SourceMusicBrainz {
			return
		}
		v.entries[key] = entry
		return
	}
	v.keys = append(v.keys, key)
	v.entries[key] = entry
}

var (
	candidateIntroPattern = regexp.MustCompile(`(?i)^candidate:\s*(.+?)\s*\(([^()]+)\)\s*$`)
	distancePattern       = regexp.MustCompile(`(?i)^(?:computed\s+)?distance(?:\s+for[^:]*)?:\s*([0-9]*\.?[0-9]+)`)
	discogsChatterPattern = regexp.MustCompile(`(?i)discogs\b[^()]*?\b([rm]?)(\d{6,})\b`)
)

// ExtractVerbose scans the debug/verbose region for "candidate (identifier)"
// blocks followed by a distance value and indexes them by normalized title.
func ExtractVerbose(text string) *VerboseIndex {
	index := &VerboseIndex{entries: make(map[string]VerboseEntry)}

	lines := strings.Split(text, "\n")
	var pending *VerboseEntry

	flush := func() {
		if pending != nil {
			index.add(*pending)
			pending = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := candidateIntroPattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			title := strings.TrimSpace(m[1])
			source, id := classifyParenthesizedID(m[2])
			if id == "" {
				continue
			}
			pending = &VerboseEntry{Title: title, Source: source, ID: id}
			continue
		}

		if pending != nil {
			if m := distancePattern.FindStringSubmatch(trimmed); m != nil {
				if value, err := strconv.ParseFloat(m[1], 64); err == nil {
					pending.Distance = value
				}
				flush()
				continue
			}
		}

		if pending == nil && strings.Contains(strings.ToLower(trimmed), "discogs") {
			if m := discogsChatterPattern.FindStringSubmatch(trimmed); m != nil {
				prefix := strings.ToLower(m[1])
				if prefix == "" {
					prefix = "r"
				}
				index.discogsLog = append(index.discogsLog, prefix+m[2])
			}
		}
	}
	flush()

	return index
}

// classifyParenthesizedID interprets the parenthesized portion of a
// candidate introducer: a UUID means MusicBrainz; an optionally "Discogs:"
// qualified, optionally r/m-prefixed numeric token means Discogs.
func classifyParenthesizedID(inner string) (decision.Source, string) {
	inner = strings.TrimSpace(inner)

	if id := ExtractMusicBrainzID(inner); id != "" {
		return decision.SourceMusicBrainz, id
	}

	value := inner
	if idx := strings.Index(strings.ToLower(inner), "discogs"); idx >= 0 {
		value = inner[idx+len("discogs"):]
		value = strings.TrimLeft(value, ": \t")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return decision.SourceUnknown, ""
	}

	lower := strings.ToLower(value)
	switch {
	case len(lower) > 1 && (lower[0] == 'r' || lower[0] == 'm') && isDigits(lower[1:]):
		return decision.SourceDiscogs, lower
	case isDigits(lower):
		return decision.SourceDiscogs, "r" + lower
	default:
		return decision.SourceUnknown, ""
	}
}
