package beetout

import (
	"regexp"
	"strings"
)

var ansiPattern = regexp.MustCompile(`\x1B(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// noisePrefixes marks lines that are pure tool-internal diagnostics. The
// comparison is case-insensitive against the trimmed line.
var noisePrefixes = []string{
	"user configuration:",
	"data directory:",
	"plugin paths:",
	"sending event:",
	"fingerprinting ",
	"fingerprinted ",
	"chroma: fingerprinting",
	"chroma: fingerprinted",
	"acoustid:",
	"fetchart:",
	"lastgenre:",
	"inline:",
	"loading plugin",
	"** error loading plugin",
}

// blockPrefixes start multi-line diagnostic dumps whose continuation lines
// (indented or bracketed) must also be dropped until a normal line appears.
var blockPrefixes = []string{
	"user configuration:",
	"plugin paths:",
	"sending event:",
}

// Sanitize strips terminal escape sequences and tool-internal diagnostic
// chatter from raw beet output, collapsing runs of blank lines to one.
// It is pure and idempotent.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := ansiPattern.ReplaceAllString(raw, "")

	lines := strings.Split(cleaned, "\n")
	kept := make([]string, 0, len(lines))
	inDroppedBlock := false
	blankPending := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		if inDroppedBlock {
			if trimmed == "" {
				inDroppedBlock = false
				blankPending = len(kept) > 0
				continue
			}
			if isContinuation(line, trimmed) {
				continue
			}
			inDroppedBlock = false
		}

		if trimmed != "" && matchesAnyPrefix(lower, noisePrefixes) {
			if matchesAnyPrefix(lower, blockPrefixes) {
				inDroppedBlock = true
			}
			continue
		}

		if trimmed == "" {
			blankPending = len(kept) > 0
			continue
		}

		if blankPending {
			kept = append(kept, "")
			blankPending = false
		}
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}

	return strings.Join(kept, "\n")
}

func matchesAnyPrefix(lower string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// isContinuation reports whether a line belongs to a dropped diagnostic
// block: indented content or bracketed/keyed dump fragments.
func isContinuation(line, trimmed string) bool {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return true
	}
	return strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{")
}
