package beetout

import (
	"regexp"
	"strconv"
	"strings"
)

// successPhrases terminate classification immediately: the tool already
// committed the import.
var successPhrases = []string{
	"successfully imported",
	"already in library",
	"imported and tagged",
}

// noMatchPhrases mark a completed run that found nothing usable.
var noMatchPhrases = []string{
	"no matching release found",
	"no candidates",
}

const candidatesMarker = "candidates:"

var (
	matchPercentPattern  = regexp.MustCompile(`(?i)match\s*\(?\s*([0-9]*\.?[0-9]+)%`)
	candidateIntroMarker = regexp.MustCompile(`(?im)^\s*candidate:`)
)

func containsAny(lower string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func hasSuccessPhrase(sanitized string) bool {
	return containsAny(strings.ToLower(sanitized), successPhrases)
}

func hasCandidatesMarker(sanitized string) bool {
	return strings.Contains(strings.ToLower(sanitized), candidatesMarker)
}

// hasVerboseCandidateIntro catches runs whose verbose trace listed
// candidates even though the display section never rendered them.
func hasVerboseCandidateIntro(sanitized string) bool {
	return candidateIntroMarker.MatchString(sanitized)
}

// hasSingleMatchMarker reports whether the text carries a match percentage
// together with a resolvable identifier from either metadata source, and no
// candidate section.
func hasSingleMatchMarker(sanitized string) bool {
	if hasCandidatesMarker(sanitized) {
		return false
	}
	if !matchPercentPattern.MatchString(sanitized) {
		return false
	}
	return ExtractMusicBrainzID(sanitized) != "" || ExtractDiscogsID(sanitized) != ""
}

func hasNoMatchPhrase(sanitized string) bool {
	return containsAny(strings.ToLower(sanitized), noMatchPhrases)
}

func hasLowSimilarityPhrase(sanitized string) bool {
	lower := strings.ToLower(sanitized)
	return strings.Contains(lower, "skip") && strings.Contains(lower, "similarity")
}

// matchPercent extracts the similarity percentage from a single-match
// region, reporting whether one was present.
func matchPercent(sanitized string) (float64, bool) {
	m := matchPercentPattern.FindStringSubmatch(sanitized)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
