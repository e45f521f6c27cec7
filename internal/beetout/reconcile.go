package beetout

import (
	"math"
	"strings"

	"beetbridge/internal/decision"
	"beetbridge/internal/diffview"
)

// Reconcile joins display candidates with the identifier index built from
// the verbose trace. Matching tries the exact normalized-title key, then a
// containment test against every index key in order of appearance, then,
// for Discogs-sourced display candidates only, the next unused entry of
// the positional Discogs lookup log. Candidates that never resolve to an
// identifier are kept without one.
func Reconcile(display []DisplayCandidate, verbose *VerboseIndex) []decision.Candidate {
	if len(display) == 0 {
		return synthesizeFromVerbose(verbose)
	}

	discogsLog := verbose.DiscogsLog()
	nextDiscogs := 0

	out := make([]decision.Candidate, 0, len(display))
	for _, dc := range display {
		candidate := decision.Candidate{
			DisplayRank:          dc.Rank,
			Artist:               dc.Artist,
			Album:                dc.Album,
			Year:                 dc.Year,
			Source:               dc.Source,
			Format:               dc.Format,
			Country:              dc.Country,
			Label:                dc.Label,
			CatalogNumber:        dc.CatalogNumber,
			SimilarityPercent:    dc.SimilarityPercent,
			HasSimilarityPercent: true,
		}

		for _, raw := range dc.RawDifferences {
			candidate.Differences = append(candidate.Differences, diffview.ParseDifference(raw))
		}

		if entry, ok := matchVerbose(dc, verbose); ok {
			candidate.Source = entry.Source
			candidate.ExternalID = entry.ID
			candidate.Distance = entry.Distance
			candidate.HasDistance = true
		} else if dc.Source == decision.SourceDiscogs && nextDiscogs < len(discogsLog) {
			candidate.ExternalID = discogsLog[nextDiscogs]
			nextDiscogs++
		}

		if candidate.ExternalID != "" && candidate.Source == decision.SourceUnknown {
			candidate.Source = decision.SourceDiscogs
		}
		candidate.ExternalURL = BuildURL(candidate.Source, candidate.ExternalID)

		out = append(out, candidate)
	}
	return out
}

func matchVerbose(dc DisplayCandidate, verbose *VerboseIndex) (VerboseEntry, bool) {
	key := NormalizeTitle(dc.Title())
	if key == "" {
		return VerboseEntry{}, false
	}
	if entry, ok := verbose.Lookup(key); ok {
		return entry, true
	}
	for _, verboseKey := range verbose.Keys() {
		if strings.Contains(verboseKey, key) || strings.Contains(key, verboseKey) {
			entry, _ := verbose.Lookup(verboseKey)
			return entry, true
		}
	}
	return VerboseEntry{}, false
}

// synthesizeFromVerbose builds ID-only candidates when the display region
// yielded nothing but the verbose trace did. The user is never shown "no
// candidates" when the tool internally found some.
func synthesizeFromVerbose(verbose *VerboseIndex) []decision.Candidate {
	keys := verbose.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make([]decision.Candidate, 0, len(keys))
	for i, key := range keys {
		entry, _ := verbose.Lookup(key)
		candidate := decision.Candidate{
			DisplayRank:          i + 1,
			Source:               entry.Source,
			ExternalID:           entry.ID,
			ExternalURL:          BuildURL(entry.Source, entry.ID),
			Distance:             entry.Distance,
			HasDistance:          true,
			SimilarityPercent:    roundOneDecimal((1 - entry.Distance) * 100),
			HasSimilarityPercent: true,
			FallbackLabel:        key,
		}
		out = append(out, candidate)
	}
	return out
}

func roundOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
