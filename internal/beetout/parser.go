package beetout

import (
	"log/slog"
	"strings"
	"time"

	"beetbridge/internal/decision"
	"beetbridge/internal/diffview"
	"beetbridge/internal/logging"
)

// Engine turns raw beet output into decision records. It holds no state
// between calls; every Parse is independent and safe to run concurrently.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes engine construction.
type Option func(*Engine)

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine constructs a reconciliation engine. A nil logger is replaced
// with a no-op logger.
func NewEngine(logger *slog.Logger, opts ...Option) *Engine {
	engine := &Engine{
		logger: logging.NewComponentLogger(logger, "beetout"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Parse reconciles the two output streams of one beet import run into a
// decision record. Classification is total: malformed or unrelated text
// resolves to OutcomeNeedsInput, never to an error.
func (e *Engine) Parse(stdout, stderr, subjectPath string) decision.Record {
	raw := stdout
	if stderr != "" {
		if raw != "" {
			raw += "\n"
		}
		raw += stderr
	}
	sanitized := Sanitize(raw)

	record := decision.Record{
		SubjectPath: subjectPath,
		RawText:     sanitized,
		CreatedAt:   e.now().UTC(),
	}

	switch {
	case hasSuccessPhrase(sanitized):
		record.Outcome = decision.OutcomeSuccess

	case hasSingleMatchMarker(sanitized):
		record.Outcome = decision.OutcomeSingleMatch
		match := e.buildSingleMatch(sanitized)
		record.SingleMatch = &match

	default:
		if hasCandidatesMarker(sanitized) || hasVerboseCandidateIntro(sanitized) {
			if candidates := e.extractCandidates(sanitized); len(candidates) > 0 {
				record.Outcome = decision.OutcomeHasCandidates
				record.Candidates = candidates
				break
			}
			// Marker present but nothing reconciled: fall through rather
			// than return an empty candidate list.
		}
		switch {
		case hasNoMatchPhrase(sanitized):
			record.Outcome = decision.OutcomeNoMatch
		case hasLowSimilarityPhrase(sanitized):
			record.Outcome = decision.OutcomeLowSimilarity
		default:
			record.Outcome = decision.OutcomeNeedsInput
		}
	}

	e.logger.Debug("classified import output",
		logging.String(logging.FieldSubject, subjectPath),
		logging.String(logging.FieldOutcome, string(record.Outcome)),
		logging.Int(logging.FieldCandidates, len(record.Candidates)))

	return record
}

func (e *Engine) extractCandidates(sanitized string) []decision.Candidate {
	verbose := ExtractVerbose(sanitized)
	display := ExtractDisplay(sanitized)
	candidates := Reconcile(display, verbose)

	e.logger.Debug("reconciled candidate phases",
		logging.Int("verbose_entries", verbose.Len()),
		logging.Int("display_blocks", len(display)),
		logging.Int(logging.FieldCandidates, len(candidates)))

	return candidates
}

// buildSingleMatch synthesizes the one proposed candidate from a
// single-match region: match percentage, identifier, bullet metadata lines
// and the listed differences.
func (e *Engine) buildSingleMatch(sanitized string) decision.Candidate {
	candidate := decision.Candidate{DisplayRank: 1, Source: decision.SourceUnknown}

	if percent, ok := matchPercent(sanitized); ok {
		candidate.SimilarityPercent = percent
		candidate.HasSimilarityPercent = true
	}

	if id := ExtractMusicBrainzID(sanitized); id != "" {
		candidate.Source = decision.SourceMusicBrainz
		candidate.ExternalID = id
	} else if id := ExtractDiscogsID(sanitized); id != "" {
		candidate.Source = decision.SourceDiscogs
		candidate.ExternalID = id
	}
	candidate.ExternalURL = BuildURL(candidate.Source, candidate.ExternalID)

	for _, line := range strings.Split(sanitized, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case hasBulletField(trimmed, "artist"):
			candidate.Artist = bulletValue(trimmed)
		case hasBulletField(trimmed, "album"):
			candidate.Album = bulletValue(trimmed)
		case hasBulletField(trimmed, "title"):
			if candidate.Album == "" {
				candidate.Album = bulletValue(trimmed)
			}
		case strings.Contains(trimmed, diffview.MismatchMarker):
			candidate.Differences = append(candidate.Differences, diffview.ParseDifference(trimmed))
		}
	}

	return candidate
}

func hasBulletField(line, field string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "* "+field+":")
}

func bulletValue(line string) string {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
