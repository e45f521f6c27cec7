package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"beetbridge/internal/decision"
	"beetbridge/internal/diffview"
)

// renderRecord builds the human-facing view of a decision record: a summary
// line, a candidate table when there is one, and inline-aligned differences.
func renderRecord(record decision.Record, charThreshold int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject:  %s\n", record.SubjectPath)
	fmt.Fprintf(&b, "Outcome:  %s\n", record.Outcome)

	switch record.Outcome {
	case decision.OutcomeSingleMatch:
		if record.SingleMatch != nil {
			b.WriteString("\n")
			b.WriteString(renderCandidates([]decision.Candidate{*record.SingleMatch}))
			b.WriteString(renderDifferences(*record.SingleMatch, charThreshold))
		}
	case decision.OutcomeHasCandidates:
		b.WriteString("\n")
		b.WriteString(renderCandidates(record.Candidates))
		for _, candidate := range record.Candidates {
			b.WriteString(renderDifferences(candidate, charThreshold))
		}
	default:
		if stdoutIsTerminal() && strings.TrimSpace(record.RawText) != "" {
			b.WriteString("\n")
			b.WriteString(record.RawText)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderCandidates(candidates []decision.Candidate) string {
	columns := []column{
		{"#", alignRight},
		{"Release", alignLeft},
		{"Similarity", alignRight},
		{"Source", alignLeft},
		{"ID", alignLeft},
		{"Year", alignRight},
		{"Format", alignLeft},
		{"Label", alignLeft},
	}
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(c.DisplayRank),
			c.ShortLabel(),
			formatSimilarity(c),
			string(c.Source),
			c.ExternalID,
			formatYear(c.Year),
			c.Format,
			c.Label,
		})
	}
	return renderColumns(columns, rows) + "\n"
}

func renderDifferences(candidate decision.Candidate, charThreshold int) string {
	if len(candidate.Differences) == 0 {
		return ""
	}
	aligner := diffview.NewAligner()
	if charThreshold > 0 {
		aligner.CharThreshold = charThreshold
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nChanges for %s:\n", candidate.ShortLabel())
	for _, diff := range candidate.Differences {
		switch diff.Kind {
		case decision.DiffFieldChange:
			if diff.OldValue != "" && diff.NewValue != "" {
				oldMarked, newMarked := aligner.Align(diff.OldValue, diff.NewValue, diffview.GranularitySmart)
				fmt.Fprintf(&b, "  %s: %s -> %s\n", diff.FieldName, oldMarked, newMarked)
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", diff.FieldName, diff.NewValue)
		case decision.DiffMissing:
			fmt.Fprintf(&b, "  missing: %s\n", diff.FieldName)
		case decision.DiffExtra:
			fmt.Fprintf(&b, "  extra: %s\n", diff.FieldName)
		default:
			fmt.Fprintf(&b, "  %s\n", diff.RawLine)
		}
	}
	return b.String()
}

func formatSimilarity(c decision.Candidate) string {
	if c.HasSimilarityPercent {
		return strconv.FormatFloat(c.SimilarityPercent, 'f', 1, 64) + "%"
	}
	if c.HasDistance {
		return "d=" + strconv.FormatFloat(c.Distance, 'f', 2, 64)
	}
	return ""
}

func formatYear(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
