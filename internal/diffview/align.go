package diffview

import (
	"regexp"
	"strings"
)

// Granularity selects the token unit used for alignment.
type Granularity int

const (
	// GranularityChar aligns individual characters.
	GranularityChar Granularity = iota
	// GranularityWord aligns whitespace-delimited words.
	GranularityWord
	// GranularitySmart picks Char or Word heuristically per value pair.
	GranularitySmart
)

// Markers wrap the differing spans in the rendered output: removed spans in
// the old value, added (emphasized) spans in the new value.
type Markers struct {
	RemovedOpen  string
	RemovedClose string
	AddedOpen    string
	AddedClose   string
}

// DefaultMarkers renders Markdown strikethrough for removals and bold for
// additions, matching the chat front end's formatting.
var DefaultMarkers = Markers{
	RemovedOpen:  "~~",
	RemovedClose: "~~",
	AddedOpen:    "**",
	AddedClose:   "**",
}

// DefaultCharThreshold is the value length (in runes) above which Smart
// granularity switches from character to word alignment. Character diffs on
// long prose are visually noisy; the exact cutoff is a readability knob,
// not a correctness requirement.
const DefaultCharThreshold = 40

// Aligner renders inline old/new highlighting. The zero value is not
// usable; construct with NewAligner.
type Aligner struct {
	Markers       Markers
	CharThreshold int
}

// NewAligner returns an aligner with default markers and threshold.
func NewAligner() *Aligner {
	return &Aligner{Markers: DefaultMarkers, CharThreshold: DefaultCharThreshold}
}

// Align renders the default aligner's output for the value pair.
func Align(oldValue, newValue string, granularity Granularity) (string, string) {
	return NewAligner().Align(oldValue, newValue, granularity)
}

var (
	durationToken = regexp.MustCompile(`\d{1,2}:\d{1,2}`)
	trackNumToken = regexp.MustCompile(`\(#\d+\)`)
)

// Align computes an LCS opcode sequence over characters or words and wraps
// old-only runs with the removed markers and new-only runs with the added
// markers. Equal runs pass through unmarked.
func (a *Aligner) Align(oldValue, newValue string, granularity Granularity) (string, string) {
	if granularity == GranularitySmart {
		granularity = a.pickGranularity(oldValue, newValue)
	}

	var oldTokens, newTokens []string
	var sep string
	switch granularity {
	case GranularityWord:
		oldTokens = strings.Fields(oldValue)
		newTokens = strings.Fields(newValue)
		sep = " "
	default:
		oldTokens = splitRunes(oldValue)
		newTokens = splitRunes(newValue)
		sep = ""
	}

	ops := alignOps(oldTokens, newTokens)

	var oldParts, newParts []string
	for _, op := range ops {
		oldRun := strings.Join(op.oldTokens, sep)
		newRun := strings.Join(op.newTokens, sep)
		switch op.kind {
		case opEqual:
			oldParts = append(oldParts, oldRun)
			newParts = append(newParts, newRun)
		case opDelete:
			oldParts = append(oldParts, a.Markers.RemovedOpen+oldRun+a.Markers.RemovedClose)
		case opInsert:
			newParts = append(newParts, a.Markers.AddedOpen+newRun+a.Markers.AddedClose)
		case opReplace:
			oldParts = append(oldParts, a.Markers.RemovedOpen+oldRun+a.Markers.RemovedClose)
			newParts = append(newParts, a.Markers.AddedOpen+newRun+a.Markers.AddedClose)
		}
	}

	return strings.Join(oldParts, sep), strings.Join(newParts, sep)
}

// pickGranularity chooses word alignment whenever either value contains a
// clock-style duration or a track-number token, since character alignment
// badly fragments those; otherwise short values get character alignment and
// long ones word alignment.
func (a *Aligner) pickGranularity(oldValue, newValue string) Granularity {
	if durationToken.MatchString(oldValue) || durationToken.MatchString(newValue) {
		return GranularityWord
	}
	if trackNumToken.MatchString(oldValue) || trackNumToken.MatchString(newValue) {
		return GranularityWord
	}
	threshold := a.CharThreshold
	if threshold <= 0 {
		threshold = DefaultCharThreshold
	}
	if len([]rune(oldValue)) > threshold || len([]rune(newValue)) > threshold {
		return GranularityWord
	}
	return GranularityChar
}

func splitRunes(value string) []string {
	runes := []rune(value)
	tokens := make([]string, len(runes))
	for i, r := range runes {
		tokens[i] = string(r)
	}
	return tokens
}

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
	opReplace
)

type alignOp struct {
	kind      opKind
	oldTokens []string
	newTokens []string
}

// alignOps backtracks an LCS table into coalesced equal/delete/insert runs,
// merging adjacent delete+insert runs into replace.
func alignOps(oldTokens, newTokens []string) []alignOp {
	table := lcsTable(oldTokens, newTokens)

	type step struct {
		kind  opKind
		token string
	}
	var steps []step
	i, j := len(oldTokens), len(newTokens)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && oldTokens[i-1] == newTokens[j-1]:
			steps = append(steps, step{opEqual, oldTokens[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || table[i][j-1] >= table[i-1][j]):
			steps = append(steps, step{opInsert, newTokens[j-1]})
			j--
		default:
			steps = append(steps, step{opDelete, oldTokens[i-1]})
			i--
		}
	}
	for left, right := 0, len(steps)-1; left < right; left, right = left+1, right-1 {
		steps[left], steps[right] = steps[right], steps[left]
	}

	var ops []alignOp
	for _, s := range steps {
		if n := len(ops); n > 0 {
			last := &ops[n-1]
			if last.kind == s.kind {
				appendToken(last, s.kind, s.token)
				continue
			}
			// delete followed by insert (or vice versa) forms a replace run.
			if s.kind == opInsert && (last.kind == opDelete || last.kind == opReplace) {
				last.kind = opReplace
				last.newTokens = append(last.newTokens, s.token)
				continue
			}
			if s.kind == opDelete && last.kind == opReplace {
				last.oldTokens = append(last.oldTokens, s.token)
				continue
			}
		}
		op := alignOp{kind: s.kind}
		appendToken(&op, s.kind, s.token)
		ops = append(ops, op)
	}
	return ops
}

func appendToken(op *alignOp, kind opKind, token string) {
	switch kind {
	case opDelete:
		op.oldTokens = append(op.oldTokens, token)
	case opInsert:
		op.newTokens = append(op.newTokens, token)
	default:
		op.oldTokens = append(op.oldTokens, token)
		op.newTokens = append(op.newTokens, token)
	}
}

func lcsTable(oldTokens, newTokens []string) [][]int {
	m, n := len(oldTokens), len(newTokens)
	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldTokens[i-1] == newTokens[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}
	return table
}
