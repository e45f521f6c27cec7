// Package beetout reconciles the raw text produced by a beet import run
// into a typed decision record. The tool emits two independent regions: a
// terse human-facing candidate list and a noisy verbose trace that carries
// the authoritative release identifiers. Extraction runs in three phases:
// the verbose region is indexed by normalized title, the display region is
// parsed into ranked partial candidates, and the two are joined by title
// with a fuzzy containment fallback.
//
// Classification is total: any input, including empty or garbage text,
// resolves to an outcome rather than an error.
package beetout
