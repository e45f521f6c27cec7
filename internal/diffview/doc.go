// Package diffview classifies the "field changed" lines listed by the
// tagging tool and renders inline old/new highlighting for them. Parsing
// tries increasingly general line shapes in a fixed order; alignment is an
// LCS opcode walk over characters or words with a heuristic granularity
// picker.
package diffview
