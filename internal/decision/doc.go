// Package decision defines the canonical typed output of the import output
// reconciliation engine: the ImportDecisionRecord plus the Candidate and
// Difference values it aggregates. Values are built once per parse and are
// not mutated afterwards, except for SelectedIndex which is owned by the
// surrounding session layer.
package decision
