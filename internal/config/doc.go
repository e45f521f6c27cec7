// Package config loads and validates beetbridge's TOML configuration:
// where imports live, how the beet tool is invoked by collaborators, and
// the tunables of the reconciliation engine and session store.
package config
