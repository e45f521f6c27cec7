// Package plugins detects which beets plugins are enabled by parsing the
// tool's configuration dump, and caches the result for a configurable TTL.
// The cache is an explicitly scoped object with an injectable clock; there
// is no process-wide singleton.
package plugins
